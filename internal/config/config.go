package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Gym struct {
		// IANA zone of the facility. Check-in day boundaries are computed
		// in this zone.
		Timezone string `yaml:"timezone"`
		// Interval between membership expiry sweeps, e.g. "1h".
		ExpirySweepInterval string `yaml:"expiry_sweep_interval"`
	} `yaml:"gym"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config purely from environment
// variables when DATABASE_URL is set (test/deploy mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	} else {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.JWT.TTL = 60
		cfg.Gym.Timezone = os.Getenv("GYM_TIMEZONE")
		cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
		cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Gym.Timezone == "" {
		cfg.Gym.Timezone = "Local"
	}
	if cfg.Gym.ExpirySweepInterval == "" {
		cfg.Gym.ExpirySweepInterval = "1h"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// Location resolves the configured facility time zone.
func (c *Config) Location() *time.Location {
	if c.Gym.Timezone == "" || c.Gym.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Gym.Timezone)
	if err != nil {
		log.Printf("Invalid gym timezone %q, falling back to local: %v", c.Gym.Timezone, err)
		return time.Local
	}
	return loc
}

// SweepInterval parses the expiry sweep interval, falling back to hourly.
func (c *Config) SweepInterval() time.Duration {
	d, err := time.ParseDuration(c.Gym.ExpirySweepInterval)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}
