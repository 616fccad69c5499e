package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gymdesk_backend/database"
	"gymdesk_backend/internal/config"
	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/services"
	"gymdesk_backend/pkg/apperrors"
)

// newTestDB opens a file-backed sqlite database in a temp dir. A real file
// (not :memory:) so concurrent connections see the same database; WAL and
// a busy timeout so parallel writers queue instead of failing.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "gymdesk_test.db") +
		"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type testEnv struct {
	db         *gorm.DB
	members    services.MemberService
	plans      services.PlanService
	trainers   services.TrainerService
	attendance services.AttendanceService
	payments   services.PaymentService
	sequences  services.SequenceService
	auth       services.AuthService
	loc        *time.Location
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Token generation reads the global config; give tests a fixed one.
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60

	db := newTestDB(t)
	loc := time.UTC

	memberRepo := repositories.NewMemberRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	trainerRepo := repositories.NewTrainerRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)

	sequences := services.NewSequenceService()

	return &testEnv{
		db:         db,
		members:    services.NewMemberService(db, memberRepo, planRepo, attendanceRepo, paymentRepo, sequences, loc),
		plans:      services.NewPlanService(planRepo, memberRepo, paymentRepo),
		trainers:   services.NewTrainerService(db, trainerRepo, memberRepo, sequences, loc),
		attendance: services.NewAttendanceService(memberRepo, attendanceRepo, loc),
		payments:   services.NewPaymentService(paymentRepo, memberRepo, loc),
		sequences:  sequences,
		auth:       services.NewAuthService(userRepo),
		loc:        loc,
	}
}

func requireAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func (e *testEnv) createPlan(t *testing.T, name string, durationValue int, unit string, price float64) *models.Plan {
	t.Helper()
	plan, err := e.plans.Create(&dto.CreatePlanRequest{
		PlanName:      name,
		DurationValue: durationValue,
		DurationUnit:  unit,
		Price:         price,
	})
	require.NoError(t, err)
	return plan
}

func (e *testEnv) createMember(t *testing.T, name string) *models.Member {
	t.Helper()
	member, err := e.members.Create(&dto.CreateMemberRequest{
		FullName: name,
		Phone:    "+7000000000",
	})
	require.NoError(t, err)
	return member
}

func (e *testEnv) createMemberWithBiometric(t *testing.T, name, biometricID string) *models.Member {
	t.Helper()
	member, err := e.members.Create(&dto.CreateMemberRequest{
		FullName:    name,
		Phone:       "+7000000000",
		BiometricID: &biometricID,
	})
	require.NoError(t, err)
	return member
}
