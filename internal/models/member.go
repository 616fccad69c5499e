package models

import (
	"time"

	"gorm.io/datatypes"
)

type Member struct {
	BaseModel
	// Human-readable identity, e.g. "GYM00001". Minted by the sequence
	// allocator on registration, never changed afterwards.
	MemberID string `gorm:"uniqueIndex;not null" json:"memberId"`

	FullName         string           `gorm:"not null" json:"fullName"`
	Gender           string           `json:"gender"`
	DateOfBirth      *time.Time       `json:"dateOfBirth"`
	Phone            string           `gorm:"not null" json:"phone"`
	Email            string           `json:"email"`
	Address          datatypes.JSON   `json:"address"`
	Photo            string           `json:"photo"`
	EmergencyContact datatypes.JSON   `json:"emergencyContact"`
	MedicalNotes     string           `json:"medicalNotes"`
	MembershipStatus MembershipStatus `gorm:"type:varchar(20);default:'Active'" json:"membershipStatus"`

	CurrentPlanID *string    `gorm:"type:uuid;index" json:"currentPlanId"`
	PlanStartDate *time.Time `json:"planStartDate"`
	PlanEndDate   *time.Time `json:"planEndDate"`

	AssignedTrainerID *string `gorm:"type:uuid;index" json:"assignedTrainerId"`

	// Optional; globally unique when present (sqlite and postgres both
	// treat NULLs as distinct in unique indexes).
	BiometricID *string   `gorm:"uniqueIndex" json:"biometricId"`
	JoinDate    time.Time `json:"joinDate"`

	// Relations
	CurrentPlan     *Plan    `gorm:"foreignKey:CurrentPlanID" json:"currentPlan,omitempty"`
	AssignedTrainer *Trainer `gorm:"foreignKey:AssignedTrainerID" json:"assignedTrainer,omitempty"`
}
