package models

import (
	"time"

	"gorm.io/datatypes"
)

type Trainer struct {
	BaseModel
	// Human-readable identity, e.g. "TRN00001", minted on creation.
	TrainerID string `gorm:"uniqueIndex;not null" json:"trainerId"`

	FullName        string         `gorm:"not null" json:"fullName"`
	Gender          string         `json:"gender"`
	Phone           string         `gorm:"not null" json:"phone"`
	Email           string         `json:"email"`
	Specializations datatypes.JSON `json:"specializations"`
	Experience      int            `gorm:"default:0" json:"experience"` // years
	JoiningDate     time.Time      `json:"joiningDate"`
	Salary          float64        `gorm:"default:0" json:"salary"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`

	// The trainer's side of the trainer<->member link. Rows live in
	// trainer_members and are written in the same transaction as
	// Member.AssignedTrainerID.
	AssignedMembers []Member `gorm:"many2many:trainer_members" json:"assignedMembers,omitempty"`
}

// TrainerMember is the explicit join row for the bidirectional
// trainer<->member link. Declared so assign/unassign can write it directly
// instead of going through association helpers.
type TrainerMember struct {
	TrainerID string `gorm:"type:uuid;primaryKey"`
	MemberID  string `gorm:"type:uuid;primaryKey"`
}

func (TrainerMember) TableName() string { return "trainer_members" }
