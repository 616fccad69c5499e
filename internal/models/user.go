package models

// User is a staff account (admin, receptionist) used by the auth layer.
// Members never log in.
type User struct {
	BaseModel
	Name         string   `json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool     `gorm:"default:true" json:"isActive"`
}
