package models

import "time"

type Attendance struct {
	BaseModel
	MemberID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_member_date" json:"memberId"`
	CheckInTime  time.Time  `gorm:"not null" json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`

	// Midnight-normalized calendar day. Together with MemberID this is the
	// uniqueness key that makes duplicate same-day check-ins impossible at
	// the store level.
	Date time.Time `gorm:"not null;uniqueIndex:idx_attendance_member_date" json:"date"`

	AttendanceType    AttendanceType   `gorm:"type:varchar(10);default:'Manual'" json:"attendanceType"`
	BiometricDeviceID string           `json:"biometricDeviceId"`
	Notes             string           `json:"notes"`
	Status            AttendanceStatus `gorm:"type:varchar(15);default:'Present'" json:"status"`

	Member *Member `json:"member,omitempty"`
}

// DurationMinutes is the session length; nil until checkout.
func (a *Attendance) DurationMinutes() *int {
	if a.CheckOutTime == nil {
		return nil
	}
	minutes := int(a.CheckOutTime.Sub(a.CheckInTime).Round(time.Minute) / time.Minute)
	return &minutes
}
