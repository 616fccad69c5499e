package dto

import "gymdesk_backend/internal/models"

// CreateMemberRequest carries everything the front desk captures at
// registration. The member ID itself is minted server-side.
type CreateMemberRequest struct {
	FullName         string                 `json:"fullName" validate:"required,min=2,max=100"`
	Gender           string                 `json:"gender" validate:"omitempty,is-gender"`
	DateOfBirth      string                 `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Phone            string                 `json:"phone" validate:"required,min=5,max=20"`
	Email            string                 `json:"email" validate:"omitempty,email"`
	Address          map[string]interface{} `json:"address"`
	Photo            string                 `json:"photo"`
	EmergencyContact map[string]interface{} `json:"emergencyContact"`
	MedicalNotes     string                 `json:"medicalNotes"`
	BiometricID      *string                `json:"biometricId"`
	JoinDate         string                 `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateMemberRequest uses pointers so absent fields are left untouched.
// Identity and plan fields are deliberately missing: MemberID never
// changes, and plan state only moves through assign/renew.
type UpdateMemberRequest struct {
	FullName         *string                `json:"fullName" validate:"omitempty,min=2,max=100"`
	Gender           *string                `json:"gender" validate:"omitempty,is-gender"`
	DateOfBirth      *string                `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Phone            *string                `json:"phone" validate:"omitempty,min=5,max=20"`
	Email            *string                `json:"email" validate:"omitempty,email"`
	Address          map[string]interface{} `json:"address"`
	Photo            *string                `json:"photo"`
	EmergencyContact map[string]interface{} `json:"emergencyContact"`
	MedicalNotes     *string                `json:"medicalNotes"`
	BiometricID      *string                `json:"biometricId"`
}

type ListMembersQuery struct {
	PaginationQuery
	Search string `form:"search"`
	Status string `form:"status" validate:"omitempty,is-membership-status"`
	PlanID string `form:"planId"`
}

type AssignPlanRequest struct {
	PlanID        string  `json:"planId" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,is-payment-method"`
	StartDate     string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	Discount      float64 `json:"discount" validate:"omitempty,min=0,max=100"`
	TransactionID string  `json:"transactionId"`
	Notes         string  `json:"notes"`
}

type SetMemberStatusRequest struct {
	Status string `json:"status" validate:"required,is-membership-status"`
	Reason string `json:"reason"`
}

type ExpiringMembersQuery struct {
	Days int `form:"days" validate:"omitempty,min=1,max=365"`
}

// MemberDetail is the single-member response: the member plus recent
// activity for the profile screen.
type MemberDetail struct {
	Member           *models.Member      `json:"member"`
	RecentAttendance []models.Attendance `json:"recentAttendance"`
	RecentPayments   []models.Payment    `json:"recentPayments"`
}

type MemberListResponse struct {
	Members []models.Member `json:"members"`
	Meta    ListMeta        `json:"meta"`
}

// AssignPlanResponse returns both sides of the assignment transaction.
type AssignPlanResponse struct {
	Member  *models.Member  `json:"member"`
	Payment *models.Payment `json:"payment"`
}

type ProcessExpiredResponse struct {
	ExpiredCount int      `json:"expiredCount"`
	MemberIDs    []string `json:"memberIds"`
}
