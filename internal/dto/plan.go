package dto

type CreatePlanRequest struct {
	PlanName      string   `json:"planName" validate:"required,min=2,max=100"`
	DurationValue int      `json:"durationValue" validate:"required,min=1"`
	DurationUnit  string   `json:"durationUnit" validate:"required,is-duration-unit"`
	Price         float64  `json:"price" validate:"required,min=0"`
	Discount      float64  `json:"discount" validate:"omitempty,min=0,max=100"`
	AccessTypes   []string `json:"accessTypes"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
}

type UpdatePlanRequest struct {
	PlanName      *string  `json:"planName" validate:"omitempty,min=2,max=100"`
	DurationValue *int     `json:"durationValue" validate:"omitempty,min=1"`
	DurationUnit  *string  `json:"durationUnit" validate:"omitempty,is-duration-unit"`
	Price         *float64 `json:"price" validate:"omitempty,min=0"`
	Discount      *float64 `json:"discount" validate:"omitempty,min=0,max=100"`
	AccessTypes   []string `json:"accessTypes"`
	Description   *string  `json:"description"`
	Features      []string `json:"features"`
}

type SetPlanActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// PlanStats aggregates usage and revenue per plan for the admin dashboard.
type PlanStats struct {
	PlanID        string  `json:"planId"`
	PlanName      string  `json:"planName"`
	ActiveMembers int64   `json:"activeMembers"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PaymentCount  int64   `json:"paymentCount"`
}
