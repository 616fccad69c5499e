package dto

import "gymdesk_backend/internal/models"

type ListPaymentsQuery struct {
	PaginationQuery
	MemberID string `form:"memberId"`
	Status   string `form:"status" validate:"omitempty,is-payment-status"`
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePaymentStatusRequest is the only mutation payments allow after
// they are recorded.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,is-payment-status"`
	Notes  string `json:"notes"`
}

type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
	Meta     ListMeta         `json:"meta"`
}

// RevenueSummary backs the admin revenue widget.
type RevenueSummary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	PaymentCount   int64   `json:"paymentCount"`
	PendingAmount  float64 `json:"pendingAmount"`
	RefundedAmount float64 `json:"refundedAmount"`
}
