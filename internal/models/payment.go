package models

import "time"

// Payment is append-only: after insert, only PaymentStatus may change
// (e.g. a refund); the monetary snapshot fields never do.
type Payment struct {
	BaseModel
	MemberID string `gorm:"type:uuid;not null;index" json:"memberId"`
	PlanID   string `gorm:"type:uuid;not null;index" json:"planId"`

	// Snapshot of the plan price at transaction time. Later plan edits
	// must never alter an already-recorded payment.
	Amount      float64 `gorm:"not null" json:"amount"`
	Discount    float64 `gorm:"default:0" json:"discount"` // percent, 0-100
	FinalAmount float64 `gorm:"not null" json:"finalAmount"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(20);default:'Cash'" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);default:'Paid'" json:"paymentStatus"`
	TransactionID string        `json:"transactionId"`
	PaymentDate   time.Time     `json:"paymentDate"`
	Notes         string        `json:"notes"`

	// e.g. "REC000001", minted by the sequence allocator.
	ReceiptNumber string `gorm:"uniqueIndex;not null" json:"receiptNumber"`

	Member *Member `json:"member,omitempty"`
	Plan   *Plan   `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
