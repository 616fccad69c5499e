package models

type MembershipStatus string
type AttendanceType string
type AttendanceStatus string
type PaymentStatus string
type PaymentMethod string
type DurationUnit string
type UserRole string

const (
	MembershipStatusActive   MembershipStatus = "Active"
	MembershipStatusExpired  MembershipStatus = "Expired"
	MembershipStatusOnHold   MembershipStatus = "On Hold"
	MembershipStatusInactive MembershipStatus = "Inactive"

	AttendanceTypeManual    AttendanceType = "Manual"
	AttendanceTypeBiometric AttendanceType = "Biometric"

	AttendanceStatusPresent    AttendanceStatus = "Present"
	AttendanceStatusCheckedOut AttendanceStatus = "Checked Out"

	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"

	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCheque       PaymentMethod = "Cheque"

	DurationUnitDays   DurationUnit = "days"
	DurationUnitMonths DurationUnit = "months"

	UserRoleAdmin        UserRole = "admin"
	UserRoleReceptionist UserRole = "receptionist"
)

// ValidMembershipStatus reports whether s is one of the four member states.
func ValidMembershipStatus(s MembershipStatus) bool {
	switch s {
	case MembershipStatusActive, MembershipStatusExpired, MembershipStatusOnHold, MembershipStatusInactive:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
