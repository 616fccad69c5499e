package handlers

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	MemberHandler     *MemberHandler
	PlanHandler       *PlanHandler
	TrainerHandler    *TrainerHandler
	AttendanceHandler *AttendanceHandler
	PaymentHandler    *PaymentHandler
	HealthHandler     *HealthHandler
}
