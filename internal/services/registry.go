package services

// ServiceContainer holds every service the application wires up.
type ServiceContainer struct {
	AuthService       AuthService
	MemberService     MemberService
	PlanService       PlanService
	TrainerService    TrainerService
	AttendanceService AttendanceService
	PaymentService    PaymentService
	SequenceService   SequenceService
}
