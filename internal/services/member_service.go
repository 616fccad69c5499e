package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/timeutil"
	"gymdesk_backend/pkg/apperrors"
)

type MemberService interface {
	Create(req *dto.CreateMemberRequest) (*models.Member, error)
	List(q *dto.ListMembersQuery) (*dto.MemberListResponse, error)
	Get(id string) (*dto.MemberDetail, error)
	Update(id string, req *dto.UpdateMemberRequest) (*models.Member, error)
	Delete(id string) error
	AssignPlan(memberID string, req *dto.AssignPlanRequest) (*dto.AssignPlanResponse, error)
	RenewPlan(memberID string, req *dto.AssignPlanRequest) (*dto.AssignPlanResponse, error)
	SetStatus(id string, req *dto.SetMemberStatusRequest) (*models.Member, error)
	Expiring(days int) ([]models.Member, error)
	ProcessExpired() (*dto.ProcessExpiredResponse, error)
}

type memberService struct {
	db             *gorm.DB
	memberRepo     repositories.MemberRepository
	planRepo       repositories.PlanRepository
	attendanceRepo repositories.AttendanceRepository
	paymentRepo    repositories.PaymentRepository
	sequences      SequenceService
	loc            *time.Location
}

func NewMemberService(
	db *gorm.DB,
	memberRepo repositories.MemberRepository,
	planRepo repositories.PlanRepository,
	attendanceRepo repositories.AttendanceRepository,
	paymentRepo repositories.PaymentRepository,
	sequences SequenceService,
	loc *time.Location,
) MemberService {
	return &memberService{
		db:             db,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		sequences:      sequences,
		loc:            loc,
	}
}

// Create registers a member. The member ID is minted inside the same
// transaction as the insert, so an aborted registration never burns a
// visible gap into the issued sequence of rows.
func (s *memberService) Create(req *dto.CreateMemberRequest) (*models.Member, error) {
	joinDate := time.Now()
	if parsed := parseDay(req.JoinDate, s.loc); parsed != nil {
		joinDate = *parsed
	}

	member := &models.Member{
		FullName:         req.FullName,
		Gender:           req.Gender,
		DateOfBirth:      parseDay(req.DateOfBirth, s.loc),
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          toJSON(req.Address),
		Photo:            req.Photo,
		EmergencyContact: toJSON(req.EmergencyContact),
		MedicalNotes:     req.MedicalNotes,
		MembershipStatus: models.MembershipStatusActive,
		BiometricID:      req.BiometricID,
		JoinDate:         joinDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberID, err := s.sequences.NextMemberID(tx)
		if err != nil {
			return err
		}
		member.MemberID = memberID
		return repositories.NewMemberRepository(tx).Create(member)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateMember) {
			return nil, apperrors.ErrConflict(err, "members", "A member with this biometric ID already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Member registered", "member_id", member.MemberID, "name", member.FullName)
	return member, nil
}

func (s *memberService) List(q *dto.ListMembersQuery) (*dto.MemberListResponse, error) {
	q.Normalize()

	members, total, err := s.memberRepo.FindWithFilter(repositories.MemberFilter{
		Search: q.Search,
		Status: models.MembershipStatus(q.Status),
		PlanID: q.PlanID,
		Limit:  q.Limit,
		Offset: q.Offset(),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MemberListResponse{
		Members: members,
		Meta:    dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

func (s *memberService) Get(id string) (*dto.MemberDetail, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.NewNotFoundError("members", "Member")
		}
		return nil, apperrors.InternalError(err)
	}

	attendance, _, err := s.attendanceRepo.FindByMember(id, 30, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	payments, _, err := s.paymentRepo.FindByMember(id, 10, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MemberDetail{
		Member:           member,
		RecentAttendance: attendance,
		RecentPayments:   payments,
	}, nil
}

func (s *memberService) Update(id string, req *dto.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.NewNotFoundError("members", "Member")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Gender != nil {
		member.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		member.DateOfBirth = parseDay(*req.DateOfBirth, s.loc)
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Address != nil {
		member.Address = toJSON(req.Address)
	}
	if req.Photo != nil {
		member.Photo = *req.Photo
	}
	if req.EmergencyContact != nil {
		member.EmergencyContact = toJSON(req.EmergencyContact)
	}
	if req.MedicalNotes != nil {
		member.MedicalNotes = *req.MedicalNotes
	}
	if req.BiometricID != nil {
		if *req.BiometricID == "" {
			member.BiometricID = nil
		} else {
			member.BiometricID = req.BiometricID
		}
	}

	if err := s.memberRepo.Save(member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMember) {
			return nil, apperrors.ErrConflict(err, "members", "A member with this biometric ID already exists")
		}
		return nil, apperrors.InternalError(err)
	}
	return member, nil
}

// Delete removes a member and their attendance history. Members with
// recorded payments cannot be deleted (the ledger is append-only); mark
// them Inactive instead.
func (s *memberService) Delete(id string) error {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.NewNotFoundError("members", "Member")
		}
		return apperrors.InternalError(err)
	}

	payments, _, err := s.paymentRepo.FindByMember(id, 1, 0)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if len(payments) > 0 {
		return apperrors.ErrInvalidState("members",
			"Member has recorded payments and cannot be deleted; set status to Inactive instead")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TrainerMember{}, "member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Attendance{}, "member_id = ?", id).Error; err != nil {
			return err
		}
		return repositories.NewMemberRepository(tx).Delete(id)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("Member deleted", "member_id", member.MemberID)
	return nil
}

func (s *memberService) AssignPlan(memberID string, req *dto.AssignPlanRequest) (*dto.AssignPlanResponse, error) {
	member, plan, err := s.loadAssignTargets(memberID, req.PlanID)
	if err != nil {
		return nil, err
	}

	start := timeutil.DayStart(time.Now(), s.loc)
	if parsed := parseDay(req.StartDate, s.loc); parsed != nil {
		start = *parsed
	}

	return s.assign(member, plan, start, req)
}

// RenewPlan is the same operation as AssignPlan; the separate entry point
// exists for intent and messaging. The new period starts today unless the
// request says otherwise, even when the current plan has time left.
func (s *memberService) RenewPlan(memberID string, req *dto.AssignPlanRequest) (*dto.AssignPlanResponse, error) {
	member, plan, err := s.loadAssignTargets(memberID, req.PlanID)
	if err != nil {
		return nil, err
	}

	start := timeutil.DayStart(time.Now(), s.loc)
	if parsed := parseDay(req.StartDate, s.loc); parsed != nil {
		start = *parsed
	}

	return s.assign(member, plan, start, req)
}

func (s *memberService) loadAssignTargets(memberID, planID string) (*models.Member, *models.Plan, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, nil, apperrors.NewNotFoundError("members", "Member")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	plan, err := s.planRepo.FindByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, nil, apperrors.NewNotFoundError("plans", "Plan")
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, nil, apperrors.ErrInvalidState("plans",
			fmt.Sprintf("Plan %q is inactive and cannot be assigned", plan.PlanName))
	}

	return member, plan, nil
}

// assign runs the one transaction that moves money and membership state
// together: receipt allocation, payment insert and member plan update all
// commit or roll back as a unit.
func (s *memberService) assign(member *models.Member, plan *models.Plan, start time.Time, req *dto.AssignPlanRequest) (*dto.AssignPlanResponse, error) {
	end := start.AddDate(0, 0, plan.DurationInDays())

	// The payment snapshot records what this sale was made at. The
	// discount is whatever the desk granted on this transaction, zero
	// when absent; the plan's own discount field is advertising, not a
	// charge applied here.
	discount := req.Discount
	finalAmount := plan.Price - (plan.Price * discount / 100)

	payment := &models.Payment{
		MemberID:      member.ID,
		PlanID:        plan.ID,
		Amount:        plan.Price,
		Discount:      discount,
		FinalAmount:   finalAmount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		PaymentStatus: models.PaymentStatusPaid,
		TransactionID: req.TransactionID,
		PaymentDate:   time.Now(),
		Notes:         req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		receipt, err := s.sequences.NextReceiptNumber(tx)
		if err != nil {
			return err
		}
		payment.ReceiptNumber = receipt

		if err := repositories.NewPaymentRepository(tx).Create(payment); err != nil {
			return err
		}

		member.CurrentPlanID = &plan.ID
		member.PlanStartDate = &start
		member.PlanEndDate = &end
		member.MembershipStatus = models.MembershipStatusActive
		return repositories.NewMemberRepository(tx).Save(member)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Plan assigned",
		"member_id", member.MemberID,
		"plan", plan.PlanName,
		"receipt", payment.ReceiptNumber,
		"amount", payment.FinalAmount,
	)
	return &dto.AssignPlanResponse{Member: member, Payment: payment}, nil
}

// SetStatus is the manual override for the membership state machine. It
// deliberately skips plan-date checks: the front desk needs to park a
// member On Hold or force a state regardless of what the dates say. An
// Active member whose plan has lapsed will be picked up again by the
// next expiry sweep.
func (s *memberService) SetStatus(id string, req *dto.SetMemberStatusRequest) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.NewNotFoundError("members", "Member")
		}
		return nil, apperrors.InternalError(err)
	}

	target := models.MembershipStatus(req.Status)
	if err := s.memberRepo.UpdateStatus(id, target); err != nil {
		return nil, apperrors.InternalError(err)
	}
	member.MembershipStatus = target

	logger.Info("Member status changed",
		"member_id", member.MemberID,
		"status", target,
		"reason", req.Reason,
	)
	return member, nil
}

func (s *memberService) Expiring(days int) ([]models.Member, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	members, err := s.memberRepo.FindExpiring(now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return members, nil
}

// ProcessExpired flips every Active member whose plan has ended to
// Expired. One failing row doesn't stop the rest.
func (s *memberService) ProcessExpired() (*dto.ProcessExpiredResponse, error) {
	expired, err := s.memberRepo.FindExpiredActive(time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.ProcessExpiredResponse{}
	for _, member := range expired {
		if err := s.memberRepo.UpdateStatus(member.ID, models.MembershipStatusExpired); err != nil {
			logger.Error("Failed to expire member", "member_id", member.MemberID, "error", err)
			continue
		}
		result.ExpiredCount++
		result.MemberIDs = append(result.MemberIDs, member.MemberID)
	}

	if result.ExpiredCount > 0 {
		logger.Info("Expired memberships processed", "count", result.ExpiredCount)
	}
	return result, nil
}
