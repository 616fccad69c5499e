package services

import (
	"errors"
	"fmt"
	"time"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/timeutil"
	"gymdesk_backend/pkg/apperrors"
)

// PaymentService reads the ledger and moves payment statuses. Creating
// payments is not exposed here: rows only enter the ledger through plan
// assignment, which writes them transactionally with the member update.
type PaymentService interface {
	List(q *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error)
	Get(id string) (*models.Payment, error)
	MemberHistory(memberID string, q *dto.PaginationQuery) (*dto.PaymentListResponse, error)
	UpdateStatus(id string, req *dto.UpdatePaymentStatusRequest) (*models.Payment, error)
	RevenueSummary(from, to string) (*dto.RevenueSummary, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
	loc         *time.Location
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	memberRepo repositories.MemberRepository,
	loc *time.Location,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		loc:         loc,
	}
}

func (s *paymentService) List(q *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error) {
	q.Normalize()

	filter := repositories.PaymentFilter{
		MemberID: q.MemberID,
		Status:   models.PaymentStatus(q.Status),
		Limit:    q.Limit,
		Offset:   q.Offset(),
	}
	filter.From = parseDay(q.From, s.loc)
	if to := parseDay(q.To, s.loc); to != nil {
		end := timeutil.DayEnd(*to, s.loc)
		filter.To = &end
	}

	payments, total, err := s.paymentRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PaymentListResponse{
		Payments: payments,
		Meta:     dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

func (s *paymentService) Get(id string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.NewNotFoundError("payments", "Payment")
		}
		return nil, apperrors.InternalError(err)
	}
	return payment, nil
}

func (s *paymentService) MemberHistory(memberID string, q *dto.PaginationQuery) (*dto.PaymentListResponse, error) {
	q.Normalize()

	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.NewNotFoundError("payments", "Member")
		}
		return nil, apperrors.InternalError(err)
	}

	payments, total, err := s.paymentRepo.FindByMember(memberID, q.Limit, q.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PaymentListResponse{
		Payments: payments,
		Meta:     dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

// UpdateStatus moves a payment through its status values. This is the
// only mutation the ledger allows; amounts and receipt numbers are
// immutable once recorded. A refund is final.
func (s *paymentService) UpdateStatus(id string, req *dto.UpdatePaymentStatusRequest) (*models.Payment, error) {
	payment, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	target := models.PaymentStatus(req.Status)
	if payment.PaymentStatus == models.PaymentStatusRefunded && target != models.PaymentStatusRefunded {
		return nil, apperrors.ErrInvalidState("payments",
			fmt.Sprintf("Payment %s is refunded; its status cannot change again", payment.ReceiptNumber))
	}

	if err := s.paymentRepo.UpdateStatus(id, target, req.Notes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	payment.PaymentStatus = target
	if req.Notes != "" {
		payment.Notes = req.Notes
	}

	logger.Info("Payment status updated",
		"receipt", payment.ReceiptNumber, "status", target)
	return payment, nil
}

func (s *paymentService) RevenueSummary(from, to string) (*dto.RevenueSummary, error) {
	fromTime := parseDay(from, s.loc)
	var toTime *time.Time
	if parsed := parseDay(to, s.loc); parsed != nil {
		end := timeutil.DayEnd(*parsed, s.loc)
		toTime = &end
	}

	summary, err := s.paymentRepo.RevenueSummary(fromTime, toTime)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return summary, nil
}
