package services

import (
	"errors"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/pkg/apperrors"
)

type PlanService interface {
	Create(req *dto.CreatePlanRequest) (*models.Plan, error)
	List(activeOnly bool) ([]models.Plan, error)
	Get(id string) (*models.Plan, error)
	Update(id string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	Delete(id string) error
	SetActive(id string, active bool) (*models.Plan, error)
	Stats() ([]dto.PlanStats, error)
}

type planService struct {
	planRepo    repositories.PlanRepository
	memberRepo  repositories.MemberRepository
	paymentRepo repositories.PaymentRepository
}

func NewPlanService(
	planRepo repositories.PlanRepository,
	memberRepo repositories.MemberRepository,
	paymentRepo repositories.PaymentRepository,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *planService) Create(req *dto.CreatePlanRequest) (*models.Plan, error) {
	plan := &models.Plan{
		PlanName:      req.PlanName,
		DurationValue: req.DurationValue,
		DurationUnit:  models.DurationUnit(req.DurationUnit),
		Price:         req.Price,
		Discount:      req.Discount,
		AccessTypes:   toJSON(req.AccessTypes),
		Description:   req.Description,
		Features:      toJSON(req.Features),
		IsActive:      true,
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Plan created", "plan", plan.PlanName, "price", plan.Price)
	return plan, nil
}

func (s *planService) List(activeOnly bool) ([]models.Plan, error) {
	plans, err := s.planRepo.FindAll(activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *planService) Get(id string) (*models.Plan, error) {
	plan, err := s.planRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plans", "Plan")
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// Update edits a plan. Once any payment references the plan, the fields
// that define what was sold (price, discount, duration) are frozen:
// recorded payments snapshot them, and changing the terms under active
// members would make the snapshots unverifiable. Descriptive fields stay
// editable.
func (s *planService) Update(id string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	touchesTerms := req.Price != nil || req.Discount != nil ||
		req.DurationValue != nil || req.DurationUnit != nil
	if touchesTerms {
		count, err := s.paymentRepo.CountByPlan(id)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if count > 0 {
			return nil, apperrors.ErrConflict(nil, "plans",
				"Plan has recorded payments; price and duration are locked. Create a new plan instead")
		}
	}

	if req.PlanName != nil {
		plan.PlanName = *req.PlanName
	}
	if req.DurationValue != nil {
		plan.DurationValue = *req.DurationValue
	}
	if req.DurationUnit != nil {
		plan.DurationUnit = models.DurationUnit(*req.DurationUnit)
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Discount != nil {
		plan.Discount = *req.Discount
	}
	if req.AccessTypes != nil {
		plan.AccessTypes = toJSON(req.AccessTypes)
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Features != nil {
		plan.Features = toJSON(req.Features)
	}

	if err := s.planRepo.Save(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

// Delete removes a plan nobody ever used. Plans with members or payment
// history are deactivated instead so historical records keep resolving.
func (s *planService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	memberCount, err := s.memberRepo.CountByPlan(id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if memberCount > 0 {
		return apperrors.ErrConflict(nil, "plans",
			"Plan is assigned to members and cannot be deleted; deactivate it instead")
	}

	paymentCount, err := s.paymentRepo.CountByPlan(id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if paymentCount > 0 {
		return apperrors.ErrConflict(nil, "plans",
			"Plan has payment history and cannot be deleted; deactivate it instead")
	}

	if err := s.planRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("Plan deleted", "plan_id", id)
	return nil
}

func (s *planService) SetActive(id string, active bool) (*models.Plan, error) {
	plan, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.SetActive(id, active); err != nil {
		return nil, apperrors.InternalError(err)
	}
	plan.IsActive = active

	logger.Info("Plan active flag changed", "plan", plan.PlanName, "active", active)
	return plan, nil
}

// Stats reports, per plan, the active member count and paid revenue.
// Plans that never sold still appear with zeroes.
func (s *planService) Stats() ([]dto.PlanStats, error) {
	plans, err := s.planRepo.FindAll(false)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	revenue, err := s.paymentRepo.StatsByPlan()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byPlan := make(map[string]dto.PlanStats, len(revenue))
	for _, r := range revenue {
		byPlan[r.PlanID] = r
	}

	stats := make([]dto.PlanStats, 0, len(plans))
	for _, plan := range plans {
		entry := dto.PlanStats{PlanID: plan.ID, PlanName: plan.PlanName}
		if r, ok := byPlan[plan.ID]; ok {
			entry.TotalRevenue = r.TotalRevenue
			entry.PaymentCount = r.PaymentCount
		}

		active, err := s.memberRepo.CountActiveByPlan(plan.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		entry.ActiveMembers = active
		stats = append(stats, entry)
	}
	return stats, nil
}
