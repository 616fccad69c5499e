package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/models"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicateReceipt = errors.New("receipt number already exists")
)

type PaymentFilter struct {
	MemberID string
	Status   models.PaymentStatus
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindWithFilter(f PaymentFilter) ([]models.Payment, int64, error)
	FindByMember(memberID string, limit, offset int) ([]models.Payment, int64, error)
	UpdateStatus(id string, status models.PaymentStatus, notes string) error
	CountByPlan(planID string) (int64, error)
	StatsByPlan() ([]dto.PlanStats, error)
	RevenueSummary(from, to *time.Time) (*dto.RevenueSummary, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReceipt
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Member").Preload("Plan").First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindWithFilter(f PaymentFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if f.MemberID != "" {
		query = query.Where("member_id = ?", f.MemberID)
	}
	if f.Status != "" {
		query = query.Where("payment_status = ?", f.Status)
	}
	if f.From != nil {
		query = query.Where("payment_date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("payment_date <= ?", *f.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.Preload("Member").Preload("Plan").
		Order("payment_date DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepositoryImpl) FindByMember(memberID string, limit, offset int) ([]models.Payment, int64, error) {
	return r.FindWithFilter(PaymentFilter{MemberID: memberID, Limit: limit, Offset: offset})
}

// UpdateStatus is the only write payments accept after creation; the
// monetary snapshot columns are never touched.
func (r *PaymentRepositoryImpl) UpdateStatus(id string, status models.PaymentStatus, notes string) error {
	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}

	result := r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) CountByPlan(planID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Where("plan_id = ?", planID).Count(&count).Error
	return count, err
}

// StatsByPlan aggregates paid revenue per plan. Active member counts are
// layered on by the service from the member side.
func (r *PaymentRepositoryImpl) StatsByPlan() ([]dto.PlanStats, error) {
	var stats []dto.PlanStats
	err := r.db.Model(&models.Payment{}).
		Select("payments.plan_id AS plan_id, plans.plan_name AS plan_name, COALESCE(SUM(payments.final_amount), 0) AS total_revenue, COUNT(payments.id) AS payment_count").
		Joins("JOIN plans ON plans.id = payments.plan_id").
		Where("payments.payment_status = ?", models.PaymentStatusPaid).
		Group("payments.plan_id, plans.plan_name").
		Scan(&stats).Error
	return stats, err
}

func (r *PaymentRepositoryImpl) RevenueSummary(from, to *time.Time) (*dto.RevenueSummary, error) {
	base := r.db.Model(&models.Payment{})
	if from != nil {
		base = base.Where("payment_date >= ?", *from)
	}
	if to != nil {
		base = base.Where("payment_date <= ?", *to)
	}

	var summary dto.RevenueSummary
	err := base.Session(&gorm.Session{}).
		Select(
			"COALESCE(SUM(CASE WHEN payment_status = ? THEN final_amount ELSE 0 END), 0) AS total_revenue, "+
				"COUNT(id) AS payment_count, "+
				"COALESCE(SUM(CASE WHEN payment_status = ? THEN final_amount ELSE 0 END), 0) AS pending_amount, "+
				"COALESCE(SUM(CASE WHEN payment_status = ? THEN final_amount ELSE 0 END), 0) AS refunded_amount",
			models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusRefunded,
		).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
