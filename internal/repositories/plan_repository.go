package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gymdesk_backend/internal/models"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository interface {
	Create(plan *models.Plan) error
	FindByID(id string) (*models.Plan, error)
	FindAll(activeOnly bool) ([]models.Plan, error)
	Save(plan *models.Plan) error
	Delete(id string) error
	SetActive(id string, active bool) error
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepositoryImpl) FindByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindAll(activeOnly bool) ([]models.Plan, error) {
	query := r.db.Model(&models.Plan{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var plans []models.Plan
	err := query.Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) Save(plan *models.Plan) error {
	result := r.db.Save(plan)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Plan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepositoryImpl) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Plan{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
