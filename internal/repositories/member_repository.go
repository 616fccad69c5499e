package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymdesk_backend/internal/models"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateMember = errors.New("member conflicts with an existing record")
)

type MemberFilter struct {
	Search string
	Status models.MembershipStatus
	PlanID string
	Limit  int
	Offset int
}

type MemberRepository interface {
	Create(member *models.Member) error
	FindByID(id string) (*models.Member, error)
	FindByBiometricID(biometricID string) (*models.Member, error)
	Save(member *models.Member) error
	Delete(id string) error
	FindWithFilter(f MemberFilter) ([]models.Member, int64, error)
	UpdateStatus(id string, status models.MembershipStatus) error
	FindExpiring(from, to time.Time) ([]models.Member, error)
	FindExpiredActive(asOf time.Time) ([]models.Member, error)
	CountByPlan(planID string) (int64, error)
	CountActiveByPlan(planID string) (int64, error)
	ClearTrainer(trainerID string) error
}

type MemberRepositoryImpl struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func (r *MemberRepositoryImpl) Create(member *models.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateMember
		}
		return err
	}
	return nil
}

func (r *MemberRepositoryImpl) FindByID(id string) (*models.Member, error) {
	var member models.Member
	err := r.db.Preload("CurrentPlan").Preload("AssignedTrainer").
		First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) FindByBiometricID(biometricID string) (*models.Member, error) {
	var member models.Member
	err := r.db.First(&member, "biometric_id = ?", biometricID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Save writes the full row. Associations are omitted: loaded relations
// must never be upserted as a side effect of saving the member.
func (r *MemberRepositoryImpl) Save(member *models.Member) error {
	result := r.db.Omit(clause.Associations).Save(member)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrDuplicateMember
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Member{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) FindWithFilter(f MemberFilter) ([]models.Member, int64, error) {
	query := r.db.Model(&models.Member{})

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(member_id) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if f.Status != "" {
		query = query.Where("membership_status = ?", f.Status)
	}
	if f.PlanID != "" {
		query = query.Where("current_plan_id = ?", f.PlanID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := query.Preload("CurrentPlan").Preload("AssignedTrainer").
		Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *MemberRepositoryImpl) UpdateStatus(id string, status models.MembershipStatus) error {
	result := r.db.Model(&models.Member{}).Where("id = ?", id).Updates(map[string]interface{}{
		"membership_status": status,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// FindExpiring lists active members whose plan ends inside [from, to].
func (r *MemberRepositoryImpl) FindExpiring(from, to time.Time) ([]models.Member, error) {
	var members []models.Member
	err := r.db.Preload("CurrentPlan").
		Where("membership_status = ?", models.MembershipStatusActive).
		Where("plan_end_date IS NOT NULL AND plan_end_date >= ? AND plan_end_date <= ?", from, to).
		Order("plan_end_date ASC").
		Find(&members).Error
	return members, err
}

// FindExpiredActive lists members still marked Active whose plan ended
// before asOf. These are the rows the expiry sweep flips to Expired.
func (r *MemberRepositoryImpl) FindExpiredActive(asOf time.Time) ([]models.Member, error) {
	var members []models.Member
	err := r.db.
		Where("membership_status = ?", models.MembershipStatusActive).
		Where("plan_end_date IS NOT NULL AND plan_end_date < ?", asOf).
		Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) CountByPlan(planID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Member{}).
		Where("current_plan_id = ?", planID).
		Count(&count).Error
	return count, err
}

func (r *MemberRepositoryImpl) CountActiveByPlan(planID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Member{}).
		Where("current_plan_id = ? AND membership_status = ?", planID, models.MembershipStatusActive).
		Count(&count).Error
	return count, err
}

// ClearTrainer drops the member-side reference for everyone assigned to
// the given trainer. Used when a trainer is deleted; runs inside the
// caller's transaction alongside the join-row cleanup.
func (r *MemberRepositoryImpl) ClearTrainer(trainerID string) error {
	return r.db.Model(&models.Member{}).
		Where("assigned_trainer_id = ?", trainerID).
		Updates(map[string]interface{}{
			"assigned_trainer_id": nil,
			"updated_at":          time.Now(),
		}).Error
}
