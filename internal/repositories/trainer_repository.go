package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymdesk_backend/internal/models"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrAlreadyLinked   = errors.New("member already linked to this trainer")
	ErrLinkNotFound    = errors.New("member is not linked to this trainer")
)

type TrainerFilter struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type TrainerRepository interface {
	Create(trainer *models.Trainer) error
	FindByID(id string) (*models.Trainer, error)
	FindWithFilter(f TrainerFilter) ([]models.Trainer, int64, error)
	Save(trainer *models.Trainer) error
	Delete(id string) error
	SetActive(id string, active bool) error

	LinkMember(trainerID, memberID string) error
	UnlinkMember(trainerID, memberID string) error
	UnlinkAllMembers(trainerID string) error
	FindAssignedMembers(trainerID string) ([]models.Member, error)
	CountAssigned(trainerID string) (int64, error)
}

type TrainerRepositoryImpl struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &TrainerRepositoryImpl{db: db}
}

func (r *TrainerRepositoryImpl) Create(trainer *models.Trainer) error {
	return r.db.Create(trainer).Error
}

func (r *TrainerRepositoryImpl) FindByID(id string) (*models.Trainer, error) {
	var trainer models.Trainer
	err := r.db.Preload("AssignedMembers").First(&trainer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

func (r *TrainerRepositoryImpl) FindWithFilter(f TrainerFilter) ([]models.Trainer, int64, error) {
	query := r.db.Model(&models.Trainer{})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("full_name LIKE ? OR trainer_id LIKE ?", pattern, pattern)
	}
	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trainers []models.Trainer
	err := query.Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&trainers).Error
	if err != nil {
		return nil, 0, err
	}
	return trainers, total, nil
}

// Save omits associations so the AssignedMembers relation is never
// replaced as a side effect; links only move through Link/Unlink.
func (r *TrainerRepositoryImpl) Save(trainer *models.Trainer) error {
	result := r.db.Omit(clause.Associations).Save(trainer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

func (r *TrainerRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Trainer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

func (r *TrainerRepositoryImpl) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Trainer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

// LinkMember writes the trainer-side join row. The member-side reference
// is written by the service in the same transaction.
func (r *TrainerRepositoryImpl) LinkMember(trainerID, memberID string) error {
	link := models.TrainerMember{TrainerID: trainerID, MemberID: memberID}
	if err := r.db.Create(&link).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

func (r *TrainerRepositoryImpl) UnlinkMember(trainerID, memberID string) error {
	result := r.db.Delete(&models.TrainerMember{}, "trainer_id = ? AND member_id = ?", trainerID, memberID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *TrainerRepositoryImpl) UnlinkAllMembers(trainerID string) error {
	return r.db.Delete(&models.TrainerMember{}, "trainer_id = ?", trainerID).Error
}

func (r *TrainerRepositoryImpl) FindAssignedMembers(trainerID string) ([]models.Member, error) {
	var members []models.Member
	err := r.db.
		Joins("JOIN trainer_members ON trainer_members.member_id = members.id").
		Where("trainer_members.trainer_id = ?", trainerID).
		Order("members.full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *TrainerRepositoryImpl) CountAssigned(trainerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TrainerMember{}).
		Where("trainer_id = ?", trainerID).
		Count(&count).Error
	return count, err
}
