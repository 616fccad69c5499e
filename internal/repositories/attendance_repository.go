package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gymdesk_backend/internal/models"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateCheckIn   = errors.New("member already checked in for this day")
)

type AttendanceRepository interface {
	// Create inserts a check-in row. The (member_id, date) unique index is
	// the ultimate guard: a concurrent duplicate comes back as
	// ErrDuplicateCheckIn no matter what the caller read beforehand.
	Create(record *models.Attendance) error
	FindByID(id string) (*models.Attendance, error)
	Save(record *models.Attendance) error
	FindByDateRange(from, to time.Time, limit, offset int) ([]models.Attendance, int64, error)
	FindByMember(memberID string, limit, offset int) ([]models.Attendance, int64, error)
}

type AttendanceRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

func (r *AttendanceRepositoryImpl) Create(record *models.Attendance) error {
	if err := r.db.Create(record).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCheckIn
		}
		return err
	}
	return nil
}

func (r *AttendanceRepositoryImpl) FindByID(id string) (*models.Attendance, error) {
	var record models.Attendance
	err := r.db.Preload("Member").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepositoryImpl) Save(record *models.Attendance) error {
	result := r.db.Save(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}

func (r *AttendanceRepositoryImpl) FindByDateRange(from, to time.Time, limit, offset int) ([]models.Attendance, int64, error) {
	query := r.db.Model(&models.Attendance{}).
		Where("date >= ? AND date <= ?", from, to)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Attendance
	err := query.Preload("Member").
		Order("check_in_time DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *AttendanceRepositoryImpl) FindByMember(memberID string, limit, offset int) ([]models.Attendance, int64, error) {
	query := r.db.Model(&models.Attendance{}).Where("member_id = ?", memberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Attendance
	err := query.Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
