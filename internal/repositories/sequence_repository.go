package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymdesk_backend/internal/models"
)

// SequenceRepository hands out monotonically increasing values per named
// counter. Next must be called on a transaction-bound instance when the
// caller needs the allocation to roll back with its surrounding work.
type SequenceRepository interface {
	Next(name string) (int64, error)
	Current(name string) (int64, error)
}

type SequenceRepositoryImpl struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &SequenceRepositoryImpl{db: db}
}

// Next increments the counter atomically via an upsert and reads the
// result back. Both statements run in one transaction (a savepoint when
// the handle is already transactional), so the row lock taken by the
// upsert is still held when the value is read: two concurrent allocators
// can never observe the same value. Different counters don't contend.
func (r *SequenceRepositoryImpl) Next(name string) (int64, error) {
	var value int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		counter := models.SequenceCounter{Name: name, Value: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("sequence_counters.value + 1"),
			}),
		}).Create(&counter).Error
		if err != nil {
			return err
		}

		var out models.SequenceCounter
		if err := tx.First(&out, "name = ?", name).Error; err != nil {
			return err
		}
		value = out.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Current reads the last allocated value without advancing the counter.
// Returns 0 when nothing has been allocated yet.
func (r *SequenceRepositoryImpl) Current(name string) (int64, error) {
	var out models.SequenceCounter
	err := r.db.First(&out, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return out.Value, nil
}
