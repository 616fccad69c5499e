package services

import (
	"fmt"

	"gorm.io/gorm"

	"gymdesk_backend/internal/repositories"
)

// Counter names and display formats for the three business identities.
// Members and trainers get five digits, receipts six; the padding is a
// display minimum, values past it simply widen.
const (
	seqMemberID      = "member_id"
	seqTrainerID     = "trainer_id"
	seqReceiptNumber = "receipt_number"
)

// SequenceService mints the human-readable identifiers. Every method takes
// the caller's *gorm.DB so an allocation inside a transaction rolls back
// with it; passing the root handle allocates immediately.
type SequenceService interface {
	NextMemberID(db *gorm.DB) (string, error)
	NextTrainerID(db *gorm.DB) (string, error)
	NextReceiptNumber(db *gorm.DB) (string, error)
}

type sequenceService struct{}

func NewSequenceService() SequenceService {
	return &sequenceService{}
}

func (s *sequenceService) NextMemberID(db *gorm.DB) (string, error) {
	return s.next(db, seqMemberID, "GYM", 5)
}

func (s *sequenceService) NextTrainerID(db *gorm.DB) (string, error) {
	return s.next(db, seqTrainerID, "TRN", 5)
}

func (s *sequenceService) NextReceiptNumber(db *gorm.DB) (string, error) {
	return s.next(db, seqReceiptNumber, "REC", 6)
}

func (s *sequenceService) next(db *gorm.DB, name, prefix string, width int) (string, error) {
	value, err := repositories.NewSequenceRepository(db).Next(name)
	if err != nil {
		return "", fmt.Errorf("allocating %s: %w", name, err)
	}
	return fmt.Sprintf("%s%0*d", prefix, width, value), nil
}
