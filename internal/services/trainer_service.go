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
	"gymdesk_backend/pkg/apperrors"
)

type TrainerService interface {
	Create(req *dto.CreateTrainerRequest) (*models.Trainer, error)
	List(q *dto.ListTrainersQuery) (*dto.TrainerListResponse, error)
	Get(id string) (*models.Trainer, error)
	Update(id string, req *dto.UpdateTrainerRequest) (*models.Trainer, error)
	Delete(id string) error
	SetActive(id string, active bool) (*models.Trainer, error)
	AssignMember(trainerID, memberID string) error
	UnassignMember(trainerID, memberID string) error
	AssignedMembers(trainerID string) ([]models.Member, error)
}

type trainerService struct {
	db          *gorm.DB
	trainerRepo repositories.TrainerRepository
	memberRepo  repositories.MemberRepository
	sequences   SequenceService
	loc         *time.Location
}

func NewTrainerService(
	db *gorm.DB,
	trainerRepo repositories.TrainerRepository,
	memberRepo repositories.MemberRepository,
	sequences SequenceService,
	loc *time.Location,
) TrainerService {
	return &trainerService{
		db:          db,
		trainerRepo: trainerRepo,
		memberRepo:  memberRepo,
		sequences:   sequences,
		loc:         loc,
	}
}

func (s *trainerService) Create(req *dto.CreateTrainerRequest) (*models.Trainer, error) {
	joiningDate := time.Now()
	if parsed := parseDay(req.JoiningDate, s.loc); parsed != nil {
		joiningDate = *parsed
	}

	trainer := &models.Trainer{
		FullName:        req.FullName,
		Gender:          req.Gender,
		Phone:           req.Phone,
		Email:           req.Email,
		Specializations: toJSON(req.Specializations),
		Experience:      req.Experience,
		JoiningDate:     joiningDate,
		Salary:          req.Salary,
		IsActive:        true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trainerID, err := s.sequences.NextTrainerID(tx)
		if err != nil {
			return err
		}
		trainer.TrainerID = trainerID
		return repositories.NewTrainerRepository(tx).Create(trainer)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Trainer registered", "trainer_id", trainer.TrainerID, "name", trainer.FullName)
	return trainer, nil
}

func (s *trainerService) List(q *dto.ListTrainersQuery) (*dto.TrainerListResponse, error) {
	q.Normalize()

	trainers, total, err := s.trainerRepo.FindWithFilter(repositories.TrainerFilter{
		Search:     q.Search,
		ActiveOnly: q.ActiveOnly,
		Limit:      q.Limit,
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TrainerListResponse{
		Trainers: trainers,
		Meta:     dto.ListMeta{Total: total, Page: q.Page, Limit: q.Limit},
	}, nil
}

func (s *trainerService) Get(id string) (*models.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTrainerNotFound) {
			return nil, apperrors.NewNotFoundError("trainers", "Trainer")
		}
		return nil, apperrors.InternalError(err)
	}
	return trainer, nil
}

func (s *trainerService) Update(id string, req *dto.UpdateTrainerRequest) (*models.Trainer, error) {
	trainer, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		trainer.FullName = *req.FullName
	}
	if req.Gender != nil {
		trainer.Gender = *req.Gender
	}
	if req.Phone != nil {
		trainer.Phone = *req.Phone
	}
	if req.Email != nil {
		trainer.Email = *req.Email
	}
	if req.Specializations != nil {
		trainer.Specializations = toJSON(req.Specializations)
	}
	if req.Experience != nil {
		trainer.Experience = *req.Experience
	}
	if req.Salary != nil {
		trainer.Salary = *req.Salary
	}

	if err := s.trainerRepo.Save(trainer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return trainer, nil
}

// Delete removes a trainer. Both sides of every member link are cleaned
// up in the same transaction as the delete, so no member is ever left
// pointing at a trainer who is gone.
func (s *trainerService) Delete(id string) error {
	trainer, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewMemberRepository(tx).ClearTrainer(id); err != nil {
			return err
		}
		if err := repositories.NewTrainerRepository(tx).UnlinkAllMembers(id); err != nil {
			return err
		}
		return repositories.NewTrainerRepository(tx).Delete(id)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("Trainer deleted", "trainer_id", trainer.TrainerID)
	return nil
}

func (s *trainerService) SetActive(id string, active bool) (*models.Trainer, error) {
	trainer, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.trainerRepo.SetActive(id, active); err != nil {
		return nil, apperrors.InternalError(err)
	}
	trainer.IsActive = active
	return trainer, nil
}

// AssignMember writes both halves of the link in one transaction: the
// member's trainer reference and the trainer-side join row. A member has
// at most one trainer; assigning over an existing link to a different
// trainer is rejected rather than silently re-pointed.
func (s *trainerService) AssignMember(trainerID, memberID string) error {
	trainer, err := s.Get(trainerID)
	if err != nil {
		return err
	}
	if !trainer.IsActive {
		return apperrors.ErrInvalidState("trainers",
			fmt.Sprintf("Trainer %s is inactive and cannot take members", trainer.TrainerID))
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.NewNotFoundError("trainers", "Member")
		}
		return apperrors.InternalError(err)
	}

	if member.AssignedTrainerID != nil {
		if *member.AssignedTrainerID == trainerID {
			return apperrors.ErrConflict(nil, "trainers",
				fmt.Sprintf("Member %s is already assigned to this trainer", member.MemberID))
		}
		return apperrors.ErrConflict(nil, "trainers",
			fmt.Sprintf("Member %s already has a trainer; unassign first", member.MemberID))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		member.AssignedTrainerID = &trainer.ID
		if err := repositories.NewMemberRepository(tx).Save(member); err != nil {
			return err
		}
		return repositories.NewTrainerRepository(tx).LinkMember(trainerID, memberID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyLinked) {
			return apperrors.ErrConflict(err, "trainers",
				fmt.Sprintf("Member %s is already assigned to this trainer", member.MemberID))
		}
		return apperrors.InternalError(err)
	}

	logger.Info("Member assigned to trainer",
		"trainer_id", trainer.TrainerID, "member_id", member.MemberID)
	return nil
}

// UnassignMember removes both halves of the link in one transaction.
func (s *trainerService) UnassignMember(trainerID, memberID string) error {
	trainer, err := s.Get(trainerID)
	if err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.NewNotFoundError("trainers", "Member")
		}
		return apperrors.InternalError(err)
	}

	if member.AssignedTrainerID == nil || *member.AssignedTrainerID != trainerID {
		return apperrors.ErrInvalidState("trainers",
			fmt.Sprintf("Member %s is not assigned to trainer %s", member.MemberID, trainer.TrainerID))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		member.AssignedTrainerID = nil
		if err := repositories.NewMemberRepository(tx).Save(member); err != nil {
			return err
		}
		return repositories.NewTrainerRepository(tx).UnlinkMember(trainerID, memberID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("Member unassigned from trainer",
		"trainer_id", trainer.TrainerID, "member_id", member.MemberID)
	return nil
}

func (s *trainerService) AssignedMembers(trainerID string) ([]models.Member, error) {
	if _, err := s.Get(trainerID); err != nil {
		return nil, err
	}

	members, err := s.trainerRepo.FindAssignedMembers(trainerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return members, nil
}
