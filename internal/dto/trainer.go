package dto

import "gymdesk_backend/internal/models"

type CreateTrainerRequest struct {
	FullName        string   `json:"fullName" validate:"required,min=2,max=100"`
	Gender          string   `json:"gender" validate:"omitempty,is-gender"`
	Phone           string   `json:"phone" validate:"required,min=5,max=20"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Specializations []string `json:"specializations"`
	Experience      int      `json:"experience" validate:"omitempty,min=0"`
	JoiningDate     string   `json:"joiningDate" validate:"omitempty,datetime=2006-01-02"`
	Salary          float64  `json:"salary" validate:"omitempty,min=0"`
}

type UpdateTrainerRequest struct {
	FullName        *string  `json:"fullName" validate:"omitempty,min=2,max=100"`
	Gender          *string  `json:"gender" validate:"omitempty,is-gender"`
	Phone           *string  `json:"phone" validate:"omitempty,min=5,max=20"`
	Email           *string  `json:"email" validate:"omitempty,email"`
	Specializations []string `json:"specializations"`
	Experience      *int     `json:"experience" validate:"omitempty,min=0"`
	Salary          *float64 `json:"salary" validate:"omitempty,min=0"`
}

type SetTrainerActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type AssignMemberRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

type ListTrainersQuery struct {
	PaginationQuery
	Search     string `form:"search"`
	ActiveOnly bool   `form:"activeOnly"`
}

type TrainerListResponse struct {
	Trainers []models.Trainer `json:"trainers"`
	Meta     ListMeta         `json:"meta"`
}
