package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/services"
)

type TrainerHandler struct {
	*BaseHandler
	trainerService services.TrainerService
}

func NewTrainerHandler(base *BaseHandler, trainerService services.TrainerService) *TrainerHandler {
	return &TrainerHandler{
		BaseHandler:    base,
		trainerService: trainerService,
	}
}

func (h *TrainerHandler) RegisterRoutes(r *gin.RouterGroup) {
	trainers := r.Group("/trainers")
	trainers.Use(middleware.AuthMiddleware())
	{
		trainers.GET("", h.List)
		trainers.GET("/:id", h.Get)
		trainers.GET("/:id/members", h.AssignedMembers)
		trainers.POST("/:id/assign-member", h.AssignMember)
		trainers.POST("/:id/unassign-member", h.UnassignMember)

		admin := trainers.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
			admin.PATCH("/:id/active", h.SetActive)
		}
	}
}

func (h *TrainerHandler) Create(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	trainer, err := h.trainerService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

func (h *TrainerHandler) List(c *gin.Context) {
	var q dto.ListTrainersQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.trainerService.List(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TrainerHandler) Get(c *gin.Context) {
	trainer, err := h.trainerService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) Update(c *gin.Context) {
	var req dto.UpdateTrainerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	trainer, err := h.trainerService.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.trainerService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted"})
}

func (h *TrainerHandler) SetActive(c *gin.Context) {
	var req dto.SetTrainerActiveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	trainer, err := h.trainerService.SetActive(c.Param("id"), req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) AssignMember(c *gin.Context) {
	var req dto.AssignMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.trainerService.AssignMember(c.Param("id"), req.MemberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member assigned"})
}

func (h *TrainerHandler) UnassignMember(c *gin.Context) {
	var req dto.AssignMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.trainerService.UnassignMember(c.Param("id"), req.MemberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member unassigned"})
}

func (h *TrainerHandler) AssignedMembers(c *gin.Context) {
	members, err := h.trainerService.AssignedMembers(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
