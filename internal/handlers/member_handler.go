package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/services"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
}

func NewMemberHandler(base *BaseHandler, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
	}
}

func (h *MemberHandler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	members.Use(middleware.AuthMiddleware())
	{
		members.POST("", h.Create)
		members.GET("", h.List)
		members.GET("/expiring", h.Expiring)
		members.GET("/:id", h.Get)
		members.PUT("/:id", h.Update)
		members.POST("/:id/assign-plan", h.AssignPlan)
		members.POST("/:id/renew", h.RenewPlan)
		members.PATCH("/:id/status", h.SetStatus)

		// Destructive or bulk state changes are admin-only.
		members.DELETE("/:id", middleware.RequireRoles(models.UserRoleAdmin), h.Delete)
		members.POST("/process-expired", middleware.RequireRoles(models.UserRoleAdmin), h.ProcessExpired)
	}
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *MemberHandler) List(c *gin.Context) {
	var q dto.ListMembersQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.memberService.List(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) Get(c *gin.Context) {
	detail, err := h.memberService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

func (h *MemberHandler) AssignPlan(c *gin.Context) {
	var req dto.AssignPlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.memberService.AssignPlan(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) RenewPlan(c *gin.Context) {
	var req dto.AssignPlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.memberService.RenewPlan(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) SetStatus(c *gin.Context) {
	var req dto.SetMemberStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.SetStatus(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Expiring(c *gin.Context) {
	var q dto.ExpiringMembersQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	members, err := h.memberService.Expiring(q.Days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) ProcessExpired(c *gin.Context) {
	resp, err := h.memberService.ProcessExpired()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
