package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/services"
)

// PaymentHandler exposes the ledger read side plus the one allowed
// mutation (status changes). Payments are created via plan assignment.
type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.GET("", h.List)
		payments.GET("/revenue", middleware.RequireRoles(models.UserRoleAdmin), h.RevenueSummary)
		payments.GET("/member/:memberId", h.MemberHistory)
		payments.GET("/:id", h.Get)
		payments.PATCH("/:id/status", middleware.RequireRoles(models.UserRoleAdmin), h.UpdateStatus)
	}
}

func (h *PaymentHandler) List(c *gin.Context) {
	var q dto.ListPaymentsQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.paymentService.List(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) MemberHistory(c *gin.Context) {
	var q dto.PaginationQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.paymentService.MemberHistory(c.Param("memberId"), &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) RevenueSummary(c *gin.Context) {
	summary, err := h.paymentService.RevenueSummary(c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
