package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk_backend/internal/dto"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/services"
)

type AttendanceHandler struct {
	*BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(base *BaseHandler, attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       base,
		attendanceService: attendanceService,
	}
}

func (h *AttendanceHandler) RegisterRoutes(r *gin.RouterGroup) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/check-in", h.CheckIn)
		attendance.POST("/check-out", h.CheckOut)
		attendance.POST("/biometric-sync", h.BiometricSync)
		attendance.GET("/today", h.Today)
		attendance.GET("", h.Range)
		attendance.GET("/member/:memberId", h.MemberHistory)
	}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.attendanceService.CheckIn(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.CheckOutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.attendanceService.CheckOut(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) BiometricSync(c *gin.Context) {
	var req dto.BiometricSyncRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.attendanceService.BiometricSync(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttendanceHandler) Today(c *gin.Context) {
	var q dto.PaginationQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.attendanceService.Today(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AttendanceHandler) Range(c *gin.Context) {
	var q dto.AttendanceRangeQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.attendanceService.Range(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AttendanceHandler) MemberHistory(c *gin.Context) {
	var q dto.PaginationQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	resp, err := h.attendanceService.MemberHistory(c.Param("memberId"), &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
