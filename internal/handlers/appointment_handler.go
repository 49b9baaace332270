package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/randevu-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/randevu-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateStatus
	list   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateStatus,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProviderID uint   `json:"provider_id"`
	CustomerID uint   `json:"customer_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Geçersiz istek.")
		return
	}

	callerID, role := middleware.Caller(c)

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProviderID: req.ProviderID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Time:       req.Time,
		CallerID:   callerID,
		CallerRole: role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":     "Randevu talebi oluşturuldu! Onay bekleniyor.",
		"appointment": ap,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Geçersiz kullanıcı.")
		return
	}

	callerID, role := middleware.Caller(c)

	rows, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		UserID:     uint(userID),
		Role:       c.Query("role"),
		CallerID:   callerID,
		CallerRole: role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Array(c, rows)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Geçersiz randevu.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Durum zorunludur.")
		return
	}

	callerID, role := middleware.Caller(c)

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		AppointmentID: uint(id),
		Status:        req.Status,
		CallerID:      callerID,
		CallerRole:    role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":     fmt.Sprintf("Randevu %s olarak güncellendi.", ap.Status),
		"appointment": ap,
	})
}
