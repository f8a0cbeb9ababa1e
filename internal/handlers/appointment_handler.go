package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASE CONTRACTS
// ======================================================

type createAppointmentUC interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

type cancelAppointmentUC interface {
	Execute(ctx context.Context, branchID, appointmentID uint, userID *uint) (*models.Appointment, error)
}

type listAppointmentsByDateUC interface {
	Execute(ctx context.Context, branchID uint, barberID *uint, date string) ([]dto.AppointmentListDTO, error)
}

type listAppointmentsByMonthUC interface {
	Execute(ctx context.Context, branchID uint, barberID *uint, year, month int) ([]dto.AppointmentListDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      createAppointmentUC
	cancel      cancelAppointmentUC
	listByDate  listAppointmentsByDateUC
	listByMonth listAppointmentsByMonthUC
}

func NewAppointmentHandler(
	create createAppointmentUC,
	cancel cancelAppointmentUC,
	listByDate listAppointmentsByDateUC,
	listByMonth listAppointmentsByMonthUC,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		cancel:      cancel,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Start       string `json:"start" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	branchID, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BranchID:    branchID,
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		UserID:      middleware.UserID(c),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Start:       req.Start,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	branchID, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}
	appointmentID, ok := uintParam(c, "appointmentId", "appointment_not_found")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), branchID, appointmentID, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	branchID, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}
	barberID, ok := optionalUintQuery(c, "barber_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}

	rows, err := h.listByDate.Execute(c.Request.Context(), branchID, barberID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	branchID, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}
	barberID, ok := optionalUintQuery(c, "barber_id")
	if !ok {
		return
	}

	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return
	}

	rows, err := h.listByMonth.Execute(c.Request.Context(), branchID, barberID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}
