package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	ucAvailability "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/availability"
)

// ======================================================
// USE CASE CONTRACTS
// ======================================================

type checkAvailabilityUC interface {
	Execute(ctx context.Context, in ucAvailability.CheckAvailabilityInput) (*dto.AvailabilityDTO, error)
}

type barberAvailabilityUC interface {
	Execute(ctx context.Context, in ucAvailability.BarberAvailabilityInput) (*dto.AvailabilityDTO, error)
}

type mallAvailabilityUC interface {
	Execute(ctx context.Context, in ucAvailability.MallDateAvailabilityInput) ([]dto.MallSlotDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	check  checkAvailabilityUC
	barber barberAvailabilityUC
	mall   mallAvailabilityUC
}

func NewAvailabilityHandler(
	check checkAvailabilityUC,
	barber barberAvailabilityUC,
	mall mallAvailabilityUC,
) *AvailabilityHandler {
	return &AvailabilityHandler{check: check, barber: barber, mall: mall}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckAvailabilityRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	BranchID  uint   `json:"branch_id" binding:"required"`
	BarberID  *uint  `json:"barber_id"`
	DateStart string `json:"date_start" binding:"required"`
	DateEnd   string `json:"date_end" binding:"required"`
}

// MallAvailabilityRequest keeps the field names the mall sends.
type MallAvailabilityRequest struct {
	StoreID           uint   `json:"store_id" binding:"required"`
	ServiceExternalID string `json:"service_external_id" binding:"required"`
	AppointmentDate   string `json:"appointment_date" binding:"required"`
	AppointmentTime   string `json:"appointment_time"`
}

// ======================================================
// CHECK
// ======================================================

func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.check.Execute(c.Request.Context(), ucAvailability.CheckAvailabilityInput{
		ServiceID: req.ServiceID,
		BranchID:  req.BranchID,
		BarberID:  req.BarberID,
		DateStart: req.DateStart,
		DateEnd:   req.DateEnd,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// BARBER
// ======================================================

func (h *AvailabilityHandler) Barber(c *gin.Context) {
	barberID, ok := uintParam(c, "id", "barber_not_found")
	if !ok {
		return
	}

	in := ucAvailability.BarberAvailabilityInput{
		BarberID:  barberID,
		DateStart: c.Query("date_start"),
		DateEnd:   c.Query("date_end"),
	}
	if in.DateStart == "" || in.DateEnd == "" {
		httperr.BadRequest(c, "invalid_request", "date_start y date_end son obligatorios.")
		return
	}

	if s := c.Query("step"); s != "" {
		step, err := strconv.Atoi(s)
		if err != nil || step <= 0 {
			httperr.BadRequest(c, "invalid_step", httperr.Message("invalid_step"))
			return
		}
		in.StepMinutes = step
	}

	res, err := h.barber.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// MALL
// ======================================================

func (h *AvailabilityHandler) Mall(c *gin.Context) {
	var req MallAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slots, err := h.mall.Execute(c.Request.Context(), ucAvailability.MallDateAvailabilityInput{
		StoreID:           req.StoreID,
		ServiceExternalID: req.ServiceExternalID,
		AppointmentDate:   req.AppointmentDate,
		AppointmentTime:   req.AppointmentTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": slots})
}
