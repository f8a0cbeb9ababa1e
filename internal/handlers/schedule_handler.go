package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	ucSchedule "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/schedule"
)

// ======================================================
// USE CASE CONTRACTS
// ======================================================

type weeklyHoursUC interface {
	List(ctx context.Context, kind availability.EntityKind, entityID uint) ([]ucSchedule.WeeklyRow, error)
	Create(ctx context.Context, kind availability.EntityKind, entityID uint, in ucSchedule.WeeklyHoursInput, userID *uint) (*ucSchedule.WeeklyRow, error)
	Update(ctx context.Context, kind availability.EntityKind, id uint, patch ucSchedule.WeeklyHoursPatch, userID *uint) (*ucSchedule.WeeklyRow, error)
	Delete(ctx context.Context, kind availability.EntityKind, id uint, userID *uint) error
}

type exceptionsUC interface {
	List(ctx context.Context, q ucSchedule.ExceptionQuery) ([]models.ScheduleException, error)
	Get(ctx context.Context, id uint) (*models.ScheduleException, error)
	Create(ctx context.Context, in ucSchedule.ExceptionInput, userID *uint) (*models.ScheduleException, error)
	Update(ctx context.Context, id uint, patch ucSchedule.ExceptionPatch, userID *uint) (*models.ScheduleException, error)
	Delete(ctx context.Context, id uint, userID *uint) error
}

type breaksUC interface {
	List(ctx context.Context, barberID uint, weekday *int) ([]models.BarberBreak, error)
	Create(ctx context.Context, barberID uint, in ucSchedule.BreakInput, userID *uint) (*models.BarberBreak, error)
	Update(ctx context.Context, id uint, patch ucSchedule.BreakPatch, userID *uint) (*models.BarberBreak, error)
	Delete(ctx context.Context, id uint, userID *uint) error
}

type resolveDayUC interface {
	Execute(ctx context.Context, kind availability.EntityKind, id uint, date string) (*dto.ResolvedDayDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	weekly     weeklyHoursUC
	exceptions exceptionsUC
	breaks     breaksUC
	resolve    resolveDayUC
}

func NewScheduleHandler(
	weekly weeklyHoursUC,
	exceptions exceptionsUC,
	breaks breaksUC,
	resolve resolveDayUC,
) *ScheduleHandler {
	return &ScheduleHandler{
		weekly:     weekly,
		exceptions: exceptions,
		breaks:     breaks,
		resolve:    resolve,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyHoursRequest struct {
	Weekday int    `json:"weekday"`
	OpenAt  string `json:"open_at"`
	CloseAt string `json:"close_at"`
	Closed  bool   `json:"closed"`
	Active  *bool  `json:"active"`
}

type UpdateWeeklyHoursRequest struct {
	Weekday *int    `json:"weekday,omitempty"`
	OpenAt  *string `json:"open_at,omitempty"`
	CloseAt *string `json:"close_at,omitempty"`
	Closed  *bool   `json:"closed,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

type ExceptionRequest struct {
	Kind      string `json:"kind" binding:"required"`
	BranchID  *uint  `json:"branch_id"`
	BarberID  *uint  `json:"barber_id"`
	DateStart string `json:"date_start" binding:"required"`
	DateEnd   string `json:"date_end"`
	OpenAt    string `json:"open_at"`
	CloseAt   string `json:"close_at"`
	Reason    string `json:"reason"`
	Active    *bool  `json:"active"`
}

type UpdateExceptionRequest struct {
	DateStart *string `json:"date_start,omitempty"`
	DateEnd   *string `json:"date_end,omitempty"`
	OpenAt    *string `json:"open_at,omitempty"`
	CloseAt   *string `json:"close_at,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type BreakRequest struct {
	Weekday int    `json:"weekday"`
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Reason  string `json:"reason"`
	Active  *bool  `json:"active"`
}

type UpdateBreakRequest struct {
	Weekday *int    `json:"weekday,omitempty"`
	StartAt *string `json:"start_at,omitempty"`
	EndAt   *string `json:"end_at,omitempty"`
	Reason  *string `json:"reason,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

func ownerNotFound(kind availability.EntityKind) string {
	if kind == availability.EntityBranch {
		return "branch_not_found"
	}
	return "barber_not_found"
}

// ======================================================
// WEEKLY HOURS
// ======================================================

func (h *ScheduleHandler) ListHours(kind availability.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id", ownerNotFound(kind))
		if !ok {
			return
		}

		rows, err := h.weekly.List(c.Request.Context(), kind, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, rows)
	}
}

func (h *ScheduleHandler) CreateHours(kind availability.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id", ownerNotFound(kind))
		if !ok {
			return
		}

		var req WeeklyHoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}

		row, err := h.weekly.Create(c.Request.Context(), kind, id, ucSchedule.WeeklyHoursInput{
			Weekday: req.Weekday,
			OpenAt:  req.OpenAt,
			CloseAt: req.CloseAt,
			Closed:  req.Closed,
			Active:  req.Active,
		}, middleware.UserID(c))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

func (h *ScheduleHandler) UpdateHours(kind availability.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id", "weekly_hours_not_found")
		if !ok {
			return
		}

		var req UpdateWeeklyHoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}

		row, err := h.weekly.Update(c.Request.Context(), kind, id, ucSchedule.WeeklyHoursPatch{
			Weekday: req.Weekday,
			OpenAt:  req.OpenAt,
			CloseAt: req.CloseAt,
			Closed:  req.Closed,
			Active:  req.Active,
		}, middleware.UserID(c))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func (h *ScheduleHandler) DeleteHours(kind availability.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id", "weekly_hours_not_found")
		if !ok {
			return
		}

		if err := h.weekly.Delete(c.Request.Context(), kind, id, middleware.UserID(c)); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ResolvedDay answers GET .../:id/day?date=YYYY-MM-DD.
func (h *ScheduleHandler) ResolvedDay(kind availability.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id", ownerNotFound(kind))
		if !ok {
			return
		}

		date := c.Query("date")
		if date == "" {
			httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
			return
		}

		res, err := h.resolve.Execute(c.Request.Context(), kind, id, date)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}
	barberID, ok := optionalUintQuery(c, "barber_id")
	if !ok {
		return
	}

	rows, err := h.exceptions.List(c.Request.Context(), ucSchedule.ExceptionQuery{
		BranchID: branchID,
		BarberID: barberID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) GetException(c *gin.Context) {
	id, ok := uintParam(c, "id", "exception_not_found")
	if !ok {
		return
	}

	row, err := h.exceptions.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, row)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	row, err := h.exceptions.Create(c.Request.Context(), ucSchedule.ExceptionInput{
		Kind:      req.Kind,
		BranchID:  req.BranchID,
		BarberID:  req.BarberID,
		DateStart: req.DateStart,
		DateEnd:   req.DateEnd,
		OpenAt:    req.OpenAt,
		CloseAt:   req.CloseAt,
		Reason:    req.Reason,
		Active:    req.Active,
	}, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ScheduleHandler) UpdateException(c *gin.Context) {
	id, ok := uintParam(c, "id", "exception_not_found")
	if !ok {
		return
	}

	var req UpdateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	row, err := h.exceptions.Update(c.Request.Context(), id, ucSchedule.ExceptionPatch{
		DateStart: req.DateStart,
		DateEnd:   req.DateEnd,
		OpenAt:    req.OpenAt,
		CloseAt:   req.CloseAt,
		Reason:    req.Reason,
		Active:    req.Active,
	}, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	id, ok := uintParam(c, "id", "exception_not_found")
	if !ok {
		return
	}

	if err := h.exceptions.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// BREAKS
// ======================================================

func (h *ScheduleHandler) ListBreaks(c *gin.Context) {
	barberID, ok := uintParam(c, "id", "barber_not_found")
	if !ok {
		return
	}

	var weekday *int
	if s := c.Query("weekday"); s != "" {
		wd, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_weekday", httperr.Message("invalid_weekday"))
			return
		}
		weekday = &wd
	}

	rows, err := h.breaks.List(c.Request.Context(), barberID, weekday)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) CreateBreak(c *gin.Context) {
	barberID, ok := uintParam(c, "id", "barber_not_found")
	if !ok {
		return
	}

	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	row, err := h.breaks.Create(c.Request.Context(), barberID, ucSchedule.BreakInput{
		Weekday: req.Weekday,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
		Active:  req.Active,
	}, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ScheduleHandler) UpdateBreak(c *gin.Context) {
	id, ok := uintParam(c, "id", "break_not_found")
	if !ok {
		return
	}

	var req UpdateBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	row, err := h.breaks.Update(c.Request.Context(), id, ucSchedule.BreakPatch{
		Weekday: req.Weekday,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
		Active:  req.Active,
	}, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ScheduleHandler) DeleteBreak(c *gin.Context) {
	id, ok := uintParam(c, "id", "break_not_found")
	if !ok {
		return
	}

	if err := h.breaks.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
