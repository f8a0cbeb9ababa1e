package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

type catalogRepository interface {
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	ListBranches(ctx context.Context, f repository.CatalogFilter) ([]models.Branch, error)
	SaveBranch(ctx context.Context, branch *models.Branch) error

	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	ListBarbers(ctx context.Context, f repository.CatalogFilter) ([]models.Barber, error)
	SaveBarber(ctx context.Context, barber *models.Barber) error

	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, f repository.CatalogFilter) ([]models.Service, error)
	SaveService(ctx context.Context, service *models.Service) error

	ListClients(ctx context.Context, query string, limit int) ([]models.Client, error)
}

// CatalogHandler manages branches, barbers, services and reads clients.
type CatalogHandler struct {
	repo  catalogRepository
	audit audit.Recorder
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewCatalogHandler(
	repo catalogRepository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{repo: repo, audit: rec, cache: c, log: log.Named("catalog")}
}

// --------- Requests ---------

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

type UpdateBranchRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type CreateBarberRequest struct {
	BranchID *uint  `json:"branch_id"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type UpdateBarberRequest struct {
	BranchID *uint   `json:"branch_id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type CreateServiceRequest struct {
	BranchID     *uint   `json:"branch_id"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DurationMin  int     `json:"duration_min" binding:"required,min=1"`
	Price        float64 `json:"price"`
	ExternalCode string  `json:"external_code"`
}

type UpdateServiceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	DurationMin  *int     `json:"duration_min,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	ExternalCode *string  `json:"external_code,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Helpers ---------

func activeFilter(c *gin.Context) repository.CatalogFilter {
	var f repository.CatalogFilter
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		f.Active = new(bool)
		*f.Active = true
	case "false":
		f.Active = new(bool)
	}
	return f
}

func (h *CatalogHandler) written(c *gin.Context, branchID *uint, action, entity string, id uint) {
	h.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
	})

	if branchID == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request.Context(), *branchID); err != nil {
		h.log.Warn("availability cache invalidation failed", zap.Uint("branch_id", *branchID), zap.Error(err))
	}
}

// invalidateAll is used for writes that reach every branch.
func (h *CatalogHandler) invalidateAll(c *gin.Context) {
	branches, err := h.repo.ListBranches(c.Request.Context(), repository.CatalogFilter{})
	if err != nil {
		h.log.Warn("listing branches for invalidation failed", zap.Error(err))
		return
	}
	for _, b := range branches {
		if err := h.cache.Invalidate(c.Request.Context(), b.ID); err != nil {
			h.log.Warn("availability cache invalidation failed", zap.Uint("branch_id", b.ID), zap.Error(err))
		}
	}
}

func (h *CatalogHandler) requireBranch(c *gin.Context, id *uint) bool {
	if id == nil {
		return true
	}
	if _, err := h.repo.GetBranch(c.Request.Context(), *id); err != nil {
		httperr.Respond(c, notFound(err, "branch_not_found"))
		return false
	}
	return true
}

// ======================================================
// BRANCHES
// ======================================================

func (h *CatalogHandler) ListBranches(c *gin.Context) {
	rows, err := h.repo.ListBranches(c.Request.Context(), activeFilter(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *CatalogHandler) GetBranch(c *gin.Context) {
	id, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}

	branch, err := h.repo.GetBranch(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "branch_not_found"))
		return
	}
	httpresp.OK(c, branch)
}

func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.Default()
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
		return
	}

	branch := models.Branch{
		Name:     req.Name,
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Phone:    req.Phone,
		Address:  req.Address,
		Timezone: tz,
		Active:   true,
	}
	if err := h.repo.SaveBranch(c.Request.Context(), &branch); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.written(c, &branch.ID, "branch_created", "branch", branch.ID)
	httpresp.Created(c, branch)
}

func (h *CatalogHandler) UpdateBranch(c *gin.Context) {
	id, ok := uintParam(c, "id", "branch_not_found")
	if !ok {
		return
	}

	branch, err := h.repo.GetBranch(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "branch_not_found"))
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
			return
		}
		branch.Timezone = *req.Timezone
	}
	if req.Active != nil {
		branch.Active = *req.Active
	}

	if err := h.repo.SaveBranch(c.Request.Context(), branch); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.written(c, &branch.ID, "branch_updated", "branch", branch.ID)
	httpresp.OK(c, branch)
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	f := activeFilter(c)

	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}
	f.BranchID = branchID

	rows, err := h.repo.ListBarbers(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *CatalogHandler) GetBarber(c *gin.Context) {
	id, ok := uintParam(c, "id", "barber_not_found")
	if !ok {
		return
	}

	barber, err := h.repo.GetBarber(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "barber_not_found"))
		return
	}
	httpresp.OK(c, barber)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !h.requireBranch(c, req.BranchID) {
		return
	}

	barber := models.Barber{
		BranchID: req.BranchID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Active:   true,
	}
	if err := h.repo.SaveBarber(c.Request.Context(), &barber); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.written(c, barber.BranchID, "barber_created", "barber", barber.ID)
	httpresp.Created(c, barber)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	id, ok := uintParam(c, "id", "barber_not_found")
	if !ok {
		return
	}

	barber, err := h.repo.GetBarber(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "barber_not_found"))
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !h.requireBranch(c, req.BranchID) {
		return
	}

	previous := barber.BranchID

	if req.BranchID != nil {
		barber.BranchID = req.BranchID
	}
	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Email != nil {
		barber.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.repo.SaveBarber(c.Request.Context(), barber); err != nil {
		httperr.Respond(c, err)
		return
	}

	// a move drops the cached slots of both branches
	if previous != nil && (barber.BranchID == nil || *previous != *barber.BranchID) {
		h.written(c, previous, "barber_moved", "barber", barber.ID)
	}
	h.written(c, barber.BranchID, "barber_updated", "barber", barber.ID)
	httpresp.OK(c, barber)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	f := activeFilter(c)

	branchID, ok := optionalUintQuery(c, "branch_id")
	if !ok {
		return
	}
	f.BranchID = branchID

	rows, err := h.repo.ListServices(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := uintParam(c, "id", "service_not_found")
	if !ok {
		return
	}

	service, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "service_not_found"))
		return
	}
	httpresp.OK(c, service)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !h.requireBranch(c, req.BranchID) {
		return
	}

	service := models.Service{
		BranchID:    req.BranchID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if code := strings.TrimSpace(req.ExternalCode); code != "" {
		service.ExternalCode = &code
	}

	if err := h.repo.SaveService(c.Request.Context(), &service); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.written(c, service.BranchID, "service_created", "service", service.ID)
	httpresp.Created(c, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := uintParam(c, "id", "service_not_found")
	if !ok {
		return
	}

	service, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFound(err, "service_not_found"))
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", httperr.Message("invalid_duration"))
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.ExternalCode != nil {
		service.ExternalCode = nil
		if code := strings.TrimSpace(*req.ExternalCode); code != "" {
			service.ExternalCode = &code
		}
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.repo.SaveService(c.Request.Context(), service); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.written(c, service.BranchID, "service_updated", "service", service.ID)
	if service.BranchID == nil {
		h.invalidateAll(c)
	}
	httpresp.OK(c, service)
}

// ======================================================
// CLIENTS
// ======================================================

func (h *CatalogHandler) ListClients(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := h.repo.ListClients(c.Request.Context(), query, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}
