package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	ucAvailability "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/availability"
)

type stubCheck struct {
	got ucAvailability.CheckAvailabilityInput
	res *dto.AvailabilityDTO
	err error
}

func (s *stubCheck) Execute(_ context.Context, in ucAvailability.CheckAvailabilityInput) (*dto.AvailabilityDTO, error) {
	s.got = in
	return s.res, s.err
}

type stubBarber struct {
	got ucAvailability.BarberAvailabilityInput
	res *dto.AvailabilityDTO
	err error
}

func (s *stubBarber) Execute(_ context.Context, in ucAvailability.BarberAvailabilityInput) (*dto.AvailabilityDTO, error) {
	s.got = in
	return s.res, s.err
}

type stubMall struct {
	got ucAvailability.MallDateAvailabilityInput
	res []dto.MallSlotDTO
	err error
}

func (s *stubMall) Execute(_ context.Context, in ucAvailability.MallDateAvailabilityInput) ([]dto.MallSlotDTO, error) {
	s.got = in
	return s.res, s.err
}

func availabilityRouter(h *AvailabilityHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/availability/check", h.Check)
	r.GET("/api/availability/barbers/:id", h.Barber)
	r.POST("/api/mall/availability", h.Mall)
	return r
}

func TestAvailabilityHandler_Check(t *testing.T) {
	check := &stubCheck{res: &dto.AvailabilityDTO{
		Data:  []dto.SlotDTO{{Start: "2025-01-07 10:00", End: "2025-01-07 10:30", BarberID: 10, Available: true}},
		Total: 1,
	}}
	r := availabilityRouter(NewAvailabilityHandler(check, &stubBarber{}, &stubMall{}))

	w := do(t, r, http.MethodPost, "/api/availability/check", gin.H{
		"service_id": 100, "branch_id": 1, "barber_id": 10,
		"date_start": "2025-01-07", "date_end": "2025-01-07",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, uint(100), check.got.ServiceID)
	assert.Equal(t, uint(1), check.got.BranchID)
	require.NotNil(t, check.got.BarberID)
	assert.Equal(t, uint(10), *check.got.BarberID)

	var res dto.AvailabilityDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
}

func TestAvailabilityHandler_CheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   gin.H
		err    error
		status int
		code   string
	}{
		{"missing fields", gin.H{"service_id": 1}, nil, http.StatusBadRequest, "invalid_request"},
		{"unknown service", gin.H{"service_id": 1, "branch_id": 1, "date_start": "a", "date_end": "b"}, httperr.ErrBusiness("service_not_found"), http.StatusNotFound, "service_not_found"},
		{"bad range", gin.H{"service_id": 1, "branch_id": 1, "date_start": "a", "date_end": "b"}, httperr.ErrBusiness("invalid_range"), http.StatusBadRequest, "invalid_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := availabilityRouter(NewAvailabilityHandler(&stubCheck{err: tt.err}, &stubBarber{}, &stubMall{}))

			w := do(t, r, http.MethodPost, "/api/availability/check", tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestAvailabilityHandler_Barber(t *testing.T) {
	barber := &stubBarber{res: &dto.AvailabilityDTO{Data: []dto.SlotDTO{}}}
	r := availabilityRouter(NewAvailabilityHandler(&stubCheck{}, barber, &stubMall{}))

	w := do(t, r, http.MethodGet, "/api/availability/barbers/10?date_start=2025-01-07&date_end=2025-01-08&step=15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), barber.got.BarberID)
	assert.Equal(t, 15, barber.got.StepMinutes)

	w = do(t, r, http.MethodGet, "/api/availability/barbers/10?date_start=2025-01-07&date_end=2025-01-08&step=-1", nil)
	assert.Equal(t, "invalid_step", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/availability/barbers/abc?date_start=2025-01-07&date_end=2025-01-08", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/availability/barbers/10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityHandler_Mall(t *testing.T) {
	mall := &stubMall{res: []dto.MallSlotDTO{{
		ServiceID: 100, Start: "2025-01-07 10:00", End: "2025-01-07 10:30",
		DurationMinutes: 30, AppointmentTime: "10:00", BarberID: 10,
	}}}
	r := availabilityRouter(NewAvailabilityHandler(&stubCheck{}, &stubBarber{}, mall))

	w := do(t, r, http.MethodPost, "/api/mall/availability", gin.H{
		"store_id": 1, "service_external_id": "SRV-1", "appointment_date": "2025-01-07",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "SRV-1", mall.got.ServiceExternalID)
	assert.Equal(t, uint(1), mall.got.StoreID)
	assert.JSONEq(t, `{"data":[{
		"servicio_id":100,"fecha_inicio":"2025-01-07 10:00","fecha_fin":"2025-01-07 10:30",
		"duracion_minutos":30,"appointment_time":"10:00","id_cita":null,"id_bar":10}]}`, w.Body.String())

	mall.err = httperr.ErrBusiness("date_in_past")
	w = do(t, r, http.MethodPost, "/api/mall/availability", gin.H{
		"store_id": 1, "service_external_id": "SRV-1", "appointment_date": "2020-01-07",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date_in_past", errorCode(t, w))
}
