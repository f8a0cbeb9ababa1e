package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
)

func newMall(repo *fakeRepo) *MallDateAvailability {
	uc := NewMallDateAvailability(repo, zap.NewNop(), 90)
	uc.now = func() time.Time { return time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC) }
	return uc
}

func TestMallDateAvailability_OnlyFreeSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "11:00")
	repo.setBarberHours(barberB, "10:00", "11:00")

	day := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	repo.appointments = []domain.Appointment{
		{StaffID: barberB, Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)},
	}

	out, err := newMall(repo).Execute(context.Background(), MallDateAvailabilityInput{
		StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-07",
	})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, barberA, out[0].BarberID)
	assert.Equal(t, "2025-01-07 10:00", out[0].Start)
	assert.Equal(t, "2025-01-07 10:30", out[0].End)
	assert.Equal(t, "10:00", out[0].AppointmentTime)
	assert.Equal(t, 30, out[0].DurationMinutes)
	assert.Equal(t, serviceID, out[0].ServiceID)
	assert.Nil(t, out[0].AppointmentID)

	assert.Equal(t, barberB, out[2].BarberID)
	assert.Equal(t, "10:30", out[2].AppointmentTime)
}

func TestMallDateAvailability_TimeFilter(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "12:00")

	out, err := newMall(repo).Execute(context.Background(), MallDateAvailabilityInput{
		StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-07", AppointmentTime: "11:00",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-01-07 11:00", out[0].Start)
}

func TestMallDateAvailability_ClosedDayIsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "12:00")

	// 2025-01-11 is a Saturday
	out, err := newMall(repo).Execute(context.Background(), MallDateAvailabilityInput{
		StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-11",
	})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMallDateAvailability_Errors(t *testing.T) {
	repo := newFakeRepo()
	repo.services[101] = repo.services[serviceID]
	inactive := repo.services[101]
	inactive.ID, inactive.Active, inactive.ExternalCode = 101, false, ptr("SRV-OFF")
	repo.services[101] = inactive

	bound := repo.services[serviceID]
	bound.ID, bound.BranchID, bound.ExternalCode = 102, ptr(uint(7)), ptr("SRV-7")
	repo.services[102] = bound

	tests := []struct {
		name string
		in   MallDateAvailabilityInput
		code string
	}{
		{"unknown code", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "NOPE", AppointmentDate: "2025-01-07"}, "service_not_found"},
		{"inactive service", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-OFF", AppointmentDate: "2025-01-07"}, "service_inactive"},
		{"service of other store", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-7", AppointmentDate: "2025-01-07"}, "service_not_in_branch"},
		{"unknown store", MallDateAvailabilityInput{StoreID: 5, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-07"}, "branch_not_found"},
		{"datetime instead of date", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-07 10:00"}, "invalid_date"},
		{"year out of range", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2201-01-07"}, "invalid_date"},
		{"yesterday", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-05"}, "date_in_past"},
		{"past 90 days", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-04-07"}, "date_too_far"},
		{"bad time", MallDateAvailabilityInput{StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: "2025-01-07", AppointmentTime: "25:00"}, "invalid_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newMall(repo).Execute(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.code), err.Error())
		})
	}
}

func TestMallDateAvailability_TodayAndLastDayAllowed(t *testing.T) {
	repo := newFakeRepo()

	for _, d := range []string{"2025-01-06", "2025-04-06"} {
		_, err := newMall(repo).Execute(context.Background(), MallDateAvailabilityInput{
			StoreID: branchID, ServiceExternalID: "SRV-1", AppointmentDate: d,
		})
		assert.NoError(t, err, d)
	}
}
