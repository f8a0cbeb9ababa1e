package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
)

func redisCache(t *testing.T) *cache.RedisAvailabilityCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisAvailabilityCache(client, time.Minute)
}

func slotAt(t *testing.T, slots []dto.SlotDTO, barber uint, start string) dto.SlotDTO {
	t.Helper()
	for _, s := range slots {
		if s.BarberID == barber && s.Start == start {
			return s
		}
	}
	require.Failf(t, "slot not found", "%d %s", barber, start)
	return dto.SlotDTO{}
}

func TestCheckAvailability_BookingDuringQueryIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "12:00")

	c := redisCache(t)
	uc := NewCheckAvailability(repo, c, zap.NewNop())
	in := CheckAvailabilityInput{
		ServiceID: serviceID, BranchID: branchID, BarberID: ptr(barberA),
		DateStart: "2025-01-07", DateEnd: "2025-01-07",
	}

	day := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	repo.afterAppointments = func() {
		repo.book(domain.Appointment{StaffID: barberA, Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute)})
		assert.NoError(t, c.Invalidate(context.Background(), branchID))
	}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, slotAt(t, first.Data, barberA, "2025-01-07 10:00").Available, "computed before the booking")

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, slotAt(t, second.Data, barberA, "2025-01-07 10:00").Available)
}

func TestBarberAvailability_BookingDuringQueryIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "12:00")

	c := redisCache(t)
	uc := NewBarberAvailability(repo, c, zap.NewNop(), 30)
	in := BarberAvailabilityInput{BarberID: barberA, DateStart: "2025-01-07", DateEnd: "2025-01-07"}

	day := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	repo.afterAppointments = func() {
		repo.book(domain.Appointment{StaffID: barberA, Start: day.Add(11 * time.Hour), End: day.Add(11*time.Hour + 30*time.Minute)})
		assert.NoError(t, c.Invalidate(context.Background(), branchID))
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	res, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, slotAt(t, res.Data, barberA, "2025-01-07 11:00").Available)
}

func TestBarberAvailability_CacheHit(t *testing.T) {
	repo := newFakeRepo()
	repo.setBranchHours("09:00", "19:00")
	repo.setBarberHours(barberA, "10:00", "12:00")

	uc := NewBarberAvailability(repo, redisCache(t), zap.NewNop(), 30)
	in := BarberAvailabilityInput{BarberID: barberA, DateStart: "2025-01-07", DateEnd: "2025-01-07"}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	loads := repo.calendarLoads

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, loads, repo.calendarLoads)
	assert.Equal(t, first.Data, second.Data)
}
