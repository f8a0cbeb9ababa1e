package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

const (
	branchID  uint = 1
	barberA   uint = 10
	barberB   uint = 11
	serviceID uint = 100
)

type calKey struct {
	kind domain.EntityKind
	id   uint
}

type fakeRepo struct {
	mu sync.Mutex

	branches     map[uint]models.Branch
	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	calendars    map[calKey]domain.Calendar
	breaks       []domain.Break
	appointments []domain.Appointment

	calendarLoads int

	// runs once, after the appointments of a snapshot were read
	afterAppointments func()
}

func ptr[T any](v T) *T { return &v }

// newFakeRepo seeds one UTC branch, two barbers and a 30 minute service.
func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches: map[uint]models.Branch{
			branchID: {ID: branchID, Name: "Centro", Code: "CTR", Timezone: "UTC", Active: true},
		},
		barbers: map[uint]models.Barber{
			barberA: {ID: barberA, BranchID: ptr(branchID), Name: "Ana", Active: true},
			barberB: {ID: barberB, BranchID: ptr(branchID), Name: "Beto", Active: true},
		},
		services: map[uint]models.Service{
			serviceID: {ID: serviceID, Name: "Corte", DurationMin: 30, Active: true, ExternalCode: ptr("SRV-1")},
		},
		calendars: map[calKey]domain.Calendar{},
	}
}

func weekdays(id uint, open, close string) []domain.WeeklyHours {
	rows := make([]domain.WeeklyHours, 0, 5)
	for wd := 1; wd <= 5; wd++ {
		rows = append(rows, domain.WeeklyHours{
			EntityID: id,
			Weekday:  wd,
			OpenAt:   domain.MustClock(open),
			CloseAt:  domain.MustClock(close),
			Active:   true,
		})
	}
	return rows
}

func (f *fakeRepo) setBranchHours(open, close string, exc ...domain.Exception) {
	f.calendars[calKey{domain.EntityBranch, branchID}] = domain.Calendar{
		Kind: domain.EntityBranch, EntityID: branchID,
		Weekly: weekdays(branchID, open, close), Exceptions: exc,
	}
}

func (f *fakeRepo) setBarberHours(id uint, open, close string) {
	f.calendars[calKey{domain.EntityStaff, id}] = domain.Calendar{
		Kind: domain.EntityStaff, EntityID: id, Weekly: weekdays(id, open, close),
	}
}

// -------- domain.Repository --------

func (f *fakeRepo) GetBranch(_ context.Context, id uint) (*models.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetServiceByExternalCode(_ context.Context, code string) (*models.Service, error) {
	for _, s := range f.services {
		if s.ExternalCode != nil && *s.ExternalCode == code {
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActiveBarbers(_ context.Context, branch uint) ([]models.Barber, error) {
	var out []models.Barber
	for _, id := range []uint{barberA, barberB} {
		b, ok := f.barbers[id]
		if ok && b.Active && b.BranchID != nil && *b.BranchID == branch {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) LoadCalendar(_ context.Context, kind domain.EntityKind, id uint) (domain.Calendar, error) {
	f.mu.Lock()
	f.calendarLoads++
	f.mu.Unlock()

	if cal, ok := f.calendars[calKey{kind, id}]; ok {
		return cal, nil
	}
	return domain.Calendar{Kind: kind, EntityID: id}, nil
}

func (f *fakeRepo) ListBreaks(_ context.Context, ids []uint) ([]domain.Break, error) {
	var out []domain.Break
	for _, b := range f.breaks {
		for _, id := range ids {
			if b.StaffID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointments(_ context.Context, ids []uint, from, to time.Time) ([]domain.Appointment, error) {
	f.mu.Lock()
	var out []domain.Appointment
	for _, a := range f.appointments {
		if a.Start.Before(to) && a.End.After(from) {
			out = append(out, a)
		}
	}
	hook := f.afterAppointments
	f.afterAppointments = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeRepo) book(a domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments = append(f.appointments, a)
}

// -------- cache --------

// memoryCache keeps entries per version like the redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	version int64
	entries map[string]any
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]any{}}
}

func entry(version int64, key string) string {
	return fmt.Sprintf("v%d:%s", version, key)
}

func (c *memoryCache) Get(_ context.Context, _ uint, key string, dst any) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[entry(c.version, key)]
	if !ok {
		return c.version, false, nil
	}
	if out, ok := dst.(*dto.AvailabilityDTO); ok {
		*out = *(v.(*dto.AvailabilityDTO))
	}
	return c.version, true, nil
}

func (c *memoryCache) Set(_ context.Context, _ uint, version int64, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry(version, key)] = value
	return nil
}

func (c *memoryCache) Invalidate(context.Context, uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return nil
}
