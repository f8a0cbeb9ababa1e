package appointment

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

const (
	branchID  uint = 1
	barberID  uint = 10
	serviceID uint = 100
)

func ptr[T any](v T) *T { return &v }

type fakeRepo struct {
	branches  map[uint]models.Branch
	barbers   map[uint]models.Barber
	services  map[uint]models.Service
	calendars map[availability.EntityKind]availability.Calendar
	breaks    []availability.Break

	clients      []models.Client
	appointments []models.Appointment
}

func newFakeRepo() *fakeRepo {
	weekly := func(id uint, open, close string) []availability.WeeklyHours {
		var rows []availability.WeeklyHours
		for wd := 1; wd <= 7; wd++ {
			rows = append(rows, availability.WeeklyHours{
				EntityID: id, Weekday: wd, Active: true,
				OpenAt: availability.MustClock(open), CloseAt: availability.MustClock(close),
			})
		}
		return rows
	}

	return &fakeRepo{
		branches: map[uint]models.Branch{
			branchID: {ID: branchID, Name: "Centro", Timezone: "UTC", Active: true},
		},
		barbers: map[uint]models.Barber{
			barberID: {ID: barberID, BranchID: ptr(branchID), Name: "Ana", Active: true},
		},
		services: map[uint]models.Service{
			serviceID: {ID: serviceID, Name: "Corte", DurationMin: 30, Active: true},
		},
		calendars: map[availability.EntityKind]availability.Calendar{
			availability.EntityBranch: {Kind: availability.EntityBranch, EntityID: branchID, Weekly: weekly(branchID, "09:00", "19:00")},
			availability.EntityStaff:  {Kind: availability.EntityStaff, EntityID: barberID, Weekly: weekly(barberID, "10:00", "18:00")},
		},
		breaks: []availability.Break{
			{StaffID: barberID, Weekday: 2, StartAt: availability.MustClock("13:00"), EndAt: availability.MustClock("14:00"), Active: true},
		},
	}
}

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

func (f *fakeRepo) GetServiceByExternalCode(context.Context, string) (*models.Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActiveBarbers(context.Context, uint) ([]models.Barber, error) {
	return []models.Barber{f.barbers[barberID]}, nil
}

func (f *fakeRepo) LoadCalendar(_ context.Context, kind availability.EntityKind, _ uint) (availability.Calendar, error) {
	return f.calendars[kind], nil
}

func (f *fakeRepo) ListBreaks(context.Context, []uint) ([]availability.Break, error) {
	return f.breaks, nil
}

func (f *fakeRepo) ListAppointments(_ context.Context, _ []uint, from, to time.Time) ([]availability.Appointment, error) {
	var out []availability.Appointment
	for _, ap := range f.appointments {
		if ap.Status == models.AppointmentScheduled && ap.StartTime.Before(to) && ap.EndTime.After(from) {
			out = append(out, availability.Appointment{ID: ap.ID, StaffID: ap.BarberID, Start: ap.StartTime, End: ap.EndTime})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{ID: uint(len(f.clients) + 1), Name: name, Phone: phone, Email: email}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	for _, other := range f.appointments {
		if other.BarberID == ap.BarberID && other.Status == models.AppointmentScheduled &&
			other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	ap.ID = uint(len(f.appointments) + 1)
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, branch, id uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id && ap.BranchID == branch {
			return &ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, branch uint, barber *uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BranchID != branch || (barber != nil && ap.BarberID != *barber) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			ap.Service = f.services[ap.ServiceID]
			ap.Barber = f.barbers[ap.BarberID]
			out = append(out, ap)
		}
	}
	return out, nil
}

// -------- audit / cache --------

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

type countingCache struct {
	invalidated []uint
}

func (c *countingCache) Get(context.Context, uint, string, any) (int64, bool, error) {
	return 0, false, nil
}
func (c *countingCache) Set(context.Context, uint, int64, string, any) error { return nil }
func (c *countingCache) Invalidate(_ context.Context, branchID uint) error {
	c.invalidated = append(c.invalidated, branchID)
	return nil
}
