package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

const (
	branchID   uint = 1
	barberID   uint = 10
	freeBarber uint = 11 // not bound to a branch
)

func ptr[T any](v T) *T { return &v }

// memRepo is an in-memory schedule.Repository.
type memRepo struct {
	mu     sync.Mutex
	nextID uint

	branches    map[uint]models.Branch
	barbers     map[uint]models.Barber
	branchHours map[uint]models.BranchHours
	barberHours map[uint]models.BarberHours
	exceptions  map[uint]models.ScheduleException
	breaks      map[uint]models.BarberBreak
}

func newMemRepo() *memRepo {
	b := branchID
	return &memRepo{
		nextID:      100,
		branches:    map[uint]models.Branch{branchID: {ID: branchID, Name: "Centro", Timezone: "UTC", Active: true}},
		barbers:     map[uint]models.Barber{barberID: {ID: barberID, BranchID: &b, Name: "Ana", Active: true}, freeBarber: {ID: freeBarber, Name: "Luis", Active: true}},
		branchHours: map[uint]models.BranchHours{},
		barberHours: map[uint]models.BarberHours{},
		exceptions:  map[uint]models.ScheduleException{},
		breaks:      map[uint]models.BarberBreak{},
	}
}

func (m *memRepo) id(cur uint) uint {
	if cur != 0 {
		return cur
	}
	m.nextID++
	return m.nextID
}

func get[T any](mu *sync.Mutex, rows map[uint]T, id uint) (*T, error) {
	mu.Lock()
	defer mu.Unlock()
	row, ok := rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func del[T any](mu *sync.Mutex, rows map[uint]T, id uint) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(rows, id)
	return nil
}

func sorted[T any](rows map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(rows))
	for id, row := range rows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, rows[id])
	}
	return out
}

func (m *memRepo) GetBranch(_ context.Context, id uint) (*models.Branch, error) {
	return get(&m.mu, m.branches, id)
}

func (m *memRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	return get(&m.mu, m.barbers, id)
}

func (m *memRepo) ListBranchHours(_ context.Context, id uint) ([]models.BranchHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sorted(m.branchHours, func(r models.BranchHours) bool { return r.BranchID == id }), nil
}

func (m *memRepo) GetBranchHours(_ context.Context, id uint) (*models.BranchHours, error) {
	return get(&m.mu, m.branchHours, id)
}

func (m *memRepo) SaveBranchHours(_ context.Context, row *models.BranchHours) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.id(row.ID)
	m.branchHours[row.ID] = *row
	return nil
}

func (m *memRepo) DeleteBranchHours(_ context.Context, id uint) error {
	return del(&m.mu, m.branchHours, id)
}

func (m *memRepo) ListBarberHours(_ context.Context, id uint) ([]models.BarberHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sorted(m.barberHours, func(r models.BarberHours) bool { return r.BarberID == id }), nil
}

func (m *memRepo) GetBarberHours(_ context.Context, id uint) (*models.BarberHours, error) {
	return get(&m.mu, m.barberHours, id)
}

func (m *memRepo) SaveBarberHours(_ context.Context, row *models.BarberHours) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.id(row.ID)
	m.barberHours[row.ID] = *row
	return nil
}

func (m *memRepo) DeleteBarberHours(_ context.Context, id uint) error {
	return del(&m.mu, m.barberHours, id)
}

func (m *memRepo) ListExceptions(_ context.Context, f domain.ExceptionFilter) ([]models.ScheduleException, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sorted(m.exceptions, func(r models.ScheduleException) bool {
		if f.BranchID != nil && (r.BranchID == nil || *r.BranchID != *f.BranchID) {
			return false
		}
		if f.BarberID != nil && (r.BarberID == nil || *r.BarberID != *f.BarberID) {
			return false
		}
		last := r.DateStart
		if r.DateEnd != nil {
			last = *r.DateEnd
		}
		if f.From != nil && last.Before(*f.From) {
			return false
		}
		if f.To != nil && r.DateStart.After(*f.To) {
			return false
		}
		return true
	}), nil
}

func (m *memRepo) GetException(_ context.Context, id uint) (*models.ScheduleException, error) {
	return get(&m.mu, m.exceptions, id)
}

func (m *memRepo) SaveException(_ context.Context, row *models.ScheduleException) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.id(row.ID)
	m.exceptions[row.ID] = *row
	return nil
}

func (m *memRepo) DeleteException(_ context.Context, id uint) error {
	return del(&m.mu, m.exceptions, id)
}

func (m *memRepo) ListBreaks(_ context.Context, barber uint, weekday *int) ([]models.BarberBreak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sorted(m.breaks, func(r models.BarberBreak) bool {
		return r.BarberID == barber && (weekday == nil || r.Weekday == *weekday)
	}), nil
}

func (m *memRepo) GetBreak(_ context.Context, id uint) (*models.BarberBreak, error) {
	return get(&m.mu, m.breaks, id)
}

func (m *memRepo) SaveBreak(_ context.Context, row *models.BarberBreak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.id(row.ID)
	m.breaks[row.ID] = *row
	return nil
}

func (m *memRepo) DeleteBreak(_ context.Context, id uint) error {
	return del(&m.mu, m.breaks, id)
}

// ======================================================
// Calendar reader for ResolveDay
// ======================================================

// calendarRepo reads calendars straight out of a memRepo.
type calendarRepo struct {
	*memRepo
}

func (c calendarRepo) GetService(context.Context, uint) (*models.Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (c calendarRepo) GetServiceByExternalCode(context.Context, string) (*models.Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (c calendarRepo) ListActiveBarbers(context.Context, uint) ([]models.Barber, error) {
	return nil, nil
}

func (c calendarRepo) LoadCalendar(ctx context.Context, kind availability.EntityKind, id uint) (availability.Calendar, error) {
	cal := availability.Calendar{Kind: kind, EntityID: id}

	f := domain.ExceptionFilter{}
	if kind == availability.EntityBranch {
		rows, _ := c.ListBranchHours(ctx, id)
		for _, r := range rows {
			w, err := domain.BranchWeekly(r)
			if err != nil {
				return cal, err
			}
			cal.Weekly = append(cal.Weekly, w)
		}
		f.BranchID = &id
	} else {
		rows, _ := c.ListBarberHours(ctx, id)
		for _, r := range rows {
			w, err := domain.BarberWeekly(r)
			if err != nil {
				return cal, err
			}
			cal.Weekly = append(cal.Weekly, w)
		}
		f.BarberID = &id
	}

	rows, _ := c.ListExceptions(ctx, f)
	for _, r := range rows {
		exc, err := domain.Exception(r)
		if err != nil {
			return cal, err
		}
		cal.Exceptions = append(cal.Exceptions, exc)
	}
	return cal, nil
}

func (c calendarRepo) ListBreaks(context.Context, []uint) ([]availability.Break, error) {
	return nil, nil
}

func (c calendarRepo) ListAppointments(context.Context, []uint, time.Time, time.Time) ([]availability.Appointment, error) {
	return nil, nil
}

// ======================================================
// Audit / cache
// ======================================================

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type countingCache struct {
	mu          sync.Mutex
	invalidated map[uint]int
}

func (c *countingCache) Get(context.Context, uint, string, any) (int64, bool, error) {
	return 0, false, nil
}
func (c *countingCache) Set(context.Context, uint, int64, string, any) error { return nil }
func (c *countingCache) Invalidate(_ context.Context, branch uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidated == nil {
		c.invalidated = map[uint]int{}
	}
	c.invalidated[branch]++
	return nil
}

func (c *countingCache) count(branch uint) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated[branch]
}
