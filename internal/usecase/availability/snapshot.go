package availability

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

// ======================================================
// SNAPSHOT
// ======================================================

// snapshot is everything one query plans against, loaded once.
type snapshot struct {
	branch       *models.Branch
	barbers      []models.Barber
	branchCal    domain.Calendar
	barberCals   []domain.Calendar
	breaks       [][]domain.Break
	appointments []domain.Appointment
}

func (s *snapshot) barberIDs() []uint {
	ids := make([]uint, len(s.barbers))
	for i, b := range s.barbers {
		ids[i] = b.ID
	}
	return ids
}

// loadSnapshot reads calendars, breaks and appointments covering every day
// of [from, to] in parallel.
func loadSnapshot(
	ctx context.Context,
	repo domain.Repository,
	branch *models.Branch,
	barbers []models.Barber,
	from time.Time,
	to time.Time,
) (*snapshot, error) {

	s := &snapshot{
		branch:     branch,
		barbers:    barbers,
		barberCals: make([]domain.Calendar, len(barbers)),
	}
	ids := s.barberIDs()

	// appointments are narrowed to whole days so the day walk sees them all
	apptFrom := domain.DateOnly(from)
	apptTo := domain.DateOnly(to).AddDate(0, 0, 1)

	var allBreaks []domain.Break

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cal, err := repo.LoadCalendar(gctx, domain.EntityBranch, branch.ID)
		s.branchCal = cal
		return err
	})
	for i, b := range barbers {
		g.Go(func() error {
			cal, err := repo.LoadCalendar(gctx, domain.EntityStaff, b.ID)
			s.barberCals[i] = cal
			return err
		})
	}
	g.Go(func() error {
		var err error
		allBreaks, err = repo.ListBreaks(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		s.appointments, err = repo.ListAppointments(gctx, ids, apptFrom, apptTo)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.breaks = make([][]domain.Break, len(barbers))
	for i, b := range barbers {
		s.breaks[i] = breaksOf(allBreaks, b.ID)
	}
	return s, nil
}

func breaksOf(breaks []domain.Break, staffID uint) []domain.Break {
	var out []domain.Break
	for _, b := range breaks {
		if b.StaffID == staffID {
			out = append(out, b)
		}
	}
	return out
}

// ======================================================
// PLANNING
// ======================================================

// plan runs the engine for every barber in parallel. plans[i] belongs to
// s.barbers[i] and has one entry per day of the range.
func (s *snapshot) plan(ctx context.Context, start, end time.Time, duration int) ([][]domain.DayPlan, error) {
	plans := make([][]domain.DayPlan, len(s.barbers))

	g, _ := errgroup.WithContext(ctx)
	for i := range s.barbers {
		g.Go(func() error {
			p, err := domain.PlanRange(domain.RangeInput{
				Start:        start,
				End:          end,
				Branch:       s.branchCal,
				Staff:        s.barberCals[i],
				Breaks:       s.breaks[i],
				Appointments: s.appointments,
				Duration:     duration,
			})
			plans[i] = p
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// flatten orders slots by day, then barber, then start time.
func (s *snapshot) flatten(plans [][]domain.DayPlan) []dto.SlotDTO {
	out := []dto.SlotDTO{}
	if len(plans) == 0 {
		return out
	}

	for day := range plans[0] {
		for i, b := range s.barbers {
			for _, slot := range plans[i][day].Slots {
				out = append(out, dto.SlotDTO{
					Start:      slot.Start.Format(dto.SlotLayout),
					End:        slot.End.Format(dto.SlotLayout),
					BarberID:   b.ID,
					BarberName: b.Name,
					Available:  slot.Available,
				})
			}
		}
	}
	return out
}

func (s *snapshot) result(plans [][]domain.DayPlan) *dto.AvailabilityDTO {
	slots := s.flatten(plans)
	res := &dto.AvailabilityDTO{Data: slots, Total: len(slots)}

	if len(slots) == 0 {
		var all []domain.DayPlan
		for _, p := range plans {
			all = append(all, p...)
		}
		reason := domain.Diagnose(s.branchCal, s.barberCals, all)
		res.Reason = string(reason)
		res.Message = reason.Message()
	}
	return res
}

// ======================================================
// HELPERS
// ======================================================

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func logFields(branchID uint, start, end time.Time) []zap.Field {
	return []zap.Field{
		zap.Uint("branch_id", branchID),
		zap.Time("date_start", start),
		zap.Time("date_end", end),
	}
}
