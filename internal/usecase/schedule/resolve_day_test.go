package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

func TestResolveDay(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	weekly := NewWeeklyHours(repo, audit.Nop{}, cache.Nop{}, zap.NewNop())
	exceptions := NewExceptions(repo, audit.Nop{}, cache.Nop{}, zap.NewNop())

	for wd := 1; wd <= 5; wd++ {
		_, err := weekly.Create(ctx, availability.EntityBranch, branchID, WeeklyHoursInput{Weekday: wd, OpenAt: "09:00", CloseAt: "19:00"}, nil)
		require.NoError(t, err)
	}
	_, err := exceptions.Create(ctx, ExceptionInput{
		Kind: models.ExceptionBranchSpecialHours, BranchID: ptr(branchID),
		DateStart: "2025-01-08", OpenAt: "12:00", CloseAt: "16:00",
	}, nil)
	require.NoError(t, err)
	_, err = exceptions.Create(ctx, ExceptionInput{
		Kind: models.ExceptionBranchClosed, BranchID: ptr(branchID), DateStart: "2025-01-09",
	}, nil)
	require.NoError(t, err)

	uc := NewResolveDay(calendarRepo{repo})

	tests := []struct {
		date   string
		open   bool
		openAt string
		source availability.Source
	}{
		{"2025-01-07", true, "09:00", availability.SourceWeekly},
		{"2025-01-08", true, "12:00", availability.SourceSpecialHours},
		{"2025-01-09", false, "", availability.SourceClosedException},
		{"2025-01-11", false, "", availability.SourceNoSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := uc.Execute(ctx, availability.EntityBranch, branchID, tt.date)
			require.NoError(t, err)

			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.open, got.Open)
			assert.Equal(t, tt.openAt, got.OpenAt)
			assert.Equal(t, string(tt.source), got.Source)
		})
	}
}

func TestResolveDay_Barber(t *testing.T) {
	ctx := context.Background()
	uc := NewResolveDay(calendarRepo{newMemRepo()})

	got, err := uc.Execute(ctx, availability.EntityStaff, barberID, "2025-01-07")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Weekday)
	assert.False(t, got.Open)
	assert.Equal(t, string(availability.SourceNoSchedule), got.Source)

	_, err = uc.Execute(ctx, availability.EntityStaff, 99, "2025-01-07")
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = uc.Execute(ctx, availability.EntityBranch, branchID, "07-01-2025")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
