package availability

import (
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/metrics"
)

func observe(endpoint string, started time.Time, res *dto.AvailabilityDTO, err error) {
	switch {
	case err != nil:
		metrics.ObserveQuery(endpoint, "error", started, 0)
	case res.Total == 0:
		metrics.ObserveQuery(endpoint, "empty", started, 0)
	default:
		metrics.ObserveQuery(endpoint, "ok", started, res.Total)
	}
}

// engineError maps engine sentinels to business codes.
func engineError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		return httperr.ErrBusiness("invalid_duration")
	case errors.Is(err, domain.ErrInvalidRange):
		return httperr.ErrBusiness("invalid_range")
	}
	return err
}
