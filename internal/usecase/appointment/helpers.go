package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
)

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// invalidate never fails the request: a stale entry expires with its TTL.
func invalidate(ctx context.Context, c cache.AvailabilityCache, log *zap.Logger, branchID uint) {
	if err := c.Invalidate(ctx, branchID); err != nil {
		log.Warn("availability cache invalidation failed", zap.Uint("branch_id", branchID), zap.Error(err))
	}
}

var errInvalidDate = httperr.ErrBusiness("invalid_date")
