// Package retention prunes reservation rows once their date is old
// enough that no client will page back to them.
package retention

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper deletes reservations whose fecha is more than Days days in the
// past, once per Interval.
type Sweeper struct {
	Reservas Pruner
	Days     int
	Interval time.Duration
	Log      *zap.Logger

	// Now is overridable for tests.
	Now func() time.Time
}

func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	// kick immediately
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cutoff := now.AddDate(0, 0, -s.Days)

	n, err := s.Reservas.DeleteBefore(ctx, cutoff)
	if err != nil {
		s.Log.Error("retention sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.Log.Info("retention sweep",
			zap.String("cutoff", cutoff.Format("2006-01-02")),
			zap.Int64("deleted", n),
		)
	}
}
