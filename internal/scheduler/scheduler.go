// Package scheduler runs the daily warranty-expiry sweep. The sweep is
// read-only: it publishes a gauge and logs the soonest expiries, it never
// mutates assets or writes audit entries (there is no acting user).
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/solarops/soltrack/internal/metrics"
	"github.com/solarops/soltrack/internal/repo"
)

// Run registers the warranty sweep at the given cron spec and starts the
// scheduler. warnDays is how far ahead the sweep looks. The returned cron can
// be stopped on shutdown.
func Run(assets *repo.AssetRepo, spec string, warnDays int) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { SweepWarranties(assets, warnDays) }); err != nil {
		return nil, err
	}
	c.Start()
	slog.Info("warranty sweep scheduled", "cron", spec, "warn_days", warnDays)
	return c, nil
}

// SweepWarranties finds assets whose warranty is past or expires within
// warnDays and reports them.
func SweepWarranties(assets *repo.AssetRepo, warnDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, warnDays)
	expiring, err := assets.ListWarrantyExpiring(ctx, cutoff)
	if err != nil {
		slog.Error("warranty sweep failed", "error", err)
		return
	}

	metrics.SetWarrantyExpiring(len(expiring))
	if len(expiring) == 0 {
		slog.Info("warranty sweep: no expiring warranties")
		return
	}

	soonest := expiring
	if len(soonest) > 5 {
		soonest = soonest[:5]
	}
	serials := make([]string, 0, len(soonest))
	for _, a := range soonest {
		serials = append(serials, a.SerialNumber)
	}
	slog.Warn("warranty sweep: expiring warranties found",
		"count", len(expiring),
		"soonest", serials)
}
