package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/clients"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/config"
)

const (
	StalePendingJobName = "stale_pending_reservations"
	TierReviewJobName   = "client_tier_review"
)

// StaleExpirer cancels pending reservations that started without a deposit.
type StaleExpirer interface {
	ExpireStalePending(ctx context.Context) (int, error)
}

// TierReviewer recomputes client tiers from the previous month's activity.
type TierReviewer interface {
	ReviewTiers(ctx context.Context, now time.Time) (clients.TierReview, error)
}

// RegisterJobs adds the maintenance jobs to the singleton scheduler.
func RegisterJobs(cfg config.SchedulerConfig, expirer StaleExpirer, reviewer TierReviewer, c clock.Clock) error {
	if expirer == nil || reviewer == nil || c == nil {
		return fmt.Errorf("scheduler jobs require an expirer, a tier reviewer and a clock")
	}
	if _, err := AddJob(StalePendingJobName, cfg.StalePendingCron, ExpireStaleTask(expirer)); err != nil {
		return fmt.Errorf("register %s: %w", StalePendingJobName, err)
	}
	if _, err := AddJob(TierReviewJobName, cfg.TierReviewCron, TierReviewTask(reviewer, c)); err != nil {
		return fmt.Errorf("register %s: %w", TierReviewJobName, err)
	}
	return nil
}

func ExpireStaleTask(expirer StaleExpirer) Task {
	return func(ctx context.Context) error {
		expired, err := expirer.ExpireStalePending(ctx)
		if err != nil {
			return fmt.Errorf("expire stale reservations: %w", err)
		}
		if expired > 0 {
			log.Ctx(ctx).Info().Int("expired", expired).Msg("Expired stale pending reservations")
		}
		return nil
	}
}

func TierReviewTask(reviewer TierReviewer, c clock.Clock) Task {
	return func(ctx context.Context) error {
		if _, err := reviewer.ReviewTiers(ctx, c.Now()); err != nil {
			return fmt.Errorf("review client tiers: %w", err)
		}
		return nil
	}
}
