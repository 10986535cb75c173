package clients

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

// TierReview is the outcome of one ReviewTiers run.
type TierReview struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Reviewed int    `json:"reviewed"`
	Changed  int    `json:"changed"`
}

// ReviewTiers moves every active client to the highest tier whose monthly
// minimum they reached during the calendar month before now. Confirmed and
// completed reservations count. Discounts already stored on reservations are
// not touched.
func (s *Service) ReviewTiers(ctx context.Context, now time.Time) (TierReview, error) {
	from, to := clock.PreviousMonth(now)
	review := TierReview{From: from, To: to}
	logger := log.Ctx(ctx).With().Str("component", "tier_review").Str("from", from).Str("to", to).Logger()

	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		tiers, err := q.ListClientTiers(ctx)
		if err != nil {
			return err
		}
		counts, err := q.ListClientReservationCounts(ctx, dbgen.ListClientReservationCountsParams{FromDate: from, ToDate: to})
		if err != nil {
			return err
		}
		byClient := make(map[int64]int64, len(counts))
		for _, c := range counts {
			byClient[c.ClientID] = c.ReservationCount
		}

		candidates, err := q.ListClientsForTierReview(ctx)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			review.Reviewed++
			target, ok := tierFor(tiers, byClient[c.ID])
			if !ok || target.ID == c.TierID {
				continue
			}
			if err := q.UpdateClientTier(ctx, dbgen.UpdateClientTierParams{TierID: target.ID, ID: c.ID}); err != nil {
				return err
			}
			review.Changed++
			logger.Debug().Int64("client_id", c.ID).Str("tier", target.Name).Msg("Client tier changed")
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Tier review failed")
		return TierReview{}, err
	}

	logger.Info().Int("reviewed", review.Reviewed).Int("changed", review.Changed).Msg("Tier review finished")
	return review, nil
}

// tierFor picks the highest tier reached by count. tiers must be ordered by
// min_monthly_reservations ascending.
func tierFor(tiers []dbgen.ClientTier, count int64) (dbgen.ClientTier, bool) {
	var (
		best  dbgen.ClientTier
		found bool
	)
	for _, t := range tiers {
		if t.MinMonthlyReservations <= count {
			best, found = t, true
		}
	}
	return best, found
}
