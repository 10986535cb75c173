// Package courts manages the bookable courts of the facility.
package courts

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/validation"
)

const (
	StatusAvailable        = "available"
	StatusUnderMaintenance = "under_maintenance"
	StatusOutOfService     = "out_of_service"
)

type Input struct {
	Name            string `json:"name" validate:"required,max=100"`
	Capacity        int64  `json:"capacity" validate:"required,min=1,max=50"`
	HourlyRateCents int64  `json:"hourly_rate_cents" validate:"gte=0"`
	Description     string `json:"description" validate:"max=1000"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available under_maintenance out_of_service"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=available under_maintenance out_of_service"`
}

type Service struct {
	db    *db.DB
	clock clock.Clock
}

func NewService(database *db.DB, c clock.Clock) *Service {
	return &Service{db: database, clock: c}
}

func (s *Service) List(ctx context.Context, status string) ([]dbgen.Court, error) {
	var (
		courts []dbgen.Court
		err    error
	)
	if status == "" {
		courts, err = s.db.Queries.ListCourts(ctx)
	} else {
		if err := validation.Struct(StatusInput{Status: status}); err != nil {
			return nil, err
		}
		courts, err = s.db.Queries.ListCourtsByStatus(ctx, status)
	}
	if err != nil {
		return nil, apperr.Internal("failed to list courts", err)
	}
	if courts == nil {
		courts = []dbgen.Court{}
	}
	return courts, nil
}

func (s *Service) Get(ctx context.Context, id int64) (dbgen.Court, error) {
	court, err := s.db.Queries.GetCourt(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Court{}, apperr.NotFound("court %d not found", id)
		}
		return dbgen.Court{}, apperr.Internal("failed to load court", err)
	}
	return court, nil
}

func (s *Service) Create(ctx context.Context, in Input) (dbgen.Court, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return dbgen.Court{}, err
	}
	if in.Status == "" {
		in.Status = StatusAvailable
	}

	court, err := s.db.Queries.CreateCourt(ctx, dbgen.CreateCourtParams{
		Name:            in.Name,
		Capacity:        in.Capacity,
		HourlyRateCents: in.HourlyRateCents,
		Description:     strings.TrimSpace(in.Description),
		Status:          in.Status,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return dbgen.Court{}, apperr.Conflict("a court named %q already exists", in.Name)
		}
		log.Ctx(ctx).Error().Err(err).Str("name", in.Name).Msg("Failed to create court")
		return dbgen.Court{}, apperr.Internal("failed to create court", err)
	}

	log.Ctx(ctx).Info().Int64("court_id", court.ID).Str("name", court.Name).Msg("Court created")
	return court, nil
}

// Update replaces the editable fields of a court. Status changes go through SetStatus.
func (s *Service) Update(ctx context.Context, id int64, in Input) (dbgen.Court, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return dbgen.Court{}, err
	}

	court, err := s.db.Queries.UpdateCourt(ctx, dbgen.UpdateCourtParams{
		Name:            in.Name,
		Capacity:        in.Capacity,
		HourlyRateCents: in.HourlyRateCents,
		Description:     strings.TrimSpace(in.Description),
		ID:              id,
	})
	if err != nil {
		switch {
		case db.IsNotFound(err):
			return dbgen.Court{}, apperr.NotFound("court %d not found", id)
		case db.IsUniqueViolation(err):
			return dbgen.Court{}, apperr.Conflict("a court named %q already exists", in.Name)
		}
		log.Ctx(ctx).Error().Err(err).Int64("court_id", id).Msg("Failed to update court")
		return dbgen.Court{}, apperr.Internal("failed to update court", err)
	}

	log.Ctx(ctx).Info().Int64("court_id", id).Msg("Court updated")
	return court, nil
}

// SetStatus takes a court in or out of service. Existing reservations are
// left alone; only new bookings are refused.
func (s *Service) SetStatus(ctx context.Context, id int64, in StatusInput) (dbgen.Court, error) {
	if err := validation.Struct(in); err != nil {
		return dbgen.Court{}, err
	}
	court, err := s.db.Queries.UpdateCourtStatus(ctx, dbgen.UpdateCourtStatusParams{Status: in.Status, ID: id})
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Court{}, apperr.NotFound("court %d not found", id)
		}
		return dbgen.Court{}, apperr.Internal("failed to update court status", err)
	}

	log.Ctx(ctx).Info().Int64("court_id", id).Str("status", in.Status).Msg("Court status changed")
	return court, nil
}

// Delete removes a court that has no pending or confirmed reservations from
// today onwards. Past reservations, payments and blocked days go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		if _, err := q.GetCourt(ctx, id); err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("court %d not found", id)
			}
			return err
		}

		active, err := q.CountFutureActiveReservationsForCourt(ctx, dbgen.CountFutureActiveReservationsForCourtParams{
			CourtID:  id,
			FromDate: clock.Today(s.clock),
		})
		if err != nil {
			return err
		}
		if active > 0 {
			return apperr.Conflict("court has %d upcoming reservations", active)
		}

		_, err = q.DeleteCourt(ctx, id)
		return err
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return err
		}
		log.Ctx(ctx).Error().Err(err).Int64("court_id", id).Msg("Failed to delete court")
		return apperr.Internal("failed to delete court", err)
	}

	log.Ctx(ctx).Info().Int64("court_id", id).Msg("Court deleted")
	return nil
}
