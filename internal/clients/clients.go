// Package clients manages the people who book courts: their contact
// details, account status and loyalty tier.
package clients

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/validation"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusBlocked   = "blocked"

	DefaultTier = "regular"

	DefaultListLimit = 50
	MaxListLimit     = 100
)

type CreateInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

type UpdateInput = CreateInput

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=active suspended blocked"`
}

type ListFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// Client is the caller-facing view of a client with its tier resolved.
type Client struct {
	ID                  int64   `json:"id"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	Phone               string  `json:"phone"`
	Email               string  `json:"email,omitempty"`
	TierID              int64   `json:"tier_id"`
	TierName            string  `json:"tier_name"`
	TierDiscountPercent float64 `json:"tier_discount_percent"`
	TotalReservations   int64   `json:"total_reservations"`
	NoShows             int64   `json:"no_shows"`
	LastReservationDate string  `json:"last_reservation_date,omitempty"`
	Status              string  `json:"status"`
}

type Service struct {
	db     *db.DB
	region string
}

// NewService returns a client service that reads national phone numbers as
// belonging to region (an ISO 3166 code such as "AR").
func NewService(database *db.DB, region string) *Service {
	if region == "" {
		region = "AR"
	}
	return &Service{db: database, region: strings.ToUpper(region)}
}

// NormalizePhone returns the E.164 form of raw. Numbers without a country
// prefix are read in the service region.
func (s *Service) NormalizePhone(raw string) (string, error) {
	return NormalizePhone(raw, s.region)
}

func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.Field("phone", "is required")
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsPossibleNumber(number) {
		return "", apperr.NotValidFormat("phone", "is not a valid phone number")
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	in = trim(in)
	if err := validation.Struct(in); err != nil {
		return Client{}, err
	}
	phone, err := s.NormalizePhone(in.Phone)
	if err != nil {
		return Client{}, err
	}

	var created dbgen.Client
	err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		if err := ensureUnique(ctx, q, phone, in.Email, 0); err != nil {
			return err
		}
		tier, err := q.GetClientTierByName(ctx, DefaultTier)
		if err != nil {
			return err
		}
		created, err = q.CreateClient(ctx, dbgen.CreateClientParams{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     phone,
			Email:     nullString(strings.ToLower(in.Email)),
			TierID:    tier.ID,
			Status:    StatusActive,
		})
		return err
	})
	if err != nil {
		return Client{}, s.storageError(ctx, err, "failed to create client")
	}

	log.Ctx(ctx).Info().Int64("client_id", created.ID).Msg("Client created")
	return s.Get(ctx, created.ID)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Client, error) {
	in = trim(in)
	if err := validation.Struct(in); err != nil {
		return Client{}, err
	}
	phone, err := s.NormalizePhone(in.Phone)
	if err != nil {
		return Client{}, err
	}

	err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		if _, err := q.GetClient(ctx, id); err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("client %d not found", id)
			}
			return err
		}
		if err := ensureUnique(ctx, q, phone, in.Email, id); err != nil {
			return err
		}
		_, err := q.UpdateClient(ctx, dbgen.UpdateClientParams{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     phone,
			Email:     nullString(strings.ToLower(in.Email)),
			ID:        id,
		})
		return err
	})
	if err != nil {
		return Client{}, s.storageError(ctx, err, "failed to update client")
	}

	log.Ctx(ctx).Info().Int64("client_id", id).Msg("Client updated")
	return s.Get(ctx, id)
}

// SetStatus changes whether the client may book. Existing reservations are kept.
func (s *Service) SetStatus(ctx context.Context, id int64, in StatusInput) (Client, error) {
	if err := validation.Struct(in); err != nil {
		return Client{}, err
	}
	if _, err := s.db.Queries.UpdateClientStatus(ctx, dbgen.UpdateClientStatusParams{Status: in.Status, ID: id}); err != nil {
		if db.IsNotFound(err) {
			return Client{}, apperr.NotFound("client %d not found", id)
		}
		return Client{}, s.storageError(ctx, err, "failed to update client status")
	}

	log.Ctx(ctx).Info().Int64("client_id", id).Str("status", in.Status).Msg("Client status changed")
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	row, err := s.db.Queries.GetClientWithTier(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return Client{}, apperr.NotFound("client %d not found", id)
		}
		return Client{}, apperr.Internal("failed to load client", err)
	}
	return fromRow(row), nil
}

// Lookup finds a client by phone number in any accepted format.
func (s *Service) Lookup(ctx context.Context, rawPhone string) (Client, error) {
	phone, err := s.NormalizePhone(rawPhone)
	if err != nil {
		return Client{}, err
	}
	client, err := s.db.Queries.GetClientByPhone(ctx, phone)
	if err != nil {
		if db.IsNotFound(err) {
			return Client{}, apperr.NotFound("no client with phone %s", phone)
		}
		return Client{}, apperr.Internal("failed to look up client", err)
	}
	return s.Get(ctx, client.ID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	params := dbgen.ListClientsParams{Limit: DefaultListLimit, Offset: int64(filter.Offset)}
	var fields []apperr.FieldError
	if filter.Status != "" {
		if err := validation.Struct(StatusInput{Status: filter.Status}); err != nil {
			fields = append(fields, apperr.FieldError{Field: "status", Message: "must be one of: active, suspended, blocked"})
		}
		params.Status = sql.NullString{String: filter.Status, Valid: true}
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		params.Search = sql.NullString{String: "%" + strings.ToLower(search) + "%", Valid: true}
	}
	switch {
	case filter.Limit == 0:
	case filter.Limit < 0 || filter.Limit > MaxListLimit:
		fields = append(fields, apperr.FieldError{Field: "limit", Message: "must be between 1 and 100"})
	default:
		params.Limit = int64(filter.Limit)
	}
	if filter.Offset < 0 {
		fields = append(fields, apperr.FieldError{Field: "offset", Message: "must be greater than or equal to 0"})
	}
	if err := apperr.Collect(fields); err != nil {
		return nil, err
	}

	rows, err := s.db.Queries.ListClients(ctx, params)
	if err != nil {
		return nil, apperr.Internal("failed to list clients", err)
	}
	out := make([]Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(dbgen.GetClientWithTierRow(row)))
	}
	return out, nil
}

func (s *Service) Tiers(ctx context.Context) ([]dbgen.ClientTier, error) {
	tiers, err := s.db.Queries.ListClientTiers(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list client tiers", err)
	}
	return tiers, nil
}

func ensureUnique(ctx context.Context, q dbgen.Querier, phone, email string, selfID int64) error {
	existing, err := q.GetClientByPhone(ctx, phone)
	switch {
	case err == nil && existing.ID != selfID:
		return apperr.Conflict("a client with phone %s already exists", phone)
	case err != nil && !db.IsNotFound(err):
		return err
	}

	if email == "" {
		return nil
	}
	existing, err = q.GetClientByEmail(ctx, nullString(strings.ToLower(email)))
	switch {
	case err == nil && existing.ID != selfID:
		return apperr.Conflict("a client with email %s already exists", email)
	case err != nil && !db.IsNotFound(err):
		return err
	}
	return nil
}

func (s *Service) storageError(ctx context.Context, err error, message string) error {
	if kind := apperr.KindOf(err); kind != apperr.KindInternal {
		return err
	}
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("a client with the same phone or email already exists")
	}
	log.Ctx(ctx).Error().Err(err).Msg(message)
	return apperr.Internal(message, err)
}

func trim(in CreateInput) CreateInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

func fromRow(row dbgen.GetClientWithTierRow) Client {
	return Client{
		ID:                  row.ID,
		FirstName:           row.FirstName,
		LastName:            row.LastName,
		Phone:               row.Phone,
		Email:               row.Email.String,
		TierID:              row.TierID,
		TierName:            row.TierName,
		TierDiscountPercent: row.TierDiscountPercent,
		TotalReservations:   row.TotalReservations,
		NoShows:             row.NoShows,
		LastReservationDate: row.LastReservationDate.String,
		Status:              row.Status,
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
