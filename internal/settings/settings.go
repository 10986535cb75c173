// Package settings is the runtime configuration store: typed key/value pairs
// kept in the database and read at call time by the booking core.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/config"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeJSON    ValueType = "json"
)

const (
	KeyDepositPercent   = "deposit_percent"
	KeyMinAdvanceHours  = "min_advance_hours"
	KeyMaxDurationHours = "max_duration_hours"
)

// Value is one stored setting. Raw is the text form kept in storage.
type Value struct {
	Key       string    `json:"key"`
	Raw       string    `json:"-"`
	Type      ValueType `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v Value) Number() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
}

func (v Value) Bool() (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(v.Raw))
}

func (v Value) JSON(dst any) error {
	return json.Unmarshal([]byte(v.Raw), dst)
}

// Decoded returns the value as its natural Go type for rendering.
func (v Value) Decoded() (any, error) {
	switch v.Type {
	case TypeNumber:
		return v.Number()
	case TypeBoolean:
		return v.Bool()
	case TypeJSON:
		var out any
		if err := v.JSON(&out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return v.Raw, nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	decoded, err := v.Decoded()
	if err != nil {
		decoded = v.Raw
	}
	return json.Marshal(struct {
		Key       string    `json:"key"`
		Value     any       `json:"value"`
		Type      ValueType `json:"type"`
		UpdatedAt time.Time `json:"updated_at"`
	}{v.Key, decoded, v.Type, v.UpdatedAt})
}

// Store reads and writes settings. Get reports found=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (value Value, found bool, err error)
	Set(ctx context.Context, key, raw string, typ ValueType) (Value, error)
}

// DBStore keeps settings in the settings table.
type DBStore struct {
	queries dbgen.Querier
}

func NewStore(queries dbgen.Querier) *DBStore {
	return &DBStore{queries: queries}
}

func (s *DBStore) Get(ctx context.Context, key string) (Value, bool, error) {
	row, err := s.queries.GetSetting(ctx, key)
	if err != nil {
		if db.IsNotFound(err) {
			return Value{}, false, nil
		}
		return Value{}, false, apperr.Internal("failed to read setting", err)
	}
	return fromRow(row), true, nil
}

// Set validates raw against typ and any range rule for key, then upserts it.
func (s *DBStore) Set(ctx context.Context, key, raw string, typ ValueType) (Value, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Value{}, apperr.Field("key", "is required")
	}
	if typ == "" {
		typ = TypeString
	}
	if err := check(key, raw, typ); err != nil {
		return Value{}, err
	}

	row, err := s.queries.UpsertSetting(ctx, dbgen.UpsertSettingParams{
		Name:      key,
		Value:     raw,
		ValueType: string(typ),
	})
	if err != nil {
		return Value{}, apperr.Internal("failed to save setting", err)
	}
	return fromRow(row), nil
}

func (s *DBStore) List(ctx context.Context) ([]Value, error) {
	rows, err := s.queries.ListSettings(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list settings", err)
	}
	values := make([]Value, 0, len(rows))
	for _, row := range rows {
		values = append(values, fromRow(row))
	}
	return values, nil
}

func fromRow(row dbgen.Setting) Value {
	return Value{
		Key:       row.Name,
		Raw:       row.Value,
		Type:      ValueType(row.ValueType),
		UpdatedAt: row.UpdatedAt,
	}
}

func check(key, raw string, typ ValueType) error {
	v := Value{Key: key, Raw: raw, Type: typ}
	switch typ {
	case TypeString:
	case TypeNumber:
		if _, err := v.Number(); err != nil {
			return apperr.Field("value", "must be a number")
		}
	case TypeBoolean:
		if _, err := v.Bool(); err != nil {
			return apperr.Field("value", "must be true or false")
		}
	case TypeJSON:
		if !json.Valid([]byte(raw)) {
			return apperr.Field("value", "must be valid JSON")
		}
	default:
		return apperr.Field("type", "must be one of: string, number, boolean, json")
	}

	switch key {
	case KeyDepositPercent:
		n, err := v.Number()
		if typ != TypeNumber || err != nil || n < 0 || n > 100 {
			return apperr.Field("value", "must be a number between 0 and 100")
		}
	case KeyMinAdvanceHours:
		n, err := v.Number()
		if typ != TypeNumber || err != nil || n < 0 {
			return apperr.Field("value", "must be a non-negative number of hours")
		}
	case KeyMaxDurationHours:
		n, err := v.Number()
		if typ != TypeNumber || err != nil || n <= 0 {
			return apperr.Field("value", "must be a positive number of hours")
		}
	}
	return nil
}

// Number reads a numeric setting, falling back when the key is absent.
func Number(ctx context.Context, store Store, key string, fallback float64) (float64, error) {
	value, found, err := store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return fallback, nil
	}
	n, err := value.Number()
	if err != nil {
		return 0, apperr.Internal("invalid numeric setting", fmt.Errorf("setting %s=%q: %w", key, value.Raw, err))
	}
	return n, nil
}

// Booking exposes the booking rules that can be tuned at runtime. Each read
// goes to the store so a change applies to the next request.
type Booking struct {
	store    Store
	defaults config.BookingConfig
}

func NewBooking(store Store, defaults config.BookingConfig) *Booking {
	return &Booking{store: store, defaults: defaults}
}

func (b *Booking) DepositPercent(ctx context.Context) (float64, error) {
	return Number(ctx, b.store, KeyDepositPercent, b.defaults.DepositPercent)
}

func (b *Booking) MinAdvance(ctx context.Context) (time.Duration, error) {
	hours, err := Number(ctx, b.store, KeyMinAdvanceHours, b.defaults.MinAdvanceHours)
	if err != nil {
		return 0, err
	}
	return hoursToDuration(hours), nil
}

func (b *Booking) MaxDuration(ctx context.Context) (time.Duration, error) {
	hours, err := Number(ctx, b.store, KeyMaxDurationHours, b.defaults.MaxDurationHours)
	if err != nil {
		return 0, err
	}
	return hoursToDuration(hours), nil
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
