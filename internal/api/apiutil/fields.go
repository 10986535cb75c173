package apiutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
)

// PathID reads a positive integer path value.
func PathID(r *http.Request, name string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(name), name)
}

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.Field(field, "is required")
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotValidFormat(field, field+" must be an integer")
	}
	if value <= 0 {
		return 0, apperr.Field(field, "must be greater than 0")
	}
	return value, nil
}

// QueryID reads an optional positive integer query parameter. An absent
// parameter reads as 0.
func QueryID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	return ParsePositiveInt64Field(raw, key)
}

// QueryInt reads an optional integer query parameter, returning 0 when absent.
func QueryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NotValidFormat(key, key+" must be an integer")
	}
	return value, nil
}

func QueryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.NotValidFormat(key, key+" must be true or false")
	}
	return value, nil
}

// QueryDate reads an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, key string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", nil
	}
	if !clock.IsISODate(raw) {
		return "", apperr.NotValidFormat(key, key+" must use the YYYY-MM-DD format")
	}
	return raw, nil
}

// RequireDate is QueryDate for a parameter that must be present.
func RequireDate(r *http.Request, key string) (string, error) {
	value, err := QueryDate(r, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", apperr.Field(key, "is required")
	}
	return value, nil
}
