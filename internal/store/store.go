// Package store is the key/value persistence adapter. It exclusively owns the
// serialized form of the cart, the buy-now item, the candidate profile and the
// order ledger; every other component works on copies it reloads from here.
//
// Keys are unscoped and never expire. Writes to different keys are
// independent: there are no multi-key transactions.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/go-playground/validator/v10"
)

type Store interface {
	// Get decodes the value under key into dest. A missing key, or stored
	// bytes that do not decode into dest, report found=false with a nil error.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	Close() error
}

const (
	KeyCart      = "cart"
	KeyBuyNow    = "buyNow"
	KeyCandidate = "candidate"
	KeyOrders    = "orders"
)

var validate = validator.New()

// decode unmarshals raw into dest. Malformed data is logged and dest is reset
// to its zero value.
func decode(ctx context.Context, key string, raw []byte, dest any) bool {
	if err := json.Unmarshal(raw, dest); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Discarding malformed persisted value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		reset(dest)

		return false
	}

	return true
}

func reset(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

// Load reads key as a T and checks its shape with the struct tags of T. A
// value that decodes but fails validation is treated as absent.
func Load[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var value T

	found, err := s.Get(ctx, key, &value)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}

	if err := validateShape(value); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Discarding persisted value with invalid shape",
			slog.String("key", key),
			slog.String("error", err.Error()))

		var zero T
		return zero, false, nil
	}

	return value, true, nil
}

// Unmarshal decodes raw as a T and applies the same shape check as Load.
func Unmarshal[T any](raw []byte) (T, error) {
	var value T

	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, err
	}

	if err := validateShape(value); err != nil {
		var zero T
		return zero, err
	}

	return value, nil
}

func validateShape(value any) error {
	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return validate.Var(value, "dive")
	case reflect.Struct:
		return validate.Struct(value)
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return validateShape(v.Elem().Interface())
	default:
		return nil
	}
}
