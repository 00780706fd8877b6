// Package apperrors defines the error taxonomy shared by all services.
// Handlers translate these sentinels into HTTP status codes; services never
// leak raw store errors past their boundary.
package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound - a referenced post/user/comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized - the actor lacks permission for the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput - empty text, empty image URL, malformed field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidOperation - structurally disallowed, e.g. following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrStoreUnavailable - the store is not initialized/migrated yet.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// FromStore classifies an error coming out of the entity store. Record-not-found
// becomes ErrNotFound, missing-schema errors become ErrStoreUnavailable, taxonomy
// sentinels pass through untouched, anything else is returned as-is for the
// generic-failure path.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isSchemaMissing(err):
		return ErrStoreUnavailable
	}
	return err
}

// isSchemaMissing matches the driver messages for querying a table that was
// never migrated: SQLSTATE 42P01 on Postgres, "no such table" on SQLite.
// Nothing broader: a missing column is a schema bug, not an uninitialized
// store, and must not degrade reads to empty.
func isSchemaMissing(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 42P01") ||
		strings.Contains(msg, "no such table")
}

// HTTPStatus maps a service error to the status code the JSON envelope carries.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
