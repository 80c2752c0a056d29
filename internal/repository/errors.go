// Package repository implements MySQL persistence for users, sessions,
// vessels, operator assignments and reservations. The vessel and
// reservation repositories satisfy the charter package's store ports.
// Sentinel errors defined here let handlers pick HTTP status codes
// without inspecting driver error strings.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as assigning an operator who is already
// assigned. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// mysqlErrCode reports whether err carries the given MySQL error number,
// e.g. "1062" for duplicate key or "1451" for a restricted FK delete.
func mysqlErrCode(err error, code string) bool {
	return err != nil && strings.Contains(err.Error(), code)
}
