package domain

import (
	"errors"

	"github.com/matchsage/booking-api/internal/httperr"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// NotFoundAs turns ErrNotFound into a not_found business error with the
// given code and passes other errors through.
func NotFoundAs(err error, code string) error {
	if errors.Is(err, ErrNotFound) {
		return httperr.NotFoundErr(code)
	}
	return err
}
