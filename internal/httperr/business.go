package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInvalidState Kind = "invalid_state"
	KindValidation   Kind = "validation"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func NotFoundErr(code string) error     { return ErrBusiness(KindNotFound, code) }
func ForbiddenErr(code string) error    { return ErrBusiness(KindForbidden, code) }
func ConflictErr(code string) error     { return ErrBusiness(KindConflict, code) }
func InvalidStateErr(code string) error { return ErrBusiness(KindInvalidState, code) }
func ValidationErr(code string) error   { return ErrBusiness(KindValidation, code) }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// IsExclusionConflict reports whether err is a Postgres exclusion or unique
// violation, i.e. a second writer losing a race on the same slot or key.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
