package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid")
	ErrInternal       = errors.New("internal")
	ErrCLIUnavailable = errors.New("bitwarden cli unavailable")
	ErrServeFailed    = errors.New("bw serve failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
