package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrInvalid
	ErrNotFound
	ErrTooMany
	ErrInternal
	ErrCLIUnavailable
	ErrServeFailed
	ErrProxyFailed
)
