package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("no saved session")
	ErrRateLimited  = errors.New("too many attempts")
	ErrNotSupported = errors.New("not supported by server")
)
