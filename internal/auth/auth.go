package auth

import "errors"

// ErrAuthRequired indicates no usable bearer token is available. Callers must
// not retry automatically; a fresh token has to be supplied first.
var ErrAuthRequired = errors.New("authentication required")

// TokenProvider supplies the bearer token used for both the push channel and
// the REST calls.
type TokenProvider interface {
	// Token returns the current bearer token without the "Bearer " prefix,
	// or ErrAuthRequired when none is available or the token has expired.
	Token() (string, error)
}
