package session

import "errors"

var (
	// ErrCommandRejected indicates a command was issued from an invalid
	// state or while another command for the session was still in flight.
	// The backend is never called in that case.
	ErrCommandRejected = errors.New("session command rejected")

	// ErrRequestFailed indicates the backend rejected or failed a session
	// mutation; local state has been kept at (or rolled back to) its
	// pre-attempt value.
	ErrRequestFailed = errors.New("session request failed")
)
