package model

import "errors"

var (
	// ErrRequestNotFound indicates that no team request has the given id.
	ErrRequestNotFound = errors.New("team request not found")
	// ErrRequestExists indicates that a team request with the given id already exists.
	ErrRequestExists = errors.New("team request already exists")
	// ErrForbidden indicates that the supplied fingerprint does not own the request.
	ErrForbidden = errors.New("fingerprint does not match request owner")
	// ErrInvalidRequest indicates that a required field is missing.
	ErrInvalidRequest = errors.New("invalid team request")
	// ErrStoreUnavailable indicates that the document store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
