package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these, optionally
// wrapped, and services decide what they mean for the caller:
//   - ErrNotFound: the record does not exist for this tenant
//   - ErrExpired: a stored verification outcome outlived its TTL
//   - ErrConflict: a write collided with an existing key
//   - ErrUnavailable: the backing store or upstream cannot be reached
//
// Validation problems are not sentinels; use pkg/domain-errors for those.
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
