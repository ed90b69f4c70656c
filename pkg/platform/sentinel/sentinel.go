package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and lookup tables return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrUnavailable: backing service (Postgres, Redis) temporarily unavailable
//
// For validation errors (bad input, malformed feeds), use pkg/domainerrors.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
