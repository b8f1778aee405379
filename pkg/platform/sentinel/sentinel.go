package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Accessors and stores return these
// (optionally wrapped) so the orchestrator can translate them into tagged
// service errors with a status code.
//
// - ErrNotFound: session, instrument or partner settings do not exist
// - ErrConflict: the session already holds a conflicting value
// - ErrInvalidState: session in wrong state for the requested step
// - ErrRejected: the downstream service refused the payload
// - ErrUnavailable: downstream service temporarily unavailable
//
// For caller input problems use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrRejected     = errors.New("rejected")
	ErrUnavailable  = errors.New("unavailable")
)
