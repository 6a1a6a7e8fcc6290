package settlement

import "errors"

var (
	// ErrInvalidEvent marks an event that is addressed to a known race but cannot be applied.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidTransition marks an event that conflicts with the race's lifecycle state.
	ErrInvalidTransition = errors.New("invalid race transition")

	// ErrSettlementFailed marks a settlement transaction that was not submitted or was reverted.
	// The failure is recorded on the race before this error is returned.
	ErrSettlementFailed = errors.New("settlement failed")

	// ErrNotAuthorized is returned when the configured signer may not settle races.
	ErrNotAuthorized = errors.New("signer is not the race oracle")
)
