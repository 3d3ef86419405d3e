package swiss

import "errors"

// Domain errors surfaced by the engine. All are non-retryable: the caller must
// resolve the underlying state (e.g. adjust the entrant list) before retrying.
var (
	// ErrNotFound means an operation referenced a player or tournament that
	// does not exist or is not linked as expected.
	ErrNotFound = errors.New("player or tournament not found")

	// ErrAlreadyByed means a bye was requested for a player who already has one.
	ErrAlreadyByed = errors.New("player has already received a bye")

	// ErrNoEligiblePlayer means an odd-sized field where every player already
	// holds a bye, so no legal bye target remains.
	ErrNoEligiblePlayer = errors.New("no eligible player for a bye")

	// ErrNoValidPairing means a player has already faced every remaining
	// candidate mid-round.
	ErrNoValidPairing = errors.New("no valid pairing")

	// ErrStore wraps failures from the standings store.
	ErrStore = errors.New("standings store failure")
)
