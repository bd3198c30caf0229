package roster

import "errors"

// Sentinel error kinds for roster preparation.
var (
	ErrSelectionFull = errors.New("selection is full")
	ErrEmptyRoster   = errors.New("roster has no players")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrDuplicateID   = errors.New("duplicate player id")
	ErrInvalidGuest  = errors.New("invalid guest")
)
