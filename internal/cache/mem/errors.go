package mem

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("roster capacity exceeded")
	ErrStore            = errors.New("roster store failure")
	ErrEmptyName        = errors.New("player has no summoner name")
	ErrCorruptRoster    = errors.New("stored roster is corrupt")
)

// CapacityExceededError reports an add that would overflow the roster.
// Requested counts only players not already present.
type CapacityExceededError struct {
	Requested int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cannot add %d players: only %d slots left", e.Requested, e.Available)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// StoreError wraps a failed store call. The cached entry for the channel is
// invalid whenever a StoreError is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "roster store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
