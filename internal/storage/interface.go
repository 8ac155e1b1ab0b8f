package storage

import (
	"context"
	"errors"

	"github.com/goserg/teammaker/internal/domain"
)

var ErrNotFound = errors.New("roster not found")

// RosterStore persists one roster per channel.
// Save must apply atomically: either the whole roster is written or nothing.
type RosterStore interface {
	// Get returns ErrNotFound when the channel has no roster.
	Get(ctx context.Context, channelID string) (domain.Roster, error)
	Save(ctx context.Context, roster domain.Roster) error
	// Delete succeeds when there is nothing to delete.
	Delete(ctx context.Context, channelID string) error
}
