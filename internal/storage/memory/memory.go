// Package memory is a RosterStore kept in process memory. It backs tests
// and the "memory" storage driver.
package memory

import (
	"context"
	"sync"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/storage"
)

type Storage struct {
	mu      sync.RWMutex
	rosters map[string]domain.Roster
}

var _ storage.RosterStore = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		rosters: make(map[string]domain.Roster),
	}
}

func (s *Storage) Get(ctx context.Context, channelID string) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster, ok := s.rosters[channelID]
	if !ok {
		return domain.Roster{}, storage.ErrNotFound
	}
	return roster.Clone(), nil
}

func (s *Storage) Save(ctx context.Context, roster domain.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters[roster.ChannelID] = roster.Clone()
	return nil
}

func (s *Storage) Delete(ctx context.Context, channelID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rosters, channelID)
	return nil
}
