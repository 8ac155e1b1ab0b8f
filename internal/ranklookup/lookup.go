// Package ranklookup resolves summoner names to solo queue ranks.
package ranklookup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/normalize"
)

var (
	ErrSummonerNotFound = errors.New("summoner not found")
	ErrService          = errors.New("rank service unavailable")
)

// Lookup resolves one summoner. Implementations return ErrSummonerNotFound
// for unknown names and wrap every other failure with ErrService.
type Lookup interface {
	Lookup(ctx context.Context, name string) (domain.Player, error)
}

// NotFoundError names the summoner that could not be resolved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("summoner %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSummonerNotFound
}

// Static serves ranks from memory. It is used for offline runs and tests.
type Static struct {
	mu      sync.RWMutex
	players map[string]domain.Player
}

var _ Lookup = (*Static)(nil)

func NewStatic(players ...domain.Player) *Static {
	s := &Static{players: make(map[string]domain.Player, len(players))}
	for _, p := range players {
		s.Set(p)
	}
	return s
}

func (s *Static) Set(p domain.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[normalize.Name(p.SummonerName)] = p
}

func (s *Static) Lookup(ctx context.Context, name string) (domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[normalize.Name(name)]
	if !ok {
		return domain.Player{}, &NotFoundError{Name: name}
	}
	return p, nil
}
