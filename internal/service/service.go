package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/goserg/teammaker/internal/balance"
	"github.com/goserg/teammaker/internal/cache/mem"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/normalize"
	"github.com/goserg/teammaker/internal/ranklookup"
)

const lookupParallelism = 4

var (
	ErrNoNames      = errors.New("no summoner names given")
	ErrTooManyNames = fmt.Errorf("at most %d summoner names per request", domain.MaxPlayers)
)

// RosterService runs the roster commands of one bot. Rank lookups happen
// before the roster cache takes the channel lock.
type RosterService struct {
	rosters *mem.Cache
	lookup  ranklookup.Lookup
	log     *logrus.Entry
}

func New(rosters *mem.Cache, lookup ranklookup.Lookup, l *logrus.Logger) *RosterService {
	return &RosterService{
		rosters: rosters,
		lookup:  lookup,
		log:     l.WithField("from", "roster-service"),
	}
}

// List returns the channel roster, empty when nobody was added.
func (s *RosterService) List(ctx context.Context, channelID string) (domain.Roster, error) {
	return s.rosters.Get(ctx, channelID)
}

// Add resolves the ranks of names not yet on the roster and adds them.
func (s *RosterService) Add(ctx context.Context, channelID string, names []string) (mem.AddResult, error) {
	names = normalize.Unique(names)
	if len(names) == 0 {
		return mem.AddResult{}, ErrNoNames
	}

	current, err := s.rosters.Get(ctx, channelID)
	if err != nil {
		return mem.AddResult{}, err
	}
	present := normalize.Set(memberNames(current)...)
	missing := make([]string, 0, len(names))
	for _, name := range names {
		if !present.Contains(normalize.Name(name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return mem.AddResult{Roster: current}, nil
	}
	// Checked again under the channel lock; this only saves lookups.
	if available := domain.MaxPlayers - current.Len(); len(missing) > available {
		return mem.AddResult{}, &mem.CapacityExceededError{Requested: len(missing), Available: available}
	}

	players, err := s.resolve(ctx, missing)
	if err != nil {
		return mem.AddResult{}, err
	}
	return s.rosters.Add(ctx, channelID, players)
}

// resolve looks names up concurrently and keeps their order.
func (s *RosterService) resolve(ctx context.Context, names []string) ([]domain.Player, error) {
	players := make([]domain.Player, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupParallelism)
	for i, name := range names {
		g.Go(func() error {
			p, err := s.lookup.Lookup(gctx, name)
			if err != nil {
				return err
			}
			if p.SummonerName == "" {
				p.SummonerName = name
			}
			players[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Warn("rank lookup failed")
		return nil, err
	}
	return players, nil
}

// Remove drops the named players. Unknown names are reported, not fatal.
func (s *RosterService) Remove(ctx context.Context, channelID string, names []string) (mem.RemoveResult, error) {
	names = normalize.Unique(names)
	if len(names) == 0 {
		return mem.RemoveResult{}, ErrNoNames
	}
	if len(names) > domain.MaxPlayers {
		return mem.RemoveResult{}, ErrTooManyNames
	}
	return s.rosters.Remove(ctx, channelID, names)
}

func (s *RosterService) Clear(ctx context.Context, channelID string) error {
	return s.rosters.Clear(ctx, channelID)
}

// MakeTeams splits a full roster into two teams.
func (s *RosterService) MakeTeams(ctx context.Context, channelID string) (balance.Teams, error) {
	roster, err := s.rosters.Get(ctx, channelID)
	if err != nil {
		return balance.Teams{}, err
	}
	return balance.Balance(roster.Members)
}

// Rank looks up a single summoner without touching any roster.
func (s *RosterService) Rank(ctx context.Context, name string) (domain.Player, error) {
	if normalize.Name(name) == "" {
		return domain.Player{}, ErrNoNames
	}
	return s.lookup.Lookup(ctx, name)
}

func memberNames(r domain.Roster) []string {
	out := make([]string, 0, r.Len())
	for _, p := range r.Members {
		out = append(out, p.SummonerName)
	}
	return out
}
