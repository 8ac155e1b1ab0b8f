// Package mem keeps per-channel rosters in memory in front of a RosterStore.
//
// Reads go through the cache and concurrent misses for one channel share a
// single store fetch. Add, Remove and Clear run under a per-channel lock
// covering read, compute, persist and invalidate, so writers to the same
// channel are linearised while different channels never wait for each other.
package mem

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/normalize"
	"github.com/goserg/teammaker/internal/storage"
)

type Cache struct {
	store storage.RosterStore
	log   *logrus.Entry

	mu      sync.Mutex
	entries map[string]*entry
	// gen is shared by all entries so that a dropped and recreated entry
	// never reuses a generation. Only non-empty rosters and fetches in
	// flight hold an entry.
	gen uint64

	flight singleflight.Group
	locks  *lockTable
}

// entry is valid once the fetch started at gen has completed. An entry is
// never reused after invalidation; a new one with a fresh gen replaces it.
type entry struct {
	roster domain.Roster
	valid  bool
	gen    uint64
}

type AddResult struct {
	Roster domain.Roster
	Added  int
}

type RemoveResult struct {
	Roster    domain.Roster
	Unmatched []string
}

func New(store storage.RosterStore, l *logrus.Logger) *Cache {
	return &Cache{
		store:   store,
		log:     l.WithField("from", "roster-cache"),
		entries: make(map[string]*entry),
		locks:   newLockTable(),
	}
}

// Get returns the roster of a channel. A channel without a roster yields an
// empty one. The result is a copy and may be modified by the caller.
func (c *Cache) Get(ctx context.Context, channelID string) (domain.Roster, error) {
	c.mu.Lock()
	e, ok := c.entries[channelID]
	if ok && e.valid {
		roster := e.roster.Clone()
		c.mu.Unlock()
		return roster, nil
	}
	if !ok {
		e = &entry{gen: c.nextGen()}
		c.entries[channelID] = e
	}
	gen := e.gen
	c.mu.Unlock()

	return c.fetch(ctx, channelID, gen)
}

// fetch loads a roster from the store. Callers asking for the same channel
// and generation share one store call.
func (c *Cache) fetch(ctx context.Context, channelID string, gen uint64) (domain.Roster, error) {
	key := channelID + "#" + strconv.FormatUint(gen, 10)
	// The shared call must not be cancelled by whichever caller started it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (any, error) {
		log := c.log.WithField("channel_id", channelID)
		log.Debug("roster cache miss")

		roster, err := c.store.Get(fetchCtx, channelID)
		if errors.Is(err, storage.ErrNotFound) {
			roster, err = domain.Roster{ChannelID: channelID}, nil
		}
		if err != nil {
			c.dropGen(channelID, gen)
			log.WithError(err).Error("unable to load roster")
			return nil, &StoreError{Op: "get", Err: err}
		}
		roster.ChannelID = channelID
		if err := validate(roster); err != nil {
			c.dropGen(channelID, gen)
			log.WithError(err).Error("stored roster rejected")
			return nil, err
		}
		c.populate(channelID, gen, roster)
		return roster, nil
	})

	select {
	case <-ctx.Done():
		return domain.Roster{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Roster{}, res.Err
		}
		return res.Val.(domain.Roster).Clone(), nil
	}
}

// populate stores a fetched roster. Empty rosters are not kept, so reads of
// unknown channels leave no entry behind.
func (c *Cache) populate(channelID string, gen uint64, roster domain.Roster) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[channelID]
	if !ok || e.gen != gen {
		// invalidated while the fetch was running
		return
	}
	if roster.Empty() {
		delete(c.entries, channelID)
		return
	}
	e.roster = roster.Clone()
	e.valid = true
}

// dropGen removes the entry only if no invalidation happened since gen.
func (c *Cache) dropGen(channelID string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[channelID]; ok && e.gen == gen {
		delete(c.entries, channelID)
	}
}

// Add appends candidates to the channel roster. Candidates whose name is
// already on the roster, or repeated among candidates, are skipped without
// error. Nothing is written when the result would exceed domain.MaxPlayers.
func (c *Cache) Add(ctx context.Context, channelID string, candidates []domain.Player) (AddResult, error) {
	for _, p := range candidates {
		if normalize.Name(p.SummonerName) == "" {
			return AddResult{}, ErrEmptyName
		}
	}

	unlock, err := c.locks.lock(ctx, channelID)
	if err != nil {
		return AddResult{}, err
	}
	defer unlock()

	current, err := c.Get(ctx, channelID)
	if err != nil {
		return AddResult{}, err
	}

	present := normalize.Set(names(current.Members)...)
	toAdd := make([]domain.Player, 0, len(candidates))
	for _, p := range candidates {
		if !present.Add(normalize.Name(p.SummonerName)) {
			continue
		}
		p.SummonerName = strings.TrimSpace(p.SummonerName)
		toAdd = append(toAdd, p)
	}

	if available := domain.MaxPlayers - current.Len(); len(toAdd) > available {
		return AddResult{}, &CapacityExceededError{Requested: len(toAdd), Available: available}
	}
	if len(toAdd) == 0 {
		return AddResult{Roster: current}, nil
	}

	next := current.Clone()
	next.Members = append(next.Members, toAdd...)
	if err := c.save(ctx, next); err != nil {
		return AddResult{}, err
	}
	c.log.WithFields(logrus.Fields{
		"channel_id": channelID,
		"added":      len(toAdd),
		"size":       next.Len(),
	}).Info("players added")
	return AddResult{Roster: next, Added: len(toAdd)}, nil
}

// Remove drops the named players from the channel roster. Names that match
// nobody are returned in Unmatched; the rest are still removed. Names that
// normalise to the same player count once.
func (c *Cache) Remove(ctx context.Context, channelID string, names []string) (RemoveResult, error) {
	names = normalize.Unique(names)

	unlock, err := c.locks.lock(ctx, channelID)
	if err != nil {
		return RemoveResult{}, err
	}
	defer unlock()

	current, err := c.Get(ctx, channelID)
	if err != nil {
		return RemoveResult{}, err
	}

	next := current.Clone()
	var unmatched []string
	for _, name := range names {
		i := slices.IndexFunc(next.Members, func(p domain.Player) bool {
			return normalize.Same(p.SummonerName, name)
		})
		if i < 0 {
			unmatched = append(unmatched, name)
			continue
		}
		next.Members = slices.Delete(next.Members, i, i+1)
	}

	if next.Len() == current.Len() {
		return RemoveResult{Roster: current, Unmatched: unmatched}, nil
	}
	if err := c.save(ctx, next); err != nil {
		return RemoveResult{}, err
	}
	c.log.WithFields(logrus.Fields{
		"channel_id": channelID,
		"removed":    current.Len() - next.Len(),
		"unmatched":  len(unmatched),
	}).Info("players removed")
	return RemoveResult{Roster: next, Unmatched: unmatched}, nil
}

// Clear deletes the channel roster. Clearing an empty channel succeeds.
func (c *Cache) Clear(ctx context.Context, channelID string) error {
	unlock, err := c.locks.lock(ctx, channelID)
	if err != nil {
		return err
	}
	defer unlock()

	err = c.store.Delete(ctx, channelID)
	c.drop(channelID)
	if err != nil {
		c.log.WithError(err).WithField("channel_id", channelID).Error("unable to delete roster")
		return &StoreError{Op: "delete", Err: err}
	}
	c.log.WithField("channel_id", channelID).Info("roster cleared")
	return nil
}

// Invalidate forces the next Get for channelID to read the store. The entry
// is dropped; a fetch still in flight finds it gone and discards its result.
func (c *Cache) Invalidate(channelID string) {
	c.drop(channelID)
}

// save persists roster and invalidates its entry whatever the outcome,
// since a failed save may still have reached the store.
func (c *Cache) save(ctx context.Context, roster domain.Roster) error {
	err := c.store.Save(ctx, roster)
	c.Invalidate(roster.ChannelID)
	if err != nil {
		c.log.WithError(err).WithField("channel_id", roster.ChannelID).Error("unable to save roster")
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

func (c *Cache) drop(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, channelID)
}

// nextGen must be called with c.mu held.
func (c *Cache) nextGen() uint64 {
	c.gen++
	return c.gen
}

func validate(roster domain.Roster) error {
	if roster.Len() > domain.MaxPlayers {
		return ErrCorruptRoster
	}
	seen := normalize.Set()
	for _, p := range roster.Members {
		name := normalize.Name(p.SummonerName)
		if name == "" || !seen.Add(name) {
			return ErrCorruptRoster
		}
	}
	return nil
}

func names(players []domain.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.SummonerName)
	}
	return out
}
