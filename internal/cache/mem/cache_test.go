package mem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/storage"
	"github.com/goserg/teammaker/internal/storage/memory"
)

const channel = "guild-1"

// fakeStore wraps the memory store with call counters and injectable
// failures.
type fakeStore struct {
	*memory.Storage

	gets    atomic.Int32
	saves   atomic.Int32
	getGate chan struct{}

	mu        sync.Mutex
	saveErr   error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{Storage: memory.New()}
}

func (s *fakeStore) Get(ctx context.Context, channelID string) (domain.Roster, error) {
	s.gets.Add(1)
	roster, err := s.Storage.Get(ctx, channelID)
	// the gate holds an already read result, like a slow round trip
	if s.getGate != nil {
		<-s.getGate
	}
	return roster, err
}

func (s *fakeStore) Save(ctx context.Context, roster domain.Roster) error {
	s.saves.Add(1)
	s.mu.Lock()
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Storage.Save(ctx, roster)
}

func (s *fakeStore) Delete(ctx context.Context, channelID string) error {
	s.mu.Lock()
	err := s.deleteErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Storage.Delete(ctx, channelID)
}

func (s *fakeStore) failSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

var _ storage.RosterStore = (*fakeStore)(nil)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func players(names ...string) []domain.Player {
	out := make([]domain.Player, 0, len(names))
	for i, name := range names {
		out = append(out, domain.Player{
			SummonerName: name,
			Tier:         domain.TierGold,
			Division:     domain.DivisionII,
			LeaguePoints: i,
		})
	}
	return out
}

func numbered(prefix string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

func memberNames(r domain.Roster) []string {
	return names(r.Members)
}

func TestGetEmpty(t *testing.T) {
	c := New(newFakeStore(), testLogger())

	roster, err := c.Get(context.Background(), channel)
	require.NoError(t, err)
	assert.True(t, roster.Empty())
	assert.Equal(t, channel, roster.ChannelID)
}

func TestGetUnknownChannelsKeepNoEntries(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		roster, err := c.Get(ctx, fmt.Sprintf("unknown-%d", i))
		require.NoError(t, err)
		assert.True(t, roster.Empty())
	}
	c.mu.Lock()
	assert.Empty(t, c.entries)
	c.mu.Unlock()
}

func TestGetStoreErrorKeepsNoEntry(t *testing.T) {
	c := New(brokenStore{}, testLogger())

	_, err := c.Get(context.Background(), channel)
	require.ErrorIs(t, err, ErrStore)

	c.mu.Lock()
	assert.Empty(t, c.entries)
	c.mu.Unlock()
}

func TestInvalidateDropsEntry(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Storage.Save(context.Background(), domain.Roster{ChannelID: channel, Members: players("a")}))
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Get(ctx, channel)
	require.NoError(t, err)
	c.mu.Lock()
	assert.Len(t, c.entries, 1)
	c.mu.Unlock()

	c.Invalidate(channel)
	c.mu.Lock()
	assert.Empty(t, c.entries)
	c.mu.Unlock()

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, memberNames(roster))
	assert.EqualValues(t, 2, store.gets.Load())
}

func TestGetCachesAndCopies(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Storage.Save(context.Background(), domain.Roster{ChannelID: channel, Members: players("a", "b")}))
	c := New(store, testLogger())
	ctx := context.Background()

	first, err := c.Get(ctx, channel)
	require.NoError(t, err)
	first.Members[0].SummonerName = "mutated"

	second, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, memberNames(second))
	assert.EqualValues(t, 1, store.gets.Load())
}

func TestGetSingleFlight(t *testing.T) {
	store := newFakeStore()
	store.getGate = make(chan struct{})
	c := New(store, testLogger())

	const callers = 8
	var wg sync.WaitGroup
	results := make([]domain.Roster, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), channel)
		}(i)
	}

	require.Eventually(t, func() bool { return store.gets.Load() == 1 }, time.Second, time.Millisecond)
	// let every caller join the in-flight fetch before releasing it
	time.Sleep(20 * time.Millisecond)
	close(store.getGate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, channel, results[i].ChannelID)
	}
	assert.EqualValues(t, 1, store.gets.Load())
}

func TestAdd(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	res, err := c.Add(ctx, channel, players("Faker", "Chovy"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []string{"Faker", "Chovy"}, memberNames(res.Roster))

	stored, err := store.Storage.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"Faker", "Chovy"}, memberNames(stored))
}

func TestAddIdempotent(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("Hide on bush"))
	require.NoError(t, err)

	res, err := c.Add(ctx, channel, players("  HIDE   on Bush ", "hide on bush"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, []string{"Hide on bush"}, memberNames(res.Roster))
	assert.EqualValues(t, 1, store.saves.Load())
}

func TestAddSkipsDuplicateCandidates(t *testing.T) {
	c := New(newFakeStore(), testLogger())

	res, err := c.Add(context.Background(), channel, players("Caps", "caps", "Perkz"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []string{"Caps", "Perkz"}, memberNames(res.Roster))
}

func TestAddRejectsEmptyName(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())

	_, err := c.Add(context.Background(), channel, players("ok", "  "))
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.EqualValues(t, 0, store.saves.Load())
}

func TestAddCapacity(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players(numbered("p", 8)...))
	require.NoError(t, err)

	// one of the three is already present, so two are requested
	_, err = c.Add(ctx, channel, players("p0", "new1", "new2", "new3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 3, capErr.Requested)
	assert.Equal(t, 2, capErr.Available)

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, 8, roster.Len())
	assert.EqualValues(t, 1, store.saves.Load())

	res, err := c.Add(ctx, channel, players("p1", "new1", "new2"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.True(t, res.Roster.Full())
}

func TestAddNeverExceedsCapacity(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := c.Add(ctx, channel, players(fmt.Sprintf("solo%d", i)))
		if i < domain.MaxPlayers {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, ErrCapacityExceeded)
		}
		roster, err := c.Get(ctx, channel)
		require.NoError(t, err)
		require.LessOrEqual(t, roster.Len(), domain.MaxPlayers)
	}
}

func TestAddInvalidatesCache(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Get(ctx, channel)
	require.NoError(t, err)
	_, err = c.Add(ctx, channel, players("a"))
	require.NoError(t, err)
	before := store.gets.Load()

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, memberNames(roster))
	assert.Equal(t, before+1, store.gets.Load())
}

func TestConcurrentAdds(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("existing0", "existing1", "existing2"))
	require.NoError(t, err)

	newNames := numbered("new", 7)
	var wg sync.WaitGroup
	errs := make(chan error, len(newNames))
	for _, name := range newNames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := c.Add(ctx, channel, players(name))
			errs <- err
		}(name)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	want := append([]string{"existing0", "existing1", "existing2"}, newNames...)
	assert.ElementsMatch(t, want, memberNames(roster))

	stored, err := store.Storage.Get(ctx, channel)
	require.NoError(t, err)
	assert.ElementsMatch(t, want, memberNames(stored))
	assert.Zero(t, c.locks.len())
}

func TestConcurrentAddsRespectCapacity(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, full atomic.Int32
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Add(ctx, channel, players(fmt.Sprintf("p%d", i)))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrCapacityExceeded):
				full.Add(1)
			default:
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, domain.MaxPlayers, ok.Load())
	assert.EqualValues(t, 15, full.Load())
	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPlayers, roster.Len())
}

func TestChannelsAreIndependent(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	unlock, err := c.locks.lock(ctx, "busy")
	require.NoError(t, err)
	defer unlock()

	done := make(chan error, 1)
	go func() {
		_, err := c.Add(ctx, "other", players("a"))
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("add on another channel blocked")
	}
}

func TestAddCancelledWhileWaiting(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())

	unlock, err := c.locks.lock(context.Background(), channel)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Add(ctx, channel, players("late"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	unlock()

	roster, err := c.Get(context.Background(), channel)
	require.NoError(t, err)
	assert.True(t, roster.Empty())
	assert.EqualValues(t, 0, store.saves.Load())
	assert.Zero(t, c.locks.len())
}

func TestSaveErrorInvalidates(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("a"))
	require.NoError(t, err)
	_, err = c.Get(ctx, channel)
	require.NoError(t, err)

	boom := errors.New("disk full")
	store.failSaves(boom)
	_, err = c.Add(ctx, channel, players("b"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, boom)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "save", storeErr.Op)

	c.mu.Lock()
	_, cached := c.entries[channel]
	c.mu.Unlock()
	assert.False(t, cached)

	gets := store.gets.Load()
	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, memberNames(roster))
	assert.Equal(t, gets+1, store.gets.Load())
}

func TestGetStoreError(t *testing.T) {
	c := New(brokenStore{}, testLogger())

	_, err := c.Get(context.Background(), channel)
	assert.ErrorIs(t, err, ErrStore)
}

func TestGetRejectsCorruptRoster(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Storage.Save(context.Background(), domain.Roster{
		ChannelID: channel,
		Members:   players("dup", "DUP"),
	}))
	c := New(store, testLogger())

	_, err := c.Get(context.Background(), channel)
	assert.ErrorIs(t, err, ErrCorruptRoster)
}

func TestRemove(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("Faker", "Chovy", "Caps"))
	require.NoError(t, err)

	res, err := c.Remove(ctx, channel, []string{" faker", "Nobody", "CAPS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chovy"}, memberNames(res.Roster))
	assert.Equal(t, []string{"Nobody"}, res.Unmatched)

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chovy"}, memberNames(roster))
}

func TestRemoveRepeatedNames(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("a", "b"))
	require.NoError(t, err)

	res, err := c.Remove(ctx, channel, []string{"a", "A ", "a"})
	require.NoError(t, err)
	assert.Empty(t, res.Unmatched)
	assert.Equal(t, []string{"b"}, memberNames(res.Roster))
}

func TestRemoveNothingMatched(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("a"))
	require.NoError(t, err)

	res, err := c.Remove(ctx, channel, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, res.Unmatched)
	assert.Equal(t, []string{"a"}, memberNames(res.Roster))
	assert.EqualValues(t, 1, store.saves.Load())
}

func TestRemoveThenAddRestoresRoster(t *testing.T) {
	c := New(newFakeStore(), testLogger())
	ctx := context.Background()

	original := players("a", "b", "c", "d")
	_, err := c.Add(ctx, channel, original)
	require.NoError(t, err)

	_, err = c.Remove(ctx, channel, []string{"b", "d"})
	require.NoError(t, err)
	res, err := c.Add(ctx, channel, []domain.Player{original[1], original[3]})
	require.NoError(t, err)

	assert.ElementsMatch(t, original, res.Roster.Members)
}

func TestClear(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("a", "b"))
	require.NoError(t, err)
	_, err = c.Get(ctx, channel)
	require.NoError(t, err)

	require.NoError(t, c.Clear(ctx, channel))
	require.NoError(t, c.Clear(ctx, channel))

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.True(t, roster.Empty())
	_, err = store.Storage.Get(ctx, channel)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClearStoreError(t *testing.T) {
	store := newFakeStore()
	c := New(store, testLogger())
	ctx := context.Background()

	_, err := c.Add(ctx, channel, players("a"))
	require.NoError(t, err)

	store.mu.Lock()
	store.deleteErr = errors.New("connection reset")
	store.mu.Unlock()

	err = c.Clear(ctx, channel)
	assert.ErrorIs(t, err, ErrStore)
	c.mu.Lock()
	_, cached := c.entries[channel]
	c.mu.Unlock()
	assert.False(t, cached)
}

func TestStaleFetchDoesNotRepopulate(t *testing.T) {
	store := newFakeStore()
	store.getGate = make(chan struct{})
	c := New(store, testLogger())
	ctx := context.Background()

	// a reader starts a fetch of the empty roster and stalls
	readerDone := make(chan domain.Roster, 1)
	go func() {
		r, _ := c.Get(ctx, channel)
		readerDone <- r
	}()
	require.Eventually(t, func() bool { return store.gets.Load() == 1 }, time.Second, time.Millisecond)

	// a writer commits while the fetch is in flight
	require.NoError(t, store.Storage.Save(ctx, domain.Roster{ChannelID: channel, Members: players("w")}))
	c.Invalidate(channel)

	close(store.getGate)
	<-readerDone

	roster, err := c.Get(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, []string{"w"}, memberNames(roster))
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (domain.Roster, error) {
	return domain.Roster{}, errors.New("unreachable")
}

func (brokenStore) Save(context.Context, domain.Roster) error {
	return errors.New("unreachable")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("unreachable")
}
