package room

import (
	"context"
	"errors"
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/model/memstore"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	lock          sync.Mutex
	topics        []string
	notifications []*Notification
}

func (r *recordingPublisher) Publish(topic string, n *Notification) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.topics = append(r.topics, topic)
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recordingPublisher) kinds() []EventKind {
	r.lock.Lock()
	defer r.lock.Unlock()

	kinds := make([]EventKind, len(r.notifications))
	for i, n := range r.notifications {
		kinds[i] = n.Kind
	}

	return kinds
}

func (r *recordingPublisher) last(kind EventKind) *Notification {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Kind == kind {
			return r.notifications[i]
		}
	}

	return nil
}

// failingStore fails every table save while failSave is set
type failingStore struct {
	*memstore.Store
	lock     sync.Mutex
	failSave bool
}

var errSaveFailed = errors.New("save failed")

func (f *failingStore) SaveTable(ctx context.Context, t *model.Table) error {
	f.lock.Lock()
	fail := f.failSave
	f.lock.Unlock()

	if fail {
		return errSaveFailed
	}

	return f.Store.SaveTable(ctx, t)
}

// slowLoadStore holds up loading one table until release is closed
type slowLoadStore struct {
	*memstore.Store
	tableID string
	once    sync.Once
	loading chan struct{}
	release chan struct{}
}

func newSlowLoadStore(tableID string) *slowLoadStore {
	return &slowLoadStore{
		Store:   memstore.New(),
		tableID: tableID,
		loading: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *slowLoadStore) LoadTable(ctx context.Context, tableID string) (*model.Table, error) {
	if tableID == s.tableID {
		s.once.Do(func() { close(s.loading) })
		<-s.release
	}

	return s.Store.LoadTable(ctx, tableID)
}

func (f *failingStore) setFailSave(fail bool) {
	f.lock.Lock()
	f.failSave = fail
	f.lock.Unlock()
}

// sequence returns a generator that seats players in order and deals distinct cards
func sequence() rng.Generator {
	values := make([]int, 52)
	for i := range values {
		values[i] = i
	}

	return rng.NewSequence(values...)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.NextHandDelay = -1
	opts.Rand = sequence()
	return opts
}

func newTestPitBoss(t *testing.T, store model.Store, opts Options) (*PitBoss, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	p := NewPitBoss(store, pub, opts)
	t.Cleanup(p.EndShift)
	return p, pub
}

func createUser(t *testing.T, store model.AccountStore, name string, money int) *model.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), name, money)
	require.NoError(t, err)
	return u
}

func balance(t *testing.T, store model.AccountStore, userID int64) int {
	t.Helper()
	u, err := store.FindUser(context.Background(), userID)
	require.NoError(t, err)
	return u.Money
}

func assertOccupancy(t *testing.T, view *model.TableView) {
	t.Helper()
	require.Equal(t, len(view.Players), view.TotalPlayer)
	seen := make(map[int]bool)
	for _, p := range view.Players {
		require.False(t, seen[p.Position], "seat %d is taken twice", p.Position)
		seen[p.Position] = true
	}
}
