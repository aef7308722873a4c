package room

import (
	"context"
	"errors"
	"fmt"
	"math"
	"pokerv2-server/internal/rng"
	"pokerv2-server/pkg/holdem"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/poker"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxJoinAttempts bounds how many tables a join tries before giving up
const maxJoinAttempts = 5

// minBlind keeps the small blind above zero
const minBlind = 2

// Options configures the tables a PitBoss runs
type Options struct {
	DefaultBlind int
	// MaxBlind is the largest blind a join may ask for, 0 disables the bound
	MaxBlind int
	// MinBuyInBB and MaxBuyInBB bound the buy-in in big blinds, 0 disables the bound
	MinBuyInBB  int
	MaxBuyInBB  int
	BlindPolicy holdem.BlindPolicy
	Ranker      poker.Ranker
	// NextHandDelay is how long after a hand the next one starts, negative disables it
	NextHandDelay time.Duration
	Rand          rng.Generator
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		DefaultBlind:  1000,
		MaxBlind:      0,
		MinBuyInBB:    0,
		MaxBuyInBB:    0,
		BlindPolicy:   holdem.BlindPolicyAllIn,
		Ranker:        poker.AnalyzerRanker{},
		NextHandDelay: 5 * time.Second,
		Rand:          rng.Crypto{},
	}
}

// PitBoss is responsible for dispatching players to tables
// It is the only way into a table; each table is changed by its own Dealer.
type PitBoss struct {
	store     model.Store
	publisher Publisher
	opts      Options

	dealers map[string]*Dealer
	// retired counts retired dealers, a load that saw a different count may be stale
	retired uint64
	lock    sync.Mutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(store model.Store, publisher Publisher, opts Options) *PitBoss {
	defaults := DefaultOptions()
	if opts.DefaultBlind <= 0 {
		opts.DefaultBlind = defaults.DefaultBlind
	}

	if opts.MaxBlind > 0 && opts.MaxBlind < opts.DefaultBlind {
		opts.MaxBlind = opts.DefaultBlind
	}

	if opts.BlindPolicy == "" {
		opts.BlindPolicy = defaults.BlindPolicy
	}

	if opts.Ranker == nil {
		opts.Ranker = defaults.Ranker
	}

	if opts.Rand == nil {
		opts.Rand = defaults.Rand
	}

	if publisher == nil {
		publisher = LogPublisher{}
	}

	return &PitBoss{
		store:     store,
		publisher: publisher,
		opts:      opts,
		dealers:   make(map[string]*Dealer),
	}
}

// EndShift stops every dealer
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for id, d := range p.dealers {
		dealers = append(dealers, d)
		delete(p.dealers, id)
	}
	p.lock.Unlock()

	for _, d := range dealers {
		d.EndShift()
	}
}

func (p *PitBoss) publish(n *Notification) {
	topic := Topic(n.Table.ID)
	if err := p.publisher.Publish(topic, n); err != nil {
		logrus.WithError(err).WithField("topic", topic).Warn("could not publish notification")
	}
}

func (p *PitBoss) running(tableID string) (*Dealer, uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.dealers[tableID], p.retired
}

func (p *PitBoss) generation() uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.retired
}

// dealer returns the dealer for the table, loading the table if it is not running yet
// The table is loaded without holding the lock so a slow load only holds up its own table.
func (p *PitBoss) dealer(ctx context.Context, tableID string) (*Dealer, error) {
	for {
		d, gen := p.running(tableID)
		if d != nil {
			return d, nil
		}

		t, err := p.store.LoadTable(ctx, tableID)
		if err != nil {
			return nil, err
		}

		if d, ok := p.startDealer(t, gen); ok {
			return d, nil
		}
	}
}

// startDealer starts a dealer for the table, unless another load got there first
// Returns false when a dealer retired since gen was read, the table must be loaded again.
func (p *PitBoss) startDealer(t *model.Table, gen uint64) (*Dealer, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if d, ok := p.dealers[t.ID]; ok {
		return d, true
	}

	if p.retired != gen {
		return nil, false
	}

	d := NewDealer(p, t)
	d.StartShift()
	p.dealers[t.ID] = d
	return d, true
}

// onTable runs fn with the table's dealer
// A dealer retired between the lookup and fn is replaced by a freshly loaded one.
func (p *PitBoss) onTable(ctx context.Context, tableID string, fn func(d *Dealer) (*model.Table, error)) (*Dealer, *model.Table, error) {
	for attempt := 0; attempt < 2; attempt++ {
		d, err := p.dealer(ctx, tableID)
		if err != nil {
			return nil, nil, err
		}

		t, err := fn(d)
		if errors.Is(err, errDealerClosed) {
			p.forget(d)
			continue
		}

		return d, t, err
	}

	return nil, nil, errDealerClosed
}

// forget drops a dealer whose shift is over
func (p *PitBoss) forget(d *Dealer) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[d.tableID] == d {
		delete(p.dealers, d.tableID)
		p.retired++
	}
}

// retire stops the dealer once its table is empty between hands
// The table stays in the store and gets a new dealer the next time it is used.
func (p *PitBoss) retire(d *Dealer) {
	if !d.retireIfIdle() {
		return
	}

	p.forget(d)
	d.log.Info("retired dealer")
}

// openTable saves a new table and starts its dealer
func (p *PitBoss) openTable(ctx context.Context, blind int) (*Dealer, error) {
	gen := p.generation()
	t := model.NewTable(blind)
	if err := p.store.SaveTable(ctx, t); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"table": t.ID,
		"blind": blind,
	}).Info("opened table")

	if d, ok := p.startDealer(t, gen); ok {
		return d, nil
	}

	return p.dealer(ctx, t.ID)
}

func (p *PitBoss) validateBuyIn(buyInBB int) error {
	if buyInBB <= 0 {
		return model.UserError("buy-in must be at least one big blind")
	}

	if p.opts.MinBuyInBB > 0 && buyInBB < p.opts.MinBuyInBB {
		return model.UserError(fmt.Sprintf("buy-in must be at least %d big blinds", p.opts.MinBuyInBB))
	}

	if p.opts.MaxBuyInBB > 0 && buyInBB > p.opts.MaxBuyInBB {
		return model.UserError(fmt.Sprintf("buy-in must be at most %d big blinds", p.opts.MaxBuyInBB))
	}

	return nil
}

func (p *PitBoss) validateBlind(blind int) error {
	if blind < minBlind {
		return model.UserError(fmt.Sprintf("blind must be at least %d", minBlind))
	}

	if p.opts.MaxBlind > 0 && blind > p.opts.MaxBlind {
		return model.UserError(fmt.Sprintf("blind must be at most %d", p.opts.MaxBlind))
	}

	return nil
}

// buyInAmount is the chips a buy-in of buyInBB big blinds costs
// Chip counts are stored as 32 bit integers.
func buyInAmount(blind, buyInBB int) (int, error) {
	if blind <= 0 || buyInBB <= 0 {
		return 0, model.UserError("buy-in must be at least one big blind")
	}

	if buyInBB > math.MaxInt32/blind {
		return 0, model.UserError("buy-in is too large")
	}

	return blind * buyInBB, nil
}

// Join seats the user at a waiting table with the blind, opening a table if none has room
// A blind of 0 uses the default blind, any other blind must be between 2 and MaxBlind.
// The buy-in is blind * buyInBB and is taken from the user's balance. The hand starts as
// soon as a second player sits down.
func (p *PitBoss) Join(ctx context.Context, userID int64, buyInBB, blind int) (*model.TableView, *model.Player, error) {
	if blind == 0 {
		blind = p.opts.DefaultBlind
	}

	if err := p.validateBlind(blind); err != nil {
		return nil, nil, err
	}

	if err := p.validateBuyIn(buyInBB); err != nil {
		return nil, nil, err
	}

	buyIn, err := buyInAmount(blind, buyInBB)
	if err != nil {
		return nil, nil, err
	}

	user, err := p.store.FindUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if user.Money < buyIn {
		return nil, nil, model.ErrInsufficientFunds
	}

	exclude := make([]string, 0)
	for attempt := 0; attempt < maxJoinAttempts; attempt++ {
		var d *Dealer
		t, err := p.store.FindJoinable(ctx, blind, userID, exclude...)
		switch {
		case errors.Is(err, model.ErrTableNotFound):
			d, err = p.openTable(ctx, blind)
		case err == nil:
			d, err = p.dealer(ctx, t.ID)
		}

		if err != nil {
			return nil, nil, err
		}

		view, player, err := p.seat(ctx, d, user, buyInBB, true)
		if errors.Is(err, errDealerClosed) {
			p.forget(d)
			continue
		}

		if errors.Is(err, model.ErrTableFull) || errors.Is(err, model.ErrHandInProgress) || errors.Is(err, model.ErrAlreadySeated) {
			// another join got there first
			exclude = append(exclude, d.tableID)
			continue
		}

		return view, player, err
	}

	return nil, nil, model.ErrTableFull
}

// JoinTable seats the user at a specific table
// Joining mid-hand is allowed, the player is dealt in on the next hand.
func (p *PitBoss) JoinTable(ctx context.Context, tableID string, userID int64, buyInBB int) (*model.TableView, *model.Player, error) {
	if err := p.validateBuyIn(buyInBB); err != nil {
		return nil, nil, err
	}

	user, err := p.store.FindUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var view *model.TableView
	var player *model.Player
	if _, _, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		var err error
		view, player, err = p.seat(ctx, d, user, buyInBB, false)
		return nil, err
	}); err != nil {
		return nil, nil, err
	}

	return view, player, nil
}

func (p *PitBoss) seat(ctx context.Context, d *Dealer, user *model.User, buyInBB int, waitingOnly bool) (*model.TableView, *model.Player, error) {
	t, player, err := d.join(ctx, user, buyInBB, waitingOnly)
	if err != nil {
		return nil, nil, err
	}

	if t.TotalPlayer > 1 && t.Phase == model.PhaseWaiting {
		started, err := d.startGame(ctx)
		switch {
		case err == nil:
			t = started
		case errors.Is(err, model.ErrNotEnoughPlayers), errors.Is(err, model.ErrHandInProgress):
		default:
			d.log.WithError(err).Warn("could not start game")
		}
	}

	return t.Snapshot(user.ID), player, nil
}

// StartGame starts a hand at the table
func (p *PitBoss) StartGame(ctx context.Context, tableID string) (*model.TableView, error) {
	d, t, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		return d.startGame(ctx)
	})
	if err != nil {
		if errors.Is(err, model.ErrNoPlayers) {
			d.log.WithError(err).Error("button moved on an empty table")
		}

		return nil, err
	}

	return t.Snapshot(0), nil
}

// Exit takes the user off the table
// Leaving mid-hand folds the hand. When a single player is left in the hand they win it.
func (p *PitBoss) Exit(ctx context.Context, tableID string, userID int64) (*model.TableView, error) {
	d, t, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		return d.exit(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	d.log.WithField("userID", userID).Info("player left")
	if t.TotalPlayer == 0 && t.Phase == model.PhaseWaiting {
		p.retire(d)
	}

	return t.Snapshot(userID), nil
}

// Act applies a betting decision for the user
func (p *PitBoss) Act(ctx context.Context, tableID string, userID int64, action holdem.Action, amount int) (*model.TableView, error) {
	_, t, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		return d.act(ctx, userID, action, amount)
	})
	if err != nil {
		return nil, err
	}

	return t.Snapshot(userID), nil
}

// NextPhase closes the current street without waiting for the betting round
func (p *PitBoss) NextPhase(ctx context.Context, tableID string) (*model.TableView, error) {
	_, t, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		return d.nextPhase(ctx)
	})
	if err != nil {
		return nil, err
	}

	return t.Snapshot(0), nil
}

// Get returns the table as the viewer may see it
func (p *PitBoss) Get(ctx context.Context, tableID string, viewerUserID int64) (*model.TableView, error) {
	_, t, err := p.onTable(ctx, tableID, func(d *Dealer) (*model.Table, error) {
		return d.Table()
	})
	if err != nil {
		return nil, err
	}

	return t.Snapshot(viewerUserID), nil
}

// List returns the tables with the blind, or every table when blind is 0
func (p *PitBoss) List(ctx context.Context, blind int) ([]*model.TableView, error) {
	tables, err := p.store.ListTables(ctx, blind)
	if err != nil {
		return nil, err
	}

	return snapshots(tables, 0), nil
}

// Context returns the tables the user is seated at
func (p *PitBoss) Context(ctx context.Context, userID int64) ([]*model.TableView, error) {
	tables, err := p.store.TablesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return snapshots(tables, userID), nil
}

func snapshots(tables []*model.Table, viewerUserID int64) []*model.TableView {
	views := make([]*model.TableView, len(tables))
	for i, t := range tables {
		views[i] = t.Snapshot(viewerUserID)
	}

	return views
}
