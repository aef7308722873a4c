package room

import (
	"context"
	"errors"
	"pokerv2-server/pkg/holdem"
	"pokerv2-server/pkg/model"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/weedbox/timebank"
)

// errDealerClosed happens when an operation reaches a dealer after its shift ended
var errDealerClosed = errors.New("dealer is no longer running")

// Dealer owns a single table
// Every read and write of the table happens on the dealer's run loop.
type Dealer struct {
	pitBoss *PitBoss
	tableID string
	table   *model.Table
	// history is the record of the hand in progress, nil between hands
	history  *model.HandHistory
	nextHand *timebank.TimeBank
	// stopped is set on the run loop once the shift is over, nothing runs after it
	stopped bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
	log           logrus.FieldLogger
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *model.Table) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		tableID:       table.ID,
		table:         table,
		nextHand:      timebank.NewTimeBank(),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
		log:           logrus.WithField("table", table.ID),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		_ = d.exec(d.stop)
		close(d.close)
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) stop() {
	d.nextHand.Cancel()
	d.stopped = true
}

// retireIfIdle ends the shift when nobody is seated and no hand is being played
func (d *Dealer) retireIfIdle() bool {
	idle := false
	if err := d.exec(func() {
		if d.table.TotalPlayer > 0 || d.table.Phase != model.PhaseWaiting {
			return
		}

		idle = true
		d.stop()
	}); err != nil {
		return false
	}

	if idle {
		d.closeOnce.Do(func() {
			close(d.close)
		})
	}

	return idle
}

// exec runs fn on the run loop and waits for it to finish
// Returns errDealerClosed, without running fn, once the shift is over.
func (d *Dealer) exec(fn func()) error {
	done := make(chan bool, 1)
	wrapped := func() {
		if d.stopped {
			done <- false
			return
		}

		fn()
		done <- true
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return errDealerClosed
	}

	select {
	case ran := <-done:
		if !ran {
			return errDealerClosed
		}

		return nil
	case <-d.close:
		// fn may have finished right before the loop stopped
		select {
		case ran := <-done:
			if ran {
				return nil
			}
		default:
		}

		return errDealerClosed
	}
}

// txn is a change being made to a copy of the table
type txn struct {
	table   *model.Table
	history *model.HandHistory

	notifications []*Notification
	rollbacks     []func(ctx context.Context) error
	afterCommit   []func()
}

func (x *txn) notify(kind EventKind, data interface{}) {
	x.notifications = append(x.notifications, &Notification{
		Kind:  kind,
		Table: x.table.Clone(),
		Data:  data,
	})
}

// onRollback registers compensation for a side effect outside of the table
func (x *txn) onRollback(fn func(ctx context.Context) error) {
	x.rollbacks = append(x.rollbacks, fn)
}

// transact applies fn to a copy of the table and swaps the copy in once it is saved
// If fn or the save fails the table is left as it was. Notifications are published after
// the run loop is released.
func (d *Dealer) transact(ctx context.Context, fn func(x *txn) error) (*model.Table, error) {
	var result *model.Table
	var notifications []*Notification
	var err error

	if execErr := d.exec(func() {
		x := &txn{table: d.table.Clone()}
		if d.history != nil {
			x.history = d.history.Clone()
		} else if x.table.Phase.IsBetting() {
			// the hand was loaded from the store mid-way
			x.history = model.NewHandHistory(x.table)
		}

		err = fn(x)
		if err == nil {
			err = d.pitBoss.store.SaveTable(ctx, x.table)
		}

		if err != nil {
			for i := len(x.rollbacks) - 1; i >= 0; i-- {
				if rbErr := x.rollbacks[i](ctx); rbErr != nil {
					d.log.WithError(rbErr).Error("could not roll back")
				}
			}

			return
		}

		d.table = x.table
		d.history = x.history
		for _, fn := range x.afterCommit {
			fn()
		}

		result = d.table.Clone()
		notifications = x.notifications
	}); execErr != nil {
		return nil, execErr
	}

	if err != nil {
		return nil, err
	}

	for _, n := range notifications {
		d.pitBoss.publish(n)
	}

	return result, nil
}

// Table returns a copy of the table
func (d *Dealer) Table() (*model.Table, error) {
	var t *model.Table
	if err := d.exec(func() {
		t = d.table.Clone()
	}); err != nil {
		return nil, err
	}

	return t, nil
}

func (d *Dealer) join(ctx context.Context, user *model.User, buyInBB int, waitingOnly bool) (*model.Table, *model.Player, error) {
	t, err := d.transact(ctx, func(x *txn) error {
		t := x.table
		if waitingOnly && t.Phase != model.PhaseWaiting {
			return model.ErrHandInProgress
		}

		if t.PlayerByUserID(user.ID) != nil {
			return model.ErrAlreadySeated
		}

		if t.TotalPlayer >= model.SeatCount {
			return model.ErrTableFull
		}

		buyIn, err := buyInAmount(t.Blind, buyInBB)
		if err != nil {
			return err
		}

		player := model.NewPlayer(user, buyIn)
		if err := holdem.AssignSeat(d.pitBoss.opts.Rand, t, player); err != nil {
			return err
		}

		if _, err := d.pitBoss.store.Debit(ctx, user.ID, buyIn); err != nil {
			return err
		}

		x.onRollback(func(ctx context.Context) error {
			_, err := d.pitBoss.store.Credit(ctx, user.ID, buyIn)
			return err
		})

		joined := *player
		x.notify(PlayerJoin, &joined)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	player := t.PlayerByUserID(user.ID)
	d.log.WithFields(logrus.Fields{
		"userID":   user.ID,
		"position": player.Position,
		"stack":    player.Stack,
	}).Info("player joined")

	return t, player, nil
}

func (d *Dealer) startGame(ctx context.Context) (*model.Table, error) {
	return d.transact(ctx, func(x *txn) error {
		if err := holdem.StartHand(d.pitBoss.opts.Rand, x.table, d.pitBoss.opts.BlindPolicy); err != nil {
			return err
		}

		x.history = model.NewHandHistory(x.table)
		x.notify(GameStart, nil)
		return d.settle(x)
	})
}

func (d *Dealer) exit(ctx context.Context, userID int64) (*model.Table, error) {
	return d.transact(ctx, func(x *txn) error {
		player, err := holdem.Leave(x.table, userID)
		if err != nil {
			return err
		}

		x.notify(PlayerExit, player)
		return d.settle(x)
	})
}

func (d *Dealer) act(ctx context.Context, userID int64, action holdem.Action, amount int) (*model.Table, error) {
	return d.transact(ctx, func(x *txn) error {
		decision, err := holdem.Act(x.table, userID, action, amount)
		if err != nil {
			return err
		}

		x.notify(PlayerAction, decision)
		return d.settle(x)
	})
}

func (d *Dealer) nextPhase(ctx context.Context) (*model.Table, error) {
	return d.transact(ctx, func(x *txn) error {
		if !holdem.AdvanceStreet(x.table, x.history) {
			return holdem.ErrNoBettingRound
		}

		if x.table.Phase.IsBetting() {
			x.notify(NextPhase, nil)
		}

		return d.settle(x)
	})
}

// settle moves the hand along and closes it out when it is over
func (d *Dealer) settle(x *txn) error {
	phase := x.table.Phase
	result, err := holdem.Settle(x.table, d.pitBoss.opts.Ranker, x.history)
	if err != nil {
		return err
	}

	if result == nil {
		if x.table.Phase != phase {
			x.notify(NextPhase, nil)
		}

		return nil
	}

	x.notify(HandEnd, result)
	if history := x.history; history != nil {
		x.afterCommit = append(x.afterCommit, func() {
			d.saveHistory(history)
		})
	}

	holdem.ResetHand(x.table)
	x.history = nil
	x.afterCommit = append(x.afterCommit, d.scheduleNextHand)
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) saveHistory(h *model.HandHistory) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.pitBoss.store.SaveHandHistory(ctx, h); err != nil {
		d.log.WithError(err).WithField("gameSeq", h.GameSeq).Error("could not save hand history")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) scheduleNextHand() {
	delay := d.pitBoss.opts.NextHandDelay
	if delay < 0 || len(d.table.PlayersWithChips()) < 2 {
		return
	}

	if err := d.nextHand.NewTask(delay, func(isCancelled bool) {
		if isCancelled {
			return
		}

		// the task may fire on the run loop's goroutine, so start from a fresh one
		go d.autoStart()
	}); err != nil {
		d.log.WithError(err).Error("could not schedule the next hand")
	}
}

func (d *Dealer) autoStart() {
	if _, err := d.startGame(context.Background()); err != nil {
		d.log.WithError(err).Debug("next hand did not start")
	}
}
