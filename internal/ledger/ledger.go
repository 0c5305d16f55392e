// Package ledger is the authoritative record of one Imperium game: entity
// catalogs, per-empire slot arrays, credits, turn order and dice. Every
// command validates first and mutates atomically; rejections are reported
// through Result and never leave partial state behind.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"imperium-server/internal/snapshot"
)

// Ledger owns the game state. All mutations run under a single mutex, so
// commands are atomic with respect to each other; deferred work (snapshot
// saves, next-turn production accrual) runs on a one-goroutine task queue,
// preserving the original's next-tick scheduling semantics.
type Ledger struct {
	mu     sync.Mutex
	state  *State
	store  snapshot.Store
	logger *slog.Logger
	rng    *rand.Rand

	tasks   chan func()
	pending sync.WaitGroup
	closed  chan struct{}
}

const taskQueueSize = 64

// New builds a ledger backed by the given snapshot store, restoring the
// last saved document if one exists.
func New(store snapshot.Store, logger *slog.Logger) (*Ledger, error) {
	l := &Ledger{
		state:  NewState(),
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		tasks:  make(chan func(), taskQueueSize),
		closed: make(chan struct{}),
	}

	if err := l.restore(); err != nil {
		return nil, err
	}

	go l.run()
	return l, nil
}

func (l *Ledger) restore() error {
	logger := l.logger.With("component", "ledger", "operation", "restore")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := l.store.Load(ctx)
	if errors.Is(err, snapshot.ErrNotFound{}) {
		logger.Info("No saved game, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore ledger: %w", err)
	}

	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		// A corrupt snapshot is not fatal: the alternative is refusing to
		// start over a bookkeeping aid. Start fresh and keep the error in
		// the log.
		logger.Error("Saved game is unreadable, starting fresh", "error", err)
		return nil
	}
	state.normalize()
	l.state = state

	logger.Info("Saved game restored",
		"turn_number", state.TurnNumber,
		"ships", len(state.Ships),
		"planets", len(state.Planets),
		"characters", len(state.Characters),
	)
	return nil
}

func (l *Ledger) run() {
	for task := range l.tasks {
		task()
		l.pending.Done()
	}
	close(l.closed)
}

// schedule queues work for the next tick of the ledger's task loop.
func (l *Ledger) schedule(task func()) {
	l.pending.Add(1)
	select {
	case l.tasks <- task:
	default:
		// Queue full: run inline rather than drop. Persistence and accrual
		// must always eventually execute.
		task()
		l.pending.Done()
	}
}

// WaitIdle blocks until all deferred work queued so far has completed.
// Consumers that need the post-accrual balance after EndTurn wait on this.
func (l *Ledger) WaitIdle() {
	l.pending.Wait()
}

// Close drains the task queue and stops the worker.
func (l *Ledger) Close() {
	l.pending.Wait()
	close(l.tasks)
	<-l.closed
}

// persist schedules a fire-and-forget snapshot save of the current state.
// Must be called with the mutex held.
func (l *Ledger) persist() {
	data, err := json.Marshal(l.state)
	if err != nil {
		l.logger.Error("Failed to serialize ledger state", "error", err)
		return
	}

	l.schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.store.Save(ctx, data); err != nil {
			l.logger.Error("Failed to save snapshot", "error", err)
		}
	})
}

// SnapshotJSON returns the serialized ledger document for full-state reads.
func (l *Ledger) SnapshotJSON() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(l.state)
}

// firstFreeSlot returns the lowest free index, or -1 when full.
func firstFreeSlot(slots []*string) int {
	for i, s := range slots {
		if s == nil {
			return i
		}
	}
	return -1
}

// firstFreePlanetSlot prioritizes the natal slot: slot 0 is taken first
// when free (an empire that lost its home world reclaims the slot),
// otherwise the lowest free non-zero index.
func firstFreePlanetSlot(slots []*string) int {
	if len(slots) == 0 {
		return -1
	}
	if slots[0] == nil {
		return 0
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] == nil {
			return i
		}
	}
	return -1
}

func removeFromSlots(slots []*string, id string) {
	for i, s := range slots {
		if s != nil && *s == id {
			slots[i] = nil
		}
	}
}

func slotsContain(slots []*string, id string) bool {
	for _, s := range slots {
		if s != nil && *s == id {
			return true
		}
	}
	return false
}

func ref(id string) *string {
	return &id
}
