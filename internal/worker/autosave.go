// Package worker runs the background autosave loop: periodic session
// snapshots written to the configured store, with a final save on
// shutdown.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/store"
)

// Autosave periodically snapshots the session and writes it to the
// store. Start it once; Shutdown performs one final save before
// returning.
type Autosave struct {
	session  *game.Session
	store    store.Store
	interval time.Duration

	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewAutosave creates an autosave worker. A non-positive interval
// defaults to one minute.
func NewAutosave(session *game.Session, st store.Store, interval time.Duration) *Autosave {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Autosave{
		session:  session,
		store:    st,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the autosave loop.
func (w *Autosave) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAutosaveStarted, "interval", w.interval.String())

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.save(ctx)
			case <-w.shutdown:
				return
			}
		}
	}()
}

// Save snapshots the session and writes it to the store immediately.
func (w *Autosave) Save(ctx context.Context) error {
	state, err := w.session.Snapshot()
	if err != nil {
		return err
	}
	return w.store.Save(ctx, state)
}

func (w *Autosave) save(ctx context.Context) {
	log := logger.FromContext(ctx)
	if err := w.Save(ctx); err != nil {
		log.Error(LogMsgAutosaveFailed, "error", err)
		return
	}
	log.Debug(LogMsgAutosaveCompleted)
}

// Shutdown stops the loop, waits for any in-flight save, and writes one
// final snapshot. The context bounds the wait.
func (w *Autosave) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAutosaveShuttingDown)

	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(LogMsgAutosaveShutdownTimeout)
		return ctx.Err()
	}

	if err := w.Save(ctx); err != nil {
		log.Error(LogMsgAutosaveFailed, "error", err)
		return err
	}
	log.Info(LogMsgAutosaveShutdownComplete)
	return nil
}
