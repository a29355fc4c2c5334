package manager

import (
	"context"
	"log/slog"
	"time"

	"github.com/dori/todomaster/internal/cloud"
	"github.com/dori/todomaster/internal/store"
)

// Sync runs one full sync pass: push the local collection in batches, fetch
// the remote snapshot, merge it with last-writer-wins, persist, recompute.
//
// A pass already in flight makes this call a no-op (the request is dropped,
// not queued). The pass does not hold the collection lock while talking to
// the network, so local edits made mid-pass stay visible immediately and are
// resolved by the merge step. Errors are recorded as recoverable sync state
// for the UI; local data remains authoritative.
func (m *Manager) Sync(ctx context.Context) error {
	if m.remote == nil {
		return nil
	}
	if !m.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer m.syncing.Store(false)

	err := m.runSyncPass(ctx)

	m.syncMu.Lock()
	m.lastSync = time.Now()
	m.syncErr = err
	m.syncMu.Unlock()

	return err
}

// SyncStatus reports the outcome of the most recent pass and whether one is
// in flight
func (m *Manager) SyncStatus() (lastSync time.Time, inFlight bool, err error) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()
	return m.lastSync, m.syncing.Load(), m.syncErr
}

func (m *Manager) runSyncPass(ctx context.Context) error {
	// Snapshot the collection; the lock is not held across the network
	m.mu.Lock()
	outgoing := cloud.EncodeTasks(m.tasks)
	m.mu.Unlock()

	if err := cloud.Push(ctx, m.remote, outgoing); err != nil {
		return err
	}

	records, err := m.remote.FetchAll(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	resolver := cloud.NewResolver(m.categories, m.tags)
	remote := resolver.Resolve(records)
	m.tasks = cloud.Merge(m.tasks, remote)
	m.categories = resolver.Categories()
	m.tags = resolver.Tags()
	m.persistTasksLocked()
	m.saveLocked(store.KindCategories, m.categories)
	m.saveLocked(store.KindTags, m.tags)
	m.recomputeLocked()
	m.mu.Unlock()

	m.notifyChange()
	return nil
}

// kickSync starts a background best-effort sync pass after a mutation
func (m *Manager) kickSync() {
	if m.remote == nil {
		return
	}
	go func() {
		if err := m.Sync(context.Background()); err != nil {
			m.logger.Warn("background sync failed", slog.String("error", err.Error()))
		}
	}()
}
