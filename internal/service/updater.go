package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
	q "github.com/jpkrishna28/mls-point-locator/internal/queue"
	"github.com/jpkrishna28/mls-point-locator/internal/repository"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

// FacilityTable is the slice of the repository the updater needs. It is an
// interface so update-flow tests can fail the database write on demand.
type FacilityTable interface {
	UpdateFields(ctx context.Context, code string, fields map[string]string) error
}

// Updater applies a field patch to one facility. The contract is
// transactional from the caller's point of view: the backing-table UPDATE
// runs first, and only when it succeeds is the in-memory mirror patched.
// Any database error leaves the mirror untouched and surfaces as
// ErrUpdateFailed, so a success response always means both layers agree.
type Updater struct {
	table FacilityTable
	store *store.FacilityStore
	audit AuditPublisher // nil disables audit events

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUpdater wires the update flow. audit may be nil.
func NewUpdater(table FacilityTable, st *store.FacilityStore, audit AuditPublisher) *Updater {
	return &Updater{table: table, store: st, audit: audit, locks: make(map[string]*sync.Mutex)}
}

// lockFor returns the mutex serializing writes to one facility code, so
// concurrent edits of the same record cannot interleave their DB write and
// mirror swap.
func (u *Updater) lockFor(code string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	m, ok := u.locks[code]
	if !ok {
		m = &sync.Mutex{}
		u.locks[code] = m
	}
	return m
}

// Update patches the facility identified by code with the given field map.
// Unknown keys are dropped against the declared schema (and logged, so the
// drop is visible rather than incidental); there is no upsert. Returns the
// columns that were written.
func (u *Updater) Update(ctx context.Context, code string, fields map[string]string, updatedBy string) ([]string, error) {
	kept, dropped := model.FilterToSchema(fields)
	if len(dropped) > 0 {
		log.Printf("update %s: dropped unknown fields %v", code, dropped)
	}

	if _, ok := u.store.GetByCode(code); !ok {
		return nil, repository.ErrFacilityNotFound
	}
	if len(kept) == 0 {
		// Nothing survived the allow-list; report an explicit empty write
		// (serializes as []) so callers can tell no column changed.
		return []string{}, nil
	}
	if u.table == nil {
		// Started without a database; the mirror must not drift from a
		// table we cannot write.
		return nil, repository.ErrUpdateFailed
	}

	lock := u.lockFor(code)
	lock.Lock()
	defer lock.Unlock()

	if err := u.table.UpdateFields(ctx, code, kept); err != nil {
		return nil, err
	}
	if !u.store.Apply(code, kept) {
		// Records are never deleted at runtime, so this only trips if the
		// store was swapped out underneath us.
		return nil, repository.ErrFacilityNotFound
	}

	cols := make([]string, 0, len(kept))
	for c := range kept {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	if u.audit != nil {
		_ = u.audit.PublishFacilityUpdated(ctx, q.FacilityUpdatedEvent{
			Code:      code,
			Columns:   cols,
			UpdatedBy: updatedBy,
			UpdatedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return cols, nil
}
