package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
	q "github.com/jpkrishna28/mls-point-locator/internal/queue"
	"github.com/jpkrishna28/mls-point-locator/internal/repository"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

type fakeTable struct {
	calls []map[string]string
	err   error
}

func (f *fakeTable) UpdateFields(ctx context.Context, code string, fields map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, fields)
	return nil
}

type fakeAudit struct {
	events []q.FacilityUpdatedEvent
}

func (f *fakeAudit) PublishFacilityUpdated(ctx context.Context, ev q.FacilityUpdatedEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func newStore() *store.FacilityStore {
	return store.New([]model.Record{
		{"mls_point_code": "M1", "district_name": "X", "phone_number": "111"},
	})
}

func TestUpdateWritesTableThenMirror(t *testing.T) {
	table := &fakeTable{}
	audit := &fakeAudit{}
	st := newStore()
	u := NewUpdater(table, st, audit)

	cols, err := u.Update(context.Background(), "M1", map[string]string{"phone_number": "222"}, "admin")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(cols, []string{"phone_number"}) {
		t.Fatalf("updated columns = %v", cols)
	}
	if len(table.calls) != 1 || table.calls[0]["phone_number"] != "222" {
		t.Fatalf("table write missing: %v", table.calls)
	}
	rec, _ := st.GetByCode("M1")
	if rec.Get("phone_number") != "222" {
		t.Fatalf("mirror not patched: %q", rec.Get("phone_number"))
	}
	if len(audit.events) != 1 || audit.events[0].Code != "M1" || audit.events[0].UpdatedBy != "admin" {
		t.Fatalf("audit event = %+v", audit.events)
	}
}

func TestUpdateFailedLeavesMirrorUntouched(t *testing.T) {
	table := &fakeTable{err: repository.ErrUpdateFailed}
	st := newStore()
	u := NewUpdater(table, st, nil)

	_, err := u.Update(context.Background(), "M1", map[string]string{"phone_number": "222"}, "admin")
	if !errors.Is(err, repository.ErrUpdateFailed) {
		t.Fatalf("want ErrUpdateFailed, got %v", err)
	}
	rec, _ := st.GetByCode("M1")
	if rec.Get("phone_number") != "111" {
		t.Fatalf("mirror changed despite DB failure: %q", rec.Get("phone_number"))
	}
}

func TestUpdateUnknownCode(t *testing.T) {
	u := NewUpdater(&fakeTable{}, newStore(), nil)
	_, err := u.Update(context.Background(), "NOPE", map[string]string{"phone_number": "1"}, "admin")
	if !errors.Is(err, repository.ErrFacilityNotFound) {
		t.Fatalf("want ErrFacilityNotFound, got %v", err)
	}
}

func TestUpdateDropsUnknownFields(t *testing.T) {
	table := &fakeTable{}
	st := newStore()
	u := NewUpdater(table, st, nil)

	cols, err := u.Update(context.Background(), "M1", map[string]string{
		"phone_number": "222",
		"not_a_column": "x",
	}, "admin")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(cols, []string{"phone_number"}) {
		t.Fatalf("updated columns = %v", cols)
	}
	if _, ok := table.calls[0]["not_a_column"]; ok {
		t.Fatalf("unknown field reached SQL layer")
	}
	rec, _ := st.GetByCode("M1")
	if _, ok := rec["not_a_column"]; ok {
		t.Fatalf("unknown field reached the mirror")
	}
}

func TestUpdateOnlyUnknownFieldsIsNoop(t *testing.T) {
	table := &fakeTable{}
	u := NewUpdater(table, newStore(), nil)
	cols, err := u.Update(context.Background(), "M1", map[string]string{"junk": "x"}, "admin")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(cols) != 0 || len(table.calls) != 0 {
		t.Fatalf("no-op update must not touch the table, cols=%v calls=%v", cols, table.calls)
	}
	if cols == nil {
		t.Fatalf("no-op update must report an empty column list, not nil")
	}
}

func TestUpdateWithoutDatabase(t *testing.T) {
	u := NewUpdater(nil, newStore(), nil)
	_, err := u.Update(context.Background(), "M1", map[string]string{"phone_number": "2"}, "admin")
	if !errors.Is(err, repository.ErrUpdateFailed) {
		t.Fatalf("want ErrUpdateFailed when started without a DB, got %v", err)
	}
}
