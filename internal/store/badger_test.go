package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/go-cmp/cmp"

	"solohub/internal/types"
)

func newBadgerProjectStore(t *testing.T) *BadgerStore[*types.Project] {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBadgerStore[*types.Project](db, "proj", ByUpdatedDesc[*types.Project])
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newBadgerProjectStore(t)

	created, err := s.Create(ctx, &types.Project{
		Name:   "site",
		Status: types.ProjectWarning,
		Tags:   []string{"web", "prod"},
		Owner:  "solo",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" || !strings.HasPrefix(created.ID, "proj_") {
		t.Errorf("expected proj_ id, got %q", created.ID)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByID(ctx, created.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBadgerStore_GetAllOrdersByUpdatedDesc(t *testing.T) {
	ctx := context.Background()
	s := newBadgerProjectStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	a, _ := s.Create(ctx, &types.Project{Name: "a"})
	b, _ := s.Create(ctx, &types.Project{Name: "b"})
	if _, err := s.Update(ctx, a.ID, func(p *types.Project) { p.Status = types.ProjectError }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(all))
	}
	if all[0].ID != a.ID || all[1].ID != b.ID {
		t.Errorf("expected most recently updated first, got [%s %s]", all[0].Name, all[1].Name)
	}
}

func TestBadgerStore_EmptyUpdateBumpsOnlyUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newBadgerProjectStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	created, _ := s.Create(ctx, &types.Project{Name: "site"})
	updated, err := s.Update(ctx, created.ID, func(*types.Project) {})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id changed on update: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Name != "site" {
		t.Errorf("no-op update changed fields: %q", updated.Name)
	}
}

func TestBadgerStore_UpdateCannotReassignID(t *testing.T) {
	ctx := context.Background()
	s := newBadgerProjectStore(t)

	created, _ := s.Create(ctx, &types.Project{Name: "site"})
	updated, err := s.Update(ctx, created.ID, func(p *types.Project) {
		p.ID = "forged"
		p.CreatedAt = time.Time{}
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("mutate escaped id protection: %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("mutate escaped CreatedAt protection: %v", updated.CreatedAt)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("persisted record carries forged id: %q", got.ID)
	}
}

func TestBadgerStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	s := newBadgerProjectStore(t)

	if _, err := s.GetByID(ctx, "nope"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, "nope", func(*types.Project) {}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestBadgerStore_PrefixesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	projects := NewBadgerStore[*types.Project](db, "proj", ByUpdatedDesc[*types.Project])
	agents := NewBadgerStore[*types.Agent](db, "agent", ByUpdatedDesc[*types.Agent])

	if _, err := projects.Create(ctx, &types.Project{Name: "site"}); err != nil {
		t.Fatalf("Create project failed: %v", err)
	}
	if _, err := agents.Create(ctx, &types.Agent{Name: "helper", SystemPrompt: "p"}); err != nil {
		t.Fatalf("Create agent failed: %v", err)
	}

	got, err := projects.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "site" {
		t.Errorf("project scan leaked across prefixes: %+v", got)
	}
}
