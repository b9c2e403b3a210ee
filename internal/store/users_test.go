package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"solohub/internal/types"
)

func TestUserStore_EmailIndexLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u, err := s.Create(ctx, &types.User{
		Name:   "Solo Founder",
		Email:  "solo@example.com",
		Role:   types.RoleOwner,
		Status: types.UserActive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.GetByEmail(ctx, "solo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected %s, got %s", u.ID, got.ID)
	}

	// Case-insensitive lookup.
	if _, err := s.GetByEmail(ctx, "SOLO@Example.COM"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}

	if err := s.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByEmail(ctx, "solo@example.com"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUserStore_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	if _, err := s.Create(ctx, &types.User{Name: "a", Email: "a@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := s.Create(ctx, &types.User{Name: "b", Email: "a@example.com"})
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate email, got %v", err)
	}
}

func TestUserStore_EmailChangeReindexes(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u, _ := s.Create(ctx, &types.User{Name: "a", Email: "old@example.com"})
	other, _ := s.Create(ctx, &types.User{Name: "b", Email: "taken@example.com"})

	// Moving onto a taken email must fail and leave the index untouched.
	if _, err := s.Update(ctx, u.ID, func(usr *types.User) { usr.Email = "taken@example.com" }); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got, _ := s.GetByEmail(ctx, "taken@example.com"); got == nil || got.ID != other.ID {
		t.Errorf("index corrupted by failed update")
	}

	// A clean change moves the index entry.
	if _, err := s.Update(ctx, u.ID, func(usr *types.User) { usr.Email = "new@example.com" }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.GetByEmail(ctx, "old@example.com"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("old email still indexed")
	}
	if got, err := s.GetByEmail(ctx, "new@example.com"); err != nil || got.ID != u.ID {
		t.Errorf("new email not indexed: %v", err)
	}
}

func TestEmailScanner_UniquenessOnCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := EmailScanner{DataSource: NewMemory[*types.User]("user", ByCreatedAsc[*types.User])}

	a, err := s.Create(ctx, &types.User{Name: "a", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := s.Create(ctx, &types.User{Name: "b", Email: "b@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := s.Create(ctx, &types.User{Name: "c", Email: "A@Example.com"}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate create, got %v", err)
	}

	// Renaming onto another user's email must fail, not resolve arbitrarily.
	if _, err := s.Update(ctx, a.ID, func(u *types.User) { u.Email = "b@example.com" }); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate update, got %v", err)
	}
	if got, err := s.GetByEmail(ctx, "b@example.com"); err != nil || got.ID != b.ID {
		t.Errorf("lookup corrupted by rejected update: %v", err)
	}

	if _, err := s.Update(ctx, a.ID, func(u *types.User) { u.Email = "" }); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for empty email, got %v", err)
	}

	// Re-casing one's own email and moving to a free one both pass.
	if _, err := s.Update(ctx, a.ID, func(u *types.User) { u.Email = "A@example.com" }); err != nil {
		t.Errorf("same-key recase rejected: %v", err)
	}
	if _, err := s.Update(ctx, a.ID, func(u *types.User) { u.Email = "fresh@example.com" }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got, err := s.GetByEmail(ctx, "fresh@example.com"); err != nil || got.ID != a.ID {
		t.Errorf("moved email not resolvable: %v", err)
	}
}

func TestUserStore_DefaultOrderIsCreatedAsc(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	first, _ := s.Create(ctx, &types.User{Name: "first", Email: "1@example.com"})
	second, _ := s.Create(ctx, &types.User{Name: "second", Email: "2@example.com"})

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Errorf("expected creation order, got %v", []string{all[0].Name, all[1].Name})
	}
	_ = second
}
