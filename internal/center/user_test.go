package center

import (
	"context"
	"errors"
	"testing"
	"time"

	"solohub/internal/auth"
	"solohub/internal/store"
	"solohub/internal/types"
)

func newUserCenter() *UserCenter {
	return NewUserCenter(store.NewUserStore(), auth.NewChecker(nil))
}

func TestUserCenter_CreateDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	c := newUserCenter()

	if _, err := c.Create(ctx, &types.User{Email: "x@example.com"}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := c.Create(ctx, &types.User{Name: "x"}); !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation for missing email, got %v", err)
	}

	u, err := c.Create(ctx, &types.User{Name: "x", Email: "x@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Role != types.RoleMember || u.Status != types.UserActive {
		t.Errorf("expected member/active defaults, got %s/%s", u.Role, u.Status)
	}
}

func TestUserCenter_DeleteUserPermissions(t *testing.T) {
	ctx := context.Background()
	c := newUserCenter()

	owner, _ := c.Create(ctx, &types.User{Name: "owner", Email: "o@example.com", Role: types.RoleOwner})
	admin, _ := c.Create(ctx, &types.User{Name: "admin", Email: "a@example.com", Role: types.RoleAdmin})
	member, _ := c.Create(ctx, &types.User{Name: "member", Email: "m@example.com", Role: types.RoleMember})

	// Admins lack user:delete by default.
	if err := c.DeleteUser(ctx, admin, member.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for admin, got %v", err)
	}

	// Owners may not delete themselves.
	if err := c.DeleteUser(ctx, owner, owner.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied for self-delete, got %v", err)
	}

	// Unknown target surfaces NotFound before any permission decision.
	if err := c.DeleteUser(ctx, owner, "user_missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Owner deleting a member succeeds, and the email index follows.
	if err := c.DeleteUser(ctx, owner, member.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := c.GetByEmail(ctx, "m@example.com"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("email index kept deleted user")
	}
}

func TestUserCenter_SearchMetaFields(t *testing.T) {
	ctx := context.Background()
	c := newUserCenter()

	if _, err := c.Create(ctx, &types.User{
		Name: "Jo", Email: "jo@example.com",
		Meta: &types.UserMeta{Department: "Finance", Title: "Bookkeeper"},
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := c.Create(ctx, &types.User{Name: "Sam", Email: "sam@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byDept, err := c.Search(ctx, UserSearch{Query: "finance"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byDept) != 1 || byDept[0].Name != "Jo" {
		t.Errorf("department search broken: %v", byDept)
	}

	all, _ := c.Search(ctx, UserSearch{Query: ""})
	if len(all) != 2 {
		t.Errorf("empty query should return everyone, got %d", len(all))
	}
}

func TestUserCenter_RecordLoginFeedsActiveToday(t *testing.T) {
	ctx := context.Background()
	c := newUserCenter()
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	u, _ := c.Create(ctx, &types.User{Name: "x", Email: "x@example.com"})
	if _, err := c.RecordLogin(ctx, u.ID); err != nil {
		t.Fatalf("RecordLogin failed: %v", err)
	}

	s, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if s.ActiveToday != 1 {
		t.Errorf("expected 1 active today, got %d", s.ActiveToday)
	}
}
