package center

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solohub/internal/auth"
	"solohub/internal/logging"
	"solohub/internal/query"
	"solohub/internal/stats"
	"solohub/internal/types"
)

// UserFilter selects users by independent criteria.
type UserFilter struct {
	Role   types.Role
	Status types.UserStatus
}

func (f UserFilter) predicates() []query.Predicate[*types.User] {
	var preds []query.Predicate[*types.User]
	if f.Role != "" {
		preds = append(preds, query.Equals(func(u *types.User) types.Role { return u.Role }, f.Role))
	}
	if f.Status != "" {
		preds = append(preds, query.Equals(func(u *types.User) types.UserStatus { return u.Status }, f.Status))
	}
	return preds
}

// UserSearch is the input to Search.
type UserSearch struct {
	Query  string
	Filter UserFilter
}

// UserCenter is the user-family facade. Destructive operations run through
// the permission checker; reads do not (the hosting surface decides what to
// show).
type UserCenter struct {
	source  types.UserSource
	checker *auth.Checker
	now     func() time.Time
}

// NewUserCenter builds the facade over an injected user source and checker.
func NewUserCenter(source types.UserSource, checker *auth.Checker) *UserCenter {
	if checker == nil {
		checker = auth.NewChecker(nil)
	}
	return &UserCenter{source: source, checker: checker, now: time.Now}
}

// SetClock overrides the login timestamp source. Test hook.
func (c *UserCenter) SetClock(now func() time.Time) { c.now = now }

// List returns users matching the filter, in store order (CreatedAt
// ascending).
func (c *UserCenter) List(ctx context.Context, filter UserFilter) ([]*types.User, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(all, filter.predicates()...), nil
}

// GetByID returns one user or types.ErrNotFound.
func (c *UserCenter) GetByID(ctx context.Context, id string) (*types.User, error) {
	return c.source.GetByID(ctx, id)
}

// GetByEmail resolves a user through the store's email index.
func (c *UserCenter) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return c.source.GetByEmail(ctx, email)
}

// Search combines the filter with free-text matching over name, email, and
// the meta department/title fields.
func (c *UserCenter) Search(ctx context.Context, opts UserSearch) ([]*types.User, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	preds := opts.Filter.predicates()
	preds = append(preds, query.MatchText(func(u *types.User) []string {
		fields := []string{u.Name, u.Email}
		if u.Meta != nil {
			fields = append(fields, u.Meta.Department, u.Meta.Title)
		}
		return fields
	}, opts.Query))
	return query.Apply(all, preds...), nil
}

// Create validates and stores a new user. Duplicate emails are rejected by
// the store's index.
func (c *UserCenter) Create(ctx context.Context, u *types.User) (*types.User, error) {
	if strings.TrimSpace(u.Name) == "" {
		return nil, fmt.Errorf("user name required: %w", types.ErrValidation)
	}
	if u.Role == "" {
		u.Role = types.RoleMember
	}
	if u.Status == "" {
		u.Status = types.UserActive
	}
	return c.source.Create(ctx, u)
}

// Update applies a partial update. Meta replaces the whole object when set.
func (c *UserCenter) Update(ctx context.Context, id string, upd types.UserUpdate) (*types.User, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("user name required: %w", types.ErrValidation)
	}
	return c.source.Update(ctx, id, upd.Apply)
}

// DeleteUser removes target after the permission check: the actor needs
// user:delete, may not delete itself, and only an owner may delete another
// owner. Denials come back as ErrPermissionDenied.
func (c *UserCenter) DeleteUser(ctx context.Context, actor *types.User, targetID string) error {
	target, err := c.source.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	pctx := &auth.Context{TargetUserID: target.ID, TargetRole: target.Role}
	if !c.checker.HasPermission(actor, auth.ActionUserDelete, pctx) {
		logging.Get(logging.CategoryCenter).Infow("user delete denied",
			"actor", actorID(actor), "target", targetID)
		return fmt.Errorf("delete user %s: %w", targetID, ErrPermissionDenied)
	}
	return c.source.Delete(ctx, targetID)
}

func actorID(u *types.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

// RecordLogin stamps the user's LastLoginAt with the current time.
func (c *UserCenter) RecordLogin(ctx context.Context, id string) (*types.User, error) {
	now := c.now()
	return c.source.Update(ctx, id, func(u *types.User) {
		u.LastLoginAt = &now
	})
}

// GroupByRole partitions users into the fixed role buckets, each ordered
// UpdatedAt descending.
func (c *UserCenter) GroupByRole(ctx context.Context) (map[types.Role][]*types.User, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.Role][]*types.User, 3)
	for _, role := range types.AllRoles() {
		groups[role] = []*types.User{}
	}
	for _, u := range all {
		groups[u.Role] = append(groups[u.Role], u)
	}
	for _, bucket := range groups {
		sortByUpdatedDesc(bucket)
	}
	return groups, nil
}

// Stats computes the user summary.
func (c *UserCenter) Stats(ctx context.Context) (stats.UserStats, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return stats.UserStats{}, err
	}
	return stats.Users(all, c.now()), nil
}
