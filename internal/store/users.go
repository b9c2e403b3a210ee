package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"solohub/internal/logging"
	"solohub/internal/types"
)

// UserStore wraps a Memory[*types.User] with a secondary email→id index.
// The index is exactly the inverse of the collection's email field at all
// times: no user without an index entry, no index entry without a user.
// Emails are matched case-insensitively.
type UserStore struct {
	mu      sync.Mutex
	mem     *Memory[*types.User]
	byEmail map[string]string
}

// NewUserStore creates an empty user store (default order: CreatedAt asc).
func NewUserStore() *UserStore {
	return &UserStore{
		mem:     NewMemory[*types.User]("user", ByCreatedAsc[*types.User]),
		byEmail: make(map[string]string),
	}
}

// SetClock overrides the timestamp source of the wrapped store. Test hook.
func (s *UserStore) SetClock(now func() time.Time) { s.mem.SetClock(now) }

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetAll returns all users ordered by CreatedAt ascending.
func (s *UserStore) GetAll(ctx context.Context) ([]*types.User, error) {
	return s.mem.GetAll(ctx)
}

// GetByID returns the user or types.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*types.User, error) {
	return s.mem.GetByID(ctx, id)
}

// GetByEmail resolves a user through the email index.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	s.mu.Lock()
	id, ok := s.byEmail[emailKey(email)]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("user email %q: %w", email, types.ErrNotFound)
	}
	return s.mem.GetByID(ctx, id)
}

// Create stores the user and registers its email. A duplicate email is a
// validation failure.
func (s *UserStore) Create(ctx context.Context, u *types.User) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(u.Email)
	if key == "" {
		return nil, fmt.Errorf("user email required: %w", types.ErrValidation)
	}
	if _, exists := s.byEmail[key]; exists {
		return nil, fmt.Errorf("user email %q already registered: %w", u.Email, types.ErrValidation)
	}

	created, err := s.mem.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.byEmail[key] = created.ID

	logging.Get(logging.CategoryStore).Debugw("user indexed", "id", created.ID, "email", key)
	return created, nil
}

// Update applies mutate and keeps the email index in sync when the email
// changes. mutate runs twice: once on a probe copy to learn the new email,
// once for real; it must therefore be a pure field-setter.
func (s *UserStore) Update(ctx context.Context, id string, mutate func(*types.User)) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.mem.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldKey := emailKey(cur.Email)

	probe := cur.Clone()
	mutate(probe)
	newKey := emailKey(probe.Email)
	if newKey == "" {
		return nil, fmt.Errorf("user email required: %w", types.ErrValidation)
	}
	if newKey != oldKey {
		if _, exists := s.byEmail[newKey]; exists {
			return nil, fmt.Errorf("user email %q already registered: %w", probe.Email, types.ErrValidation)
		}
	}

	updated, err := s.mem.Update(ctx, id, mutate)
	if err != nil {
		return nil, err
	}
	if newKey != oldKey {
		delete(s.byEmail, oldKey)
		s.byEmail[newKey] = id
		logging.Get(logging.CategoryStore).Debugw("user email reindexed",
			"id", id, "from", oldKey, "to", newKey)
	}
	return updated, nil
}

// EmailScanner adapts any user DataSource to types.UserSource with a linear
// scan in place of a secondary index. It is what backends without index
// support (badger) hand to the user center; uniqueness is still enforced on
// Create, just by scanning.
type EmailScanner struct {
	types.DataSource[*types.User]
}

// GetByEmail scans the collection for a case-insensitive email match.
func (s EmailScanner) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	key := emailKey(email)
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if emailKey(u.Email) == key {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user email %q: %w", email, types.ErrNotFound)
}

// Create rejects empty and duplicate emails before delegating.
func (s EmailScanner) Create(ctx context.Context, u *types.User) (*types.User, error) {
	if emailKey(u.Email) == "" {
		return nil, fmt.Errorf("user email required: %w", types.ErrValidation)
	}
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return nil, fmt.Errorf("user email %q already registered: %w", u.Email, types.ErrValidation)
	}
	return s.DataSource.Create(ctx, u)
}

// Update probes mutate on a copy to learn the new email and rejects empty or
// taken ones before delegating, mirroring the indexed store's checks. mutate
// runs twice and must therefore be a pure field-setter.
func (s EmailScanner) Update(ctx context.Context, id string, mutate func(*types.User)) (*types.User, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	probe := cur.Clone()
	mutate(probe)
	newKey := emailKey(probe.Email)
	if newKey == "" {
		return nil, fmt.Errorf("user email required: %w", types.ErrValidation)
	}
	if newKey != emailKey(cur.Email) {
		if existing, err := s.GetByEmail(ctx, probe.Email); err == nil && existing.ID != id {
			return nil, fmt.Errorf("user email %q already registered: %w", probe.Email, types.ErrValidation)
		}
	}
	return s.DataSource.Update(ctx, id, mutate)
}

// Delete removes the user and its index entry.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.mem.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.mem.Delete(ctx, id); err != nil {
		return err
	}
	delete(s.byEmail, emailKey(cur.Email))
	return nil
}
