package types

import "context"

// Capability interfaces. These are the deliberate seams of the system: the
// centers and the AI hub are constructed against these, never against a
// concrete store, so a memory store can be swapped for SQLite, Badger, or a
// remote API without touching call sites.

// DataSource is the per-domain storage capability consumed by the centers.
// T is a pointer record type (*Project, *Resource, ...).
//
// GetByID, Update, and Delete return ErrNotFound for unknown ids. GetAll
// returns records in the store's default order (projects/resources/sessions:
// UpdatedAt descending; users: CreatedAt ascending).
type DataSource[T Record] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)

	// Create assigns the id and both timestamps, then stores the record.
	Create(ctx context.Context, rec T) (T, error)

	// Update applies mutate to a copy of the stored record, bumps UpdatedAt,
	// and stores the result. Id and CreatedAt survive whatever mutate does.
	Update(ctx context.Context, id string, mutate func(T)) (T, error)

	Delete(ctx context.Context, id string) error
}

// UserSource extends DataSource with the secondary email lookup the user
// store maintains.
type UserSource interface {
	DataSource[*User]
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// SessionStorage is the chat-session persistence capability consumed by the
// AI hub. Save must persist the session exactly as handed over; Get returns
// ErrNotFound for unknown ids.
type SessionStorage interface {
	Save(ctx context.Context, session *ChatSession) error
	Get(ctx context.Context, id string) (*ChatSession, error)
	GetAll(ctx context.Context) ([]*ChatSession, error)
	Delete(ctx context.Context, id string) error
}

// ModelReply is what a provider returns for one completed turn.
type ModelReply struct {
	Content    string
	TokenCount int
	Model      string
}

// ModelProvider is the model backend capability. StreamMessage invokes
// onChunk zero or more times, strictly before returning, and still returns
// the full assembled reply. Providers own their timeouts; this layer does
// not retry.
type ModelProvider interface {
	SendMessage(ctx context.Context, messages []Message, cfg SessionConfig) (*ModelReply, error)
	StreamMessage(ctx context.Context, messages []Message, cfg SessionConfig, onChunk func(chunk string)) (*ModelReply, error)
}
