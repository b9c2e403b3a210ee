// Package aihub implements the chat hub: session lifecycle, agent catalog,
// and the conversation engine that assembles prompt context and delegates to
// an injected model provider. Storage and provider are capabilities, never
// concrete types, so the hub runs identically over the in-memory store, the
// SQLite store, or a remote backend.
package aihub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solohub/internal/logging"
	"solohub/internal/store"
	"solohub/internal/types"
)

// DefaultContextWindow is the trailing-message window forwarded to the
// provider, inclusive of the just-appended user message.
const DefaultContextWindow = 20

// Options configures an AIHub.
type Options struct {
	// ContextWindow bounds the trailing messages sent per turn.
	// Zero selects DefaultContextWindow.
	ContextWindow int
}

// AIHub composes session storage, the agent catalog, and a model provider.
type AIHub struct {
	sessions types.SessionStorage
	agents   types.DataSource[*types.Agent]
	provider types.ModelProvider
	window   int
	locks    *sessionLocks
	now      func() time.Time
}

// NewAIHub wires the hub together. All three capabilities are required.
func NewAIHub(sessions types.SessionStorage, agents types.DataSource[*types.Agent], provider types.ModelProvider, opts Options) *AIHub {
	window := opts.ContextWindow
	if window <= 0 {
		window = DefaultContextWindow
	}
	return &AIHub{
		sessions: sessions,
		agents:   agents,
		provider: provider,
		window:   window,
		locks:    newSessionLocks(),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Test hook.
func (h *AIHub) SetClock(now func() time.Time) { h.now = now }

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// NewSession describes a session to create.
type NewSession struct {
	Title   string
	AgentID string
	Context *types.SessionContext
	Config  *types.SessionConfig
}

// CreateSession stores an empty session. A referenced agent must exist; an
// empty AgentID is fine (weak reference only checked at creation).
func (h *AIHub) CreateSession(ctx context.Context, in NewSession) (*types.ChatSession, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("session title required: %w", types.ErrValidation)
	}
	if in.AgentID != "" {
		if _, err := h.agents.GetByID(ctx, in.AgentID); err != nil {
			return nil, fmt.Errorf("session agent: %w", err)
		}
	}

	session := &types.ChatSession{
		Title:   in.Title,
		AgentID: in.AgentID,
		Context: in.Context,
		Config:  in.Config,
	}
	session.ID = store.NewID("sess")
	session.StampCreated(h.now())

	if err := h.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	logging.Get(logging.CategoryAIHub).Infow("session created",
		"id", session.ID, "agent", in.AgentID)
	return session, nil
}

// GetSession returns the session or types.ErrNotFound.
func (h *AIHub) GetSession(ctx context.Context, id string) (*types.ChatSession, error) {
	return h.sessions.Get(ctx, id)
}

// ListSessions returns every session, newest-touched first.
func (h *AIHub) ListSessions(ctx context.Context) ([]*types.ChatSession, error) {
	return h.sessions.GetAll(ctx)
}

// RenameSession updates the title and bumps UpdatedAt.
func (h *AIHub) RenameSession(ctx context.Context, id, title string) (*types.ChatSession, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("session title required: %w", types.ErrValidation)
	}
	release := h.locks.acquire(id)
	defer release()

	session, err := h.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Title = title
	session.Touch(h.now())
	if err := h.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes the session and its whole transcript. Terminal:
// there is no per-message deletion, no soft delete.
func (h *AIHub) DeleteSession(ctx context.Context, id string) error {
	release := h.locks.acquire(id)
	defer release()
	return h.sessions.Delete(ctx, id)
}

// =============================================================================
// AGENT CATALOG
// =============================================================================

// CreateAgent validates and stores an agent.
func (h *AIHub) CreateAgent(ctx context.Context, a *types.Agent) (*types.Agent, error) {
	if strings.TrimSpace(a.Name) == "" {
		return nil, fmt.Errorf("agent name required: %w", types.ErrValidation)
	}
	if strings.TrimSpace(a.SystemPrompt) == "" {
		return nil, fmt.Errorf("agent system prompt required: %w", types.ErrValidation)
	}
	return h.agents.Create(ctx, a)
}

// GetAgent returns the agent or types.ErrNotFound.
func (h *AIHub) GetAgent(ctx context.Context, id string) (*types.Agent, error) {
	return h.agents.GetByID(ctx, id)
}

// ListAgents returns agents in store order; activeOnly drops inactive ones.
func (h *AIHub) ListAgents(ctx context.Context, activeOnly bool) ([]*types.Agent, error) {
	all, err := h.agents.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return all, nil
	}
	active := make([]*types.Agent, 0, len(all))
	for _, a := range all {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}
