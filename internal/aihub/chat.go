package aihub

import (
	"context"
	"errors"
	"time"

	"solohub/internal/logging"
	"solohub/internal/store"
	"solohub/internal/types"
)

// SendMessage runs one conversation turn: append the user message, assemble
// the prompt context, call the provider, append and persist the assistant
// reply. Unknown session ids fail with types.ErrNotFound; provider errors
// propagate unmodified (no retry, no fallback), though the user message is
// still persisted so the transcript keeps what the user said.
func (h *AIHub) SendMessage(ctx context.Context, sessionID, content string, cfg *types.SessionConfig) (*types.Message, error) {
	return h.send(ctx, sessionID, content, cfg, nil)
}

// StreamMessage is SendMessage with incremental output: onChunk fires zero
// or more times, strictly before the call returns, and the returned message
// still carries the full assembled content.
func (h *AIHub) StreamMessage(ctx context.Context, sessionID, content string, cfg *types.SessionConfig, onChunk func(chunk string)) (*types.Message, error) {
	if onChunk == nil {
		onChunk = func(string) {}
	}
	return h.send(ctx, sessionID, content, cfg, onChunk)
}

func (h *AIHub) send(ctx context.Context, sessionID, content string, cfg *types.SessionConfig, onChunk func(string)) (*types.Message, error) {
	// Serialize per session: without this, two concurrent sends read the
	// same transcript and the later save drops the earlier append.
	release := h.locks.acquire(sessionID)
	defer release()

	session, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := h.now()
	userMsg := types.Message{
		ID:        store.NewID("msg"),
		SessionID: session.ID,
		Role:      types.MessageRoleUser,
		Content:   content,
		Timestamp: now,
	}
	session.Messages = append(session.Messages, userMsg)

	prompt, agentModel := h.assemblePrompt(ctx, session, now)
	effective := session.EffectiveConfig(cfg)
	if effective.Model == "" {
		effective.Model = agentModel
	}

	log := logging.Get(logging.CategoryAIHub)
	log.Debugw("provider call",
		"session", session.ID, "messages", len(prompt), "model", effective.Model,
		"streaming", onChunk != nil)

	var reply *types.ModelReply
	if onChunk == nil {
		reply, err = h.provider.SendMessage(ctx, prompt, effective)
	} else {
		reply, err = h.provider.StreamMessage(ctx, prompt, effective, onChunk)
	}
	if err != nil {
		// Keep the user's side of the turn even though the provider failed.
		session.Touch(now)
		if saveErr := h.sessions.Save(ctx, session); saveErr != nil {
			log.Errorw("session save after provider failure", "session", session.ID, "error", saveErr)
		}
		return nil, err
	}

	assistant := types.Message{
		ID:         store.NewID("msg"),
		SessionID:  session.ID,
		Role:       types.MessageRoleAssistant,
		Content:    reply.Content,
		Timestamp:  h.now(),
		Model:      reply.Model,
		TokenCount: reply.TokenCount,
	}
	session.Messages = append(session.Messages, assistant)
	session.Touch(assistant.Timestamp)

	if err := h.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &assistant, nil
}

// assemblePrompt builds the provider message list: one synthesized system
// message (the session's explicit prompt, else its agent's stored prompt,
// else none) followed by the trailing window of the transcript, inclusive
// of the just-appended user message. Returns the agent's default model for
// config resolution when the session names an agent.
func (h *AIHub) assemblePrompt(ctx context.Context, session *types.ChatSession, now time.Time) ([]types.Message, string) {
	systemPrompt := session.SystemPrompt()
	agentModel := ""

	if session.AgentID != "" {
		agent, err := h.agents.GetByID(ctx, session.AgentID)
		switch {
		case err == nil:
			if systemPrompt == "" {
				systemPrompt = agent.SystemPrompt
			}
			agentModel = agent.DefaultModel
		case errors.Is(err, types.ErrNotFound):
			// Weak reference: the agent was deleted after the session was
			// created. Proceed without its prompt.
			logging.Get(logging.CategoryAIHub).Warnw("session references missing agent",
				"session", session.ID, "agent", session.AgentID)
		default:
			logging.Get(logging.CategoryAIHub).Errorw("agent lookup failed",
				"session", session.ID, "agent", session.AgentID, "error", err)
		}
	}

	var prompt []types.Message
	if systemPrompt != "" {
		prompt = append(prompt, types.Message{
			ID:        store.NewID("msg"),
			SessionID: session.ID,
			Role:      types.MessageRoleSystem,
			Content:   systemPrompt,
			Timestamp: now,
		})
	}

	window := session.Messages
	if len(window) > h.window {
		window = window[len(window)-h.window:]
	}
	return append(prompt, window...), agentModel
}
