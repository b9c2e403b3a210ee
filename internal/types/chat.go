package types

import "time"

// =============================================================================
// CHAT SESSION TYPES
// =============================================================================

// SessionContext carries an explicit system prompt plus template variables.
// When SystemPrompt is set it takes precedence over the session's agent.
type SessionContext struct {
	SystemPrompt string            `json:"systemPrompt,omitempty" yaml:"system_prompt,omitempty"`
	Variables    map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// SessionConfig holds per-session model settings. A per-call config passed to
// SendMessage overrides these field by field.
type SessionConfig struct {
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty" yaml:"max_tokens,omitempty"`
	Stream      bool     `json:"stream,omitempty" yaml:"stream,omitempty"`
}

// Merge returns cfg overlaid with the non-zero fields of override.
func (cfg SessionConfig) Merge(override *SessionConfig) SessionConfig {
	if override == nil {
		return cfg
	}
	out := cfg
	if override.Model != "" {
		out.Model = override.Model
	}
	if override.Temperature != nil {
		out.Temperature = override.Temperature
	}
	if override.MaxTokens > 0 {
		out.MaxTokens = override.MaxTokens
	}
	if override.Stream {
		out.Stream = true
	}
	return out
}

// MessagePart is one segment of structured message content (text, code, ...).
type MessagePart struct {
	Type     string         `json:"type"`
	Content  string         `json:"content"`
	Language string         `json:"language,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ToolCall records a tool invocation made while producing a message.
type ToolCall struct {
	Name   string `json:"name"`
	Args   string `json:"args,omitempty"`
	Result string `json:"result,omitempty"`
}

// MessageMeta holds optional per-message annotations.
type MessageMeta struct {
	Edited    bool       `json:"edited,omitempty"`
	ReplyTo   string     `json:"replyTo,omitempty"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Message is one chat turn. Messages are append-only within a session;
// there is no per-message delete or reorder, only whole-session deletion.
type Message struct {
	ID        string       `json:"id"`
	SessionID string       `json:"sessionId"`
	Role      MessageRole  `json:"role"`
	Content   string       `json:"content"`
	Parts     []MessagePart `json:"parts,omitempty"`
	Timestamp time.Time    `json:"timestamp"`

	// Model and TokenCount are set on assistant messages.
	Model      string       `json:"model,omitempty"`
	TokenCount int          `json:"tokenCount,omitempty"`
	Meta       *MessageMeta `json:"meta,omitempty"`
}

// ChatSession is a conversation transcript plus its per-session settings.
// Message order is append order and is never rewritten.
type ChatSession struct {
	Base     `yaml:",inline"`
	Title    string          `json:"title" yaml:"title"`
	AgentID  string          `json:"agentId,omitempty" yaml:"agent_id,omitempty"`
	Messages []Message       `json:"messages" yaml:"messages"`
	Context  *SessionContext `json:"context,omitempty" yaml:"context,omitempty"`
	Config   *SessionConfig  `json:"config,omitempty" yaml:"config,omitempty"`
}

// Clone returns a deep copy. Message Parts/Meta are copied one level deep.
func (s *ChatSession) Clone() *ChatSession {
	cp := *s
	cp.Messages = append([]Message(nil), s.Messages...)
	if s.Context != nil {
		c := *s.Context
		if s.Context.Variables != nil {
			c.Variables = make(map[string]string, len(s.Context.Variables))
			for k, v := range s.Context.Variables {
				c.Variables[k] = v
			}
		}
		cp.Context = &c
	}
	if s.Config != nil {
		c := *s.Config
		cp.Config = &c
	}
	return &cp
}

// SystemPrompt returns the session's explicit system prompt, or "".
func (s *ChatSession) SystemPrompt() string {
	if s.Context == nil {
		return ""
	}
	return s.Context.SystemPrompt
}

// EffectiveConfig resolves the config used for one provider call.
func (s *ChatSession) EffectiveConfig(override *SessionConfig) SessionConfig {
	var base SessionConfig
	if s.Config != nil {
		base = *s.Config
	}
	return base.Merge(override)
}
