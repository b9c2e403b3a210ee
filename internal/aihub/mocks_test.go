package aihub

import (
	"context"
	"sync"
	"time"

	"solohub/internal/types"
)

// fakeProvider records every call and plays back a canned reply.
type fakeProvider struct {
	mu     sync.Mutex
	calls  [][]types.Message
	cfgs   []types.SessionConfig
	reply  string
	tokens int
	model  string
	err    error
	chunks []string
	delay  time.Duration
}

func (f *fakeProvider) record(messages []types.Message, cfg types.SessionConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := append([]types.Message(nil), messages...)
	f.calls = append(f.calls, snapshot)
	f.cfgs = append(f.cfgs, cfg)
}

func (f *fakeProvider) lastCall() []types.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeProvider) lastCfg() types.SessionConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cfgs) == 0 {
		return types.SessionConfig{}
	}
	return f.cfgs[len(f.cfgs)-1]
}

func (f *fakeProvider) SendMessage(ctx context.Context, messages []types.Message, cfg types.SessionConfig) (*types.ModelReply, error) {
	f.record(messages, cfg)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &types.ModelReply{Content: f.reply, TokenCount: f.tokens, Model: f.model}, nil
}

func (f *fakeProvider) StreamMessage(ctx context.Context, messages []types.Message, cfg types.SessionConfig, onChunk func(string)) (*types.ModelReply, error) {
	f.record(messages, cfg)
	if f.err != nil {
		return nil, f.err
	}
	var full string
	for _, chunk := range f.chunks {
		full += chunk
		onChunk(chunk)
	}
	if full == "" {
		full = f.reply
	}
	return &types.ModelReply{Content: full, TokenCount: f.tokens, Model: f.model}, nil
}
