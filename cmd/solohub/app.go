package main

import (
	"context"
	"fmt"
	"os"

	"solohub/internal/aihub"
	"solohub/internal/auth"
	"solohub/internal/center"
	"solohub/internal/config"
	"solohub/internal/store"
	"solohub/internal/types"
)

// app is the composition root. Every store is opened here and injected into
// the facades; nothing below this layer constructs storage on its own.
type app struct {
	projects  *center.ProjectCenter
	resources *center.ResourceCenter
	users     *center.UserCenter
	dashboard *center.Dashboard
	hub       *aihub.AIHub

	closers []func() error
}

// buildApp wires stores, centers, and the hub per config. withAI controls
// whether the Gemini provider is constructed; commands that never talk to
// the model skip it so they work without an API key.
func buildApp(ctx context.Context, cfg *config.Config, withAI bool) (*app, error) {
	a := &app{}

	var (
		projectSource  types.DataSource[*types.Project]
		resourceSource types.DataSource[*types.Resource]
		agentSource    types.DataSource[*types.Agent]
		userSource     types.UserSource
	)

	switch cfg.Storage.Backend {
	case "", "memory":
		projectSource = store.NewMemory[*types.Project]("proj", store.ByUpdatedDesc[*types.Project])
		resourceSource = store.NewMemory[*types.Resource]("res", store.ByUpdatedDesc[*types.Resource])
		agentSource = store.NewMemory[*types.Agent]("agent", store.ByUpdatedDesc[*types.Agent])
		userSource = store.NewUserStore()
	case "badger":
		db, err := store.OpenBadger(cfg.BadgerDir())
		if err != nil {
			return nil, a.fail(err)
		}
		a.closers = append(a.closers, db.Close)
		projectSource = store.NewBadgerStore[*types.Project](db, "proj", store.ByUpdatedDesc[*types.Project])
		resourceSource = store.NewBadgerStore[*types.Resource](db, "res", store.ByUpdatedDesc[*types.Resource])
		agentSource = store.NewBadgerStore[*types.Agent](db, "agent", store.ByUpdatedDesc[*types.Agent])
		userSource = store.EmailScanner{
			DataSource: store.NewBadgerStore[*types.User](db, "user", store.ByCreatedAsc[*types.User]),
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	var sessions types.SessionStorage
	switch cfg.Storage.SessionBackend {
	case "", "memory":
		sessions = store.NewMemorySessionStore()
	case "sqlite":
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, a.fail(fmt.Errorf("create data dir: %w", err))
		}
		s, err := store.NewSQLiteSessionStore(cfg.SessionDBPath())
		if err != nil {
			return nil, a.fail(err)
		}
		a.closers = append(a.closers, s.Close)
		sessions = s
	default:
		return nil, a.fail(fmt.Errorf("unknown session backend %q", cfg.Storage.SessionBackend))
	}

	var provider types.ModelProvider
	if withAI {
		p, err := aihub.NewGeminiProvider(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, a.fail(err)
		}
		provider = p
	}

	checker := auth.NewChecker(rolePermissions(cfg.Permissions))

	a.projects = center.NewProjectCenter(projectSource)
	a.resources = center.NewResourceCenter(resourceSource, cfg.ExpiryWindow())
	a.users = center.NewUserCenter(userSource, checker)
	a.dashboard = center.NewDashboard(a.projects, a.resources, a.users)
	a.hub = aihub.NewAIHub(sessions, agentSource, provider, aihub.Options{
		ContextWindow: cfg.AI.ContextWindow,
	})
	return a, nil
}

// Close releases every opened backend, last-opened first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func (a *app) fail(err error) error {
	a.Close()
	return err
}

// rolePermissions compiles the config grant table into the checker's shape.
// An empty table selects the built-in defaults.
func rolePermissions(pc config.PermissionsConfig) auth.RolePermissions {
	if len(pc.Roles) == 0 {
		return nil
	}
	perms := make(auth.RolePermissions, len(pc.Roles))
	for role, actions := range pc.Roles {
		list := make([]auth.Action, 0, len(actions))
		for _, action := range actions {
			list = append(list, auth.Action(action))
		}
		perms[types.Role(role)] = list
	}
	return perms
}
