// Package auth implements the role-based permission engine. The decision
// function is state-free: a Checker is constructed with an injected
// role→action-set mapping (DefaultRolePermissions is just the reference
// data), asks whether the account is active and whether the role grants the
// action, then applies the contextual user-deletion overrides. Denials
// are plain false results; turning a denial into a user-visible error is the
// caller's job.
package auth

import (
	"solohub/internal/logging"
	"solohub/internal/types"
)

// Action identifies a permissible operation as "resource:verb".
type Action string

const (
	ActionProjectCreate Action = "project:create"
	ActionProjectRead   Action = "project:read"
	ActionProjectUpdate Action = "project:update"
	ActionProjectDelete Action = "project:delete"

	ActionResourceCreate Action = "resource:create"
	ActionResourceRead   Action = "resource:read"
	ActionResourceUpdate Action = "resource:update"
	ActionResourceDelete Action = "resource:delete"

	ActionUserCreate Action = "user:create"
	ActionUserRead   Action = "user:read"
	ActionUserUpdate Action = "user:update"
	ActionUserDelete Action = "user:delete"

	ActionAIUse    Action = "ai:use"
	ActionAIManage Action = "ai:manage"

	ActionSettingRead   Action = "setting:read"
	ActionSettingUpdate Action = "setting:update"

	ActionLogRead  Action = "log:read"
	ActionLogClear Action = "log:clear"

	ActionAdminAccess Action = "admin:access"
)

// AllActions returns the full action catalog.
func AllActions() []Action {
	return []Action{
		ActionProjectCreate, ActionProjectRead, ActionProjectUpdate, ActionProjectDelete,
		ActionResourceCreate, ActionResourceRead, ActionResourceUpdate, ActionResourceDelete,
		ActionUserCreate, ActionUserRead, ActionUserUpdate, ActionUserDelete,
		ActionAIUse, ActionAIManage,
		ActionSettingRead, ActionSettingUpdate,
		ActionLogRead, ActionLogClear,
		ActionAdminAccess,
	}
}

// RolePermissions maps each role to its granted actions. This is data, not
// code: hosts may hand the Checker any mapping, including one loaded from
// config.
type RolePermissions map[types.Role][]Action

// DefaultRolePermissions is the reference grant table: owner gets
// everything, admin everything except user deletion and log clearing,
// member read-mostly access.
func DefaultRolePermissions() RolePermissions {
	var admin []Action
	for _, a := range AllActions() {
		if a == ActionUserDelete || a == ActionLogClear {
			continue
		}
		admin = append(admin, a)
	}
	return RolePermissions{
		types.RoleOwner: AllActions(),
		types.RoleAdmin: admin,
		types.RoleMember: {
			ActionProjectRead, ActionProjectUpdate,
			ActionResourceCreate, ActionResourceRead, ActionResourceUpdate,
			ActionUserRead,
			ActionAIUse,
			ActionSettingRead,
		},
	}
}

// Context carries the target of an action for contextual overrides. Callers
// resolve the target user before asking; the engine itself holds no state.
type Context struct {
	TargetUserID string
	TargetRole   types.Role
}

// Checker answers permission questions against one grant table.
type Checker struct {
	grants map[types.Role]map[Action]struct{}
}

// NewChecker compiles the mapping into lookup sets. A nil mapping selects
// DefaultRolePermissions.
func NewChecker(perms RolePermissions) *Checker {
	if perms == nil {
		perms = DefaultRolePermissions()
	}
	grants := make(map[types.Role]map[Action]struct{}, len(perms))
	for role, actions := range perms {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		grants[role] = set
	}
	return &Checker{grants: grants}
}

// HasPermission decides allow/deny for one user and action.
//
// Step 1: the account must be active (a suspended owner is denied
// everything) and the role's grant set must contain the action.
// Step 2: for user:delete with a target in pctx, self-deletion is denied,
// and deleting an owner is denied unless the actor is an owner too.
func (c *Checker) HasPermission(user *types.User, action Action, pctx *Context) bool {
	if user == nil || user.Status != types.UserActive {
		return false
	}
	set, ok := c.grants[user.Role]
	if !ok {
		return false
	}
	if _, granted := set[action]; !granted {
		return false
	}

	if action == ActionUserDelete && pctx != nil && pctx.TargetUserID != "" {
		if pctx.TargetUserID == user.ID {
			logging.Get(logging.CategoryAuth).Debugw("denied self-deletion", "user", user.ID)
			return false
		}
		if pctx.TargetRole == types.RoleOwner && user.Role != types.RoleOwner {
			logging.Get(logging.CategoryAuth).Debugw("denied owner deletion by non-owner",
				"user", user.ID, "target", pctx.TargetUserID)
			return false
		}
	}
	return true
}

// CanAccessProject reports whether the user may view projects. Owner and
// admin short-circuit to true; per-project membership is not checked (known
// simplification, not a security guarantee).
func (c *Checker) CanAccessProject(user *types.User) bool {
	if user != nil && user.Status == types.UserActive &&
		(user.Role == types.RoleOwner || user.Role == types.RoleAdmin) {
		return true
	}
	return c.HasPermission(user, ActionProjectRead, nil)
}

// CanManageProject reports whether the user may modify projects. Same
// short-circuit and the same membership simplification as CanAccessProject.
func (c *Checker) CanManageProject(user *types.User) bool {
	if user != nil && user.Status == types.UserActive &&
		(user.Role == types.RoleOwner || user.Role == types.RoleAdmin) {
		return true
	}
	return c.HasPermission(user, ActionProjectUpdate, nil)
}
