// Package types provides shared type definitions used across solohub packages.
// This package exists to break import cycles between store, center, and aihub.
// Types in this package should be foundational data structures with no complex
// dependencies.
package types

import (
	"errors"
	"time"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a record id (or session id) is unknown.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned when a create/update violates a required-field
	// or uniqueness constraint (missing name, duplicate email, ...).
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// ENUMS
// =============================================================================

// ProjectStatus is the health state of a project.
type ProjectStatus string

const (
	ProjectHealthy ProjectStatus = "healthy"
	ProjectWarning ProjectStatus = "warning"
	ProjectError   ProjectStatus = "error"
	ProjectPaused  ProjectStatus = "paused"
)

// AllProjectStatuses returns every project status. Aggregations iterate this
// so every bucket exists even when its count is zero.
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectHealthy, ProjectWarning, ProjectError, ProjectPaused}
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectHealthy, ProjectWarning, ProjectError, ProjectPaused:
		return true
	}
	return false
}

// ResourceType classifies a catalog resource.
type ResourceType string

const (
	ResourceFile        ResourceType = "file"
	ResourceImage       ResourceType = "image"
	ResourceVideo       ResourceType = "video"
	ResourceDoc         ResourceType = "doc"
	ResourceDomain      ResourceType = "domain"
	ResourceServer      ResourceType = "server"
	ResourceDatabase    ResourceType = "database"
	ResourceAPIKey      ResourceType = "apiKey"
	ResourceCertificate ResourceType = "certificate"
	ResourceConfig      ResourceType = "config"
)

// AllResourceTypes returns every resource type in display order.
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceFile, ResourceImage, ResourceVideo, ResourceDoc,
		ResourceDomain, ResourceServer, ResourceDatabase,
		ResourceAPIKey, ResourceCertificate, ResourceConfig,
	}
}

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	for _, known := range AllResourceTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ResourceStatus is the stored lifecycle state of a resource. Expiry is
// derived from ExpiresAt at query time and never written back.
type ResourceStatus string

const (
	ResourceActive   ResourceStatus = "active"
	ResourceInactive ResourceStatus = "inactive"
	ResourceExpired  ResourceStatus = "expired"
	ResourcePending  ResourceStatus = "pending"
)

// AllResourceStatuses returns every resource status.
func AllResourceStatuses() []ResourceStatus {
	return []ResourceStatus{ResourceActive, ResourceInactive, ResourceExpired, ResourcePending}
}

// Role is a user's access role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AllRoles returns every role.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleMember}
}

// UserStatus is a user's account state.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// AllUserStatuses returns every user status.
func AllUserStatuses() []UserStatus {
	return []UserStatus{UserActive, UserInactive, UserSuspended}
}

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
	MessageRoleTool      MessageRole = "tool"
)

// =============================================================================
// RECORD BASE
// =============================================================================

// Base carries the identity and timestamp fields every stored record has.
// IDs are assigned once at creation and never reassigned; UpdatedAt is bumped
// on every mutation, so UpdatedAt >= CreatedAt always holds.
type Base struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// RecordID returns the record's identifier.
func (b *Base) RecordID() string { return b.ID }

// SetRecordID assigns the identifier. Stores call this exactly once.
func (b *Base) SetRecordID(id string) { b.ID = id }

// StampCreated sets both timestamps to t.
func (b *Base) StampCreated(t time.Time) {
	b.CreatedAt = t
	b.UpdatedAt = t
}

// SetCreatedTime sets CreatedAt. Stores use it to restore the original
// creation time after applying an update.
func (b *Base) SetCreatedTime(t time.Time) { b.CreatedAt = t }

// Touch bumps UpdatedAt to t.
func (b *Base) Touch(t time.Time) { b.UpdatedAt = t }

// CreatedTime returns CreatedAt.
func (b *Base) CreatedTime() time.Time { return b.CreatedAt }

// UpdatedTime returns UpdatedAt.
func (b *Base) UpdatedTime() time.Time { return b.UpdatedAt }

// Record is implemented by every stored entity (via Base).
type Record interface {
	RecordID() string
	SetRecordID(id string)
	StampCreated(t time.Time)
	SetCreatedTime(t time.Time)
	Touch(t time.Time)
	CreatedTime() time.Time
	UpdatedTime() time.Time
}

// =============================================================================
// DOMAIN RECORDS
// =============================================================================

// Project is a tracked project in the admin console.
type Project struct {
	Base        `yaml:",inline"`
	Name        string        `json:"name" yaml:"name"`
	Status      ProjectStatus `json:"status" yaml:"status"`
	Version     string        `json:"version,omitempty" yaml:"version,omitempty"`
	Owner       string        `json:"owner,omitempty" yaml:"owner,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string        `json:"url,omitempty" yaml:"url,omitempty"`

	// ResourceIDs are weak references into the resource catalog. Deleting a
	// resource does not rewrite this list.
	ResourceIDs []string `json:"resourceIds,omitempty" yaml:"resource_ids,omitempty"`
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.ResourceIDs = append([]string(nil), p.ResourceIDs...)
	return &cp
}

// Resource is a catalog entry: a file, a domain, a server, an API key, ...
type Resource struct {
	Base        `yaml:",inline"`
	Name        string         `json:"name" yaml:"name"`
	Type        ResourceType   `json:"type" yaml:"type"`
	Status      ResourceStatus `json:"status" yaml:"status"`
	Size        int64          `json:"size,omitempty" yaml:"size,omitempty"`
	Path        string         `json:"path,omitempty" yaml:"path,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`

	// ProjectID is a weak reference to the owning project.
	ProjectID string     `json:"projectId,omitempty" yaml:"project_id,omitempty"`
	Tags      []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expires_at,omitempty"`

	// Metadata holds type-specific fields (mimeType, hostname, dnsRecords,
	// keyPrefix, permissions, ...). Known keys have typed readers in
	// metadata.go; unknown keys round-trip untouched.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy. Metadata values are copied one level deep;
// nested mutable values are shared.
func (r *Resource) Clone() *Resource {
	cp := *r
	cp.Tags = append([]string(nil), r.Tags...)
	if r.ExpiresAt != nil {
		t := *r.ExpiresAt
		cp.ExpiresAt = &t
	}
	if r.Metadata != nil {
		cp.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

// UserMeta holds optional display preferences for a user.
type UserMeta struct {
	Department    string          `json:"department,omitempty" yaml:"department,omitempty"`
	Title         string          `json:"title,omitempty" yaml:"title,omitempty"`
	Theme         string          `json:"theme,omitempty" yaml:"theme,omitempty"`
	Notifications map[string]bool `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// User is an operator account. Email is a secondary unique lookup key; the
// user store keeps an email index in sync with this field.
type User struct {
	Base        `yaml:",inline"`
	Name        string     `json:"name" yaml:"name"`
	Email       string     `json:"email" yaml:"email"`
	Role        Role       `json:"role" yaml:"role"`
	Status      UserStatus `json:"status" yaml:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" yaml:"last_login_at,omitempty"`
	Meta        *UserMeta  `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	cp := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		cp.LastLoginAt = &t
	}
	if u.Meta != nil {
		m := *u.Meta
		if u.Meta.Notifications != nil {
			m.Notifications = make(map[string]bool, len(u.Meta.Notifications))
			for k, v := range u.Meta.Notifications {
				m.Notifications[k] = v
			}
		}
		cp.Meta = &m
	}
	return &cp
}

// Agent is a reusable chat persona with a stored system prompt.
type Agent struct {
	Base         `yaml:",inline"`
	Name         string         `json:"name" yaml:"name"`
	Role         string         `json:"role,omitempty" yaml:"role,omitempty"`
	SystemPrompt string         `json:"systemPrompt" yaml:"system_prompt"`
	Capabilities []string       `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	DefaultModel string         `json:"defaultModel,omitempty" yaml:"default_model,omitempty"`
	Tags         []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	IsActive     bool           `json:"isActive" yaml:"is_active"`
	Meta         map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Clone returns a deep copy. Meta values are copied one level deep.
func (a *Agent) Clone() *Agent {
	cp := *a
	cp.Capabilities = append([]string(nil), a.Capabilities...)
	cp.Tags = append([]string(nil), a.Tags...)
	if a.Meta != nil {
		cp.Meta = make(map[string]any, len(a.Meta))
		for k, v := range a.Meta {
			cp.Meta[k] = v
		}
	}
	return &cp
}
