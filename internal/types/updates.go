package types

import "time"

// Partial-update structs and their merge functions. A nil field means "leave
// alone"; a set field replaces the stored value wholesale. Replacement is
// deliberate for the compound fields too: Tags, ResourceIDs, Meta, Context,
// and Config are swapped as units, never deep-merged, so a caller updating
// user.Meta must send the whole meta object. Each Apply function is the
// single place that spells out which fields an update may touch; ID and
// CreatedAt are not reachable from here at all.

// ProjectUpdate is a partial update for a Project.
type ProjectUpdate struct {
	Name        *string
	Status      *ProjectStatus
	Version     *string
	Owner       *string
	Tags        *[]string
	Description *string
	URL         *string
	ResourceIDs *[]string
}

// Apply writes the set fields onto p.
func (u ProjectUpdate) Apply(p *Project) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Version != nil {
		p.Version = *u.Version
	}
	if u.Owner != nil {
		p.Owner = *u.Owner
	}
	if u.Tags != nil {
		p.Tags = append([]string(nil), (*u.Tags)...)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.URL != nil {
		p.URL = *u.URL
	}
	if u.ResourceIDs != nil {
		p.ResourceIDs = append([]string(nil), (*u.ResourceIDs)...)
	}
}

// ResourceUpdate is a partial update for a Resource. Metadata replaces the
// whole map when set.
type ResourceUpdate struct {
	Name        *string
	Type        *ResourceType
	Status      *ResourceStatus
	Size        *int64
	Path        *string
	Description *string
	ProjectID   *string
	Tags        *[]string
	ExpiresAt   **time.Time
	Metadata    *map[string]any
}

// Apply writes the set fields onto r.
func (u ResourceUpdate) Apply(r *Resource) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Size != nil {
		r.Size = *u.Size
	}
	if u.Path != nil {
		r.Path = *u.Path
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.ProjectID != nil {
		r.ProjectID = *u.ProjectID
	}
	if u.Tags != nil {
		r.Tags = append([]string(nil), (*u.Tags)...)
	}
	if u.ExpiresAt != nil {
		r.ExpiresAt = *u.ExpiresAt
	}
	if u.Metadata != nil {
		m := make(map[string]any, len(*u.Metadata))
		for k, v := range *u.Metadata {
			m[k] = v
		}
		r.Metadata = m
	}
}

// UserUpdate is a partial update for a User. Meta replaces the whole object
// when set (nested preference fields the caller omits are dropped).
type UserUpdate struct {
	Name   *string
	Email  *string
	Role   *Role
	Status *UserStatus
	Meta   **UserMeta
}

// Apply writes the set fields onto usr.
func (u UserUpdate) Apply(usr *User) {
	if u.Name != nil {
		usr.Name = *u.Name
	}
	if u.Email != nil {
		usr.Email = *u.Email
	}
	if u.Role != nil {
		usr.Role = *u.Role
	}
	if u.Status != nil {
		usr.Status = *u.Status
	}
	if u.Meta != nil {
		usr.Meta = *u.Meta
	}
}
