// Package center implements the domain facades: one API object per entity
// family composing the store capability with the query, stats, and auth
// engines. Facades are constructed against the types.DataSource seam, never
// a concrete store, so backends can be swapped at the composition root.
package center

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"solohub/internal/logging"
	"solohub/internal/query"
	"solohub/internal/stats"
	"solohub/internal/types"
)

// ErrPermissionDenied is returned when a facade operation fails the
// permission check. The engine itself only answers false; this is the
// user-visible translation.
var ErrPermissionDenied = errors.New("permission denied")

// ProjectFilter selects projects by independent criteria. Zero values
// constrain nothing; Tags is a conjunctive match.
type ProjectFilter struct {
	Status types.ProjectStatus
	Owner  string
	Tags   []string
}

func (f ProjectFilter) predicates() []query.Predicate[*types.Project] {
	var preds []query.Predicate[*types.Project]
	if f.Status != "" {
		preds = append(preds, query.Equals(func(p *types.Project) types.ProjectStatus { return p.Status }, f.Status))
	}
	if f.Owner != "" {
		preds = append(preds, query.Equals(func(p *types.Project) string { return p.Owner }, f.Owner))
	}
	if len(f.Tags) > 0 {
		preds = append(preds, query.HasAllTags(func(p *types.Project) []string { return p.Tags }, f.Tags))
	}
	return preds
}

// ProjectSearch is the input to Search. IncludeDescription widens the
// searchable fields to the description text.
type ProjectSearch struct {
	Query              string
	Filter             ProjectFilter
	IncludeDescription bool
}

// ProjectCenter is the project-family facade.
type ProjectCenter struct {
	source types.DataSource[*types.Project]
}

// NewProjectCenter builds the facade over an injected data source.
func NewProjectCenter(source types.DataSource[*types.Project]) *ProjectCenter {
	return &ProjectCenter{source: source}
}

// List returns projects matching the filter, in store order (UpdatedAt
// descending).
func (c *ProjectCenter) List(ctx context.Context, filter ProjectFilter) ([]*types.Project, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(all, filter.predicates()...), nil
}

// GetByID returns one project or types.ErrNotFound.
func (c *ProjectCenter) GetByID(ctx context.Context, id string) (*types.Project, error) {
	return c.source.GetByID(ctx, id)
}

// Search combines the filter with free-text matching over name, optional
// description, tags, owner, and version. An empty query degrades to List.
func (c *ProjectCenter) Search(ctx context.Context, opts ProjectSearch) ([]*types.Project, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	preds := opts.Filter.predicates()
	preds = append(preds, query.MatchText(func(p *types.Project) []string {
		fields := []string{p.Name, p.Owner, p.Version}
		if opts.IncludeDescription {
			fields = append(fields, p.Description)
		}
		return append(fields, p.Tags...)
	}, opts.Query))

	matched := query.Apply(all, preds...)
	logging.Get(logging.CategoryCenter).Debugw("project search",
		"query", strings.TrimSpace(opts.Query), "matched", len(matched))
	return matched, nil
}

// Create validates and stores a new project.
func (c *ProjectCenter) Create(ctx context.Context, p *types.Project) (*types.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("project name required: %w", types.ErrValidation)
	}
	if p.Status == "" {
		p.Status = types.ProjectHealthy
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("unknown project status %q: %w", p.Status, types.ErrValidation)
	}
	return c.source.Create(ctx, p)
}

// Update applies a partial update. Compound fields replace wholesale; see
// types.ProjectUpdate.
func (c *ProjectCenter) Update(ctx context.Context, id string, upd types.ProjectUpdate) (*types.Project, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("unknown project status %q: %w", *upd.Status, types.ErrValidation)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("project name required: %w", types.ErrValidation)
	}
	return c.source.Update(ctx, id, upd.Apply)
}

// Delete removes a project. Resources referencing it keep their dangling
// projectId (weak reference, no cascade).
func (c *ProjectCenter) Delete(ctx context.Context, id string) error {
	return c.source.Delete(ctx, id)
}

// GroupByStatus partitions the full collection into the four status buckets.
// Every bucket exists even when empty; each is ordered UpdatedAt descending.
func (c *ProjectCenter) GroupByStatus(ctx context.Context) (map[types.ProjectStatus][]*types.Project, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.ProjectStatus][]*types.Project, 4)
	for _, status := range types.AllProjectStatuses() {
		groups[status] = []*types.Project{}
	}
	for _, p := range all {
		groups[p.Status] = append(groups[p.Status], p)
	}
	for _, bucket := range groups {
		sortByUpdatedDesc(bucket)
	}
	return groups, nil
}

// Stats computes the dashboard summary for projects.
func (c *ProjectCenter) Stats(ctx context.Context) (stats.ProjectStats, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return stats.ProjectStats{}, err
	}
	return stats.Projects(all), nil
}

func sortByUpdatedDesc[T types.Record](recs []T) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UpdatedTime().After(recs[j].UpdatedTime())
	})
}
