package center

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"solohub/internal/logging"
	"solohub/internal/query"
	"solohub/internal/stats"
	"solohub/internal/types"
)

// ResourceFilter selects resources by independent criteria. Type and Types
// may be combined; both must pass, like every other criterion.
type ResourceFilter struct {
	Type      types.ResourceType
	Types     []types.ResourceType
	Status    types.ResourceStatus
	ProjectID string
	Tags      []string

	// ExpiringWithinDays, when positive, keeps only resources whose expiry
	// falls in the next N days (exclusive of already-expired ones).
	ExpiringWithinDays int
}

func (f ResourceFilter) predicates(now time.Time) []query.Predicate[*types.Resource] {
	var preds []query.Predicate[*types.Resource]
	if f.Type != "" {
		preds = append(preds, query.Equals(func(r *types.Resource) types.ResourceType { return r.Type }, f.Type))
	}
	if len(f.Types) > 0 {
		preds = append(preds, query.In(func(r *types.Resource) types.ResourceType { return r.Type }, f.Types))
	}
	if f.Status != "" {
		preds = append(preds, query.Equals(func(r *types.Resource) types.ResourceStatus { return r.Status }, f.Status))
	}
	if f.ProjectID != "" {
		preds = append(preds, query.Equals(func(r *types.Resource) string { return r.ProjectID }, f.ProjectID))
	}
	if len(f.Tags) > 0 {
		preds = append(preds, query.HasAllTags(func(r *types.Resource) []string { return r.Tags }, f.Tags))
	}
	if f.ExpiringWithinDays > 0 {
		window := time.Duration(f.ExpiringWithinDays) * 24 * time.Hour
		preds = append(preds, query.ExpiringWithin(func(r *types.Resource) *time.Time { return r.ExpiresAt }, window, now))
	}
	return preds
}

// ResourceSearch is the input to Search.
type ResourceSearch struct {
	Query  string
	Filter ResourceFilter
}

// ResourceCenter is the resource-catalog facade.
type ResourceCenter struct {
	source       types.DataSource[*types.Resource]
	expiryWindow time.Duration
	now          func() time.Time
}

// NewResourceCenter builds the facade. window <= 0 selects the 30-day
// default used by Stats and ExpiringSoon.
func NewResourceCenter(source types.DataSource[*types.Resource], window time.Duration) *ResourceCenter {
	if window <= 0 {
		window = stats.DefaultExpiryWindow
	}
	return &ResourceCenter{source: source, expiryWindow: window, now: time.Now}
}

// SetClock overrides the expiry reference time. Test hook.
func (c *ResourceCenter) SetClock(now func() time.Time) { c.now = now }

// List returns resources matching the filter, in store order.
func (c *ResourceCenter) List(ctx context.Context, filter ResourceFilter) ([]*types.Resource, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(all, filter.predicates(c.now())...), nil
}

// GetByID returns one resource or types.ErrNotFound.
func (c *ResourceCenter) GetByID(ctx context.Context, id string) (*types.Resource, error) {
	return c.source.GetByID(ctx, id)
}

// Search combines the filter with free-text matching over name, description,
// tags, path, and the JSON rendering of the metadata map (so a hostname or
// key prefix is findable without a dedicated criterion).
func (c *ResourceCenter) Search(ctx context.Context, opts ResourceSearch) ([]*types.Resource, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	preds := opts.Filter.predicates(c.now())
	preds = append(preds, query.MatchText(searchableResourceFields, opts.Query))

	matched := query.Apply(all, preds...)
	logging.Get(logging.CategoryCenter).Debugw("resource search",
		"query", strings.TrimSpace(opts.Query), "matched", len(matched))
	return matched, nil
}

func searchableResourceFields(r *types.Resource) []string {
	fields := []string{r.Name, r.Description, r.Path}
	if len(r.Metadata) > 0 {
		if encoded, err := json.Marshal(r.Metadata); err == nil {
			fields = append(fields, string(encoded))
		}
	}
	return append(fields, r.Tags...)
}

// Create validates and stores a new resource.
func (c *ResourceCenter) Create(ctx context.Context, r *types.Resource) (*types.Resource, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("resource name required: %w", types.ErrValidation)
	}
	if r.Type == "" || !r.Type.Valid() {
		return nil, fmt.Errorf("unknown resource type %q: %w", r.Type, types.ErrValidation)
	}
	if r.Status == "" {
		r.Status = types.ResourceActive
	}
	return c.source.Create(ctx, r)
}

// Update applies a partial update. Metadata replaces the whole map when set.
func (c *ResourceCenter) Update(ctx context.Context, id string, upd types.ResourceUpdate) (*types.Resource, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("resource name required: %w", types.ErrValidation)
	}
	if upd.Type != nil && !upd.Type.Valid() {
		return nil, fmt.Errorf("unknown resource type %q: %w", *upd.Type, types.ErrValidation)
	}
	return c.source.Update(ctx, id, upd.Apply)
}

// Delete removes a resource. Projects referencing it keep their dangling
// resource id (weak reference, no cascade).
func (c *ResourceCenter) Delete(ctx context.Context, id string) error {
	return c.source.Delete(ctx, id)
}

// ExpiringSoon returns resources expiring within days (the center's window
// when days <= 0), soonest expiry first.
func (c *ResourceCenter) ExpiringSoon(ctx context.Context, days int) ([]*types.Resource, error) {
	window := c.expiryWindow
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := query.Apply(all, query.ExpiringWithin(
		func(r *types.Resource) *time.Time { return r.ExpiresAt }, window, c.now()))
	sortByExpiryAsc(matched)
	return matched, nil
}

func sortByExpiryAsc(rs []*types.Resource) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].ExpiresAt.Before(*rs[j].ExpiresAt)
	})
}

// GroupByType partitions the catalog into the fixed type buckets, each
// ordered UpdatedAt descending.
func (c *ResourceCenter) GroupByType(ctx context.Context) (map[types.ResourceType][]*types.Resource, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.ResourceType][]*types.Resource, 10)
	for _, typ := range types.AllResourceTypes() {
		groups[typ] = []*types.Resource{}
	}
	for _, r := range all {
		groups[r.Type] = append(groups[r.Type], r)
	}
	for _, bucket := range groups {
		sortByUpdatedDesc(bucket)
	}
	return groups, nil
}

// GroupByStatus partitions the catalog into the fixed status buckets, each
// ordered UpdatedAt descending.
func (c *ResourceCenter) GroupByStatus(ctx context.Context) (map[types.ResourceStatus][]*types.Resource, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.ResourceStatus][]*types.Resource, 4)
	for _, status := range types.AllResourceStatuses() {
		groups[status] = []*types.Resource{}
	}
	for _, r := range all {
		groups[r.Status] = append(groups[r.Status], r)
	}
	for _, bucket := range groups {
		sortByUpdatedDesc(bucket)
	}
	return groups, nil
}

// Stats computes the catalog summary using the center's expiry window.
func (c *ResourceCenter) Stats(ctx context.Context) (stats.ResourceStats, error) {
	all, err := c.source.GetAll(ctx)
	if err != nil {
		return stats.ResourceStats{}, err
	}
	return stats.Resources(all, c.now(), c.expiryWindow), nil
}
