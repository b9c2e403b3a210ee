package center

import (
	"context"
	"testing"
	"time"

	"solohub/internal/store"
	"solohub/internal/types"
)

var resourceNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newResourceCenter() *ResourceCenter {
	c := NewResourceCenter(store.NewMemory[*types.Resource]("res", store.ByUpdatedDesc[*types.Resource]), 0)
	c.SetClock(func() time.Time { return resourceNow })
	return c
}

func seedResources(t *testing.T, c *ResourceCenter) {
	t.Helper()
	ctx := context.Background()

	in10 := resourceNow.Add(10 * 24 * time.Hour)
	in45 := resourceNow.Add(45 * 24 * time.Hour)
	past := resourceNow.Add(-24 * time.Hour)

	seed := []*types.Resource{
		{Name: "tls-cert", Type: types.ResourceCertificate, Status: types.ResourceActive, ExpiresAt: &in10, ProjectID: "proj_site"},
		{Name: "apex.example", Type: types.ResourceDomain, Status: types.ResourceActive, ExpiresAt: &in45,
			Metadata: map[string]any{"hostname": "apex.example", "dnsRecords": []string{"A", "MX"}}},
		{Name: "stripe-key", Type: types.ResourceAPIKey, Status: types.ResourceExpired, ExpiresAt: &past,
			Metadata: map[string]any{"keyPrefix": "sk_live"}},
		{Name: "hero.png", Type: types.ResourceImage, Status: types.ResourceActive, Size: 512000,
			Path: "/assets/hero.png", Tags: []string{"brand"}},
	}
	for _, r := range seed {
		if _, err := c.Create(ctx, r); err != nil {
			t.Fatalf("seed %s: %v", r.Name, err)
		}
	}
}

func TestResourceCenter_FilterByTypeAndProject(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	certs, err := c.List(ctx, ResourceFilter{Type: types.ResourceCertificate})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(certs) != 1 || certs[0].Name != "tls-cert" {
		t.Errorf("type filter broken: %v", certs)
	}

	media, _ := c.List(ctx, ResourceFilter{Types: []types.ResourceType{types.ResourceImage, types.ResourceVideo}})
	if len(media) != 1 || media[0].Name != "hero.png" {
		t.Errorf("type-set filter broken")
	}

	byProject, _ := c.List(ctx, ResourceFilter{ProjectID: "proj_site"})
	if len(byProject) != 1 || byProject[0].Name != "tls-cert" {
		t.Errorf("project filter broken")
	}
}

func TestResourceCenter_SearchMetadataAndPath(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	// The JSON-rendered metadata map is searchable.
	byPrefix, err := c.Search(ctx, ResourceSearch{Query: "sk_live"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byPrefix) != 1 || byPrefix[0].Name != "stripe-key" {
		t.Errorf("metadata search broken: %v", byPrefix)
	}

	byPath, _ := c.Search(ctx, ResourceSearch{Query: "/assets/"})
	if len(byPath) != 1 || byPath[0].Name != "hero.png" {
		t.Errorf("path search broken")
	}
}

func TestResourceCenter_ExpiringSoon(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	// Default 30-day window: only the cert. The expired key must not appear.
	soon, err := c.ExpiringSoon(ctx, 0)
	if err != nil {
		t.Fatalf("ExpiringSoon failed: %v", err)
	}
	if len(soon) != 1 || soon[0].Name != "tls-cert" {
		t.Errorf("expected [tls-cert], got %v", soon)
	}

	// Widened to 60 days: cert first (soonest expiry), then the domain.
	wide, _ := c.ExpiringSoon(ctx, 60)
	if len(wide) != 2 || wide[0].Name != "tls-cert" || wide[1].Name != "apex.example" {
		t.Errorf("expected [tls-cert apex.example], got %v", wide)
	}
}

func TestResourceCenter_Stats(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	s, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if s.Total != 4 || s.ExpiringSoon != 1 || s.Expired != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if s.TotalSize != 512000 {
		t.Errorf("expected total size 512000, got %d", s.TotalSize)
	}
}

func TestResourceCenter_GroupByType(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	groups, err := c.GroupByType(ctx)
	if err != nil {
		t.Fatalf("GroupByType failed: %v", err)
	}
	if len(groups) != len(types.AllResourceTypes()) {
		t.Errorf("expected all type buckets, got %d", len(groups))
	}
	if len(groups[types.ResourceCertificate]) != 1 || len(groups[types.ResourceConfig]) != 0 {
		t.Errorf("unexpected buckets")
	}
}

func TestResourceCenter_MetadataReaders(t *testing.T) {
	ctx := context.Background()
	c := newResourceCenter()
	seedResources(t, c)

	matches, _ := c.Search(ctx, ResourceSearch{Query: "apex"})
	if len(matches) != 1 {
		t.Fatalf("expected apex domain, got %v", matches)
	}
	r := matches[0]
	if r.Hostname() != "apex.example" {
		t.Errorf("hostname reader broken: %q", r.Hostname())
	}
	if got := r.DNSRecords(); len(got) != 2 || got[0] != "A" {
		t.Errorf("dnsRecords reader broken: %v", got)
	}
	if r.MimeType() != "" {
		t.Errorf("absent metadata key should read as empty")
	}
}
