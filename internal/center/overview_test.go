package center

import (
	"context"
	"errors"
	"testing"

	"solohub/internal/store"
	"solohub/internal/types"
)

func TestDashboard_Overview(t *testing.T) {
	ctx := context.Background()

	projects := newProjectCenter()
	resources := newResourceCenter()
	users := newUserCenter()
	seedProjects(t, projects)
	seedResources(t, resources)
	if _, err := users.Create(ctx, &types.User{Name: "solo", Email: "solo@example.com", Role: types.RoleOwner}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	d := NewDashboard(projects, resources, users)
	o, err := d.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if o.Projects.Total != 4 || o.Resources.Total != 4 || o.Users.Total != 1 {
		t.Errorf("unexpected overview: %+v", o)
	}
	if o.Projects.HealthRate != 33 {
		t.Errorf("expected health rate 33, got %d", o.Projects.HealthRate)
	}
}

type failingSource struct {
	types.DataSource[*types.Project]
}

func (failingSource) GetAll(context.Context) ([]*types.Project, error) {
	return nil, errors.New("backend down")
}

func TestDashboard_OverviewPropagatesErrors(t *testing.T) {
	d := NewDashboard(
		NewProjectCenter(failingSource{}),
		newResourceCenter(),
		NewUserCenter(store.NewUserStore(), nil),
	)
	if _, err := d.Overview(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
}
