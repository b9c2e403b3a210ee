package center

import (
	"context"

	"golang.org/x/sync/errgroup"

	"solohub/internal/stats"
)

// Overview is the dashboard's one-shot summary across all three families.
type Overview struct {
	Projects  stats.ProjectStats  `json:"projects"`
	Resources stats.ResourceStats `json:"resources"`
	Users     stats.UserStats     `json:"users"`
}

// Dashboard aggregates the three centers for the overview screen.
type Dashboard struct {
	Projects  *ProjectCenter
	Resources *ResourceCenter
	Users     *UserCenter
}

// NewDashboard wires the three centers together.
func NewDashboard(p *ProjectCenter, r *ResourceCenter, u *UserCenter) *Dashboard {
	return &Dashboard{Projects: p, Resources: r, Users: u}
}

// Overview gathers the three summaries concurrently. With a remote-backed
// data source the three GetAll round trips overlap; the first error cancels
// the rest.
func (d *Dashboard) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := d.Projects.Stats(ctx)
		if err != nil {
			return err
		}
		out.Projects = s
		return nil
	})
	g.Go(func() error {
		s, err := d.Resources.Stats(ctx)
		if err != nil {
			return err
		}
		out.Resources = s
		return nil
	})
	g.Go(func() error {
		s, err := d.Users.Stats(ctx)
		if err != nil {
			return err
		}
		out.Users = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
