// Package stats computes the fixed-shape summary statistics the dashboard
// views render. Each summary is produced in a single pass, and every count
// map contains every enum value as a key (zero-initialized) so consumers
// never need a default fallback.
package stats

import (
	"math"
	"time"

	"solohub/internal/types"
)

// DefaultExpiryWindow is the "expiring soon" horizon when the caller does
// not configure one.
const DefaultExpiryWindow = 30 * 24 * time.Hour

// ProjectStats summarizes the project collection.
type ProjectStats struct {
	Total    int                         `json:"total"`
	ByStatus map[types.ProjectStatus]int `json:"byStatus"`

	// HealthRate is the percentage of non-paused projects that are healthy,
	// rounded to the nearest integer. With zero non-paused projects it is
	// defined as 100.
	HealthRate int `json:"healthRate"`
}

// Projects computes ProjectStats over the full collection.
func Projects(projects []*types.Project) ProjectStats {
	s := ProjectStats{
		Total:    len(projects),
		ByStatus: make(map[types.ProjectStatus]int, 4),
	}
	for _, status := range types.AllProjectStatuses() {
		s.ByStatus[status] = 0
	}
	for _, p := range projects {
		s.ByStatus[p.Status]++
	}

	active := s.Total - s.ByStatus[types.ProjectPaused]
	if active <= 0 {
		s.HealthRate = 100
	} else {
		s.HealthRate = int(math.Round(100 * float64(s.ByStatus[types.ProjectHealthy]) / float64(active)))
	}
	return s
}

// ResourceStats summarizes the resource catalog. ExpiringSoon and Expired
// are disjoint buckets: the soon-window opens strictly after now, so an
// already-expired item can never land in both.
type ResourceStats struct {
	Total        int                          `json:"total"`
	ByType       map[types.ResourceType]int   `json:"byType"`
	ByStatus     map[types.ResourceStatus]int `json:"byStatus"`
	ExpiringSoon int                          `json:"expiringSoon"`
	Expired      int                          `json:"expired"`
	TotalSize    int64                        `json:"totalSize"`
}

// Resources computes ResourceStats. window <= 0 selects DefaultExpiryWindow.
func Resources(resources []*types.Resource, now time.Time, window time.Duration) ResourceStats {
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	deadline := now.Add(window)

	s := ResourceStats{
		Total:    len(resources),
		ByType:   make(map[types.ResourceType]int, 10),
		ByStatus: make(map[types.ResourceStatus]int, 4),
	}
	for _, typ := range types.AllResourceTypes() {
		s.ByType[typ] = 0
	}
	for _, status := range types.AllResourceStatuses() {
		s.ByStatus[status] = 0
	}

	for _, r := range resources {
		s.ByType[r.Type]++
		s.ByStatus[r.Status]++
		s.TotalSize += r.Size
		if r.ExpiresAt == nil {
			continue
		}
		switch {
		case r.ExpiresAt.Before(now):
			s.Expired++
		case r.ExpiresAt.After(now) && !r.ExpiresAt.After(deadline):
			s.ExpiringSoon++
		}
	}
	return s
}

// UserStats summarizes the user collection.
type UserStats struct {
	Total       int                      `json:"total"`
	ByRole      map[types.Role]int       `json:"byRole"`
	ByStatus    map[types.UserStatus]int `json:"byStatus"`
	ActiveToday int                      `json:"activeToday"`
}

// Users computes UserStats. ActiveToday counts users whose last login falls
// on or after local midnight of now's day.
func Users(users []*types.User, now time.Time) UserStats {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s := UserStats{
		Total:    len(users),
		ByRole:   make(map[types.Role]int, 3),
		ByStatus: make(map[types.UserStatus]int, 3),
	}
	for _, role := range types.AllRoles() {
		s.ByRole[role] = 0
	}
	for _, status := range types.AllUserStatuses() {
		s.ByStatus[status] = 0
	}

	for _, u := range users {
		s.ByRole[u.Role]++
		s.ByStatus[u.Status]++
		if u.LastLoginAt != nil && !u.LastLoginAt.Before(midnight) {
			s.ActiveToday++
		}
	}
	return s
}
