package dashboard

import (
	"fmt"
	"time"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

// UserSummary is an entry of the user picker.
type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Enabled      bool   `json:"enabled"`
	ProjectCount int    `json:"projectCount"`
}

// View is everything the dashboard needs to draw one navigation state.
type View struct {
	Navigation  Navigation     `json:"navigation"`
	Breadcrumbs []Crumb        `json:"breadcrumbs"`
	Users       []UserSummary  `json:"users"`
	Projects    []Project      `json:"projects"`
	Project     *Project       `json:"project,omitempty"`
	Gantt       Gantt          `json:"gantt"`
	Skipped     []SkippedValue `json:"-"`
}

// BuildView assembles the view model for nav from freshly fetched boards and users.
func BuildView(nav Navigation, boards []monday.Board, users []monday.User, now time.Time) (*View, error) {
	all := BuildTree(boards)

	v := &View{
		Navigation: nav,
		Users:      summarizeUsers(users, all),
		Projects:   FilterByUser(all, nav.UserID),
	}

	var userName string
	if nav.UserID != "" {
		u, ok := findUser(users, nav.UserID)
		if !ok {
			return nil, fmt.Errorf("user %s not found", nav.UserID)
		}
		userName = u.Name
	}

	visible := v.Projects
	var projectName string
	if nav.current() == LevelProject {
		p, ok := FindProject(all, nav.ProjectID)
		if !ok {
			return nil, fmt.Errorf("project %s not found", nav.ProjectID)
		}
		projectName = p.Name
		visible = []Project{*p}
	}

	v.Gantt, v.Skipped = BuildGantt(visible, now)
	if nav.current() == LevelProject {
		v.Project = &visible[0]
	} else {
		v.Projects = visible
	}
	v.Breadcrumbs = nav.Breadcrumbs(userName, projectName)
	return v, nil
}

func summarizeUsers(users []monday.User, projects []Project) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		s := UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Enabled: u.Enabled}
		for _, p := range projects {
			if p.HasMember(u.ID) {
				s.ProjectCount++
			}
		}
		out = append(out, s)
	}
	return out
}

func findUser(users []monday.User, id string) (monday.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return monday.User{}, false
}
