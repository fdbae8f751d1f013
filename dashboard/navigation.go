package dashboard

import "fmt"

// Level is a step of the drill-down: every project, one user's projects, one project.
type Level string

const (
	LevelAll     Level = "all"
	LevelUser    Level = "user"
	LevelProject Level = "project"
)

// Navigation is the dashboard's breadcrumb state. The zero value is the
// initial "all" level. It is plain data so the browser can hold it and send
// it back on every view request.
type Navigation struct {
	Level     Level  `json:"level"`
	UserID    string `json:"userId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

// ParseNavigation rebuilds a Navigation from request parameters. An empty
// level is inferred from which ids are present.
func ParseNavigation(level, userID, projectID string) (Navigation, error) {
	n := Navigation{UserID: userID, ProjectID: projectID}
	switch Level(level) {
	case "":
		switch {
		case projectID != "":
			n.Level = LevelProject
		case userID != "":
			n.Level = LevelUser
		default:
			n.Level = LevelAll
		}
	case LevelAll:
		return Navigation{Level: LevelAll}, nil
	case LevelUser:
		if userID == "" {
			return Navigation{}, fmt.Errorf("level %q requires a user id", level)
		}
		n.Level = LevelUser
		n.ProjectID = ""
	case LevelProject:
		if projectID == "" {
			return Navigation{}, fmt.Errorf("level %q requires a project id", level)
		}
		n.Level = LevelProject
	default:
		return Navigation{}, fmt.Errorf("unknown navigation level %q", level)
	}
	return n, nil
}

func (n Navigation) current() Level {
	if n.Level == "" {
		return LevelAll
	}
	return n.Level
}

// SelectUser filters to one user's projects.
func (n Navigation) SelectUser(userID string) Navigation {
	if userID == "" {
		return n.SelectAll()
	}
	return Navigation{Level: LevelUser, UserID: userID}
}

// SelectAll is the "ALL USERS" reset.
func (n Navigation) SelectAll() Navigation {
	return Navigation{Level: LevelAll}
}

// OpenProject drills into a single board, keeping any user filter so Back can return to it.
func (n Navigation) OpenProject(projectID string) Navigation {
	return Navigation{Level: LevelProject, UserID: n.UserID, ProjectID: projectID}
}

// Back goes up one level. It is a no-op at the top.
func (n Navigation) Back() Navigation {
	switch n.current() {
	case LevelProject:
		if n.UserID != "" {
			return Navigation{Level: LevelUser, UserID: n.UserID}
		}
		return Navigation{Level: LevelAll}
	default:
		return Navigation{Level: LevelAll}
	}
}

// Crumb is one breadcrumb entry. Nav is the state clicking it leads to.
type Crumb struct {
	Label  string     `json:"label"`
	Nav    Navigation `json:"nav"`
	Active bool       `json:"active"`
}

// Breadcrumbs renders the path to the current level. Names resolve ids to labels.
func (n Navigation) Breadcrumbs(userName, projectName string) []Crumb {
	crumbs := []Crumb{{Label: "All Users", Nav: Navigation{Level: LevelAll}}}
	if n.UserID != "" {
		crumbs = append(crumbs, Crumb{Label: labelOr(userName, n.UserID), Nav: Navigation{Level: LevelUser, UserID: n.UserID}})
	}
	if n.current() == LevelProject {
		crumbs = append(crumbs, Crumb{Label: labelOr(projectName, n.ProjectID), Nav: n})
	}
	crumbs[len(crumbs)-1].Active = true
	return crumbs
}

func labelOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
