// Package dashboard turns flat Monday.com board lists into the project view
// the dashboard renders: nested subitem boards, inferred date ranges, Gantt
// bar geometry and breadcrumb navigation.
package dashboard

import (
	"strings"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

// Project is a main board with its subitem boards nested under it and, once
// dates are resolved, its inferred schedule.
type Project struct {
	monday.Board

	HasSubitems bool           `json:"hasSubitems"`
	Subitems    []monday.Board `json:"subitems"`
	// TotalItems counts fetched items and drives date estimates.
	TotalItems int `json:"totalItems"`
	// ReportedItems sums items_count for display.
	ReportedItems int `json:"reportedItems"`

	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
	Status            Status `json:"status,omitempty"`
	ItemCount         int    `json:"itemCount"`
	HasEstimatedDates bool   `json:"hasEstimatedDates"`

	dates DateRange
}

// Dates returns the range set by ResolveDates.
func (p Project) Dates() DateRange {
	return p.dates
}

// IsSubitemBoard reports whether a board is a "Subitems of X" container.
func IsSubitemBoard(b monday.Board) bool {
	return strings.HasPrefix(b.Name, monday.SubitemsPrefix)
}

// BuildTree nests every "Subitems of <name>" board under the main board called
// exactly <name>. Matching is case-sensitive with no normalization. Subitem
// boards whose parent isn't in the list appear in no project.
func BuildTree(boards []monday.Board) []Project {
	var mains, subs []monday.Board
	for _, b := range boards {
		if IsSubitemBoard(b) {
			subs = append(subs, b)
		} else {
			mains = append(mains, b)
		}
	}

	projects := make([]Project, 0, len(mains))
	for _, main := range mains {
		p := Project{
			Board:         main,
			Subitems:      []monday.Board{},
			TotalItems:    len(main.Items()),
			ReportedItems: main.ItemCount(),
		}
		want := monday.SubitemsPrefix + main.Name
		for _, sub := range subs {
			if sub.Name == want {
				p.Subitems = append(p.Subitems, sub)
				p.TotalItems += len(sub.Items())
				p.ReportedItems += sub.ItemCount()
			}
		}
		p.HasSubitems = len(p.Subitems) > 0
		p.ItemCount = p.TotalItems
		projects = append(projects, p)
	}
	return projects
}

// OrphanSubitemBoards lists subitem boards that BuildTree leaves out because no
// main board carries the name after the prefix.
func OrphanSubitemBoards(boards []monday.Board) []monday.Board {
	names := make(map[string]bool)
	for _, b := range boards {
		if !IsSubitemBoard(b) {
			names[b.Name] = true
		}
	}

	orphans := []monday.Board{}
	for _, b := range boards {
		if IsSubitemBoard(b) && !names[strings.TrimPrefix(b.Name, monday.SubitemsPrefix)] {
			orphans = append(orphans, b)
		}
	}
	return orphans
}

// FilterByUser keeps projects the user owns or subscribes to.
func FilterByUser(projects []Project, userID string) []Project {
	if userID == "" {
		return projects
	}
	out := []Project{}
	for _, p := range projects {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out
}

// FindProject returns the project with the given board id.
func FindProject(projects []Project, id string) (*Project, bool) {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], true
		}
	}
	return nil, false
}
