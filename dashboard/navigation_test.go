package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigation_Transitions(t *testing.T) {
	var n Navigation
	assert.Equal(t, LevelAll, n.current(), "zero value starts at all")

	n = n.SelectUser("u1")
	assert.Equal(t, Navigation{Level: LevelUser, UserID: "u1"}, n)

	n = n.OpenProject("b7")
	assert.Equal(t, Navigation{Level: LevelProject, UserID: "u1", ProjectID: "b7"}, n)

	n = n.Back()
	assert.Equal(t, Navigation{Level: LevelUser, UserID: "u1"}, n)

	n = n.Back()
	assert.Equal(t, Navigation{Level: LevelAll}, n)

	n = n.Back()
	assert.Equal(t, Navigation{Level: LevelAll}, n, "back at the top stays put")
}

func TestNavigation_ProjectFromAllGoesBackToAll(t *testing.T) {
	n := Navigation{}.OpenProject("b1")
	assert.Equal(t, Navigation{Level: LevelProject, ProjectID: "b1"}, n)
	assert.Equal(t, Navigation{Level: LevelAll}, n.Back())
}

func TestNavigation_SelectAllResets(t *testing.T) {
	n := Navigation{}.SelectUser("u1").OpenProject("b1").SelectAll()
	assert.Equal(t, Navigation{Level: LevelAll}, n)
	assert.Equal(t, Navigation{Level: LevelAll}, Navigation{}.SelectUser(""))
}

func TestParseNavigation(t *testing.T) {
	tests := []struct {
		level, user, project string
		want                 Navigation
		wantErr              bool
	}{
		{"", "", "", Navigation{Level: LevelAll}, false},
		{"", "u1", "", Navigation{Level: LevelUser, UserID: "u1"}, false},
		{"", "u1", "b1", Navigation{Level: LevelProject, UserID: "u1", ProjectID: "b1"}, false},
		{"all", "u1", "b1", Navigation{Level: LevelAll}, false},
		{"user", "u1", "b1", Navigation{Level: LevelUser, UserID: "u1"}, false},
		{"user", "", "", Navigation{}, true},
		{"project", "", "", Navigation{}, true},
		{"team", "", "", Navigation{}, true},
	}
	for _, tt := range tests {
		got, err := ParseNavigation(tt.level, tt.user, tt.project)
		if tt.wantErr {
			assert.Error(t, err, "level=%q", tt.level)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBreadcrumbs(t *testing.T) {
	n := Navigation{}.SelectUser("u1").OpenProject("b1")

	crumbs := n.Breadcrumbs("Ada", "")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "All Users", crumbs[0].Label)
	assert.Equal(t, "Ada", crumbs[1].Label)
	assert.Equal(t, Navigation{Level: LevelUser, UserID: "u1"}, crumbs[1].Nav)
	assert.Equal(t, "b1", crumbs[2].Label, "falls back to the id")
	assert.True(t, crumbs[2].Active)
	assert.False(t, crumbs[0].Active)

	top := Navigation{}.Breadcrumbs("", "")
	require.Len(t, top, 1)
	assert.True(t, top[0].Active)
}
