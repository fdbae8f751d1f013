package monday

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI answers every GraphQL POST with body and records the last request.
type stubAPI struct {
	status   int
	body     string
	lastReq  request
	lastHdrs http.Header
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lastHdrs = r.Header.Clone()
	raw, _ := io.ReadAll(r.Body)
	json.Unmarshal(raw, &s.lastReq)
	if s.status != 0 {
		w.WriteHeader(s.status)
	}
	io.WriteString(w, s.body)
}

func newStubClient(t *testing.T, stub *stubAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return NewClient("test-token", WithEndpoint(srv.URL), WithAPIVersion("2024-10"))
}

func TestDo_ReturnsData(t *testing.T) {
	stub := &stubAPI{body: `{"data":{"me":{"id":"1","name":"Ada"}}}`}
	c := newStubClient(t, stub)

	data, err := c.Do(context.Background(), QueryMe, map[string]any{"x": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"me":{"id":"1","name":"Ada"}}`, string(data))

	assert.Equal(t, QueryMe, stub.lastReq.Query)
	assert.Equal(t, float64(1), stub.lastReq.Variables["x"])
	assert.Equal(t, "test-token", stub.lastHdrs.Get("Authorization"))
	assert.Equal(t, "2024-10", stub.lastHdrs.Get("API-Version"))
	assert.Equal(t, "application/json", stub.lastHdrs.Get("Content-Type"))
}

func TestDo_HTTPError(t *testing.T) {
	stub := &stubAPI{status: http.StatusUnauthorized, body: `{"error":"nope"}`}
	c := newStubClient(t, stub)

	_, err := c.Do(context.Background(), QueryMe, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "Unauthorized", httpErr.Status)
}

func TestDo_GraphQLErrorsAreConcatenated(t *testing.T) {
	stub := &stubAPI{body: `{"data":null,"errors":[{"message":"first"},{"message":"second"}]}`}
	c := newStubClient(t, stub)

	_, err := c.Do(context.Background(), QueryMe, nil)
	require.Error(t, err)

	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	assert.Equal(t, []string{"first", "second"}, gqlErr.Messages)
	assert.Equal(t, "first; second", err.Error())
}

func TestDo_LegacyErrorMessage(t *testing.T) {
	stub := &stubAPI{body: `{"error_message":"Not Authenticated","status_code":200}`}
	c := newStubClient(t, stub)

	_, err := c.Do(context.Background(), QueryMe, nil)
	assert.EqualError(t, err, "Not Authenticated")
}

func TestDo_NoToken(t *testing.T) {
	stub := &stubAPI{body: `{"data":{}}`}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	c := NewClient("", WithEndpoint(srv.URL))
	_, err := c.Do(context.Background(), QueryMe, nil)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Empty(t, stub.lastReq.Query, "no request should reach the API")
}

func TestCustom_ReturnsVerbatimData(t *testing.T) {
	stub := &stubAPI{body: `{"data":{"boards":[{"id":"42","name":"Roadmap","extra":{"nested":[1,2,3]}}]}}`}
	c := newStubClient(t, stub)

	data, err := c.Custom(context.Background(), `query { boards { id name } }`, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"boards":[{"id":"42","name":"Roadmap","extra":{"nested":[1,2,3]}}]}`, string(data))
}

func TestStats_Aggregates(t *testing.T) {
	stub := &stubAPI{body: `{"data":{
		"boards":[
			{"id":"1","name":"Alpha","state":"active","items_count":4,"workspace":{"id":"w1"}},
			{"id":"2","name":"Subitems of Alpha","state":"active","items_count":6,"workspace":{"id":"w1"}},
			{"id":"3","name":"Old","state":"archived","items_count":1,"workspace":{"id":"w2"}}
		],
		"users":[
			{"id":"u1","enabled":true,"is_admin":true,"is_guest":false},
			{"id":"u2","enabled":false,"is_admin":false,"is_guest":true}
		],
		"teams":[{"id":"t1"}]
	}}`}
	c := newStubClient(t, stub)

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{
		TotalBoards:     3,
		ActiveBoards:    2,
		SubitemBoards:   1,
		TotalItems:      11,
		TotalUsers:      2,
		ActiveUsers:     1,
		AdminUsers:      1,
		GuestUsers:      1,
		TotalTeams:      1,
		TotalWorkspaces: 2,
	}, *stats)
}

func TestChangeTimeline_EncodesValue(t *testing.T) {
	stub := &stubAPI{body: `{"data":{"change_column_value":{"id":"9","name":"Launch"}}}`}
	c := newStubClient(t, stub)

	item, err := c.ChangeTimeline(context.Background(), "1", "9", "timeline", "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, "Launch", item.Name)
	assert.Equal(t, "timeline", stub.lastReq.Variables["columnId"])
	assert.JSONEq(t, `{"from":"2025-01-01","to":"2025-02-01"}`, stub.lastReq.Variables["value"].(string))
}

func TestItems_FlattensBoards(t *testing.T) {
	stub := &stubAPI{body: `{"data":{"boards":[
		{"id":"1","name":"A","items_page":{"cursor":null,"items":[{"id":"i1","name":"one"}]}},
		{"id":"2","name":"B","items_page":{"cursor":null,"items":[{"id":"i2","name":"two"},{"id":"i3","name":"three"}]}}
	]}}`}
	c := newStubClient(t, stub)

	items, err := c.Items(context.Background(), "", 25)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "three", items[2].Name)
	assert.Equal(t, QueryRecentItems, stub.lastReq.Query)
}

func TestBoard_NotFound(t *testing.T) {
	stub := &stubAPI{body: `{"data":{"boards":[]}}`}
	c := newStubClient(t, stub)

	_, err := c.Board(context.Background(), "404")
	assert.EqualError(t, err, "board 404 not found")
}
