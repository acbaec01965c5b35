package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbuzz/internal/config"
	"bitbuzz/internal/middleware"
	"bitbuzz/internal/roster"
	"bitbuzz/internal/service"
	"bitbuzz/internal/testutil"
	"bitbuzz/internal/worklog"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	r       *gin.Engine
	backend *testutil.RecordingBackend
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, b := testutil.NewStore()
	r := NewRouter(Deps{
		Tracker: service.NewTrackerService(store, nil),
		Auth:    service.NewAuthService(config.AdminConfig{Password: "1234", JWTSecret: "test"}),
	})
	return &fixture{r: r, backend: b}
}

func (f *fixture) do(t *testing.T, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(middleware.PasswordHeader, "1234")
	}
	rr := httptest.NewRecorder()
	f.r.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type entriesBody struct {
	Entries []worklog.Entry `json:"entries"`
	Count   int             `json:"count"`
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/admin/login", gin.H{"password": "1234"}, false)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[map[string]any](t, rr)
	assert.Equal(t, true, got["admin"])
	assert.NotEmpty(t, got["token"])

	rr = f.do(t, http.MethodPost, "/api/admin/login", gin.H{"password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/admin/login", gin.H{"password": ""}, false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decode[map[string]any](t, rr)["admin"])
}

func TestRoster_FallbackAndAdminEdits(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/roster", nil, false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, roster.Fallback(), decode[roster.Roster](t, rr))

	rr = f.do(t, http.MethodPost, "/api/roster/staff", gin.H{"name": "Kim"}, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, f.backend.Writes(roster.Sheet))

	rr = f.do(t, http.MethodPost, "/api/roster/staff", gin.H{"name": "Kim"}, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"EJONG", "Kim"}, decode[roster.Roster](t, rr).Staff)

	rr = f.do(t, http.MethodPost, "/api/roster/staff", gin.H{"name": "Kim"}, true)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/roster/teams", gin.H{"name": "x"}, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodDelete, "/api/roster/channel/Nope", nil, true)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodDelete, "/api/roster/staff/Kim", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"EJONG"}, decode[roster.Roster](t, rr).Staff)

	rr = f.do(t, http.MethodPost, "/api/roster/reset", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, roster.Defaults(), decode[roster.Roster](t, rr))
}

func TestEntries_SubmitListAndSave(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/entries", gin.H{"staff": "EJONG", "channel": "Channel 1", "title": " "}, false)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, f.backend.Writes(worklog.Sheet))

	rr = f.do(t, http.MethodPost, "/api/entries", gin.H{"staff": "Ghost", "channel": "Channel 1", "title": "t"}, false)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/entries", gin.H{"date": "2024-03-05", "staff": "EJONG", "channel": "Channel 1", "title": "First"}, false)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[worklog.Entry](t, rr)
	assert.Equal(t, "0", created.Views)
	assert.NotEmpty(t, created.ID)

	rr = f.do(t, http.MethodGet, "/api/entries?staff=EJONG", nil, false)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[entriesBody](t, rr)
	require.Equal(t, 1, list.Count)

	edit := gin.H{"entries": []gin.H{{
		"id": created.ID, "date": "2024-03-05", "staff": "EJONG", "channel": "Channel 1",
		"title": "First", "views": 120, "timestamp": created.Timestamp,
	}}}
	rr = f.do(t, http.MethodPut, "/api/entries?staff=EJONG", edit, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodPut, "/api/entries?staff=EJONG", edit, true)
	require.Equal(t, http.StatusOK, rr.Code)
	saved := decode[entriesBody](t, rr)
	require.Len(t, saved.Entries, 1)
	assert.Equal(t, "120", saved.Entries[0].Views)

	rr = f.do(t, http.MethodPut, "/api/entries?staff=EJONG&channel=Channel+1", edit, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEntries_WriteFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	f.backend.FailWrite = true

	rr := f.do(t, http.MethodPost, "/api/entries", gin.H{"staff": "EJONG", "channel": "Channel 1", "title": "t"}, false)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["warning"])

	f.backend.FailWrite = false
	rr = f.do(t, http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStoreReadFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, http.MethodPost, "/api/roster/reset", nil, true)
	require.Equal(t, http.StatusOK, rr.Code)

	f.backend.FailRead = true
	rr = f.do(t, http.MethodPost, "/api/roster/staff", gin.H{"name": "Kim"}, true)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["warning"])
	assert.Equal(t, 1, f.backend.Writes(roster.Sheet))

	rr = f.do(t, http.MethodPut, "/api/entries?staff=EJONG", gin.H{"entries": []gin.H{}}, true)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, 0, f.backend.Writes(worklog.Sheet))
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{"2024-03-01", "2024-03-09", "2024-04-02"} {
		rr := f.do(t, http.MethodPost, "/api/entries", gin.H{"date": d, "staff": "EJONG", "channel": "Channel 1", "title": "t"}, false)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := f.do(t, http.MethodGet, "/api/dashboard?year=2024&month=3", nil, false)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[struct {
		Year    int `json:"year"`
		Month   int `json:"month"`
		Metrics struct {
			Count int `json:"count"`
		} `json:"metrics"`
		Trend []struct {
			Period string `json:"period"`
			Count  int    `json:"count"`
		} `json:"trend"`
	}](t, rr)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 2, got.Metrics.Count)
	assert.Len(t, got.Trend, 2)

	rr = f.do(t, http.MethodGet, "/api/dashboard?month=13", nil, false)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
