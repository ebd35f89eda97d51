package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pinchbench/pinchboard/internal/api"
)

func newRouter(t *testing.T) (http.Handler, *MockFetcher) {
	t.Helper()
	svc, f := newService(t, ServiceConfig{})
	r := chi.NewRouter()
	RegisterRoutes(r, svc)
	return r, f
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	h, _ := newRouter(t)

	rec := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, Version, body.Version)
}

func TestHandleLeaderboard(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Leaderboard(gomock.Any(), "v2").Return(wireEntries(), nil)

	rec := get(t, h, "/api/leaderboard?version=v2&view=cost&score=best")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[LeaderboardResponse](t, rec)
	assert.Equal(t, "cost", body.View)
	assert.Equal(t, "v2", body.Version)
	assert.Equal(t, []string{"gpt-4o", "gemini-2.5-pro", "claude-opus-4"}, modelNames(body.Entries))
}

func TestHandleLeaderboard_NullFieldsSerialized(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Leaderboard(gomock.Any(), "").Return(wireEntries(), nil)

	rec := get(t, h, "/api/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw struct {
		Entries []map[string]any `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw.Entries, 3)
	v, present := raw.Entries[2]["average_score_percentage"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestHandleLeaderboard_UpstreamError(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Leaderboard(gomock.Any(), "").Return(nil, errors.New("dial tcp: connection refused"))

	rec := get(t, h, "/api/leaderboard")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, ErrorResponse{Error: "couldn't load leaderboard", Code: http.StatusBadGateway}, decode[ErrorResponse](t, rec))
}

func TestHandleVersions(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().BenchmarkVersions(gomock.Any()).Return(&api.VersionsResponse{}, nil)

	rec := get(t, h, "/api/versions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"versions":[],"current":[]}`, rec.Body.String())
}

func TestHandleSubmission(t *testing.T) {
	h, f := newRouter(t)
	d := wireDetail("sub-a", "claude-opus-4")
	d.Tasks[0].Notes = sp("All _good_")
	f.EXPECT().Submission(gomock.Any(), "sub-a").Return(d, nil)

	rec := get(t, h, "/api/submissions/sub-a")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[SubmissionResponse](t, rec)
	assert.Equal(t, "sub-a", body.Submission.SubmissionID)
	assert.Equal(t, "Sanity Check", body.Submission.TaskResults[0].TaskName)
	assert.Equal(t, "<p>All <em>good</em></p>\n", body.NotesHTML["task_00_sanity"])
}

func TestHandleSubmission_NotFound(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Submission(gomock.Any(), "missing").Return(nil, &api.StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found", Path: "/submissions/missing"})

	rec := get(t, h, "/api/submissions/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "submission not found", decode[ErrorResponse](t, rec).Error)
}

func TestHandleSubmission_UpstreamError(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Submission(gomock.Any(), "x").Return(nil, &api.StatusError{StatusCode: http.StatusServiceUnavailable})

	rec := get(t, h, "/api/submissions/x")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "couldn't load submission", decode[ErrorResponse](t, rec).Error)
}

func TestHandleRuns_BadParams(t *testing.T) {
	h, _ := newRouter(t)

	for _, target := range []string{"/api/runs?limit=abc", "/api/runs?offset=-1"} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleRuns(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Submissions(gomock.Any(), api.SubmissionsQuery{Limit: 20, Offset: 40}).Return(&api.SubmissionsResponse{Limit: 20, Offset: 40}, nil)
	f.EXPECT().BenchmarkVersions(gomock.Any()).Return(&api.VersionsResponse{}, nil)

	rec := get(t, h, "/api/runs?limit=20&offset=40")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[RunsResponse](t, rec)
	assert.Equal(t, 20, body.Limit)
	assert.Equal(t, 40, body.Offset)
	assert.Empty(t, body.Submissions)
}

func TestHandleGraphs(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Leaderboard(gomock.Any(), "").Return(wireEntries(), nil).AnyTimes()
	f.EXPECT().Submission(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*api.SubmissionDetail, error) {
		return wireDetail(id, "m-"+id), nil
	}).AnyTimes()

	rec := get(t, h, "/api/graphs/scatter?score=best&axis=cost&hide=google")
	require.Equal(t, http.StatusOK, rec.Code)
	var scatter map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scatter))
	assert.Equal(t, "cost", scatter["axis"])
	assert.Len(t, scatter["points"], 2)
	assert.Len(t, scatter["labels"], 2)

	rec = get(t, h, "/api/graphs/heatmap?sort=name")
	require.Equal(t, http.StatusOK, rec.Code)
	var heatmap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &heatmap))
	assert.Equal(t, "name", heatmap["sort"])
	assert.Len(t, heatmap["rows"], 3)

	rec = get(t, h, "/api/graphs/radar?model=gpt-4o")
	require.Equal(t, http.StatusOK, rec.Code)
	radar := decode[RadarResponse](t, rec)
	assert.Equal(t, []string{"gpt-4o"}, radar.Selected)
}

func TestHandleDistribution_UpstreamError(t *testing.T) {
	h, f := newRouter(t)
	f.EXPECT().Leaderboard(gomock.Any(), "").Return(wireEntries(), nil).AnyTimes()
	f.EXPECT().Submissions(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	rec := get(t, h, "/api/graphs/distribution")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "couldn't load submissions", decode[ErrorResponse](t, rec).Error)
}
