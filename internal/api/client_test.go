package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaderboardBody = `{
  "leaderboard": [
    {
      "model": "claude-opus-4",
      "provider": "Anthropic",
      "best_score_percentage": 0.92,
      "average_score_percentage": 0.88,
      "latest_submission": "2025-03-01T10:00:00Z",
      "best_submission_id": "sub-1",
      "best_cost_usd": 1.25,
      "submission_count": 4
    },
    {
      "model": "gpt-4o",
      "provider": "openai",
      "best_score_percentage": 0.81,
      "latest_submission": "2025-02-20T08:30:00Z",
      "best_submission_id": "sub-2"
    }
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithTimeout(5*time.Second))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient("http://localhost:8080/api/")
	assert.Equal(t, "http://localhost:8080/api", c.BaseURL())
}

func TestLeaderboard(t *testing.T) {
	var gotPath, gotVersion string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(leaderboardBody))
	})

	entries, err := c.Leaderboard(context.Background(), "v1.2")
	require.NoError(t, err)
	assert.Equal(t, "/leaderboard", gotPath)
	assert.Equal(t, "v1.2", gotVersion)
	require.Len(t, entries, 2)

	assert.Equal(t, "claude-opus-4", entries[0].Model)
	assert.InDelta(t, 0.92, entries[0].BestScorePercentage, 1e-9)
	require.NotNil(t, entries[0].AverageScorePercentage)
	require.NotNil(t, entries[0].SubmissionCount)
	assert.Equal(t, 4, *entries[0].SubmissionCount)
	assert.Nil(t, entries[1].AverageScorePercentage)
	assert.Nil(t, entries[1].BestCostUSD)
}

func TestLeaderboard_NoVersionOmitsQuery(t *testing.T) {
	var rawQuery string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"leaderboard":[]}`))
	})

	entries, err := c.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, rawQuery)
}

func TestLeaderboard_StrictRejectsBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"leaderboard":[{"model":"x","provider":"p","best_score_percentage":"high"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithStrict(true))
	_, err := c.Leaderboard(context.Background(), "")
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestLeaderboard_StrictAcceptsValidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(leaderboardBody))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithStrict(true))
	entries, err := c.Leaderboard(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.BenchmarkVersions(context.Background())
	require.Error(t, err)
	assert.Equal(t, "API request failed: 500 Internal Server Error", err.Error())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "/benchmark_versions", statusErr.Path)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStatusError_KeepsServerReasonPhrase(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close() //nolint:errcheck
		_, _ = buf.WriteString("HTTP/1.1 503 Leaderboard Rebuilding\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
		_ = buf.Flush()
	})

	_, err := c.BenchmarkVersions(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "Leaderboard Rebuilding", statusErr.Status)
	assert.Equal(t, "API request failed: 503 Leaderboard Rebuilding", err.Error())
}

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		want string
	}{
		{name: "custom", resp: &http.Response{StatusCode: 502, Status: "502 Bad Upstream"}, want: "Bad Upstream"},
		{name: "standard", resp: &http.Response{StatusCode: 404, Status: "404 Not Found"}, want: "Not Found"},
		{name: "code only", resp: &http.Response{StatusCode: 500, Status: "500"}, want: "Internal Server Error"},
		{name: "empty", resp: &http.Response{StatusCode: 429}, want: "Too Many Requests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reasonPhrase(tt.resp))
		})
	}
}

func TestSubmission_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Submission(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "API request failed: 404 Not Found", err.Error())
}

func TestSubmission_RequiresID(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.Submission(context.Background(), "  ")
	require.Error(t, err)
}

func TestSubmission_Decodes(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/sub-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"submission":{
			"id":"sub-1","timestamp":"2025-03-01T10:00:00Z","model":"m","provider":"P",
			"total_score":8.5,"max_score":11,
			"tasks":[{"task_id":"task_01_calendar","score":1,"max_score":1,"grading_type":"automated","timed_out":false,
			          "frontmatter":{"name":"Calendar"}}],
			"usage_summary":{"total_tokens":1200,"total_cost_usd":0.42}
		}}`))
	})

	detail, err := c.Submission(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", detail.ID)
	assert.Nil(t, detail.OpenClawVersion)
	assert.Nil(t, detail.Metadata)
	require.Len(t, detail.Tasks, 1)
	require.NotNil(t, detail.Tasks[0].Frontmatter)
	assert.Equal(t, "Calendar", *detail.Tasks[0].Frontmatter.Name)
	assert.Nil(t, detail.Tasks[0].Frontmatter.Category)
	require.NotNil(t, detail.UsageSummary)
	assert.Equal(t, 1200, detail.UsageSummary.TotalTokens)
}

func TestSubmissions_Query(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/submissions", r.URL.Path)
		assert.Equal(t, "v2", q.Get("version"))
		assert.Equal(t, "500", q.Get("limit"))
		assert.Equal(t, "", q.Get("offset"))
		_, _ = w.Write([]byte(`{"submissions":[{"id":"a","model":"m","provider":"p","score_percentage":0.5,
			"total_cost_usd":0,"total_execution_time_seconds":120,"benchmark_version":"v2","timestamp":"2025-01-01T00:00:00Z"}],
			"total":1,"limit":500,"offset":0,"has_more":false,"benchmark_version":"v2","benchmark_versions":[]}`))
	})

	resp, err := c.Submissions(context.Background(), SubmissionsQuery{Version: "v2", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, "a", resp.Submissions[0].ID)
	require.NotNil(t, resp.BenchmarkVersion)
	assert.Equal(t, "v2", *resp.BenchmarkVersion)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Leaderboard(context.Background(), "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "requesting /leaderboard"))
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
