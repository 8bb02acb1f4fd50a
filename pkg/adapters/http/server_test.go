package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot"
	httpAdapter "github.com/voltcraft/troubleshoot/pkg/adapters/http"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/observability"
	"github.com/voltcraft/troubleshoot/pkg/session"
)

func newTestServer(t *testing.T) (*httpAdapter.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	engine, err := troubleshoot.New(troubleshoot.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	srv, err := httpAdapter.NewServer(engine, session.NewManager(memory.NewStore()),
		httpAdapter.WithMetrics(metrics),
	)
	require.NoError(t, err)
	return srv, metrics
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) httpAdapter.SessionResponse {
	t.Helper()
	var resp httpAdapter.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestSpec(t *testing.T) {
	doc, err := httpAdapter.Spec()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Find("/sessions/{id}/select"))
}

func TestServer_Meta(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "troubleshoot", info["app"])
	assert.Equal(t, troubleshoot.Version, info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	rec = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = do(t, h, http.MethodGet, "/swagger", "")
	assert.Contains(t, rec.Body.String(), "swagger-ui")

	rec = do(t, h, http.MethodOptions, "/sessions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Categories(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []domain.CategorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 5)
	assert.Equal(t, "generator", cats[0].Key)

	rec = do(t, h, http.MethodGet, "/categories/generator", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tree domain.Tree
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	assert.Equal(t, "start", tree.Nodes[0].ID)

	rec = do(t, h, http.MethodGet, "/categories/toaster", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/categories/generator/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "graph TD\n"))
	assert.NotContains(t, rec.Body.String(), "classDef current")
}

func TestServer_GeneratorScenario(t *testing.T) {
	srv, metrics := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeSession(t, rec)
	id := created.State.SessionID
	require.NotEmpty(t, id)
	assert.Equal(t, domain.ViewCategories, created.View.Kind)
	assert.Len(t, created.View.Categories, 5)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/start", `{"category":"generator"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSession(t, rec)
	assert.Equal(t, domain.ViewQuestion, resp.View.Kind)
	assert.Equal(t, "start", resp.View.Node.ID)
	require.NotNil(t, resp.Changes)
	require.NotNil(t, resp.Changes.Category)
	assert.Equal(t, "generator", *resp.Changes.Category)

	for _, want := range []string{"wont-start", "dead-start"} {
		rec = do(t, h, http.MethodPost, "/sessions/"+id+"/select", `{"option":0}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp = decodeSession(t, rec)
		assert.Equal(t, want, resp.State.CurrentNodeID)
	}
	assert.Equal(t, []string{"start", "wont-start"}, resp.State.History)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/select", `{"option":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	assert.Equal(t, domain.ViewResult, resp.View.Kind)
	require.NotNil(t, resp.State.Result)
	assert.Equal(t, "Dead or Discharged Battery", resp.State.Result.Diagnosis)
	assert.Equal(t, domain.SeverityLow, resp.State.Result.Severity)
	assert.True(t, resp.State.Result.DIYFriendly)
	assert.Equal(t, "dead-start", resp.State.CurrentNodeID)

	// Nothing to select while a result is shown.
	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/select", `{"option":0}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/categories/generator/graph?session_id="+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "class dead_start__r0 current;")

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/back", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	assert.Nil(t, resp.State.Result)
	assert.Equal(t, "dead-start", resp.State.CurrentNodeID)
	require.NotNil(t, resp.Changes)
	assert.True(t, resp.Changes.ResultCleared)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeSession(t, rec)
	assert.Equal(t, domain.ViewCategories, resp.View.Kind)
	assert.Equal(t, id, resp.State.SessionID)
	assert.Empty(t, resp.State.History)

	rec = do(t, h, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", decodeSession(t, rec).State.Category)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SessionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Diagnoses.WithLabelValues("generator", "low")))

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "troubleshoot_http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), `route="/sessions/{id}/select"`)

	rec = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	id := decodeSession(t, do(t, h, http.MethodPost, "/sessions", "")).State.SessionID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"Unknown Session", http.MethodGet, "/sessions/missing", "", http.StatusNotFound},
		{"Transition On Unknown Session", http.MethodPost, "/sessions/missing/back", "", http.StatusNotFound},
		{"Start Without Body", http.MethodPost, "/sessions/" + id + "/start", "", http.StatusBadRequest},
		{"Start Malformed", http.MethodPost, "/sessions/" + id + "/start", `{"category":`, http.StatusBadRequest},
		{"Start Unknown Category", http.MethodPost, "/sessions/" + id + "/start", `{"category":"toaster"}`, http.StatusNotFound},
		{"Select Without Option", http.MethodPost, "/sessions/" + id + "/select", `{}`, http.StatusBadRequest},
		{"Select On Categories Screen", http.MethodPost, "/sessions/" + id + "/select", `{"option":0}`, http.StatusConflict},
		{"Graph Unknown Session", http.MethodGet, "/categories/generator/graph?session_id=missing", "", http.StatusNotFound},
		{"Events Unknown Session", http.MethodGet, "/sessions/missing/events", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			var e map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.NotEmpty(t, e["error"])
		})
	}

	t.Run("Option Out Of Range", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/sessions/"+id+"/start", `{"category":"generator"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = do(t, h, http.MethodPost, "/sessions/"+id+"/select", `{"option":99}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		// The failed selection left the session untouched.
		rec = do(t, h, http.MethodGet, "/sessions/"+id, "")
		assert.Equal(t, "start", decodeSession(t, rec).State.CurrentNodeID)
	})
}

func TestServer_Events(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	var created httpAdapter.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	id := created.State.SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	lines := bufio.NewScanner(stream.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	require.Eventually(t, func() bool { return srv.Streams().Count(id) == 1 }, time.Second, 10*time.Millisecond)

	start, err := http.Post(ts.URL+"/sessions/"+id+"/start", "application/json",
		bytes.NewBufferString(`{"category":"solar"}`))
	require.NoError(t, err)
	start.Body.Close()
	require.Equal(t, http.StatusOK, start.StatusCode)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(data), &diff))
	assert.Equal(t, id, diff.SessionID)
	require.NotNil(t, diff.Category)
	assert.Equal(t, "solar", *diff.Category)
}

func TestStreamManager(t *testing.T) {
	sm := httpAdapter.NewStreamManager(nil)
	ch, unsubscribe := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Count("s1"))

	sm.Broadcast("s1", "hello")
	sm.Broadcast("s2", "ignored")
	assert.Equal(t, "hello", <-ch)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, sm.Count("s1"))
	_, open := <-ch
	assert.False(t, open)
}
