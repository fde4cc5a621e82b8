package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maxclique/pkg/cache"
	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/observability"
	"github.com/matzehuels/maxclique/pkg/report"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// k4Pendant is K4 on vertices 1-4 plus the edge 4-5.
const k4Pendant = `c K4 with a pendant vertex
p edge 5 7
e 1 2
e 1 3
e 1 4
e 2 3
e 2 4
e 3 4
e 4 5
`

func newTestServer(t *testing.T, store report.Store) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := solver.NewRunner(cache.NewNullCache(), nil, logger)
	return New(Config{MaxTimeLimit: 10 * time.Second}, runner, store, logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t, nil)

	if w := do(t, s, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("/healthz status = %d", w.Code)
	}

	w := do(t, s, http.MethodGet, "/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/version status = %d", w.Code)
	}
	var v map[string]string
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if v["version"] == "" {
		t.Error("/version should report a version")
	}
}

func TestSolve(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/v1/solve?quality=optimal&time_limit=5s&seed=3", k4Pendant)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res solver.Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Size != 4 || !res.Verified || !res.Complete {
		t.Errorf("result = size %d verified %v complete %v", res.Size, res.Verified, res.Complete)
	}
	want := []int{0, 1, 2, 3}
	for i, v := range want {
		if i >= len(res.Clique) || res.Clique[i] != v {
			t.Fatalf("clique = %v, want %v", res.Clique, want)
		}
	}
	if res.Seed != 3 || res.Vertices != 5 || res.Edges != 7 {
		t.Errorf("seed/vertices/edges = %d/%d/%d", res.Seed, res.Vertices, res.Edges)
	}
}

func TestSolveErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   mcerrors.Code
	}{
		{"bad quality", "/v1/solve?quality=perfect", k4Pendant, http.StatusBadRequest, mcerrors.ErrCodeInvalidOption},
		{"bad time limit", "/v1/solve?time_limit=soon", k4Pendant, http.StatusBadRequest, mcerrors.ErrCodeInvalidOption},
		{"bad iterations", "/v1/solve?iterations=-3", k4Pendant, http.StatusBadRequest, mcerrors.ErrCodeInvalidOption},
		{"bad seed", "/v1/solve?seed=x", k4Pendant, http.StatusBadRequest, mcerrors.ErrCodeInvalidOption},
		{"malformed graph", "/v1/solve", "p edge 2 1\ne 1 x\n", http.StatusBadRequest, mcerrors.ErrCodeInvalidGraph},
		{"out of range", "/v1/solve", "p edge 2 1\ne 1 3\n", http.StatusBadRequest, mcerrors.ErrCodeInvalidGraph},
		{"empty body", "/v1/solve", "", http.StatusBadRequest, mcerrors.ErrCodeInvalidGraph},
		{"huge vertex count", "/v1/solve", "p edge 4000000000 0\n", http.StatusBadRequest, mcerrors.ErrCodeInvalidGraph},
		{"over vertex limit", "/v1/solve", "p edge 200000 0\n", http.StatusBadRequest, mcerrors.ErrCodeInvalidGraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, tt.target, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if resp := decodeError(t, w); resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestSolveBodyLimit(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(Config{MaxBodyBytes: 16}, solver.NewRunner(nil, nil, logger), nil, logger)

	w := do(t, s, http.MethodPost, "/v1/solve", k4Pendant)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != mcerrors.ErrCodeInvalidInput {
		t.Errorf("code = %s, want INVALID_INPUT", resp.Code)
	}
}

func TestSolveVertexLimit(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(Config{MaxVertices: 4}, solver.NewRunner(nil, nil, logger), nil, logger)

	w := do(t, s, http.MethodPost, "/v1/solve", k4Pendant)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != mcerrors.ErrCodeInvalidGraph {
		t.Errorf("code = %s, want INVALID_GRAPH", resp.Code)
	}
}

func TestConfigClampsMaxVertices(t *testing.T) {
	cfg := Config{MaxVertices: graph.MaxVertices * 2}
	cfg.setDefaults()
	if cfg.MaxVertices != graph.MaxVertices {
		t.Errorf("MaxVertices = %d, want %d", cfg.MaxVertices, graph.MaxVertices)
	}

	cfg = Config{}
	cfg.setDefaults()
	if cfg.MaxVertices != DefaultMaxVertices {
		t.Errorf("MaxVertices = %d, want %d", cfg.MaxVertices, DefaultMaxVertices)
	}
}

func TestSolveOptionsCapTimeLimit(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/solve?time_limit=3600", nil)
	opts, err := s.solveOptions(req)
	if err != nil {
		t.Fatal(err)
	}
	if opts.TimeLimit != 10*time.Second {
		t.Errorf("TimeLimit = %v, want the 10s cap", opts.TimeLimit)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/solve?time_limit=1.5", nil)
	if opts, _ = s.solveOptions(req); opts.TimeLimit != 1500*time.Millisecond {
		t.Errorf("TimeLimit = %v, want 1.5s", opts.TimeLimit)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/solve", nil)
	if opts, _ = s.solveOptions(req); opts.TimeLimit != 10*time.Second {
		t.Errorf("default TimeLimit = %v, want the 10s cap", opts.TimeLimit)
	}
}

func TestColor(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodPost, "/v1/color?strategy=largest-first", k4Pendant)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res solver.ColorResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.MaxColor != 4 || len(res.Colors) != 5 {
		t.Errorf("color result = %+v", res)
	}

	if w := do(t, s, http.MethodPost, "/v1/color?strategy=zigzag", k4Pendant); w.Code != http.StatusBadRequest {
		t.Errorf("unknown strategy status = %d, want 400", w.Code)
	}
}

func TestRunsWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/v1/runs", "")
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", w.Code)
	}
}

func TestRuns(t *testing.T) {
	store, err := report.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	run := report.NewRun("dimacs", solver.Options{Quality: solver.QualityOptimal})
	run.Rows = []report.Row{{Name: "k4", File: "k4.clq", Size: 4, Verified: true}}
	if err := store.Save(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, store)

	w := do(t, s, http.MethodGet, "/v1/runs?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var runs []report.Run
	if err := json.NewDecoder(w.Body).Decode(&runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("runs = %+v", runs)
	}

	w = do(t, s, http.MethodGet, "/v1/runs/"+run.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/v1/runs/0b1e4d6c-0000-4000-8000-000000000000", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown run status = %d, want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != mcerrors.ErrCodeRunNotFound {
		t.Errorf("code = %s, want RUN_NOT_FOUND", resp.Code)
	}

	if w := do(t, s, http.MethodGet, "/v1/runs?limit=0", ""); w.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", w.Code)
	}
}

type recordingHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	s := newTestServer(t, nil)
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodGet, "/v1/runs/abc", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 2 {
		t.Fatalf("recorded %d responses, want 2", len(hooks.routes))
	}
	if hooks.routes[0] != "/healthz" || hooks.status[0] != http.StatusOK {
		t.Errorf("first = %s %d", hooks.routes[0], hooks.status[0])
	}
	if hooks.routes[1] != "/v1/runs/{id}" || hooks.status[1] != http.StatusNotImplemented {
		t.Errorf("second = %s %d, want the route pattern", hooks.routes[1], hooks.status[1])
	}
}
