package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/maxclique/pkg/buildinfo"
	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/order"
	"github.com/matzehuels/maxclique/pkg/report"
	"github.com/matzehuels/maxclique/pkg/solver"
)

const defaultRunsLimit = 20

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code   mcerrors.Code  `json:"code"`
	Error  string         `json:"error"`
	Result *solver.Result `json:"result,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.solveOptions(r)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	g, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}

	res, err := s.runner.Solve(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	strategy := order.SmallestLast
	if v := q.Get("strategy"); v != "" {
		st, err := order.ParseStrategy(v)
		if err != nil {
			s.writeError(w, mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "strategy"), nil)
			return
		}
		strategy = st
	}
	seed, err := parseUint(q.Get("seed"), "seed")
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	g, err := s.readGraph(w, r)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}

	res, err := s.runner.Color(r.Context(), g, strategy, seed)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, mcerrors.New(mcerrors.ErrCodeUnsupported, "no run store configured"), nil)
		return
	}
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, mcerrors.New(mcerrors.ErrCodeInvalidOption, "limit must be a positive integer, got %q", v), nil)
			return
		}
		limit = n
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, mcerrors.Wrap(mcerrors.ErrCodeStorage, err, "list runs"), nil)
		return
	}
	if runs == nil {
		runs = []*report.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, mcerrors.New(mcerrors.ErrCodeUnsupported, "no run store configured"), nil)
		return
	}
	id := chi.URLParam(r, "id")
	run, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, report.ErrNotFound):
		s.writeError(w, mcerrors.Wrap(mcerrors.ErrCodeRunNotFound, err, "run %s", id), nil)
	case err != nil:
		s.writeError(w, mcerrors.Wrap(mcerrors.ErrCodeStorage, err, "get run"), nil)
	default:
		writeJSON(w, http.StatusOK, run)
	}
}

// solveOptions reads solver options from the query string. The time limit
// is capped at the configured maximum.
func (s *Server) solveOptions(r *http.Request) (solver.Options, error) {
	q := r.URL.Query()
	var opts solver.Options

	if v := q.Get("quality"); v != "" {
		quality, err := solver.ParseQuality(v)
		if err != nil {
			return opts, mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "quality")
		}
		opts.Quality = quality
	}
	if v := q.Get("time_limit"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return opts, err
		}
		opts.TimeLimit = d
	}
	if opts.TimeLimit == 0 {
		opts.TimeLimit = solver.DefaultTimeLimit
	}
	opts.TimeLimit = min(opts.TimeLimit, s.cfg.MaxTimeLimit)
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, mcerrors.New(mcerrors.ErrCodeInvalidOption, "iterations must be a positive integer, got %q", v)
		}
		opts.Iterations = n
	}
	seed, err := parseUint(q.Get("seed"), "seed")
	if err != nil {
		return opts, err
	}
	opts.Seed = seed
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

// readGraph decodes the DIMACS request body.
func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	g, _, err := graph.ReadDIMACSLimit(body, s.cfg.MaxVertices)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, mcerrors.New(mcerrors.ErrCodeInvalidInput, "graph exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, graph.ErrVertexCountTooLarge) {
			return nil, mcerrors.Wrap(mcerrors.ErrCodeInvalidGraph, err, "graph exceeds %d vertices", s.cfg.MaxVertices)
		}
		return nil, mcerrors.Wrap(mcerrors.ErrCodeInvalidGraph, err, "parse graph")
	}
	return g, nil
}

// parseDuration accepts Go durations ("90s") and plain seconds ("90").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, mcerrors.New(mcerrors.ErrCodeInvalidOption, "time_limit must be a positive duration, got %q", v)
	}
	return d, nil
}

func parseUint(v, name string) (uint64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, mcerrors.New(mcerrors.ErrCodeInvalidOption, "%s must be a non-negative integer, got %q", name, v)
	}
	return n, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error, res *solver.Result) {
	status := mcerrors.HTTPStatus(err)
	code := mcerrors.GetCode(err)
	switch {
	case errors.Is(err, context.Canceled):
		status, code = 499, mcerrors.ErrCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, mcerrors.ErrCodeTimeout
	case code == "":
		code = mcerrors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: mcerrors.UserMessage(err), Result: res})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
