// Package report turns solver results into benchmark report rows and
// persists them.
//
// A [Row] is one solved instance. Rows are written as CSV with
// [WriteCSV] (the classic benchmark table), as Parquet with
// [WriteParquet] for analysis tooling, and whole benchmark [Run]s are
// kept in a [Store]: [FileStore] for the CLI, [MongoStore] when runs are
// shared between machines.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/maxclique/pkg/clique"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// ErrNotFound is returned by [Store.Get] for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Row is the report line of one solved instance. Times are in seconds.
type Row struct {
	Name          string  `json:"name" bson:"name" parquet:"name"`
	File          string  `json:"file" bson:"file" parquet:"file"`
	Vertices      int     `json:"vertices" bson:"vertices" parquet:"vertices"`
	Edges         int     `json:"edges" bson:"edges" parquet:"edges"`
	HeuristicTime float64 `json:"heuristic_time" bson:"heuristic_time" parquet:"heuristic_time"`
	ExactTime     float64 `json:"exact_time" bson:"exact_time" parquet:"exact_time"`
	Size          int     `json:"size" bson:"size" parquet:"size"`
	Clique        string  `json:"clique" bson:"clique" parquet:"clique"`
	Verified      bool    `json:"verified" bson:"verified" parquet:"verified"`
	Complete      bool    `json:"complete" bson:"complete" parquet:"complete"`
	KnownBest     int     `json:"known_best,omitempty" bson:"known_best,omitempty" parquet:"known_best"`
	Nodes         int64   `json:"nodes" bson:"nodes" parquet:"nodes"`
	RunID         string  `json:"run_id" bson:"run_id" parquet:"run_id"`
}

// Gap returns KnownBest - Size, or 0 when the best size is unknown.
func (r Row) Gap() int {
	if r.KnownBest == 0 {
		return 0
	}
	return r.KnownBest - r.Size
}

// NewRow builds the row for res, solved from file. knownBest is 0 when
// unknown.
func NewRow(name, file string, knownBest int, res *solver.Result, oneBased bool) Row {
	return Row{
		Name:          name,
		File:          file,
		Vertices:      res.Vertices,
		Edges:         res.Edges,
		HeuristicTime: res.HeuristicTime.Seconds(),
		ExactTime:     res.ExactTime.Seconds(),
		Size:          res.Size,
		Clique:        clique.Format(res.Clique, oneBased),
		Verified:      res.Verified,
		Complete:      res.Complete,
		KnownBest:     knownBest,
		Nodes:         res.Exact.Nodes,
		RunID:         res.RunID,
	}
}

// Run is one benchmark invocation over a suite.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	Suite     string        `json:"suite" bson:"suite"`
	Quality   string        `json:"quality" bson:"quality"`
	TimeLimit time.Duration `json:"time_limit" bson:"time_limit"`
	Seed      uint64        `json:"seed" bson:"seed"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Rows      []Row         `json:"rows" bson:"rows"`
}

// NewRun starts an empty run with a fresh id.
func NewRun(suite string, opts solver.Options) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Suite:     suite,
		Quality:   string(opts.Quality),
		TimeLimit: opts.TimeLimit,
		Seed:      opts.Seed,
		CreatedAt: time.Now().UTC(),
	}
}

// Summary aggregates a run.
type Summary struct {
	Instances  int
	Complete   int
	Unverified int
	// BelowBest counts rows whose size is below a known best.
	BelowBest int
	TotalTime time.Duration
}

// Summarize aggregates the rows of r.
func (r *Run) Summarize() Summary {
	s := Summary{Instances: len(r.Rows)}
	for _, row := range r.Rows {
		if row.Complete {
			s.Complete++
		}
		if !row.Verified {
			s.Unverified++
		}
		if row.Gap() > 0 {
			s.BelowBest++
		}
		s.TotalTime += time.Duration((row.HeuristicTime + row.ExactTime) * float64(time.Second))
	}
	return s
}

// Store persists benchmark runs.
type Store interface {
	// Save inserts or replaces run.
	Save(ctx context.Context, run *Run) error

	// Get returns the run with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Run, error)

	Close(ctx context.Context) error
}
