package report

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/maxclique/pkg/solver"
)

func sampleRows() []Row {
	return []Row{
		{Name: "a", File: "a.clq", HeuristicTime: 0.5, ExactTime: 1.25, Size: 4, Clique: "{0,1,2,3}", Verified: true, Complete: true, KnownBest: 4, Nodes: 10},
		{Name: "b", File: "b.clq", HeuristicTime: 0.0004, Size: 3, Clique: "{1,5,9}", Verified: true, KnownBest: 5},
		{Name: "c", File: "c.clq", Size: 2, Clique: "{0,4}"},
	}
}

func TestNewRow(t *testing.T) {
	res := &solver.Result{
		RunID:         "run-1",
		Vertices:      10,
		Edges:         20,
		Clique:        []int{0, 3, 7},
		Size:          3,
		Verified:      true,
		Complete:      true,
		HeuristicTime: 1500 * time.Millisecond,
		ExactTime:     2 * time.Second,
		Exact:         solver.ExactStats{Nodes: 42},
	}

	row := NewRow("g", "g.clq", 4, res, true)
	if row.Clique != "{1,4,8}" {
		t.Errorf("Clique = %q, want one-based {1,4,8}", row.Clique)
	}
	if row.HeuristicTime != 1.5 || row.ExactTime != 2 {
		t.Errorf("times = %v, %v", row.HeuristicTime, row.ExactTime)
	}
	if row.Nodes != 42 || row.RunID != "run-1" || row.Vertices != 10 || row.Edges != 20 {
		t.Errorf("row = %+v", row)
	}
	if row.Gap() != 1 {
		t.Errorf("Gap = %d, want 1", row.Gap())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "File,Heuristic time,BnB time,Clique size,Clique vertices,Verified,Complete,Known best\n" +
		"a.clq,0.500,1.250,4,\"{0,1,2,3}\",true,true,4\n" +
		"b.clq,0.000,0.000,3,\"{1,5,9}\",true,false,5\n" +
		"c.clq,0.000,0.000,2,\"{0,4}\",false,false,\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.parquet")
	rows := sampleRows()
	if err := WriteParquet(path, rows); err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	got, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}

	var buf bytes.Buffer
	if err := EncodeParquet(&buf, rows); err != nil {
		t.Fatalf("EncodeParquet: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PAR1")) {
		t.Error("EncodeParquet output lacks the PAR1 magic")
	}
}

func TestSummarize(t *testing.T) {
	run := &Run{Rows: sampleRows()}
	s := run.Summarize()
	if s.Instances != 3 || s.Complete != 1 || s.Unverified != 1 || s.BelowBest != 1 {
		t.Errorf("Summarize = %+v", s)
	}
	if s.TotalTime < 1750*time.Millisecond || s.TotalTime > 1752*time.Millisecond {
		t.Errorf("TotalTime = %v", s.TotalTime)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close(ctx)

	opts := solver.Options{Quality: solver.QualityOptimal, TimeLimit: time.Minute, Seed: 3}
	older := NewRun("dimacs", opts)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older.Rows = sampleRows()
	newer := NewRun("dimacs", opts)
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	for _, r := range []*Run{older, newer} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := store.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Suite != "dimacs" || len(got.Rows) != 3 || got.Quality != "optimal" || got.TimeLimit != time.Minute {
		t.Errorf("Get = %+v", got)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != newer.ID {
		t.Errorf("List should return newest first, got %d runs", len(runs))
	}

	runs, err = store.List(ctx, 1)
	if err != nil || len(runs) != 1 {
		t.Errorf("List(1) = %d runs, %v", len(runs), err)
	}

	if _, err := store.Get(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, "../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(path) error = %v, want ErrNotFound", err)
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewMongoStore(ctx, "not-a-mongo-uri", ""); err == nil {
		t.Error("NewMongoStore should reject a malformed URI")
	}
}
