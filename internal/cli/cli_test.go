package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/maxclique/pkg/report"
)

// k4Pendant is K4 on vertices 1-4 plus a pendant vertex 5 attached to 4.
const k4Pendant = `c K4 with a pendant
p edge 5 7
e 1 2
e 1 3
e 1 4
e 2 3
e 2 4
e 3 4
e 4 5
`

func writeGraph(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(k4Pendant), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	want := []string{"solve", "bench", "color", "render", "runs", "serve", "cache", "config", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSolveCommand(t *testing.T) {
	dir := isolate(t)
	path := writeGraph(t, dir, "k4.clq")

	if err := execute(t, "solve", path, "--no-cache", "-q", "optimal", "-t", "5s"); err != nil {
		t.Fatalf("solve: %v", err)
	}
}

func TestSolveCommandMissingFile(t *testing.T) {
	dir := isolate(t)
	err := execute(t, "solve", filepath.Join(dir, "missing.clq"), "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "missing.clq") {
		t.Errorf("solve missing file error = %v", err)
	}
}

func TestBenchCommand(t *testing.T) {
	dir := isolate(t)
	instances := filepath.Join(dir, "instances")
	if err := os.MkdirAll(instances, 0o755); err != nil {
		t.Fatal(err)
	}
	writeGraph(t, instances, "a.clq")
	writeGraph(t, instances, "b.col")
	csvPath := filepath.Join(dir, "report.csv")
	parquetPath := filepath.Join(dir, "report.parquet")

	err := execute(t, "bench", instances, "--no-cache", "-t", "5s",
		"--only", "b", "--csv", csvPath, "--parquet", parquetPath)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv has %d lines, want header + 1:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[1], "b.col,") || !strings.Contains(lines[1], `,4,"{0,1,2,3}",true,true,`) {
		t.Errorf("csv row = %q", lines[1])
	}

	rows, err := report.ReadParquet(parquetPath)
	if err != nil {
		t.Fatalf("ReadParquet: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "b" || rows[0].Size != 4 {
		t.Errorf("parquet rows = %+v", rows)
	}

	// The run was saved to the default file store below XDG_CACHE_HOME.
	store, err := report.NewFileStore(filepath.Join(dir, "cache", appName, "runs"))
	if err != nil {
		t.Fatal(err)
	}
	runs, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || len(runs[0].Rows) != 1 {
		t.Errorf("stored runs = %+v", runs)
	}
}

func TestBenchCommandUnknownInstance(t *testing.T) {
	dir := isolate(t)
	writeGraph(t, dir, "a.clq")
	if err := execute(t, "bench", dir, "--no-cache", "--no-save", "--only", "zzz"); err == nil {
		t.Error("expected error for an unknown instance")
	}
}
