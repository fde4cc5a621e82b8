package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
)

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", filepath.Join("sub", "b"), filepath.Join("sub", "deep", "c")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d files, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after clear", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("clearDir must keep the cache directory itself")
	}
}

func TestClearDirMissing(t *testing.T) {
	n, err := clearDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil || n != 0 {
		t.Errorf("clearDir(missing) = %d, %v", n, err)
	}
}

func TestCacheClearRejectsRedis(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.cfg.Cache.Backend = backendRedis

	cmd := c.cacheClearCommand()
	err := cmd.RunE(cmd, nil)
	if !mcerrors.Is(err, mcerrors.ErrCodeUnsupported) {
		t.Errorf("cache clear on redis error = %v, want UNSUPPORTED", err)
	}
}

func TestCachePrune(t *testing.T) {
	isolate(t)
	c := New(os.Stderr, LogInfo)
	c.cfg.Cache.Dir = t.TempDir()

	cmd := c.cachePruneCommand()
	cmd.SetContext(context.Background())
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache prune: %v", err)
	}

	c.cfg.Cache.Backend = backendNone
	if err := cmd.RunE(cmd, nil); !mcerrors.Is(err, mcerrors.ErrCodeUnsupported) {
		t.Errorf("cache prune on none backend = %v", err)
	}
}
