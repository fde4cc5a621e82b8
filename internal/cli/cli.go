package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/maxclique/pkg/buildinfo"
	"github.com/matzehuels/maxclique/pkg/cache"
	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/graph"
	"github.com/matzehuels/maxclique/pkg/report"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "maxclique"

	// redisKeyPrefix namespaces cache keys in a shared Redis.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Maxclique finds maximum cliques in DIMACS graphs",
		Long:         `Maxclique finds maximum cliques with a tabu local search followed by a coloring-bounded branch and bound, and benchmarks it on DIMACS instance suites.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/maxclique/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())
	registerFlagCompletions(root)

	return root
}

// =============================================================================
// Runner and Store Factories
// =============================================================================

// newRunner creates a solver runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*solver.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return solver.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	switch c.cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil, nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, mcerrors.Wrap(mcerrors.ErrCodeCache, err, "connect to redis cache")
		}
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	default:
		dir, err := c.resultCacheDir()
		if err != nil {
			c.Logger.Warn("No cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, nil, nil
	}
}

// newStore opens the configured run store. It returns nil, nil when run
// storage is disabled.
func (c *CLI) newStore(ctx context.Context) (report.Store, error) {
	switch c.cfg.Report.Store {
	case backendNone:
		return nil, nil
	case storeMongo:
		store, err := report.NewMongoStore(ctx, c.cfg.Report.MongoURI, c.cfg.Report.MongoDatabase)
		if err != nil {
			return nil, mcerrors.Wrap(mcerrors.ErrCodeStorage, err, "open mongo run store")
		}
		return store, nil
	default:
		dir := c.cfg.Report.Dir
		if dir == "" {
			base, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "runs")
		}
		store, err := report.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/maxclique/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/maxclique/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// resultCacheDir returns the file cache directory, honouring cache.dir.
func (c *CLI) resultCacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	base, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "results"), nil
}

// =============================================================================
// Input
// =============================================================================

// loadGraph reads a DIMACS file and logs its size.
func loadGraph(ctx context.Context, path string) (*graph.Graph, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, prob, err := graph.ReadDIMACSFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mcerrors.Wrap(mcerrors.ErrCodeFileNotFound, err, "graph file")
		}
		return nil, mcerrors.Wrap(mcerrors.ErrCodeInvalidGraph, err, "load %s", path)
	}
	if prob.Edges != g.EdgeCount() {
		logger.Debugf("Problem line declares %d edges, read %d distinct", prob.Edges, g.EdgeCount())
	}
	prog.done(fmt.Sprintf("Loaded %s: %d vertices, %d edges, density %.3f",
		filepath.Base(path), g.VertexCount(), g.EdgeCount(), g.Density()))
	return g, nil
}
