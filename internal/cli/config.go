package cli

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/maxclique/pkg/solver"
)

// Backend names accepted in the config.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
	storeMongo   = "mongo"
)

// envPrefix prefixes environment overrides, e.g. MAXCLIQUE_CACHE_BACKEND.
const envPrefix = "MAXCLIQUE"

// Config holds the global settings read from the config file and the
// environment.
type Config struct {
	Cache  CacheConfig  `mapstructure:"cache"`
	Report ReportConfig `mapstructure:"report"`
	Server ServerConfig `mapstructure:"server"`
	Solver SolverConfig `mapstructure:"solver"`

	// file is the config file that was read, empty when none exists.
	file string
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"` // file, redis, none
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
}

// ReportConfig selects where benchmark runs are stored.
type ReportConfig struct {
	Store         string `mapstructure:"store"` // file, mongo, none
	Dir           string `mapstructure:"dir"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	MaxTimeLimit time.Duration `mapstructure:"max_time_limit"`
	MaxVertices  int           `mapstructure:"max_vertices"`
}

// SolverConfig holds default search settings; command flags override them.
type SolverConfig struct {
	Quality    string        `mapstructure:"quality"`
	TimeLimit  time.Duration `mapstructure:"time_limit"`
	Iterations int           `mapstructure:"iterations"`
	Seed       uint64        `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.backend", backendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")

	v.SetDefault("report.store", backendFile)
	v.SetDefault("report.dir", "")
	v.SetDefault("report.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("report.mongo_database", "maxclique")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.max_time_limit", "5m")
	v.SetDefault("server.max_vertices", 5000)

	v.SetDefault("solver.quality", string(solver.DefaultQuality))
	v.SetDefault("solver.time_limit", solver.DefaultTimeLimit.String())
	v.SetDefault("solver.iterations", solver.DefaultIterations)
	v.SetDefault("solver.seed", solver.DefaultSeed)
}

func defaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// loadConfig reads path, or config.toml from the config directory when path
// is empty, and applies MAXCLIQUE_* environment overrides. A missing
// default config file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.file = v.ConfigFileUsed()
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	switch c.Report.Store {
	case backendFile, storeMongo, backendNone:
	default:
		return fmt.Errorf("report.store: unknown store %q (must be file, mongo or none)", c.Report.Store)
	}
	if _, err := solver.ParseQuality(c.Solver.Quality); err != nil {
		return fmt.Errorf("solver.quality: %w", err)
	}
	return nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show settings and the config file location",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			file := c.cfg.file
			if file == "" {
				file = "(none, using defaults)"
			}
			printKeyValue("Config file", file)
			printNewline()
			printKeyValue("Cache", c.cfg.Cache.Backend)
			if c.cfg.Cache.Backend == backendRedis {
				printKeyValue("Redis", redactURL(c.cfg.Cache.RedisURL))
			}
			printKeyValue("Run store", c.cfg.Report.Store)
			if c.cfg.Report.Store == storeMongo {
				printKeyValue("MongoDB", redactURL(c.cfg.Report.MongoURI)+"/"+c.cfg.Report.MongoDatabase)
			}
			printKeyValue("Server", c.cfg.Server.Addr)
			printKeyValue("Quality", c.cfg.Solver.Quality)
			printKeyValue("Time limit", c.cfg.Solver.TimeLimit.String())
			printKeyValue("Iterations", fmt.Sprint(c.cfg.Solver.Iterations))
			printKeyValue("Seed", fmt.Sprint(c.cfg.Solver.Seed))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := configDir()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Println(filepath.Join(dir, "config.toml"))
			return nil
		},
	})

	return cmd
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
