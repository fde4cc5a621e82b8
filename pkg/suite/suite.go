// Package suite loads benchmark suites: named lists of DIMACS instances
// with shared search settings, stored as TOML.
//
//	name = "dimacs"
//	time_limit = "60s"
//	iterations = 1000
//	quality = "optimal"
//
//	[[instance]]
//	name = "brock200_1"
//	file = "brock200_1.clq"
//	known_best = 21
//
// Instance files are resolved relative to the suite file.
package suite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mcerrors "github.com/matzehuels/maxclique/pkg/errors"
	"github.com/matzehuels/maxclique/pkg/solver"
)

// Suite is a benchmark definition.
type Suite struct {
	Name       string   `toml:"name"`
	TimeLimit  Duration `toml:"time_limit,omitempty"`
	Iterations int      `toml:"iterations,omitempty"`
	Quality    string   `toml:"quality,omitempty"`
	Seed       uint64   `toml:"seed,omitempty"`

	Instances []Instance `toml:"instance"`

	// dir is the directory instance files are resolved against.
	dir string
}

// Instance is one graph of a suite.
type Instance struct {
	Name string `toml:"name"`
	File string `toml:"file"`
	// KnownBest is the best published clique size, 0 when unknown.
	KnownBest int `toml:"known_best,omitempty"`
}

// Duration decodes TOML strings such as "90s" or "2m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads and validates the suite at path.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mcerrors.Wrap(mcerrors.ErrCodeFileNotFound, err, "suite %s", path)
		}
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes and validates a suite whose instance files live in dir.
func Parse(data []byte, dir string) (*Suite, error) {
	var s Suite
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, mcerrors.Wrap(mcerrors.ErrCodeInvalidFormat, err, "decode suite")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, mcerrors.New(mcerrors.ErrCodeInvalidFormat, "unknown suite keys: %s", strings.Join(keys, ", "))
	}
	s.dir = dir
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names, paths and settings.
func (s *Suite) Validate() error {
	if err := mcerrors.ValidateName(s.Name); err != nil {
		return err
	}
	if s.Quality != "" {
		if _, err := solver.ParseQuality(s.Quality); err != nil {
			return mcerrors.Wrap(mcerrors.ErrCodeInvalidOption, err, "suite %s", s.Name)
		}
	}
	if s.Iterations < 0 || s.TimeLimit.Duration < 0 {
		return mcerrors.New(mcerrors.ErrCodeInvalidOption, "suite %s: iterations and time_limit must not be negative", s.Name)
	}
	if len(s.Instances) == 0 {
		return mcerrors.New(mcerrors.ErrCodeInvalidInput, "suite %s has no instances", s.Name)
	}

	seen := make(map[string]bool, len(s.Instances))
	for _, in := range s.Instances {
		if err := mcerrors.ValidateName(in.Name); err != nil {
			return err
		}
		if seen[in.Name] {
			return mcerrors.New(mcerrors.ErrCodeInvalidInput, "duplicate instance %q", in.Name)
		}
		seen[in.Name] = true
		if err := mcerrors.ValidatePath(in.File); err != nil {
			return err
		}
		if in.KnownBest < 0 {
			return mcerrors.New(mcerrors.ErrCodeInvalidInput, "instance %s: known_best must not be negative", in.Name)
		}
	}
	return nil
}

// Path returns the file of in resolved against the suite directory.
func (s *Suite) Path(in Instance) string {
	return filepath.Join(s.dir, in.File)
}

// Names returns the instance names in file order.
func (s *Suite) Names() []string {
	names := make([]string, len(s.Instances))
	for i, in := range s.Instances {
		names[i] = in.Name
	}
	return names
}

// Select returns a copy of s restricted to the named instances, keeping
// file order. Unknown names are an error.
func (s *Suite) Select(names []string) (*Suite, error) {
	out := *s
	out.Instances = nil
	for _, name := range names {
		if !slices.Contains(s.Names(), name) {
			return nil, mcerrors.New(mcerrors.ErrCodeNotFound, "instance %q not in suite %s", name, s.Name)
		}
	}
	for _, in := range s.Instances {
		if slices.Contains(names, in.Name) {
			out.Instances = append(out.Instances, in)
		}
	}
	return &out, nil
}

// SolverOptions returns the shared search settings of the suite.
func (s *Suite) SolverOptions() solver.Options {
	return solver.Options{
		Quality:    solver.Quality(s.Quality),
		Iterations: s.Iterations,
		TimeLimit:  s.TimeLimit.Duration,
		Seed:       s.Seed,
	}
}

// Discover builds a suite from every file in dir with one of the given
// extensions (".clq" and ".col" when none are given). Instance names are
// the file names without extension.
func Discover(name, dir string, exts ...string) (*Suite, error) {
	if len(exts) == 0 {
		exts = []string{".clq", ".col"}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	s := &Suite{Name: name, dir: dir}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains(exts, ext) {
			continue
		}
		s.Instances = append(s.Instances, Instance{
			Name: strings.TrimSuffix(e.Name(), ext),
			File: e.Name(),
		})
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s *Suite) error {
	return toml.NewEncoder(w).Encode(s)
}
