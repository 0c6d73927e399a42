// Package config resolves command-line flags and RTRIM_* environment
// variables into a validated Config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/rtrim/internal/domain"
	m "github.com/mouse-blink/rtrim/internal/model"
)

// EnvPrefix is prepended to every environment variable, e.g. RTRIM_DRY_RUN.
const EnvPrefix = "RTRIM"

// Flag and key names.
const (
	KeyFile     = "file"
	KeyFolder   = "folder"
	KeyDryRun   = "dry-run"
	KeyVerbose  = "verbose"
	KeyParallel = "parallel"
	KeyExclude  = "exclude"
	KeyReport   = "report"
)

const defaultPath = "."

var errInvalidParallel = errors.New("parallel must be at least 1")

// Config is the resolved configuration for one trim run.
type Config struct {
	Paths    []m.Path
	Files    []m.Path
	Folders  []m.Path
	DryRun   bool
	Verbose  bool
	Parallel int
	Exclude  []string
	Report   m.Path
}

// RegisterFlags defines the trim flags on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringArrayP(KeyFile, "f", nil, "path that must be a regular file (can be repeated)")
	flags.StringArrayP(KeyFolder, "d", nil, "path that must be a directory (can be repeated)")
	flags.BoolP(KeyDryRun, "n", false, "report files that would change without writing them")
	flags.BoolP(KeyVerbose, "v", false, "show skipped and unchanged files and debug logs")
	flags.IntP(KeyParallel, "p", 1, "number of parallel workers")
	flags.StringArrayP(KeyExclude, "x", nil, "exclude paths matching a glob such as **/*.min.js (can be repeated)")
	flags.StringP(KeyReport, "r", "", "write a YAML report of the run to this file")
}

// NewViper returns a viper instance reading RTRIM_* variables, with flags
// bound so that an explicitly set flag wins over the environment.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	return v, nil
}

// Load builds a Config from v and the positional args. With no paths of any
// kind the current directory is used.
func Load(v *viper.Viper, args []string) (Config, error) {
	cfg := Config{
		Paths:    toPaths(args),
		Files:    toPaths(v.GetStringSlice(KeyFile)),
		Folders:  toPaths(v.GetStringSlice(KeyFolder)),
		DryRun:   v.GetBool(KeyDryRun),
		Verbose:  v.GetBool(KeyVerbose),
		Parallel: v.GetInt(KeyParallel),
		Exclude:  v.GetStringSlice(KeyExclude),
		Report:   m.Path(v.GetString(KeyReport)),
	}

	if len(cfg.Paths)+len(cfg.Files)+len(cfg.Folders) == 0 {
		cfg.Paths = []m.Path{defaultPath}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.Parallel < 1 {
		return fmt.Errorf("%w, got %d", errInvalidParallel, c.Parallel)
	}

	return domain.ValidateExcludePatterns(c.Exclude)
}

// Roots returns the roots to collect, positional paths first.
func (c Config) Roots() []domain.Root {
	roots := make([]domain.Root, 0, len(c.Paths)+len(c.Files)+len(c.Folders))

	for _, path := range c.Paths {
		roots = append(roots, domain.Root{Path: path, Kind: domain.RootAny})
	}

	for _, path := range c.Files {
		roots = append(roots, domain.Root{Path: path, Kind: domain.RootFile})
	}

	for _, path := range c.Folders {
		roots = append(roots, domain.Root{Path: path, Kind: domain.RootFolder})
	}

	return roots
}

// RunArgs converts c into the arguments of a workflow run.
func (c Config) RunArgs() domain.RunArgs {
	return domain.RunArgs{
		Roots:   c.Roots(),
		Exclude: c.Exclude,
		DryRun:  c.DryRun,
		Verbose: c.Verbose,
		Threads: c.Parallel,
		Report:  c.Report,
	}
}

func toPaths(values []string) []m.Path {
	if len(values) == 0 {
		return nil
	}

	paths := make([]m.Path, 0, len(values))
	for _, value := range values {
		paths = append(paths, m.Path(value))
	}

	return paths
}
