package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up from the working directory upwards.
const ConfigFileName = "mlang.yml"

// Environment variables that override the config file.
const (
	EnvScope      = "MLANG_SCOPE"
	EnvTypecheck  = "MLANG_TYPECHECK"
	EnvBroadcast  = "MLANG_BROADCAST"
	EnvMaxStackMB = "MLANG_MAX_STACK_MB"
	EnvHistory    = "MLANG_HISTORY"
)

// TypecheckMode selects what the CLI does with checker diagnostics.
type TypecheckMode string

const (
	// TypecheckStrict reports diagnostics and refuses to run the program.
	TypecheckStrict TypecheckMode = "strict"
	// TypecheckWarn reports diagnostics and runs the program anyway.
	TypecheckWarn TypecheckMode = "warn"
	// TypecheckOff skips the checker.
	TypecheckOff TypecheckMode = "off"
)

// IsValid reports whether the mode is recognised.
func (m TypecheckMode) IsValid() bool {
	switch m {
	case TypecheckStrict, TypecheckWarn, TypecheckOff:
		return true
	default:
		return false
	}
}

// Config holds the settings read from mlang.yml and the environment.
type Config struct {
	// Path is the config file the settings came from ("" for defaults only).
	Path        string
	Scope       string
	Typecheck   TypecheckMode
	Broadcast   bool
	MaxStackMB  int
	HistoryFile string
}

// DefaultConfig returns the settings used when no file or variable sets them.
func DefaultConfig() *Config {
	return &Config{
		Scope:     "flat",
		Typecheck: TypecheckStrict,
	}
}

var errConfigNotFound = errors.New("config not found")

// IsConfigNotFound reports whether err came from FindConfig finding nothing.
func IsConfigNotFound(err error) bool {
	return errors.Is(err, errConfigNotFound)
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Scope       *string `yaml:"scope"`
	Typecheck   *string `yaml:"typecheck"`
	Broadcast   *bool   `yaml:"broadcast"`
	MaxStackMB  *int    `yaml:"max_stack_mb"`
	HistoryFile *string `yaml:"history_file"`
}

// LoadConfig parses and validates a config file. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := DefaultConfig()
	cfg.Path = absPath
	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	raw.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f configFile) applyTo(cfg *Config) {
	if f.Scope != nil {
		cfg.Scope = strings.ToLower(strings.TrimSpace(*f.Scope))
	}
	if f.Typecheck != nil {
		cfg.Typecheck = TypecheckMode(strings.ToLower(strings.TrimSpace(*f.Typecheck)))
	}
	if f.Broadcast != nil {
		cfg.Broadcast = *f.Broadcast
	}
	if f.MaxStackMB != nil {
		cfg.MaxStackMB = *f.MaxStackMB
	}
	if f.HistoryFile != nil {
		cfg.HistoryFile = strings.TrimSpace(*f.HistoryFile)
	}
}

// ApplyEnv overrides settings with the MLANG_* environment variables that are
// set.
func (c *Config) ApplyEnv() {
	if env.Has(EnvScope) {
		c.Scope = strings.ToLower(strings.TrimSpace(env.Str(EnvScope)))
	}
	if env.Has(EnvTypecheck) {
		c.Typecheck = TypecheckMode(strings.ToLower(strings.TrimSpace(env.Str(EnvTypecheck))))
	}
	if env.Has(EnvBroadcast) {
		c.Broadcast = env.Bool(EnvBroadcast)
	}
	if env.Has(EnvMaxStackMB) {
		c.MaxStackMB = env.Int(EnvMaxStackMB, c.MaxStackMB)
	}
	if env.Has(EnvHistory) {
		c.HistoryFile = strings.TrimSpace(env.Str(EnvHistory))
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationError
	switch c.Scope {
	case "flat", "block":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("scope must be flat or block, got %q", c.Scope))
	}
	if !c.Typecheck.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("typecheck must be strict, warn or off, got %q", c.Typecheck))
	}
	if c.MaxStackMB < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_stack_mb must not be negative, got %d", c.MaxStackMB))
	}
	if len(errs.Issues) > 0 {
		if c.Path != "" {
			for i, issue := range errs.Issues {
				errs.Issues[i] = c.Path + ": " + issue
			}
		}
		return &errs
	}
	return nil
}

// FindConfig walks from start up to the filesystem root looking for
// mlang.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, errConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads the nearest mlang.yml above start (defaults when there
// is none), then applies environment overrides.
func ResolveConfig(start string) (*Config, error) {
	cfg := DefaultConfig()
	path, err := FindConfig(start)
	switch {
	case err == nil:
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	case !IsConfigNotFound(err):
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
