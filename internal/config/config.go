// Package config resolves the zcalc runtime configuration from command
// line flags, ZCALC_-prefixed environment variables and an optional TOML
// file, in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "zint/internal/errors"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "ZCALC_"

// AppConfig holds the resolved runtime configuration.
type AppConfig struct {
	// Expr is a one-shot expression to evaluate; empty starts the REPL.
	Expr string
	// Base is the output base, 2..36. Negative selects uppercase digits.
	Base int
	// Timeout bounds a single evaluation; zero disables the limit.
	Timeout time.Duration
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses everything but results and errors.
	Quiet bool
	// MetricsAddr is the listen address of the Prometheus endpoint;
	// empty disables it.
	MetricsAddr string
	// MemoryLimit caps live digit storage, e.g. "512MB". Empty means
	// unlimited.
	MemoryLimit string
	// OutputFile is a path the result is additionally written to.
	OutputFile string
	// ConfigFile is an optional TOML file consulted for unset options.
	ConfigFile string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() AppConfig {
	return AppConfig{
		Base: 10,
	}
}

// registerFlags binds every option to the flag set, with short aliases
// for the common ones.
func registerFlags(fs *flag.FlagSet, cfg *AppConfig) {
	fs.StringVar(&cfg.Expr, "e", cfg.Expr, "expression to evaluate (one-shot mode)")
	fs.StringVar(&cfg.Expr, "expr", cfg.Expr, "alias for -e")
	fs.IntVar(&cfg.Base, "base", cfg.Base, "output base, 2..36 (negative for uppercase)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "evaluation time limit (0 disables)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "alias for -v")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "print results and errors only")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "alias for -q")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus listen address (empty disables)")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "live digit storage cap, e.g. 512MB (empty for unlimited)")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "also write the result to this file")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "alias for -o")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML config file")
}

// Load resolves the configuration from args, the environment and an
// optional config file. Flags win over environment variables, which win
// over the file, which wins over the defaults.
func Load(args []string, output io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet("zcalc", flag.ContinueOnError)
	fs.SetOutput(output)

	cfg := DefaultConfig()
	registerFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}

	path := cfg.ConfigFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := applyFile(&cfg, fs, path); err != nil {
			return cfg, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration for contradictions and
// out-of-range values.
func Validate(cfg AppConfig) error {
	b := cfg.Base
	if b < 0 {
		b = -b
	}
	if b < 2 || b > 36 {
		return apperrors.NewConfigError("base %d out of range (2..36)", cfg.Base)
	}
	if cfg.Verbose && cfg.Quiet {
		return apperrors.NewConfigError("-verbose and -quiet are mutually exclusive")
	}
	if cfg.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative")
	}
	if cfg.MemoryLimit != "" {
		if _, err := ParseMemoryLimit(cfg.MemoryLimit); err != nil {
			return err
		}
	}
	return nil
}

// fileConfig mirrors AppConfig with optional fields, so the file only
// overrides what it actually mentions.
type fileConfig struct {
	Base        *int    `toml:"base"`
	Timeout     *string `toml:"timeout"`
	Verbose     *bool   `toml:"verbose"`
	Quiet       *bool   `toml:"quiet"`
	MetricsAddr *string `toml:"metrics_addr"`
	MemoryLimit *string `toml:"memory_limit"`
}

// applyFile folds file values into cfg for every option that was set by
// neither a flag nor an environment variable.
func applyFile(cfg *AppConfig, fs *flag.FlagSet, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return apperrors.NewConfigError("config file %s: %v", path, err)
	}

	unset := func(envKey string, flags ...string) bool {
		return !isFlagSetAny(fs, flags...) && os.Getenv(EnvPrefix+envKey) == ""
	}

	if fc.Base != nil && unset("BASE", "base") {
		cfg.Base = *fc.Base
	}
	if fc.Timeout != nil && unset("TIMEOUT", "timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("config file %s: timeout: %v", path, err)
		}
		cfg.Timeout = d
	}
	if fc.Verbose != nil && unset("VERBOSE", "v", "verbose") {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Quiet != nil && unset("QUIET", "q", "quiet") {
		cfg.Quiet = *fc.Quiet
	}
	if fc.MetricsAddr != nil && unset("METRICS_ADDR", "metrics-addr") {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
	if fc.MemoryLimit != nil && unset("MEMORY_LIMIT", "memory-limit") {
		cfg.MemoryLimit = *fc.MemoryLimit
	}
	return nil
}

// memoryUnits maps a size suffix to its byte multiplier.
var memoryUnits = []struct {
	suffix string
	mult   int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseMemoryLimit parses a human-readable size such as "512MB" or
// "1GB" into bytes. A bare number is taken as bytes.
func ParseMemoryLimit(s string) (int64, error) {
	v := strings.TrimSpace(strings.ToUpper(s))
	mult := int64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(v, u.suffix) {
			v = strings.TrimSpace(strings.TrimSuffix(v, u.suffix))
			mult = u.mult
			break
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, apperrors.NewConfigError("invalid memory limit %q", s)
	}
	if n > (1<<62)/mult {
		return 0, apperrors.NewConfigError("memory limit %q overflows", s)
	}
	return n * mult, nil
}

// String renders the configuration for verbose startup logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("base=%d timeout=%s metrics=%q memory-limit=%q",
		c.Base, c.Timeout, c.MetricsAddr, c.MemoryLimit)
}
