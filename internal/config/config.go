// Package config resolves start-up settings from flags, environment
// variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PANEDECK_WORKERS.
const EnvPrefix = "PANEDECK"

// ErrHelp is returned by Load when usage was requested and printed.
var ErrHelp = pflag.ErrHelp

// Config holds resolved settings.
type Config struct {
	// Workers is the size of the background job pool.
	Workers int
	// Theme names the starting theme; empty means the first one.
	Theme string
	// LogFile receives log output. Empty discards it.
	LogFile string

	RedrawInterval time.Duration
	SustainedInput time.Duration
	IdleSleep      time.Duration

	// Files are opened at start-up, in order.
	Files []string
	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// Load parses args (without the program name) and merges the result with
// PANEDECK_* variables and the config file. Flags win over the environment,
// which wins over the file.
func Load(args []string, out io.Writer) (Config, error) {
	fs := pflag.NewFlagSet("panedeck", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: panedeck [flags] [file...]")
		fs.PrintDefaults()
	}
	fs.String("config", "", "config file (default $XDG_CONFIG_HOME/panedeck/config.yaml)")
	fs.Int("workers", 4, "background job workers")
	fs.String("theme", "", "starting theme")
	fs.String("log-file", "", "write logs to this file")
	fs.Duration("redraw-interval", 6*time.Millisecond, "minimum time between redraws")
	fs.Duration("sustained-input", 100*time.Millisecond, "longest input burst before a forced redraw")
	fs.Duration("idle-sleep", time.Millisecond, "sleep on otherwise idle loop iterations")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	explicit, _ := fs.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "panedeck"))
		v.SetConfigName("config")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := Config{
		Workers:        v.GetInt("workers"),
		Theme:          v.GetString("theme"),
		LogFile:        v.GetString("log-file"),
		RedrawInterval: v.GetDuration("redraw-interval"),
		SustainedInput: v.GetDuration("sustained-input"),
		IdleSleep:      v.GetDuration("idle-sleep"),
		Files:          fs.Args(),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.RedrawInterval <= 0 {
		errs = append(errs, fmt.Errorf("redraw-interval must be positive, got %s", c.RedrawInterval))
	}
	if c.SustainedInput <= 0 {
		errs = append(errs, fmt.Errorf("sustained-input must be positive, got %s", c.SustainedInput))
	}
	if c.IdleSleep < 0 {
		errs = append(errs, fmt.Errorf("idle-sleep must not be negative, got %s", c.IdleSleep))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
