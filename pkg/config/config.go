// Package config provides configuration loading and management.
//
// Values are layered: Defaults, then an optional YAML file, then FRAMEREEL_*
// environment variables, then explicit command-line flags through Builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/framereel/pkg/assembler"
	"github.com/user/framereel/pkg/ports"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FRAMEREEL_"

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the full configuration for framereel.
type Config struct {
	// Input/Output
	Input  string `yaml:"input" env:"INPUT"`
	Output string `yaml:"output" env:"OUTPUT"`
	Suffix string `yaml:"ext" env:"EXT"`

	// Encoding
	FPS          int    `yaml:"fps" env:"FPS"`
	Codec        string `yaml:"codec" env:"CODEC"`
	Quality      int    `yaml:"quality" env:"QUALITY"`
	FFmpegPath   string `yaml:"ffmpeg_path" env:"FFMPEG_PATH"`
	PreferFFmpeg bool   `yaml:"prefer_ffmpeg" env:"PREFER_FFMPEG"`

	// Reporting
	SummaryPath string `yaml:"summary" env:"SUMMARY"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	Quiet       bool   `yaml:"quiet" env:"QUIET"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Input:    "images",
		Output:   "demo.mp4",
		Suffix:   ".bmp",
		FPS:      30,
		Codec:    "mp4v",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
// Keys absent from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with any FRAMEREEL_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the assembler cannot run with.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Input) == "" {
		problems = append(problems, "input directory is empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		problems = append(problems, "output path is empty")
	}
	if c.Suffix == "" {
		problems = append(problems, "frame extension is empty")
	}
	if c.FPS <= 0 {
		problems = append(problems, fmt.Sprintf("fps must be positive, got %d", c.FPS))
	}
	if len(c.Codec) != 4 {
		problems = append(problems, fmt.Sprintf("codec must be a four-character tag, got %q", c.Codec))
	}
	if c.Quality < 0 || c.Quality > 51 {
		problems = append(problems, fmt.Sprintf("quality must be between 0 and 51, got %d", c.Quality))
	}
	if c.LogLevel != "" && ports.ParseLogLevel(c.LogLevel).String() != c.LogLevel {
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the effective log level, honoring Quiet.
func (c Config) Level() ports.LogLevel {
	if c.Quiet {
		return ports.LevelQuiet
	}
	return ports.ParseLogLevel(c.LogLevel)
}

// ToJob converts Config to an assembler.Job.
func (c Config) ToJob() assembler.Job {
	return assembler.Job{
		SourceDir:  c.Input,
		OutputPath: c.Output,
		FPS:        c.FPS,
		Codec:      c.Codec,
		Suffix:     c.Suffix,
		Options: ports.EncoderOptions{
			Quality: c.Quality,
		},
	}
}
