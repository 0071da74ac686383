package config

import (
	"github.com/reelsmith/timeline/internal/config/loader"
	"github.com/reelsmith/timeline/internal/engine/element"
	"github.com/reelsmith/timeline/internal/engine/history"
	"github.com/reelsmith/timeline/internal/engine/placement"
	"github.com/reelsmith/timeline/internal/engine/playback"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "REELSMITH_"

// HistoryConfig holds undo history settings.
type HistoryConfig struct {
	// Limit caps the number of undo entries kept.
	Limit int `toml:"limit"`
}

// MagnetConfig holds main-track magnet settings.
type MagnetConfig struct {
	// Enabled turns the magnet on at startup.
	Enabled bool `toml:"enabled"`

	// TieBreak picks the preferred neighbor for gap drops when both
	// are free ("below" or "above").
	TieBreak string `toml:"tie_break"`
}

// AttachmentConfig holds attachment derivation settings.
type AttachmentConfig struct {
	// Tolerance is the slack in frames when matching a child interval
	// against its parent.
	Tolerance int64 `toml:"tolerance"`
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	// FPS is the playback frame rate.
	FPS float64 `toml:"fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `toml:"level"`
}

// Config is the full application configuration.
type Config struct {
	History    HistoryConfig    `toml:"history"`
	Magnet     MagnetConfig     `toml:"magnet"`
	Attachment AttachmentConfig `toml:"attachment"`
	Playback   PlaybackConfig   `toml:"playback"`
	Logging    LoggingConfig    `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Limit: history.DefaultLimit,
		},
		Magnet: MagnetConfig{
			Enabled:  false,
			TieBreak: placement.TieBreakBelow.String(),
		},
		Attachment: AttachmentConfig{
			Tolerance: int64(placement.DefaultTolerance),
		},
		Playback: PlaybackConfig{
			FPS: playback.DefaultFPS,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the TOML file
// at path, then environment overrides. A missing file is not an error;
// an empty path skips the file layer entirely. The result is validated
// before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := loader.NewTOMLLoader(path).Load(cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg, loader.NewEnvLoader(EnvPrefix))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv copies recognized environment overrides onto the config.
// Unparseable values are ignored rather than rejected.
func applyEnv(cfg *Config, env *loader.EnvLoader) {
	if v, ok := env.Int("HISTORY_LIMIT"); ok {
		cfg.History.Limit = v
	}
	if v, ok := env.Bool("MAGNET_ENABLED"); ok {
		cfg.Magnet.Enabled = v
	}
	if v, ok := env.String("MAGNET_TIE_BREAK"); ok {
		cfg.Magnet.TieBreak = v
	}
	if v, ok := env.Int("ATTACHMENT_TOLERANCE"); ok {
		cfg.Attachment.Tolerance = int64(v)
	}
	if v, ok := env.Float("PLAYBACK_FPS"); ok {
		cfg.Playback.FPS = v
	}
	if v, ok := env.String("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
}

// Validate checks ranges and enumerations, returning the first
// violation found.
func (c *Config) Validate() error {
	if c.History.Limit <= 0 {
		return &ValidationError{Path: "history.limit", Message: "must be positive", Value: c.History.Limit}
	}
	if _, ok := placement.ParseTieBreak(c.Magnet.TieBreak); !ok {
		return &ValidationError{Path: "magnet.tie_break", Message: `must be "below" or "above"`, Value: c.Magnet.TieBreak}
	}
	if c.Attachment.Tolerance < 0 {
		return &ValidationError{Path: "attachment.tolerance", Message: "must not be negative", Value: c.Attachment.Tolerance}
	}
	if c.Playback.FPS <= 0 {
		return &ValidationError{Path: "playback.fps", Message: "must be positive", Value: c.Playback.FPS}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level}
	}
	return nil
}

// TieBreak returns the parsed tie-break policy. Call Validate first;
// an unknown name falls back to the below policy.
func (c *Config) TieBreak() placement.TieBreak {
	tb, _ := placement.ParseTieBreak(c.Magnet.TieBreak)
	return tb
}

// Tolerance returns the attachment slack as a frame count.
func (c *Config) Tolerance() element.Frame {
	return element.Frame(c.Attachment.Tolerance)
}
