package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/recstream/internal/logging"
	"github.com/rs/zerolog"
)

// Render modes select which records recdump prints.
const (
	RenderOpaque = "opaque"
	RenderAll    = "all"
	RenderNone   = "none"
	RenderDump   = "dump"
)

// DumpConfig is the recdump runtime configuration.
type DumpConfig struct {
	LogLevel        zerolog.Level
	Diagnostics     bool
	MaxRecords      int
	MaxPayloadBytes int
	Render          string
	VerifyRoundTrip bool
	MetricsOut      string
}

// recdump config.toml key mapping.
type fileConfig struct {
	LogLevel        string `toml:"log_level"`
	Diagnostics     bool   `toml:"diagnostics"`
	MaxRecords      int    `toml:"max_records"`
	MaxPayloadBytes int    `toml:"max_payload_bytes"`
	Render          string `toml:"render"`
	VerifyRoundTrip bool   `toml:"verify_roundtrip"`
	MetricsOut      string `toml:"metrics_out"`
}

func Default() DumpConfig {
	return DumpConfig{
		LogLevel:        zerolog.InfoLevel,
		MaxPayloadBytes: 0xFFFF,
		Render:          RenderOpaque,
		VerifyRoundTrip: true,
	}
}

// LoadDumpConfig overlays the keys defined in path onto Default.
func LoadDumpConfig(path string) (DumpConfig, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DumpConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DumpConfig{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return DumpConfig{}, fmt.Errorf("config parse failed (%s): invalid log_level %q", path, raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("diagnostics") {
		cfg.Diagnostics = raw.Diagnostics
	}
	if meta.IsDefined("max_records") {
		cfg.MaxRecords = raw.MaxRecords
	}
	if meta.IsDefined("max_payload_bytes") {
		cfg.MaxPayloadBytes = raw.MaxPayloadBytes
	}
	if meta.IsDefined("render") {
		cfg.Render = strings.ToLower(strings.TrimSpace(raw.Render))
	}
	if meta.IsDefined("verify_roundtrip") {
		cfg.VerifyRoundTrip = raw.VerifyRoundTrip
	}
	if meta.IsDefined("metrics_out") {
		cfg.MetricsOut = strings.TrimSpace(raw.MetricsOut)
	}

	if err := ValidateDumpConfig(cfg); err != nil {
		return DumpConfig{}, err
	}
	return cfg, nil
}

func ValidateDumpConfig(cfg DumpConfig) error {
	if cfg.MaxRecords < 0 {
		return fmt.Errorf("max_records must be >= 0, got %d", cfg.MaxRecords)
	}
	if cfg.MaxPayloadBytes <= 0 || cfg.MaxPayloadBytes > 0xFFFF {
		return fmt.Errorf("max_payload_bytes must be in [1, 65535], got %d", cfg.MaxPayloadBytes)
	}
	switch cfg.Render {
	case RenderOpaque, RenderAll, RenderNone, RenderDump:
	default:
		return fmt.Errorf("render must be one of opaque|all|dump|none, got %q", cfg.Render)
	}
	return nil
}
