package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config is the immutable record a run is launched with. It is assembled
// once in main (flags over environment over optional TOML file) and
// validated all-or-nothing before the first remote call.
type Config struct {
	GalaxyURL           string `toml:"galaxy_url" env:"LIBCTL_URL"`
	APIKey              string `toml:"api_key" env:"LIBCTL_API_KEY"`
	Library             string `toml:"library" env:"LIBCTL_LIBRARY"`
	Description         string `toml:"description" env:"LIBCTL_DESCRIPTION"`
	Manifest            string `toml:"manifest" env:"LIBCTL_MANIFEST"`
	MaxWaitSeconds      int    `toml:"max_wait_seconds" env:"LIBCTL_MAX_WAIT_SECONDS"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds" env:"LIBCTL_POLL_INTERVAL_SECONDS"`
	StatusAddr          string `toml:"status_addr" env:"LIBCTL_STATUS_ADDR"`
}

// MissingFieldsError lists every required field absent from the assembled
// config, so one failed run names them all at once.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "config: missing required field(s): " + strings.Join(e.Fields, ", ")
}

// Load reads the optional TOML file at path (empty path skips it), then
// overlays environment variables. Validation is the caller's step; flags
// may still fill fields in.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config env parse failed: %w", err)
	}
	return cfg, nil
}

func loadToml(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// Validate checks every required field and reports all gaps in a single
// MissingFieldsError.
func Validate(cfg Config) error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"galaxy_url", cfg.GalaxyURL},
		{"api_key", cfg.APIKey},
		{"library", cfg.Library},
		{"description", cfg.Description},
		{"manifest", cfg.Manifest},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	if cfg.MaxWaitSeconds < 0 {
		return fmt.Errorf("config: max_wait_seconds must not be negative")
	}
	if cfg.PollIntervalSeconds < 0 {
		return fmt.Errorf("config: poll_interval_seconds must not be negative")
	}
	return nil
}
