package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"pokefinder/internal/domain"
	"pokefinder/internal/persist"
)

// DefaultEndpoint is the public Pokémon GraphQL API
const DefaultEndpoint = "https://pokeapi.charlesmarttinen.ca/graphql"

// Config represents the application configuration
type Config struct {
	API     APISettings     `toml:"api"`
	Storage StorageSettings `toml:"storage"`
	UI      UISettings      `toml:"ui"`
	Log     LogSettings     `toml:"log"`
}

// APISettings configures the GraphQL client
type APISettings struct {
	Endpoint          string  `toml:"endpoint" validate:"required,url"`
	Timeout           string  `toml:"timeout" validate:"required,duration"`
	PageSize          int     `toml:"page_size" validate:"gte=1,lte=10000"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gt=0"`
	CacheSize         int     `toml:"cache_size" validate:"gte=0"`
	// UniformSortDirection sends every sort field with the primary field's
	// direction; the API rejects mixed directions
	UniformSortDirection bool   `toml:"uniform_sort_direction"`
	ShareBaseURL         string `toml:"share_base_url" validate:"omitempty,url"`
}

// StorageSettings selects where state is kept between runs
type StorageSettings struct {
	Driver string `toml:"driver" validate:"oneof=file badger sqlite"`
	// Path is the data directory; empty means the user config directory
	Path string `toml:"path"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AutoSubmit bool   `toml:"auto_submit"`
	Language   string `toml:"language" validate:"language"`
}

// LogSettings configures the log file
type LogSettings struct {
	Path  string `toml:"path"`
	Level string `toml:"level" validate:"oneof=trace debug info warn error disabled"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	_ = validate.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return domain.KnownLanguage(fl.Field().String())
	})
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequestTimeout is the parsed API timeout
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// DataDir is the directory state and logs are written to
func (c *Config) DataDir() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultDir()
}

// LogPath is the log file location
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(c.DataDir(), "pokefinder.log")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APISettings{
			Endpoint:             DefaultEndpoint,
			Timeout:              "30s",
			PageSize:             1000,
			RequestsPerSecond:    2,
			CacheSize:            64,
			UniformSortDirection: true,
		},
		Storage: StorageSettings{
			Driver: persist.DriverFile,
		},
		UI: UISettings{
			AutoSubmit: true,
			Language:   domain.FallbackLanguage,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// DefaultDir is the per-user pokefinder directory
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pokefinder")
}

// DefaultPath is where the config file is looked for when none is given
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// LoadFromPath loads configuration from path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func SaveToPath(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
