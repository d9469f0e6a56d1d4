package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultOMDbURL = "https://www.omdbapi.com/"

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Site    SiteConfig    `mapstructure:"site"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects the catalog backend
type StorageConfig struct {
	Format string `mapstructure:"format"` // "json", "csv", "yaml" or "bolt"
	Path   string `mapstructure:"path"`   // Catalog file, empty for the format default
}

// OMDbConfig holds metadata enrichment settings
type OMDbConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SiteConfig holds static site generation settings
type SiteConfig struct {
	Title         string   `mapstructure:"title"`
	Output        string   `mapstructure:"output"`
	PageTemplate  string   `mapstructure:"page_template"`  // Empty for the built-in template
	MovieTemplate string   `mapstructure:"movie_template"` // Empty for the built-in template
	Browser       string   `mapstructure:"browser"`        // Empty for the system default
	BrowserArgs   []string `mapstructure:"browser_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Format: "json",
		},
		OMDb: OMDbConfig{
			Enabled: true,
			BaseURL: defaultOMDbURL,
			Timeout: 10 * time.Second,
		},
		Site: SiteConfig{
			Title:       "My Movie App",
			Output:      "index.html",
			BrowserArgs: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "moviedb", "moviedb.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "moviedb", "moviedb.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "moviedb")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "moviedb")
	}
}

// LoadConfig loads configuration from config.yaml and the environment.
// configDirs overrides the search path (user config dir, then ".").
func LoadConfig(configDirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configDirs) == 0 {
		configDirs = []string{defaultConfigPath(), "."}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	setDefaults(v, cfg)

	// Environment variable overrides, e.g. MOVIEDB_STORAGE_FORMAT
	v.SetEnvPrefix("MOVIEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The API key also answers to the names used by .env files
	if err := v.BindEnv("omdb.api_key", "MOVIEDB_OMDB_API_KEY", "OMDB_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.format", cfg.Storage.Format)
	v.SetDefault("storage.path", cfg.Storage.Path)

	v.SetDefault("omdb.enabled", cfg.OMDb.Enabled)
	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", cfg.OMDb.Timeout)

	v.SetDefault("site.title", cfg.Site.Title)
	v.SetDefault("site.output", cfg.Site.Output)
	v.SetDefault("site.page_template", cfg.Site.PageTemplate)
	v.SetDefault("site.movie_template", cfg.Site.MovieTemplate)
	v.SetDefault("site.browser", cfg.Site.Browser)
	v.SetDefault("site.browser_args", cfg.Site.BrowserArgs)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Format)) {
	case "json", "csv", "yaml", "bolt":
	default:
		return fmt.Errorf("invalid storage.format %q (want json, csv, yaml or bolt)", c.Storage.Format)
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("invalid omdb.timeout %s", c.OMDb.Timeout)
	}
	return nil
}

// HasAPIKey returns true if an OMDb key is configured
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}
