package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	appName   = "marquee"
	envPrefix = "MARQUEE"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
}

// TMDBConfig holds API access settings
type TMDBConfig struct {
	Token        string        `mapstructure:"token"` // v4 read access token
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	ImageSize    string        `mapstructure:"image_size"`
	Language     string        `mapstructure:"language"` // BCP 47 tag sent with every request
	IncludeAdult bool          `mapstructure:"include_adult"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// BrowseConfig holds listing defaults
type BrowseConfig struct {
	Languages       []string `mapstructure:"languages"` // ISO 639-1 codes offered on the language page
	DefaultLanguage string   `mapstructure:"default_language"`
	SearchOrder     string   `mapstructure:"search_order"` // relevance, rating or date
	SearchType      string   `mapstructure:"search_type"`  // all, movie, tv or person
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowInspector bool     `mapstructure:"show_inspector"`
	DefaultPage   string   `mapstructure:"default_page"`
	Browser       string   `mapstructure:"browser"`      // Empty uses the system default
	BrowserArgs   []string `mapstructure:"browser_args"` // Passed before the URL
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// StoreConfig holds local persistence settings
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps My List in memory only
}

var (
	searchOrders = []string{"relevance", "rating", "date"}
	searchTypes  = []string{"all", "movie", "tv", "person"}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			ImageSize:    "w780",
			Language:     "en-US",
			IncludeAdult: false,
			Timeout:      30 * time.Second,
		},
		Browse: BrowseConfig{
			Languages:       []string{"ko", "ja", "zh", "hi", "es", "fr", "de", "it", "pt", "ru"},
			DefaultLanguage: "ko",
			SearchOrder:     "relevance",
			SearchType:      "all",
		},
		UI: UIConfig{
			ShowInspector: true,
			DefaultPage:   "now-playing",
			BrowserArgs:   []string{},
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), appName+".log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), appName+".db"),
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// MARQUEE_TMDB_TOKEN overrides tmdb.token
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setValues(DefaultConfig(), v.SetDefault)
	return v
}

// setValues writes every key with snake_case names
func setValues(cfg *Config, set func(string, interface{})) {
	set("tmdb.token", cfg.TMDB.Token)
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	set("tmdb.image_size", cfg.TMDB.ImageSize)
	set("tmdb.language", cfg.TMDB.Language)
	set("tmdb.include_adult", cfg.TMDB.IncludeAdult)
	set("tmdb.timeout", cfg.TMDB.Timeout)

	set("browse.languages", cfg.Browse.Languages)
	set("browse.default_language", cfg.Browse.DefaultLanguage)
	set("browse.search_order", cfg.Browse.SearchOrder)
	set("browse.search_type", cfg.Browse.SearchType)

	set("ui.show_inspector", cfg.UI.ShowInspector)
	set("ui.default_page", cfg.UI.DefaultPage)
	set("ui.browser", cfg.UI.Browser)
	set("ui.browser_args", cfg.UI.BrowserArgs)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
	set("logging.max_age_days", cfg.Logging.MaxAgeDays)

	set("store.path", cfg.Store.Path)
}

// LoadConfig loads configuration from the default directory and environment
func LoadConfig() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Load reads config.yaml from dir, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	v := newViper(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the configuration to the default directory
func SaveConfig(cfg *Config) error {
	return Save(DefaultConfigPath(), cfg)
}

// Save writes cfg to dir/config.yaml
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setValues(cfg, v.Set)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClearCredentials removes the stored token while preserving other settings
func ClearCredentials(dir string) error {
	cfg, err := Load(dir)
	if err != nil {
		return err
	}
	cfg.TMDB.Token = ""
	return Save(dir, cfg)
}

// IsConfigured returns true if an access token is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.Token) != ""
}

// Validate normalizes locale tags and rejects unknown enum values
func (c *Config) Validate() error {
	tag, err := language.Parse(c.TMDB.Language)
	if err != nil {
		return fmt.Errorf("invalid tmdb.language %q: %w", c.TMDB.Language, err)
	}
	c.TMDB.Language = tag.String()

	codes := make([]string, 0, len(c.Browse.Languages))
	for _, code := range c.Browse.Languages {
		base, err := baseLanguage(code)
		if err != nil {
			return fmt.Errorf("invalid browse.languages entry %q: %w", code, err)
		}
		codes = append(codes, base)
	}
	if len(codes) == 0 {
		return fmt.Errorf("browse.languages must not be empty")
	}
	c.Browse.Languages = codes

	def, err := baseLanguage(c.Browse.DefaultLanguage)
	if err != nil || !slices.Contains(codes, def) {
		def = codes[0]
	}
	c.Browse.DefaultLanguage = def

	if !slices.Contains(searchOrders, c.Browse.SearchOrder) {
		return fmt.Errorf("invalid browse.search_order %q (want one of %s)",
			c.Browse.SearchOrder, strings.Join(searchOrders, ", "))
	}
	if !slices.Contains(searchTypes, c.Browse.SearchType) {
		return fmt.Errorf("invalid browse.search_type %q (want one of %s)",
			c.Browse.SearchType, strings.Join(searchTypes, ", "))
	}

	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = 30 * time.Second
	}
	return nil
}

// baseLanguage reduces a tag such as "pt-BR" to its ISO 639-1 code
func baseLanguage(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", err
	}
	base, _ := tag.Base()
	return base.String(), nil
}

