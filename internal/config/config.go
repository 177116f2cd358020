// Package config provides configuration management for herbmind.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

const (
	// DefaultPort is the HTTP port used when none is configured.
	DefaultPort = 8080
	// DefaultTopK is the number of remedies returned per analysis.
	DefaultTopK = 5
	// DefaultSeverityWindow is the severity keyword window in characters.
	DefaultSeverityWindow = 20
	// DefaultLogLevel is the zerolog level name used when none is configured.
	DefaultLogLevel = "info"

	dataDirName  = ".herbmind"
	settingsName = "settings.json"
)

// Environment and settings-file keys.
const (
	KeyPort           = "HERBMIND_PORT"
	KeySymptomsPath   = "HERBMIND_SYMPTOMS_PATH"
	KeyRemediesPath   = "HERBMIND_REMEDIES_PATH"
	KeyCatalogDSN     = "HERBMIND_CATALOG_DSN"
	KeyTopK           = "HERBMIND_TOP_K"
	KeySeverityWindow = "HERBMIND_SEVERITY_WINDOW"
	KeyLogLevel       = "HERBMIND_LOG_LEVEL"
	KeyLogFile        = "HERBMIND_LOG_FILE"
	KeyWatchData      = "HERBMIND_WATCH_DATA"
)

// Config holds the process configuration.
type Config struct {
	SymptomsPath   string
	RemediesPath   string
	CatalogDSN     string
	LogLevel       string
	LogFile        string
	Port           int
	TopK           int
	SeverityWindow int
	WatchData      bool
}

// settingsFile mirrors settings.json, keyed like the environment.
type settingsFile struct {
	Port           *int    `json:"HERBMIND_PORT"`
	SymptomsPath   *string `json:"HERBMIND_SYMPTOMS_PATH"`
	RemediesPath   *string `json:"HERBMIND_REMEDIES_PATH"`
	CatalogDSN     *string `json:"HERBMIND_CATALOG_DSN"`
	TopK           *int    `json:"HERBMIND_TOP_K"`
	SeverityWindow *int    `json:"HERBMIND_SEVERITY_WINDOW"`
	LogLevel       *string `json:"HERBMIND_LOG_LEVEL"`
	LogFile        *string `json:"HERBMIND_LOG_FILE"`
	WatchData      *bool   `json:"HERBMIND_WATCH_DATA"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		SymptomsPath:   filepath.Join("data", "symptoms.json"),
		RemediesPath:   filepath.Join("data", "remedies.json"),
		TopK:           DefaultTopK,
		SeverityWindow: DefaultSeverityWindow,
		LogLevel:       DefaultLogLevel,
		WatchData:      true,
	}
}

// DataDir returns the per-user data directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dataDirName)
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), settingsName)
}

// LoadDotEnv loads variables from a .env file without overriding ones already
// set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration from defaults, the settings file and the
// environment, in increasing precedence. An unreadable or invalid settings
// file is ignored.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(SettingsPath()); err == nil {
		var s settingsFile
		if err := json.Unmarshal(data, &s); err == nil {
			cfg.applySettings(&s)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.DSNSource() == "" && (c.SymptomsPath == "" || c.RemediesPath == "") {
		return fmt.Errorf("config: symptoms and remedies paths are required without a catalog DSN")
	}
	return nil
}

// DSNSource reports which catalog store the DSN selects: "sqlite",
// "postgres", or "" when the catalog is read from files.
func (c *Config) DSNSource() string {
	switch {
	case c.CatalogDSN == "":
		return ""
	case strings.HasPrefix(c.CatalogDSN, "postgres://"), strings.HasPrefix(c.CatalogDSN, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}

func (c *Config) applySettings(s *settingsFile) {
	if s.Port != nil && *s.Port > 0 {
		c.Port = *s.Port
	}
	if s.SymptomsPath != nil && *s.SymptomsPath != "" {
		c.SymptomsPath = *s.SymptomsPath
	}
	if s.RemediesPath != nil && *s.RemediesPath != "" {
		c.RemediesPath = *s.RemediesPath
	}
	if s.CatalogDSN != nil {
		c.CatalogDSN = *s.CatalogDSN
	}
	if s.TopK != nil && *s.TopK > 0 {
		c.TopK = *s.TopK
	}
	if s.SeverityWindow != nil && *s.SeverityWindow > 0 {
		c.SeverityWindow = *s.SeverityWindow
	}
	if s.LogLevel != nil && *s.LogLevel != "" {
		c.LogLevel = *s.LogLevel
	}
	if s.LogFile != nil {
		c.LogFile = *s.LogFile
	}
	if s.WatchData != nil {
		c.WatchData = *s.WatchData
	}
}

func (c *Config) applyEnv() {
	if v, ok := envInt(KeyPort); ok {
		c.Port = v
	}
	if v := os.Getenv(KeySymptomsPath); v != "" {
		c.SymptomsPath = v
	}
	if v := os.Getenv(KeyRemediesPath); v != "" {
		c.RemediesPath = v
	}
	if v, ok := os.LookupEnv(KeyCatalogDSN); ok {
		c.CatalogDSN = v
	}
	if v, ok := envInt(KeyTopK); ok {
		c.TopK = v
	}
	if v, ok := envInt(KeySeverityWindow); ok {
		c.SeverityWindow = v
	}
	if v := os.Getenv(KeyLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(KeyLogFile); ok {
		c.LogFile = v
	}
	if v := os.Getenv(KeyWatchData); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.WatchData = b
		}
	}
}

// envInt parses a positive integer variable.
func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
