// Package config loads the YAML configuration shared by the CLI commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxNameLength       = 100  // Practice name
	MaxEmailLength      = 254  // RFC 5321
	MaxPhoneLength      = 30   // "+27 (0)11 555 0100"
	MaxNumberLength     = 50   // Practice or VAT number
	MaxAddressLength    = 500  // Multi-line postal address
	MaxPathLength       = 4096 // PATH_MAX
	MaxURLLength        = 2048 // Browser limit
	MaxPageSizeLength   = 10   // "letter", "a4", "legal"
	MaxDateFormatLength = 50   // "DD MMMM YYYY"
	MaxCurrencyLength   = 5    // "R", "US$"
	MaxPresetLength     = 50   // "executive"
	MaxAddrLength       = 255  // host:port
)

// Limits for numeric settings.
const (
	MaxWorkers       = 32
	MaxConcurrent    = 256
	MaxRenderTimeout = 5 * time.Minute
)

// Store drivers.
const (
	StoreNone     = ""
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSupabase = "supabase"
)

// Config holds all configuration for rendering and serving.
type Config struct {
	Practice model.Party    `yaml:"practice"`
	Template TemplateConfig `yaml:"template"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
	Logos    LogoConfig     `yaml:"logos"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
}

// TemplateConfig selects the default template. File wins over Preset.
type TemplateConfig struct {
	Preset string `yaml:"preset"` // Embedded preset name (empty = built-in defaults)
	File   string `yaml:"file"`   // YAML template file
}

// RenderConfig defines document options.
type RenderConfig struct {
	PageSize   string `yaml:"pageSize"`   // "a4" (default), "a5", "letter", "legal"
	DateFormat string `yaml:"dateFormat"` // Preset or tokens (default: "DD MMMM YYYY")
	Currency   string `yaml:"currency"`   // Amount prefix (default: "R")
	Compress   bool   `yaml:"compress"`
	Workers    int    `yaml:"workers"` // Batch render workers (0 = auto)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// LogoConfig defines where logo references may be loaded from.
type LogoConfig struct {
	Dir         string `yaml:"dir"`         // Base directory for file references (empty = none)
	AllowRemote bool   `yaml:"allowRemote"` // Fetch http(s) references
}

// StoreConfig selects the template store backend.
// Secrets (DSN, API key) are better supplied through the environment.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "", "file", "postgres", "supabase"
	Dir    string `yaml:"dir"`    // file: template directory
	DSN    string `yaml:"dsn"`    // postgres: connection string
	URL    string `yaml:"url"`    // supabase: project URL
	APIKey string `yaml:"apiKey"` // supabase: service key
}

// ServerConfig defines the HTTP API.
type ServerConfig struct {
	Addr                 string `yaml:"addr"`                 // Listen address (default: ":8080")
	MaxBodyBytes         int64  `yaml:"maxBodyBytes"`         // Request body limit (0 = default)
	RenderTimeoutSeconds int    `yaml:"renderTimeoutSeconds"` // Per-request render limit (0 = default)
	MaxConcurrent        int    `yaml:"maxConcurrent"`        // Simultaneous renders (0 = default)
	Metrics              bool   `yaml:"metrics"`              // Serve /metrics
}

// RenderTimeout returns the configured timeout, or zero for the default.
func (s ServerConfig) RenderTimeout() time.Duration {
	return time.Duration(s.RenderTimeoutSeconds) * time.Second
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"practice.name", c.Practice.Name, MaxNameLength},
		{"practice.practiceNumber", c.Practice.PracticeNumber, MaxNumberLength},
		{"practice.email", c.Practice.Email, MaxEmailLength},
		{"practice.phone", c.Practice.Phone, MaxPhoneLength},
		{"practice.vatNumber", c.Practice.VATNumber, MaxNumberLength},
		{"practice.postalAddress", c.Practice.PostalAddress, MaxAddressLength},
		{"template.preset", c.Template.Preset, MaxPresetLength},
		{"template.file", c.Template.File, MaxPathLength},
		{"render.pageSize", c.Render.PageSize, MaxPageSizeLength},
		{"render.dateFormat", c.Render.DateFormat, MaxDateFormatLength},
		{"render.currency", c.Render.Currency, MaxCurrencyLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"logos.dir", c.Logos.Dir, MaxPathLength},
		{"store.dir", c.Store.Dir, MaxPathLength},
		{"store.dsn", c.Store.DSN, MaxURLLength},
		{"store.url", c.Store.URL, MaxURLLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if c.Server.MaxConcurrent < 0 || c.Server.MaxConcurrent > MaxConcurrent {
		return fmt.Errorf("%w: server.maxConcurrent must be between 0 and %d, got %d", ErrInvalidValue, MaxConcurrent, c.Server.MaxConcurrent)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must be non-negative", ErrInvalidValue)
	}
	if t := c.Server.RenderTimeout(); t < 0 || t > MaxRenderTimeout {
		return fmt.Errorf("%w: server.renderTimeoutSeconds must be between 0 and %d", ErrInvalidValue, int(MaxRenderTimeout.Seconds()))
	}

	switch strings.ToLower(c.Store.Driver) {
	case StoreNone:
	case StoreFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is required for the file driver", ErrInvalidValue)
		}
	case StorePostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for the postgres driver", ErrInvalidValue)
		}
	case StoreSupabase:
		if c.Store.URL == "" || c.Store.APIKey == "" {
			return fmt.Errorf("%w: store.url and store.apiKey are required for the supabase driver", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: store.driver %q (must be file, postgres, or supabase)", ErrInvalidValue, c.Store.Driver)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with no practice details, no store
// and the renderer's own defaults.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{PageSize: "a4"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the name as given, then with .yaml and .yml,
// in the current directory then ~/.config/go-invoice2pdf/.
func resolveConfigPath(name string) (string, error) {
	candidates := []string{name, name + ".yaml", name + ".yml"}
	triedPaths := make([]string, 0, len(candidates)*2) // 2 locations

	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
		triedPaths = append(triedPaths, c)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, c := range candidates {
			userPath := filepath.Join(userConfigDir, "go-invoice2pdf", c)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
