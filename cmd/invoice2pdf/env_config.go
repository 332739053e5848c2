package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-invoice2pdf/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "INVOICE2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // INVOICE2PDF_CONFIG: config file name or path

	// Rendering
	Preset     string // INVOICE2PDF_PRESET: default template preset
	Template   string // INVOICE2PDF_TEMPLATE: default template file
	PageSize   string // INVOICE2PDF_PAGE_SIZE: a4, a5, letter, legal
	DateFormat string // INVOICE2PDF_DATE_FORMAT: date preset or tokens
	Currency   string // INVOICE2PDF_CURRENCY: amount prefix
	Workers    int    // INVOICE2PDF_WORKERS: parallel workers
	OutputDir  string // INVOICE2PDF_OUTPUT_DIR: default output directory
	LogoDir    string // INVOICE2PDF_LOGO_DIR: logo base directory

	// Template store
	Store       string // INVOICE2PDF_STORE: file, postgres, supabase
	StoreDir    string // INVOICE2PDF_STORE_DIR: file store directory
	StoreDSN    string // INVOICE2PDF_STORE_DSN: postgres connection string
	StoreURL    string // INVOICE2PDF_STORE_URL: supabase project URL
	StoreAPIKey string // INVOICE2PDF_STORE_API_KEY: supabase service key

	// Server
	Addr string // INVOICE2PDF_ADDR: listen address
}

// knownEnvVars lists valid INVOICE2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"INVOICE2PDF_CONFIG":        true,
	"INVOICE2PDF_PRESET":        true,
	"INVOICE2PDF_TEMPLATE":      true,
	"INVOICE2PDF_PAGE_SIZE":     true,
	"INVOICE2PDF_DATE_FORMAT":   true,
	"INVOICE2PDF_CURRENCY":      true,
	"INVOICE2PDF_WORKERS":       true,
	"INVOICE2PDF_OUTPUT_DIR":    true,
	"INVOICE2PDF_LOGO_DIR":      true,
	"INVOICE2PDF_STORE":         true,
	"INVOICE2PDF_STORE_DIR":     true,
	"INVOICE2PDF_STORE_DSN":     true,
	"INVOICE2PDF_STORE_URL":     true,
	"INVOICE2PDF_STORE_API_KEY": true,
	"INVOICE2PDF_ADDR":          true,
}

// loadEnvFile loads path into the process environment. Variables that are
// already set keep their value. An empty path is a no-op.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized INVOICE2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("INVOICE2PDF_CONFIG"),
		Preset:      os.Getenv("INVOICE2PDF_PRESET"),
		Template:    os.Getenv("INVOICE2PDF_TEMPLATE"),
		PageSize:    os.Getenv("INVOICE2PDF_PAGE_SIZE"),
		DateFormat:  os.Getenv("INVOICE2PDF_DATE_FORMAT"),
		Currency:    os.Getenv("INVOICE2PDF_CURRENCY"),
		OutputDir:   os.Getenv("INVOICE2PDF_OUTPUT_DIR"),
		LogoDir:     os.Getenv("INVOICE2PDF_LOGO_DIR"),
		Store:       os.Getenv("INVOICE2PDF_STORE"),
		StoreDir:    os.Getenv("INVOICE2PDF_STORE_DIR"),
		StoreDSN:    os.Getenv("INVOICE2PDF_STORE_DSN"),
		StoreURL:    os.Getenv("INVOICE2PDF_STORE_URL"),
		StoreAPIKey: os.Getenv("INVOICE2PDF_STORE_API_KEY"),
		Addr:        os.Getenv("INVOICE2PDF_ADDR"),
	}

	// Parse int for workers
	if workers := os.Getenv("INVOICE2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized INVOICE2PDF_* variables.
// Helps catch typos like INVOICE2PDF_STORE_KEY instead of INVOICE2PDF_STORE_API_KEY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via merge, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Template.Preset, env.Preset)
	set(&cfg.Template.File, env.Template)
	set(&cfg.Render.PageSize, env.PageSize)
	set(&cfg.Render.DateFormat, env.DateFormat)
	set(&cfg.Render.Currency, env.Currency)
	set(&cfg.Output.DefaultDir, env.OutputDir)
	set(&cfg.Logos.Dir, env.LogoDir)
	set(&cfg.Store.Driver, env.Store)
	set(&cfg.Store.Dir, env.StoreDir)
	set(&cfg.Store.DSN, env.StoreDSN)
	set(&cfg.Store.URL, env.StoreURL)
	set(&cfg.Store.APIKey, env.StoreAPIKey)
	set(&cfg.Server.Addr, env.Addr)

	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}
