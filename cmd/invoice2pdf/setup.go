package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/hints"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/store"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadContent        = errors.New("failed to read content file")
	ErrParseContent       = errors.New("failed to parse content file")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// loadConfig builds the effective configuration: the config file named by
// --config or INVOICE2PDF_CONFIG, then environment variables. The env file
// is loaded first so its variables take part.
func loadConfig(f commonFlags, stderr io.Writer) (*config.Config, error) {
	if err := loadEnvFile(f.envFile); err != nil {
		return nil, err
	}
	warnUnknownEnvVars(stderr)
	env := loadEnvConfig()

	cfg := config.DefaultConfig()
	name := f.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigCandidates(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// userConfigCandidates returns where a config name would be found in the
// user config directory.
func userConfigCandidates(name string) []string {
	if strings.ContainsAny(name, `/\`) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-invoice2pdf", name+".yaml")}
}

// mergeSettings merges renderer flags into config. CLI values override
// config values.
func mergeSettings(f renderSettingsFlags, s storeFlags, cfg *config.Config) {
	if f.preset != "" {
		cfg.Template.Preset = f.preset
		cfg.Template.File = ""
	}
	if f.template != "" {
		cfg.Template.File = f.template
	}
	if f.pageSize != "" {
		cfg.Render.PageSize = f.pageSize
	}
	if f.dateFormat != "" {
		cfg.Render.DateFormat = f.dateFormat
	}
	if f.currency != "" {
		cfg.Render.Currency = f.currency
	}
	if f.compress {
		cfg.Render.Compress = true
	}
	if f.logoDir != "" {
		cfg.Logos.Dir = f.logoDir
	}
	if f.allowRemoteLogos {
		cfg.Logos.AllowRemote = true
	}
	if s.driver != "" {
		cfg.Store.Driver = s.driver
	}
	if s.dir != "" {
		cfg.Store.Dir = s.dir
	}
}

// defaultTemplate returns the configured fallback template: a template
// file, a preset, or nil for the built-in defaults. A file wins over a
// preset.
func defaultTemplate(cfg *config.Config) (*model.Template, error) {
	if cfg.Template.File != "" {
		t, err := readTemplateFile(cfg.Template.File)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if cfg.Template.Preset != "" {
		t, err := assets.Preset(cfg.Template.Preset)
		if err != nil {
			if errors.Is(err, assets.ErrPresetNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForPresetNotFound(assets.PresetNames()))
			}
			return nil, err
		}
		return &t, nil
	}
	return nil, nil
}

// readTemplateFile decodes and validates a template YAML file.
func readTemplateFile(path string) (model.Template, error) {
	var t model.Template
	if err := yamlutil.ReadFile(path, &t, true); err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return model.Template{}, fmt.Errorf("reading template: %w", err)
		}
		return model.Template{}, fmt.Errorf("%w: %s: %v%s", invoice2pdf.ErrInvalidTemplate, path, err, hints.ForTemplateInvalid())
	}
	if err := t.Validate(); err != nil {
		return model.Template{}, fmt.Errorf("%s: %w%s", path, err, hints.ForTemplateInvalid())
	}
	return t, nil
}

// openStore connects the configured template store. The returned close
// function is never nil.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *log.Logger) (invoice2pdf.TemplateStore, func(), error) {
	noop := func() {}
	driver := strings.ToLower(cfg.Driver)

	var (
		s       invoice2pdf.TemplateStore
		closeFn = noop
		err     error
	)
	switch driver {
	case config.StoreNone:
		return nil, noop, nil
	case config.StoreFile:
		s, err = store.NewFile(cfg.Dir)
	case config.StorePostgres:
		var pg *store.Postgres
		pg, err = store.OpenPostgres(ctx, cfg.DSN)
		if err == nil {
			closeFn = func() { _ = pg.Close() }
			if err = pg.Migrate(ctx); err != nil {
				closeFn()
				closeFn = noop
			}
			s = pg
		}
	case config.StoreSupabase:
		s, err = store.NewSupabase(cfg.URL, cfg.APIKey, nil)
	default:
		return nil, noop, fmt.Errorf("%w: store driver %q", config.ErrInvalidValue, cfg.Driver)
	}
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s store: %w%s", driver, err, hints.ForStoreConnect(driver))
	}

	logger.Debug("template store ready", "driver", driver)
	return s, closeFn, nil
}

// buildRenderer creates a Renderer from cfg. Extra options are applied last.
func buildRenderer(cfg *config.Config, ts invoice2pdf.TemplateStore, logger *log.Logger, extra ...invoice2pdf.Option) (*invoice2pdf.Renderer, error) {
	logos, err := assets.NewResolver(cfg.Logos.Dir, cfg.Logos.AllowRemote)
	if err != nil {
		return nil, fmt.Errorf("logo directory: %w%s", err, hints.ForLogo())
	}
	fallback, err := defaultTemplate(cfg)
	if err != nil {
		return nil, err
	}

	opts := []invoice2pdf.Option{
		invoice2pdf.WithLogger(logger),
		invoice2pdf.WithLogoLoader(logos),
		invoice2pdf.WithPageSize(cfg.Render.PageSize),
		invoice2pdf.WithDateFormat(cfg.Render.DateFormat),
		invoice2pdf.WithCurrency(cfg.Render.Currency),
		invoice2pdf.WithCompression(cfg.Render.Compress),
	}
	if ts != nil {
		opts = append(opts, invoice2pdf.WithTemplateStore(ts))
	}
	if fallback != nil {
		opts = append(opts, invoice2pdf.WithDefaultTemplate(*fallback))
	}
	opts = append(opts, extra...)

	return invoice2pdf.NewRenderer(opts...)
}
