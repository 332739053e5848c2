package main

import (
	"errors"
	"os"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/store"
)

// Exit codes for the invoice2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, store unreachable
	ExitRender  = 4 // PDF drawing failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, invoice2pdf.ErrRender) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, invoice2pdf.ErrInvalidTemplate) ||
		errors.Is(err, invoice2pdf.ErrInvalidColor) ||
		errors.Is(err, invoice2pdf.ErrInvalidPageSize) ||
		errors.Is(err, invoice2pdf.ErrInvalidDateFormat) ||
		errors.Is(err, assets.ErrPresetNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, store.ErrInvalidAccount) ||
		errors.Is(err, fileutil.ErrNotContentFile) ||
		errors.Is(err, ErrParseContent) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadContent) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, fileutil.ErrNoContentFiles) ||
		errors.Is(err, store.ErrStore) {
		return ExitIO
	}

	return ExitGeneral
}
