package invoice2pdf

import (
	"errors"

	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

// Sentinel errors for library operations.
var (
	ErrRender = errors.New("render failed")

	// Template validation errors.
	ErrInvalidTemplate = model.ErrInvalidTemplate
	ErrInvalidColor    = model.ErrInvalidColor

	// Renderer option errors.
	ErrInvalidPageSize   = draw.ErrInvalidPageSize
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat
)
