package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/hints"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/store"
)

// RenderRequest is the body of the /v1/invoices routes.
type RenderRequest struct {
	Content  invoice2pdf.Content   `json:"content"`
	Practice invoice2pdf.Party     `json:"practice"`
	Template *invoice2pdf.Template `json:"template,omitempty"`

	// Preset names an embedded template, used when Template is absent.
	Preset string `json:"preset,omitempty"`

	// AccountID selects the stored default when neither Template nor
	// Preset is given.
	AccountID string `json:"accountId,omitempty"`

	// Logo is a data URL, or a URL or path the server's loader accepts.
	Logo string `json:"logo,omitempty"`
}

// PreviewResponse is the body returned by /v1/invoices/preview.
type PreviewResponse struct {
	DataURL  string `json:"dataUrl"`
	Filename string `json:"filename"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

var errNoStore = errors.New("template store not configured")

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"presets":      assets.PresetNames(),
		"colorSchemes": model.ColorSchemeNames(),
	})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	t, err := assets.Preset(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeRender(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pdf, err := s.render(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := invoice2pdf.FilenameFor(in.Content.Invoice.Kind, in.Content.Invoice.Number)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeRender(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pdf, err := s.render(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{
		DataURL:  assets.EncodeDataURL("application/pdf", pdf),
		Filename: invoice2pdf.FilenameFor(in.Content.Invoice.Kind, in.Content.Invoice.Number),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		s.fail(w, r, errNoStore)
		return
	}
	t, err := s.opts.Store.LoadDefaultTemplate(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePutTemplate(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		s.fail(w, r, errNoStore)
		return
	}
	var t invoice2pdf.Template
	if err := s.decode(w, r, &t); err != nil {
		s.fail(w, r, err)
		return
	}
	saved, err := s.opts.Store.SaveTemplate(r.Context(), chi.URLParam(r, "accountID"), t)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// render runs one render under the concurrency limit and timeout.
func (s *Server) render(ctx context.Context, in invoice2pdf.Input) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RenderTimeout)
	defer cancel()

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.renderer.Render(ctx, in)
}

func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (invoice2pdf.Input, error) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		return invoice2pdf.Input{}, err
	}

	in := invoice2pdf.Input{
		Content:   req.Content,
		Practice:  req.Practice,
		Template:  req.Template,
		AccountID: req.AccountID,
		LogoRef:   req.Logo,
	}
	if in.Template == nil && req.Preset != "" {
		t, err := assets.Preset(req.Preset)
		if err != nil {
			return invoice2pdf.Input{}, err
		}
		in.Template = &t
	}
	return in, nil
}

type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

// decode reads one JSON document, rejecting unknown fields, trailing data
// and bodies over MaxBodyBytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return badRequestError{msg: "invalid JSON body: " + err.Error()}
	}
	if dec.More() {
		return badRequestError{msg: "invalid JSON body: trailing data"}
	}
	return nil
}

// fail maps err to a status code and writes an ErrorResponse. Server-side
// failures are logged; their details are not sent to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		logMsg := "request failed"
		if status == http.StatusGatewayTimeout {
			logMsg += hints.ForRenderTimeout()
		}
		s.log.Error(logMsg, "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
		msg = strings.ToLower(http.StatusText(status))
	}
	writeJSON(w, status, ErrorResponse{Error: msg, RequestID: RequestID(r.Context())})
}

func statusFor(err error) int {
	var (
		bad      badRequestError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &bad),
		errors.Is(err, invoice2pdf.ErrInvalidTemplate),
		errors.Is(err, invoice2pdf.ErrInvalidColor),
		errors.Is(err, store.ErrInvalidAccount),
		errors.Is(err, assets.ErrInvalidAssetName):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrTemplateNotFound),
		errors.Is(err, assets.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNoStore):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
