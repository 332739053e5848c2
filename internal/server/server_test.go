package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/metrics"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/store"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()

	r, err := invoice2pdf.NewRenderer(
		invoice2pdf.WithTemplateStore(opts.Store),
		invoice2pdf.WithClock(func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	srv := httptest.NewServer(New(r, opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func fileStore(t *testing.T) *store.File {
	t.Helper()

	s, err := store.NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

const invoiceBody = `{
	"content": {
		"invoice": {"number": "INV-2025-014", "invoiceDate": "2025-06-01", "dueDate": "2025-07-01"},
		"matter": {"title": "Estate Late J. Dlamini", "client": {"name": "T. Dlamini"}},
		"timeEntries": [{"date": "2025-05-12", "description": "Consultation", "hours": 1.5, "rate": 1200}]
	},
	"practice": {"name": "Adv. N. Mokoena"}
}`

// ---------------------------------------------------------------------------
// TestInvoices - PDF and preview routes
// ---------------------------------------------------------------------------

func TestInvoicePDF(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})
	resp := do(t, http.MethodPost, srv.URL+"/v1/invoices/pdf", invoiceBody)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="Invoice_INV-2025-014.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestInvoicePreview(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})
	body := strings.Replace(invoiceBody, `"number": "INV-2025-014"`, `"number": "PF-7", "kind": "proforma"`, 1)
	resp := do(t, http.MethodPost, srv.URL+"/v1/invoices/preview", body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got PreviewResponse
	decodeBody(t, resp, &got)
	if !strings.HasPrefix(got.DataURL, "data:application/pdf;base64,JVBERi0") {
		t.Errorf("dataUrl = %.40q...", got.DataURL)
	}
	if got.Filename != "ProForma_PF-7.pdf" {
		t.Errorf("filename = %q", got.Filename)
	}
}

func TestInvoice_Errors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{MaxBodyBytes: 2048})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "malformed json", body: `{"content":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"contents": {}}`, wantStatus: http.StatusBadRequest},
		{name: "trailing data", body: `{} {}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"content": {"invoice": {"dueDate": "next week"}}}`, wantStatus: http.StatusBadRequest},
		{
			name:       "invalid template",
			body:       `{"template": {"pageMargins": {"top": -5}}}`,
			wantStatus: http.StatusBadRequest,
		},
		{name: "unknown preset", body: `{"preset": "baroque"}`, wantStatus: http.StatusNotFound},
		{name: "bad preset name", body: `{"preset": "../classic"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "body too large",
			body:       `{"practice": {"name": "` + strings.Repeat("x", 4096) + `"}}`,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := do(t, http.MethodPost, srv.URL+"/v1/invoices/pdf", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var got ErrorResponse
			decodeBody(t, resp, &got)
			if got.Error == "" || got.RequestID == "" {
				t.Errorf("error body = %+v", got)
			}
		})
	}
}

func TestInvoice_RequiresJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/invoices/pdf", strings.NewReader("invoice: {}"))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/yaml")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestInvoice_Preset(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})
	body := strings.Replace(invoiceBody, `"practice"`, `"preset": "Modern", "practice"`, 1)
	resp := do(t, http.MethodPost, srv.URL+"/v1/invoices/pdf", body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

// ---------------------------------------------------------------------------
// TestTemplates - Stored template routes
// ---------------------------------------------------------------------------

func TestTemplates_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{Store: fileStore(t)})
	url := srv.URL + "/v1/templates/acc-1"

	if resp := do(t, http.MethodGet, url, ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET before PUT status = %d, want 404", resp.StatusCode)
	}

	resp := do(t, http.MethodPut, url, `{"name": "Firm", "header": {"title": "STATEMENT", "showLogo": false}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	var saved model.Template
	decodeBody(t, resp, &saved)
	if saved.Name != "Firm" {
		t.Errorf("saved name = %q", saved.Name)
	}

	resp = do(t, http.MethodGet, url, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	var got model.Template
	decodeBody(t, resp, &got)
	if got.Header.Title != "STATEMENT" || got.Header.ShowLogo == nil || *got.Header.ShowLogo {
		t.Errorf("GET = %+v", got.Header)
	}

	// The stored template now drives renders for the account.
	body := strings.Replace(invoiceBody, `"practice"`, `"accountId": "acc-1", "practice"`, 1)
	resp = do(t, http.MethodPost, srv.URL+"/v1/invoices/pdf", body)
	var pdf bytes.Buffer
	if _, err := pdf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(pdf.Bytes(), []byte("(STATEMENT)")) {
		t.Error("stored title not drawn")
	}
}

func TestTemplates_Errors(t *testing.T) {
	t.Parallel()

	withStore := newTestServer(t, Options{Store: fileStore(t)})
	noStore := newTestServer(t, Options{})

	tests := []struct {
		name       string
		srv        *httptest.Server
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "invalid color", srv: withStore, method: http.MethodPut, path: "/v1/templates/acc-1",
			body: `{"colorScheme": {"primary": "blue"}}`, wantStatus: http.StatusBadRequest},
		{name: "invalid template", srv: withStore, method: http.MethodPut, path: "/v1/templates/acc-1",
			body: `{"header": {"logoPlacement": "floating"}}`, wantStatus: http.StatusBadRequest},
		{name: "invalid account", srv: withStore, method: http.MethodGet, path: "/v1/templates/acc.1",
			wantStatus: http.StatusBadRequest},
		{name: "no store get", srv: noStore, method: http.MethodGet, path: "/v1/templates/acc-1",
			wantStatus: http.StatusNotImplemented},
		{name: "no store put", srv: noStore, method: http.MethodPut, path: "/v1/templates/acc-1",
			body: `{}`, wantStatus: http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := do(t, tt.method, tt.srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

// failingStore fails every call.
type failingStore struct{}

func (failingStore) LoadDefaultTemplate(context.Context, string) (*model.Template, error) {
	return nil, fmt.Errorf("%w: dial tcp: connection refused", store.ErrStore)
}

func (failingStore) SaveTemplate(context.Context, string, model.Template) (model.Template, error) {
	return model.Template{}, errors.New("read-only replica")
}

func TestTemplates_StoreFailureHidesDetails(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{Store: failingStore{}})
	resp := do(t, http.MethodGet, srv.URL+"/v1/templates/acc-1", "")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var got ErrorResponse
	decodeBody(t, resp, &got)
	if strings.Contains(got.Error, "connection refused") {
		t.Errorf("error leaked internals: %q", got.Error)
	}

	// Renders still succeed with the default template.
	body := strings.Replace(invoiceBody, `"practice"`, `"accountId": "acc-1", "practice"`, 1)
	if resp := do(t, http.MethodPost, srv.URL+"/v1/invoices/pdf", body); resp.StatusCode != http.StatusOK {
		t.Errorf("render status = %d, want 200", resp.StatusCode)
	}
}

// ---------------------------------------------------------------------------
// TestMisc - Presets, health, metrics, request IDs
// ---------------------------------------------------------------------------

func TestPresets(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})

	var list map[string][]string
	decodeBody(t, do(t, http.MethodGet, srv.URL+"/v1/presets", ""), &list)
	if len(list["presets"]) != len(assets.PresetNames()) || len(list["colorSchemes"]) != len(model.ColorSchemeNames()) {
		t.Errorf("presets = %v", list)
	}

	resp := do(t, http.MethodGet, srv.URL+"/v1/presets/elegant", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var tmpl model.Template
	decodeBody(t, resp, &tmpl)
	if tmpl.ColorScheme.Primary == "" {
		t.Error("preset color scheme not expanded")
	}

	if resp := do(t, http.MethodGet, srv.URL+"/v1/presets/gothic", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown preset status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{Metrics: metrics.New()})

	if resp := do(t, http.MethodGet, srv.URL+"/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp := do(t, http.MethodGet, srv.URL+"/metrics", "")
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `invoice2pdf_http_requests_total{method="GET",route="/healthz",status="200"} 1`) {
		t.Errorf("metrics missing healthz request:\n%s", buf.String())
	}

	if resp := do(t, http.MethodGet, newTestServer(t, Options{}).URL+"/metrics", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("metrics without registry status = %d, want 404", resp.StatusCode)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Options{})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "assigned", incoming: ""},
		{name: "propagated", incoming: "req-42", keep: true},
		{name: "malformed replaced", incoming: "bad id with spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
			if err != nil {
				t.Fatal(err)
			}
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = resp.Body.Close() }()

			got := resp.Header.Get(RequestIDHeader)
			switch {
			case tt.keep && got != tt.incoming:
				t.Errorf("request ID = %q, want %q", got, tt.incoming)
			case !tt.keep && (got == "" || got == tt.incoming):
				t.Errorf("request ID = %q, want a fresh ID", got)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("x: %w", invoice2pdf.ErrInvalidTemplate), want: http.StatusBadRequest},
		{err: fmt.Errorf("x: %w", store.ErrTemplateNotFound), want: http.StatusNotFound},
		{err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{err: fmt.Errorf("%w: boom", invoice2pdf.ErrRender), want: http.StatusInternalServerError},
		{err: errNoStore, want: http.StatusNotImplemented},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	t.Parallel()

	r, err := invoice2pdf.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(r, Options{Addr: "127.0.0.1:0"}).ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
