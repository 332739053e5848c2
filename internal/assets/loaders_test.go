package assets

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestHTTPLoader - Remote logos
// ---------------------------------------------------------------------------

func TestHTTPLoader(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	})
	mux.HandleFunc("/broken.png", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/huge.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, MaxLogoSize+10))
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tests := []struct {
		name    string
		path    string
		loader  *HTTPLoader
		wantErr error
	}{
		{name: "ok", path: "/logo.png", loader: NewHTTPLoader(srv.Client())},
		{name: "not found", path: "/absent.png", loader: NewHTTPLoader(srv.Client()), wantErr: ErrLogoNotFound},
		{name: "server error", path: "/broken.png", loader: NewHTTPLoader(srv.Client()), wantErr: ErrLogoFetch},
		{name: "too large", path: "/huge.png", loader: NewHTTPLoader(srv.Client()), wantErr: ErrLogoTooLarge},
		{name: "timeout", path: "/slow.png", loader: NewHTTPLoader(&http.Client{Timeout: 50 * time.Millisecond}), wantErr: ErrLogoFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.loader.LoadLogo(context.Background(), srv.URL+tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadLogo() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadLogo() error = %v", err)
			}
			if !bytes.Equal(got, pngHeader) {
				t.Errorf("LoadLogo() = %q", got)
			}
		})
	}
}

func TestNewHTTPLoader_DefaultTimeout(t *testing.T) {
	t.Parallel()

	if got := NewHTTPLoader(nil).client.Timeout; got != DefaultHTTPTimeout {
		t.Errorf("Timeout = %v, want %v", got, DefaultHTTPTimeout)
	}
}

// ---------------------------------------------------------------------------
// TestDataURL - Inline logos
// ---------------------------------------------------------------------------

func TestDecodeDataURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantType  string
		wantBytes []byte
		wantErr   error
	}{
		{name: "png", input: EncodeDataURL("image/png", pngHeader), wantType: "image/png", wantBytes: pngHeader},
		{name: "upper case type", input: "data:IMAGE/JPEG;base64,aGk=", wantType: "image/jpeg", wantBytes: []byte("hi")},
		{name: "pdf", input: "data:application/pdf;base64,aGk=", wantType: "application/pdf", wantBytes: []byte("hi")},
		{name: "no prefix", input: "image/png;base64,aGk=", wantErr: ErrInvalidDataURL},
		{name: "no comma", input: "data:image/png;base64", wantErr: ErrInvalidDataURL},
		{name: "not base64 encoded", input: "data:image/png,hi", wantErr: ErrInvalidDataURL},
		{name: "bad payload", input: "data:image/png;base64,!!!", wantErr: ErrInvalidDataURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mediaType, data, err := DecodeDataURL(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeDataURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDataURL() error = %v", err)
			}
			if mediaType != tt.wantType || !bytes.Equal(data, tt.wantBytes) {
				t.Errorf("DecodeDataURL() = %q, %q", mediaType, data)
			}
		})
	}
}

func TestDataURLLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := (DataURLLoader{}).LoadLogo(ctx, EncodeDataURL("image/gif", []byte("GIF89a"))); err != nil {
		t.Errorf("gif logo error = %v", err)
	}
	if _, err := (DataURLLoader{}).LoadLogo(ctx, "data:text/plain;base64,aGk="); !errors.Is(err, ErrInvalidDataURL) {
		t.Errorf("text logo error = %v, want ErrInvalidDataURL", err)
	}
	big := EncodeDataURL("image/png", make([]byte, MaxLogoSize+1))
	if _, err := (DataURLLoader{}).LoadLogo(ctx, big); !errors.Is(err, ErrLogoTooLarge) {
		t.Errorf("large logo error = %v, want ErrLogoTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolver - Scheme dispatch
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), pngHeader, 0644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngHeader)
	}))
	t.Cleanup(srv.Close)

	full, err := NewResolver(dir, true)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	bare, err := NewResolver("", false)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		resolver *Resolver
		ref      string
		wantErr  error
	}{
		{name: "file", resolver: full, ref: "logo.png"},
		{name: "http", resolver: full, ref: srv.URL + "/logo.png"},
		{name: "data url", resolver: full, ref: EncodeDataURL("image/png", pngHeader)},
		{name: "data url without directory", resolver: bare, ref: EncodeDataURL("image/png", pngHeader)},
		{name: "file without directory", resolver: bare, ref: "logo.png", wantErr: ErrUnsupportedRef},
		{name: "remote disabled", resolver: bare, ref: srv.URL + "/logo.png", wantErr: ErrUnsupportedRef},
		{name: "blank", resolver: full, ref: "  ", wantErr: ErrUnsupportedRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.resolver.LoadLogo(context.Background(), tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadLogo() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadLogo() error = %v", err)
			}
			if !bytes.Equal(got, pngHeader) {
				t.Errorf("LoadLogo() = %q", got)
			}
		})
	}
}

func TestNewResolver_InvalidDir(t *testing.T) {
	t.Parallel()

	if _, err := NewResolver("/nonexistent/logos/xyz", false); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
	}
}

func TestTruncateRef(t *testing.T) {
	t.Parallel()

	long := "data:image/png;base64," + strings.Repeat("A", 200)
	if got := truncateRef(long); len(got) != 67 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateRef() = %q", got)
	}
	if got := truncateRef("logo.png"); got != "logo.png" {
		t.Errorf("truncateRef(short) = %q", got)
	}
}
