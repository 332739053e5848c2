package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds a remote logo request.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPLoader fetches logos over HTTP(S). Implements LogoLoader interface.
type HTTPLoader struct {
	client  *http.Client
	maxSize int64
}

// NewHTTPLoader returns a loader using client, or a client with
// DefaultHTTPTimeout when client is nil.
func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPLoader{client: client, maxSize: MaxLogoSize}
}

// LoadLogo GETs ref. A 404 maps to ErrLogoNotFound, any other non-2xx
// status to ErrLogoFetch. Bodies over MaxLogoSize are rejected.
func (h *HTTPLoader) LoadLogo(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoFetch, err)
	}
	req.Header.Set("Accept", "image/png, image/jpeg, image/gif")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrLogoNotFound, ref)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned %s", ErrLogoFetch, ref, resp.Status)
	}
	if resp.ContentLength > h.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrLogoTooLarge, resp.ContentLength, h.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoFetch, err)
	}
	if int64(len(data)) > h.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrLogoTooLarge, h.maxSize)
	}
	return data, nil
}

// Compile-time interface check.
var _ LogoLoader = (*HTTPLoader)(nil)
