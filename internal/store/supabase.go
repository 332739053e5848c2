package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// DefaultSupabaseTimeout bounds each PostgREST request.
const DefaultSupabaseTimeout = 10 * time.Second

// maxResponseSize caps PostgREST response bodies.
const maxResponseSize = 1 << 20

// Supabase stores templates in the pdf_templates table through the
// PostgREST API at <url>/rest/v1.
type Supabase struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabase returns a client for the project at baseURL, authenticated
// with apiKey (a service-role key when row-level security is enabled).
// A nil client gets DefaultSupabaseTimeout.
func NewSupabase(baseURL, apiKey string, client *http.Client) (*Supabase, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: supabase url is required", ErrStore)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: supabase api key is required", ErrStore)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultSupabaseTimeout}
	}
	return &Supabase{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}, nil
}

// LoadDefaultTemplate fetches the account's default row.
func (s *Supabase) LoadDefaultTemplate(ctx context.Context, accountID string) (*model.Template, error) {
	if err := CheckAccount(accountID); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("advocate_id", "eq."+accountID)
	q.Set("is_default", "eq.true")
	q.Set("order", "updated_at.desc")
	q.Set("limit", "1")

	var rows []row
	if err := s.do(ctx, http.MethodGet, q, nil, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: account %s", ErrTemplateNotFound, accountID)
	}
	t := rows[0].template()
	return &t, nil
}

// SaveTemplate clears the account's other defaults, then upserts t on
// (advocate_id, name). PostgREST has no multi-request transaction, so a
// failure between the two calls can leave the account without a default.
func (s *Supabase) SaveTemplate(ctx context.Context, accountID string, t model.Template) (model.Template, error) {
	t, err := prepare(accountID, t)
	if err != nil {
		return model.Template{}, err
	}

	others := url.Values{}
	others.Set("advocate_id", "eq."+accountID)
	others.Set("name", "neq."+t.Name)
	others.Set("is_default", "eq.true")
	if err := s.do(ctx, http.MethodPatch, others, map[string]bool{"is_default": false}, "return=minimal", nil); err != nil {
		return model.Template{}, err
	}

	upsert := url.Values{}
	upsert.Set("on_conflict", "advocate_id,name")
	var saved []row
	if err := s.do(ctx, http.MethodPost, upsert, []row{rowFrom(accountID, t)},
		"resolution=merge-duplicates,return=representation", &saved); err != nil {
		return model.Template{}, err
	}
	if len(saved) == 0 {
		return t, nil
	}
	return saved[0].template(), nil
}

func (s *Supabase) do(ctx context.Context, method string, query url.Values, body any, prefer string, out any) error {
	endpoint := s.baseURL + "/rest/v1/" + Table + "?" + query.Encode()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrStore, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrStore, method, Table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrStore, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrStore, method, Table, resp.StatusCode, apiMessage(data))
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrStore, err)
	}
	return nil
}

// apiMessage extracts PostgREST's error message, or returns the raw body.
func apiMessage(data []byte) string {
	var e struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if json.Unmarshal(data, &e) == nil && e.Message != "" {
		if e.Code != "" {
			return e.Message + " (" + e.Code + ")"
		}
		return e.Message
	}
	return strings.TrimSpace(string(data))
}
