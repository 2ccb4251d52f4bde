// Package client talks to the legacy quality-management REST backend, from
// which existing records are imported. The backend is a black box: it answers
// JSON collections, 401 for missing/invalid auth and 403 for insufficient
// privilege on an otherwise valid session.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/quality-service/internal/analytics"
	"github.com/spec-kit/quality-service/internal/domain"
)

var (
	// ErrUnauthorized signals a 401; the held token has been discarded.
	ErrUnauthorized = errors.New("legacy backend: unauthenticated")
	// ErrForbidden signals a 403; the token stays valid for other calls.
	ErrForbidden = errors.New("legacy backend: insufficient privilege")
)

// Client is an authorized HTTP client for the legacy backend.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger

	mu    sync.Mutex
	token string
}

// New builds a client for the given base URL.
func New(baseURL string, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse legacy base url: %w", err)
	}

	c := &Client{base: base, logger: logger}
	c.http = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &authTransport{
			base:  base,
			token: c.currentToken,
			next:  http.DefaultTransport,
		},
	}
	return c, nil
}

// SetToken installs the bearer token used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently held bearer token, empty after a 401.
func (c *Client) Token() string {
	return c.currentToken()
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) clearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// authTransport attaches the bearer token to a request only when the target
// equals the configured API base or carries a literal /api/ path segment.
// Everything else passes through unmodified.
type authTransport struct {
	base  *url.URL
	token func() string
	next  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.token()
	if token == "" || !t.shouldAuthorize(req.URL) {
		return t.next.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(cloned)
}

func (t *authTransport) shouldAuthorize(target *url.URL) bool {
	if t.base != nil && t.base.Host != "" &&
		target.Host == t.base.Host && strings.HasPrefix(target.Path, t.base.Path) {
		return true
	}
	return strings.Contains(target.Path, "/api/")
}

// fetch GETs a collection path and decodes the JSON array, normalizing the
// legacy "_id" field to "id" on every record.
func (c *Client) fetch(ctx context.Context, path string) ([]map[string]any, error) {
	target := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.clearToken()
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("legacy backend: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, rec := range records {
		NormalizeID(rec)
	}
	return records, nil
}

// NormalizeID maps a Mongo-style "_id" onto "id" when no "id" is present.
func NormalizeID(rec map[string]any) {
	if _, ok := rec["id"]; ok {
		return
	}
	if v, ok := rec["_id"]; ok {
		rec["id"] = v
	}
}

// FetchQualitySheets imports the quality-sheet collection.
func (c *Client) FetchQualitySheets(ctx context.Context) ([]domain.QualitySheet, error) {
	records, err := c.fetch(ctx, "fiches-qualite")
	if err != nil {
		return nil, err
	}
	sheets := make([]domain.QualitySheet, 0, len(records))
	for _, rec := range records {
		sheets = append(sheets, domain.QualitySheet{
			ID:        stringField(rec, "id"),
			Reference: stringField(rec, "reference"),
			Title:     stringField(rec, "titre"),
			Type:      stringField(rec, "type"),
			Status:    stringField(rec, "statut"),
		})
	}
	return sheets, nil
}

// FetchTrackingSheets imports the tracking-sheet collection. Legacy numeric
// fields may arrive as comma-decimal strings; unparseable values degrade to
// absent, never to an error.
func (c *Client) FetchTrackingSheets(ctx context.Context) ([]domain.TrackingSheet, error) {
	records, err := c.fetch(ctx, "fiches-suivi")
	if err != nil {
		return nil, err
	}
	trackings := make([]domain.TrackingSheet, 0, len(records))
	for _, rec := range records {
		t := domain.TrackingSheet{
			ID:            stringField(rec, "id"),
			SheetID:       stringField(rec, "ficheQualiteId"),
			ProgressState: stringField(rec, "etatAvancement"),
			Indicator:     stringField(rec, "indicateur"),
			Comment:       stringField(rec, "commentaire"),
		}
		if v, ok := floatField(rec, "tauxConformite"); ok {
			t.Conformity = &v
		}
		if v, ok := floatField(rec, "delaiTraitement"); ok {
			t.Delay = &v
		}
		if d, ok := dateField(rec, "dateSuivi"); ok {
			t.TrackingDate = d
		}
		trackings = append(trackings, t)
	}
	return trackings, nil
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

func floatField(rec map[string]any, key string) (float64, bool) {
	switch v := rec[key].(type) {
	case float64:
		return v, true
	case string:
		return analytics.ParseLocalizedFloat(v)
	}
	return 0, false
}

func dateField(rec map[string]any, key string) (time.Time, bool) {
	s, ok := rec[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
