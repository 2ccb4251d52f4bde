package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestAuthorizationAttachedForAPIBase(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok-123")

	_, err := c.fetch(context.Background(), "fiches-qualite")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.fetch(context.Background(), "fiches-qualite")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestShouldAuthorizeRules(t *testing.T) {
	base, _ := url.Parse("https://backend.example/qualite")
	tr := &authTransport{base: base, token: func() string { return "t" }}

	apiMatch, _ := url.Parse("https://backend.example/qualite/fiches")
	assert.True(t, tr.shouldAuthorize(apiMatch))

	apiSegment, _ := url.Parse("https://other.example/api/v1/fiches")
	assert.True(t, tr.shouldAuthorize(apiSegment))

	foreign, _ := url.Parse("https://cdn.example/assets/logo.png")
	assert.False(t, tr.shouldAuthorize(foreign))
}

func TestUnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("stale")

	_, err := c.fetch(context.Background(), "fiches-qualite")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}

func TestForbiddenKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("valid")

	_, err := c.fetch(context.Background(), "fiches-qualite")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "valid", c.Token())
}

func TestFetchNormalizesLegacyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"abc","titre":"Audit"},{"id":"def","titre":"Controle"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	records, err := c.fetch(context.Background(), "fiches-qualite")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "abc", records[0]["id"])
	assert.Equal(t, "def", records[1]["id"])
}

func TestFetchTrackingSheetsCoercesLegacyFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"t1","ficheQualiteId":"s1","tauxConformite":"92,5","delaiTraitement":"3,5","dateSuivi":"2026-05-10"},
			{"_id":"t2","ficheQualiteId":"s1","tauxConformite":88,"indicateur":"taux: 70%"},
			{"_id":"t3","ficheQualiteId":"s2","tauxConformite":"n/a"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	trackings, err := c.FetchTrackingSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, trackings, 3)

	require.NotNil(t, trackings[0].Conformity)
	assert.Equal(t, 92.5, *trackings[0].Conformity)
	require.NotNil(t, trackings[0].Delay)
	assert.Equal(t, 3.5, *trackings[0].Delay)
	assert.Equal(t, 2026, trackings[0].TrackingDate.Year())

	require.NotNil(t, trackings[1].Conformity)
	assert.Equal(t, 88.0, *trackings[1].Conformity)

	// Unparseable numeric degrades to absent, not zero.
	assert.Nil(t, trackings[2].Conformity)
}
