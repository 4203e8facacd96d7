package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/config"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
)

func newTestServer(t *testing.T, variant string) *httptest.Server {
	t.Helper()

	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("APP_VARIANT", variant)
	cfg, err := config.Load()
	require.NoError(t, err)

	application, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, application.Initialize(context.Background()))

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.Shutdown(context.Background()))
	})
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestUnitsFlow(t *testing.T) {
	srv := newTestServer(t, config.VariantUnits)

	var unit domain.Unit
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/units", map[string]string{"name": "Eng"}, &unit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, unit.ID)
	assert.Equal(t, "Eng", unit.Name)
	assert.Empty(t, unit.Sites)
	assert.Empty(t, unit.Contacts)
	assert.Empty(t, unit.MailmanLists)

	contact := map[string]string{"name": "A", "email": "a@x.com", "role": "lead"}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/units/"+unit.ID+"/contacts", contact, &unit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, unit.Contacts, 1)
	contactID := unit.Contacts[0].ID
	require.NotEmpty(t, contactID)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/units/"+unit.ID+"/contacts/"+contactID, nil, &unit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, unit.Contacts)

	var got domain.Unit
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/units/"+unit.ID, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, unit.ID, got.ID)

	var errResp map[string]string
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/units/"+domain.NewID(), nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Unit not found", errResp["error"])
}

func TestVariantsAreExclusive(t *testing.T) {
	srv := newTestServer(t, config.VariantUnits)

	var errResp map[string]string
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/cards", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", errResp["error"])
}

func TestCardsFlow(t *testing.T) {
	srv := newTestServer(t, config.VariantCards)

	var card domain.Card
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/cards", map[string]string{"title": "HR Resources"}, &card)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, card.ID)

	var cards []domain.Card
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/cards", nil, &cards)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)

	var msg map[string]string
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/cards/"+card.ID, nil, &msg)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Deleted", msg["message"])
}

func TestStaticAndProbes(t *testing.T) {
	srv := newTestServer(t, config.VariantCards)

	for _, path := range []string{"/", "/some/client/route"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(body), `id="cardGrid"`, path)
	}

	resp, err := http.Get(srv.URL + "/script.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/some/client/route", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	var health map[string]any
	resp = doJSON(t, http.MethodGet, srv.URL+"/ready", nil, &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "dashboard_http_requests_total")
}

func TestParseS3URL(t *testing.T) {
	bucket, prefix, err := parseS3URL("s3://dashboard/intranet/cards/")
	require.NoError(t, err)
	assert.Equal(t, "dashboard", bucket)
	assert.Equal(t, "intranet/cards", prefix)

	_, _, err = parseS3URL("s3:///prefix")
	assert.Error(t, err)
}
