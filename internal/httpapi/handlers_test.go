package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/config"
	"github.com/listup/listup-server/internal/game"
	"github.com/listup/listup-server/internal/hub"
	"github.com/listup/listup-server/internal/packs"
	"github.com/listup/listup-server/internal/room"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub(ctx, zap.NewNop(), room.Options{}, 0)
	cfg := config.Config{PublicURL: "http://example.com", CursorRate: 30}
	return SetupRoutes(h, nil, cfg, zap.NewNop())
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, c := range code {
		assert.Contains(t, codeAlphabet, string(c))
	}
}

func TestCreateRoom(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooms", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Code, 6)
}

func TestRoomQR(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooms", nil))
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/"+body.Code+"/qr", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/NOPE99/qr", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPresets(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Packs      []packs.Pack      `json:"packs"`
		Categories map[string]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Packs, len(packs.Presets))
	assert.NotEmpty(t, body.Categories)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets?category=food", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Packs)
	for _, p := range body.Packs {
		assert.Equal(t, "food", p.Category)
	}
}

func TestPresetItems(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets/ice-cream/items", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []game.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 10)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets/ice-cream/items?count=3", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 3)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets/ice-cream/items?count=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packs/presets/nope/items", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommunityUnavailableWithoutStore(t *testing.T) {
	srv := newTestServer(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/packs/community"},
		{http.MethodGet, "/packs/community/search?q=x"},
		{http.MethodPost, "/packs/community"},
		{http.MethodPost, "/packs/community/someid/upvote"},
		{http.MethodPost, "/packs/community/someid/play"},
	}

	for _, p := range paths {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestVersion(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "listup-server v")
}
