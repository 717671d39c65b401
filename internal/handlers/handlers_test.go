package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"font-manager/internal/config"
	"font-manager/internal/models"
	"font-manager/internal/pkg/fetch"
	"font-manager/internal/pkg/fontcache"
	"font-manager/internal/pkg/fontdir"
	"font-manager/internal/pkg/fonts"
)

func newTestHandlers(t *testing.T) (*Handlers, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.FontRoot = root

	sync := fontdir.NewSynchronizer(root, 20*time.Millisecond)
	sync.Refresh()
	service := fonts.NewService(root, fontcache.New(), sync, fetch.NewHTTPFetcher(""))
	return NewHandlers(cfg, service), root
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestGetFontsIncludesSentinel(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/fonts", nil)
	rec := httptest.NewRecorder()
	h.Fonts.GetFonts(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	assert.Equal(t, []interface{}{models.SentinelName, models.SentinelNameAlt}, resp.Data)
}

func TestUploadThenInfo(t *testing.T) {
	h, root := newTestHandlers(t)
	data := []byte("ttf-bytes")

	rec, resp := postJSON(t, h.Admin.UploadFont, models.UploadRequest{
		FileName: "思源黑体.ttf",
		Payload:  base64.StdEncoding.EncodeToString(data),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	written, err := os.ReadFile(filepath.Join(root, "思源黑体.ttf"))
	require.NoError(t, err)
	assert.Equal(t, data, written)

	req := httptest.NewRequest(http.MethodGet, "/api/font-info?name="+
		"%E6%80%9D%E6%BA%90%E9%BB%91%E4%BD%93", nil)
	infoRec := httptest.NewRecorder()
	h.Fonts.GetFontInfo(infoRec, req)
	assert.Equal(t, http.StatusOK, infoRec.Code)
}

func TestUploadRejectsUnsupported(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec, resp := postJSON(t, h.Admin.UploadFont, models.UploadRequest{
		FileName: "evil.exe",
		Payload:  base64.StdEncoding.EncodeToString([]byte("x")),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestDeleteFont(t *testing.T) {
	h, root := newTestHandlers(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.ttf"), []byte("a"), 0644))

	rec, resp := postJSON(t, h.Admin.DeleteFont, models.DeleteRequest{Name: "A"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	_, err := os.Stat(filepath.Join(root, "A.ttf"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetFontDataMissingName(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/font-data", nil)
	rec := httptest.NewRecorder()
	h.Fonts.GetFontData(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFontInfoNotFound(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/font-info?name=ghost", nil)
	rec := httptest.NewRecorder()
	h.Fonts.GetFontInfo(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnsureEndpointSentinel(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec, resp := postJSON(t, h.Fonts.EnsureFont, models.EnsureRequest{Name: "无"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["available"])
}

func TestStatsEndpoint(t *testing.T) {
	h, root := newTestHandlers(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.ttf"), []byte("12345"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.Admin.GetStats(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["filesOnDisk"])
}
