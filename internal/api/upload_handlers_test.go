package api

import (
	"bytes"
	"encoding/json/v2"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfolio/shopfolio-server/internal/service"
)

// makeTestJPEG encodes a small solid-color JPEG in memory.
func makeTestJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 80, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestUploadImage_Success(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")
	data := makeTestJPEG(t)

	resp := ts.api.Post("/api/v1/uploads",
		bytes.NewReader(data),
		"Authorization: Bearer "+token,
		"Content-Type: image/jpeg")
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.UploadResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.True(t, strings.HasPrefix(envelope.Data.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(envelope.Data.URL, ".jpg"))
	assert.NotEmpty(t, envelope.Data.BlurHash)

	// The stored file is served back with long-lived caching
	req := httptest.NewRequest(http.MethodGet, envelope.Data.URL, http.NoBody)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CacheOneWeek, w.Header().Get("Cache-Control"))
	assert.Equal(t, data, w.Body.Bytes())
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "potter")

	resp := ts.api.Post("/api/v1/uploads",
		bytes.NewReader([]byte("%PDF-1.4 definitely not an image")),
		"Authorization: Bearer "+token,
		"Content-Type: application/pdf")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestUploadImage_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/uploads",
		bytes.NewReader(makeTestJPEG(t)),
		"Content-Type: image/jpeg")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
