package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnlocal/jobhub/internal/http/handlers"
)

func newStaticRouter(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()

	webRoot := t.TempDir()
	uploadsDir := t.TempDir()

	h := handlers.NewStaticHandler(webRoot, uploadsDir)

	r := gin.New()
	r.NoRoute(h.Serve)

	return r, webRoot, uploadsDir
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func TestServeRootFallsBackToLogin(t *testing.T) {
	r, webRoot, _ := newStaticRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "login.html"), []byte("<html>login</html>"), 0o644))

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
	assert.Equal(t, "<html>login</html>", w.Body.String())
}

func TestServeAssetContentTypes(t *testing.T) {
	r, webRoot, _ := newStaticRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "style.css"), []byte("body{}"), 0o644))

	w := get(r, "/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/javascript", w.Header().Get("Content-Type"))

	w = get(r, "/style.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/css", w.Header().Get("Content-Type"))
}

func TestServeUploadedImage(t *testing.T) {
	r, _, uploadsDir := newStaticRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "pic.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "pic.webp"), []byte("webp-bytes"), 0o644))

	w := get(r, "/uploads/pic.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	// unrecognized extensions are served as JPEG
	w = get(r, "/uploads/pic.webp")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}

func TestServeRejectsPathEscape(t *testing.T) {
	r, webRoot, _ := newStaticRouter(t)

	secret := filepath.Join(filepath.Dir(webRoot), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0o644))

	w := get(r, "/../secret.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestServeMissingFile(t *testing.T) {
	r, _, _ := newStaticRouter(t)

	w := get(r, "/nope.html")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}
