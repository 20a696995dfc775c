package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves front-end assets from the web root and previously
// uploaded images from the uploads directory. This surface is reproduced
// from the original deployment layout; it is not part of the command
// protocol.
type StaticHandler struct {
	webRoot    string
	uploadsDir string
}

func NewStaticHandler(webRoot, uploadsDir string) *StaticHandler {
	return &StaticHandler{webRoot: webRoot, uploadsDir: uploadsDir}
}

func (h *StaticHandler) Serve(ctx *gin.Context) {
	p := ctx.Request.URL.Path
	if p == "/" {
		p = "/login.html"
	}

	// rooted Clean strips any ".." escape before the prefix check
	rel := strings.TrimPrefix(path.Clean("/"+p), "/")

	if name, ok := strings.CutPrefix(rel, "uploads/"); ok {
		h.serveUpload(ctx, name)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.webRoot, filepath.FromSlash(rel)))
	if err != nil {
		ctx.String(http.StatusNotFound, "Not Found")
		return
	}

	ctx.Data(http.StatusOK, assetContentType(rel), data)
}

func (h *StaticHandler) serveUpload(ctx *gin.Context, name string) {
	data, err := os.ReadFile(filepath.Join(h.uploadsDir, filepath.Base(name)))
	if err != nil {
		ctx.String(http.StatusNotFound, "Not Found")
		return
	}

	ctx.Data(http.StatusOK, imageContentType(name), data)
}

// imageContentType infers a type from the extension; anything that is not
// png or gif is treated as JPEG.
func imageContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

func assetContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".js"):
		return "text/javascript"
	case strings.HasSuffix(name, ".css"):
		return "text/css"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	default:
		return "text/html"
	}
}
