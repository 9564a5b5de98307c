// Package frontend serves the embedded settings editor
package frontend

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	static "github.com/OpenFairWind/signalk-fairwindsk-settings/frontend"
)

type handler struct {
	fileHandler http.Handler
	filesystem  fs.FS
}

// NewHandler creates the editor handler. Unknown extensionless paths serve
// index.html so the editor can route client-side.
func NewHandler() (http.Handler, error) {
	editorFS, err := fs.Sub(static.FS, "build/frontend")
	if err != nil {
		return nil, fmt.Errorf("failed to load frontend filesystem: %w", err)
	}

	return &handler{
		filesystem:  editorFS,
		fileHandler: http.FileServer(http.FS(editorFS)),
	}, nil
}

// ServeHTTP serves an asset, or index.html for editor routes
func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+req.URL.Path), "/")

	if name != "" && h.fileExists(name) {
		h.fileHandler.ServeHTTP(w, req)
		return
	}

	// Missing assets stay 404s; only editor routes fall back.
	if path.Ext(name) != "" {
		http.NotFound(w, req)
		return
	}

	// The editor talks to the API with relative URLs, so never cache the entry point.
	w.Header().Set("Cache-Control", "no-cache")

	req.URL.Path = "/"
	h.fileHandler.ServeHTTP(w, req)
}

func (h *handler) fileExists(name string) bool {
	info, err := fs.Stat(h.filesystem, name)
	return err == nil && !info.IsDir()
}
