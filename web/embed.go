// Package web serves the embedded marketing pages.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var content embed.FS

// Static returns the page files rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// Handler serves files from pages. Unknown paths get index.html, while
// anything under apiPrefix is left as a 404 so a mistyped RPC path is not
// answered with HTML.
func Handler(pages fs.FS, apiPrefix string) http.Handler {
	files := http.FileServerFS(pages)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiPrefix != "" && strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}
		if _, err := fs.Stat(pages, name); err != nil {
			http.ServeFileFS(w, r, pages, "index.html")
			return
		}
		files.ServeHTTP(w, r)
	})
}
