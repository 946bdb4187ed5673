package middleware

import (
	"io/fs"
	"net/http"
)

// StaticFileServer serves the portal's embedded assets with a long cache
// lifetime. Assets are immutable per build.
func StaticFileServer(assets fs.FS) http.Handler {
	files := http.FileServer(http.FS(assets))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=2592000")
		files.ServeHTTP(w, r)
	})
}
