package server

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
)

// handleSPA serves the built web client from dir, falling back to
// index.html for client-side routes. The index is never cached so a new
// build is picked up immediately; hashed assets may be.
func handleSPA(dir string) http.HandlerFunc {
	root := os.DirFS(dir)
	fileServer := http.FileServerFS(root)

	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)[1:]
		if name != "" {
			info, err := fs.Stat(root, name)
			if err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		info, err := fs.Stat(root, "index.html")
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		data, err := fs.ReadFile(root, "index.html")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, r, "index.html", info.ModTime(), bytes.NewReader(data))
	}
}
