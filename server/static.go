package server

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// spaHandler serves files from dir and falls back to index.html for unknown
// paths so client-side routes resolve.
type spaHandler struct {
	root       http.FileSystem
	fileServer http.Handler
}

func newSPAHandler(dir string) *spaHandler {
	root := http.Dir(dir)
	return &spaHandler{
		root:       root,
		fileServer: http.FileServer(root),
	}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	name := path.Clean("/" + strings.TrimPrefix(r.URL.Path, "/"))
	f, err := h.root.Open(name)
	if err == nil {
		stat, statErr := f.Stat()
		f.Close()
		if statErr == nil && !stat.IsDir() {
			h.fileServer.ServeHTTP(w, r)
			return
		}
	} else if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, os.ErrPermission) {
		writeError(w, r, http.StatusInternalServerError, "internal", "Could not read static files")
		return
	}

	index, err := h.root.Open("/index.html")
	if err != nil {
		writeError(w, r, http.StatusNotFound, "not_found", "Not found")
		return
	}
	defer index.Close()

	stat, err := index.Stat()
	if err != nil {
		writeError(w, r, http.StatusNotFound, "not_found", "Not found")
		return
	}
	http.ServeContent(w, r, "index.html", stat.ModTime(), index)
}
