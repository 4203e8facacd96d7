package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// StaticHandler раздает встроенные файлы клиента.
// Для неизвестных путей отдается index.html, другие методы кроме GET и HEAD получают 405.
type StaticHandler struct {
	assets fs.FS
	files  http.Handler
}

// NewStaticHandler создает новый StaticHandler поверх файловой системы с ресурсами
func NewStaticHandler(assets fs.FS) *StaticHandler {
	return &StaticHandler{
		assets: assets,
		files:  http.FileServerFS(assets),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		RespondWithError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = indexFile
	}

	info, err := fs.Stat(h.assets, name)
	if err != nil || info.IsDir() {
		http.ServeFileFS(w, r, h.assets, indexFile)
		return
	}

	h.files.ServeHTTP(w, r)
}
