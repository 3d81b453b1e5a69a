package preview

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tradition-dev/site/internal/errors"
)

// staticRelPath returns a sanitized path relative to the static directory.
// It rejects traversal and absolute-path tricks so a request can never
// escape the directory.
func staticRelPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return "index.html", true
	}

	// %00
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}
	if strings.Contains(rel, "\\") {
		return "", false
	}
	// "//etc/passwd"
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	// Reject dot-segments before cleaning, otherwise Clean hides them.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	if strings.HasSuffix(rel, "/") {
		clean += "/index.html"
	}
	return clean, true
}

// serveStatic serves a file from the static directory. Directories are
// served through their index.html.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	if s.config.StaticDir == "" {
		http.NotFound(w, r)
		return
	}

	rel, ok := staticRelPath(r.URL.Path)
	if !ok {
		s.logger.Warn("static path rejected", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	root := os.DirFS(s.config.StaticDir)
	f, err := root.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func staticDirError(dir string, err error) error {
	e := errors.New("E181").
		WithDetail(fmt.Sprintf("%s is not a directory.", dir)).
		WithSuggestion("Create it or point preview.staticDir at the site files.")
	if err != nil {
		e.Wrap(err)
	}
	return e
}

func listenError(addr string, err error) error {
	return errors.New("E180").
		WithDetail(fmt.Sprintf("could not listen on %s: %v", addr, err)).
		WithSuggestion("Pick another port with --port or preview.port.").
		Wrap(err)
}
