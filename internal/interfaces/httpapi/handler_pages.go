package httpapi

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/valyala/bytebufferpool"
)

const matchesTemplate = "todays_matches.html"

//go:embed web/templates/*.html web/static
var webAssets embed.FS

type PagesConfig struct {
	// TemplatesDir replaces the embedded templates when set.
	TemplatesDir string
	// StaticDir replaces the embedded static assets when set.
	StaticDir string
}

// Pages holds the parsed page template and the static file tree.
type Pages struct {
	template *template.Template
	static   fs.FS
}

func NewPages(cfg PagesConfig) (*Pages, error) {
	templates, err := assetFS(cfg.TemplatesDir, "web/templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	static, err := assetFS(cfg.StaticDir, "web/static")
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}

	tmpl, err := template.ParseFS(templates, matchesTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", matchesTemplate, err)
	}

	return &Pages{template: tmpl, static: static}, nil
}

func MustDefaultPages() *Pages {
	pages, err := NewPages(PagesConfig{})
	if err != nil {
		panic(err)
	}
	return pages
}

func assetFS(dir, embedded string) (fs.FS, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fs.Sub(webAssets, embedded)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

type pageData struct {
	Title           string
	MatchesEndpoint string
	StaticPrefix    string
}

// MatchesPage renders the page shell; match data is loaded client-side.
func (h *Handler) MatchesPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchesPage")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	err := h.pages.template.ExecuteTemplate(buf, matchesTemplate, pageData{
		Title:           "International Cricket Matches",
		MatchesEndpoint: "/api/last-24h-matches",
		StaticPrefix:    "/static",
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "render matches page failed", "template", matchesTemplate, "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

func (h *Handler) StaticFiles() http.Handler {
	return http.StripPrefix("/static", http.FileServerFS(h.pages.static))
}
