package web

import (
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/snaapy/app/enum"
)

// handlePage renders one of the top-level pages.
func (h *Handler) handlePage(p enum.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// read theme and marker per request, never cached between renders
		data := templateData{
			Page:    p,
			Title:   p.Title(),
			Theme:   h.theme.Theme().String(),
			Marker:  h.theme.Marker().Attr(),
			Motion:  h.motion,
			Version: h.version,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.pages[p].ExecuteTemplate(w, "base.html", data); err != nil {
			log.Printf("[ERROR] failed to execute template %s: %v", p, err)
		}
	}
}

// handleThemeToggle toggles the theme between light and dark.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	newTheme := h.theme.Toggle(r.Context())
	log.Printf("[INFO] theme toggled to %s from %s", newTheme, r.RemoteAddr)
	rest.RenderJSON(w, rest.JSON{"theme": newTheme.String()})
}
