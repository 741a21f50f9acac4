// Package web provides HTTP handlers for the booth web UI.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/go-pkgz/routegroup"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/motion"
	"github.com/umputun/snaapy/app/theme"
)

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// Config holds web handler configuration.
type Config struct {
	Version string
}

// Handler handles web UI requests.
type Handler struct {
	theme   *theme.Consumer
	hub     *Hub
	pages   map[enum.Page]*template.Template
	motion  template.JS // presets for app.js, same for every render
	version string
}

// New creates a new web handler. It fails if the theme store isn't initialized yet,
// pages must never render before the startup theme is resolved.
func New(st *theme.Store, cfg Config) (*Handler, error) {
	consumer, err := theme.NewConsumer(st)
	if err != nil {
		return nil, fmt.Errorf("failed to attach to theme store: %w", err)
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	mot, err := pageMotion()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare motion presets: %w", err)
	}

	return &Handler{
		theme:   consumer,
		hub:     NewHub(consumer),
		pages:   pages,
		motion:  mot,
		version: cfg.Version,
	}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handlePage(enum.PageLanding))
	r.HandleFunc("GET /booth", h.handlePage(enum.PageBooth))
	r.HandleFunc("GET /gallery", h.handlePage(enum.PageGallery))
	r.HandleFunc("POST /web/theme", h.handleThemeToggle)
	r.HandleFunc("GET /web/theme/ws", h.hub.ServeWS)
}

// Close disconnects live theme clients.
func (h *Handler) Close() {
	h.hub.Close()
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pagePath": func(p enum.Page) string { return p.Path() },
		"pageTitle": func(p enum.Page) string { return p.Title() },
		"pages":     func() []enum.Page { return enum.PageValues },
	}
}

// parseTemplates parses the base layout once per page, each page defines its own "content".
func parseTemplates() (map[enum.Page]*template.Template, error) {
	baseContent, err := templatesFS.ReadFile("templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base.html: %w", err)
	}

	res := make(map[enum.Page]*template.Template, len(enum.PageValues))
	for _, p := range enum.PageValues {
		tmpl, parseErr := template.New("base.html").Funcs(templateFuncs()).Parse(string(baseContent))
		if parseErr != nil {
			return nil, fmt.Errorf("parse base.html: %w", parseErr)
		}
		content, readErr := templatesFS.ReadFile("templates/" + p.String() + ".html")
		if readErr != nil {
			return nil, fmt.Errorf("read page %s: %w", p, readErr)
		}
		if _, parseErr = tmpl.New(p.String()).Parse(string(content)); parseErr != nil {
			return nil, fmt.Errorf("parse page %s: %w", p, parseErr)
		}
		res[p] = tmpl
	}
	return res, nil
}

// templateData holds data passed to templates.
type templateData struct {
	Page    enum.Page
	Title   string
	Theme   string
	Marker  template.HTMLAttr // data-theme="..." on the root element
	Motion  template.JS       // page transition and button presets for the client
	Version string
}

// pageMotion returns the presets the pages animate with, as a JS object literal.
func pageMotion() (template.JS, error) {
	names := []string{"page", "themeToggle"}
	presets := make(map[string]motion.Variants, len(names))
	for _, name := range names {
		v, err := motion.Lookup(name)
		if err != nil {
			return "", fmt.Errorf("lookup motion preset: %w", err)
		}
		presets[name] = v
	}
	data, err := json.Marshal(presets)
	if err != nil {
		return "", fmt.Errorf("marshal motion presets: %w", err)
	}
	return template.JS(data), nil //nolint:gosec // marshaled by encoding/json
}
