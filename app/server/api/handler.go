// Package api provides JSON handlers for the theme and motion API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/motion"
	"github.com/umputun/snaapy/app/theme"
)

// Handler handles API requests for /api/v1/* endpoints.
type Handler struct {
	theme *theme.Consumer
}

// themeRequest is the body of PUT /theme.
type themeRequest struct {
	Theme string `json:"theme"`
}

// New creates a new API handler. The theme store must be initialized.
func New(st *theme.Store) (*Handler, error) {
	consumer, err := theme.NewConsumer(st)
	if err != nil {
		return nil, fmt.Errorf("failed to attach to theme store: %w", err)
	}
	return &Handler{theme: consumer}, nil
}

// Register registers read-only API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", h.handleGetTheme)
	r.HandleFunc("GET /motion", h.handleListMotion)
	r.HandleFunc("GET /motion/{name}", h.handleGetMotion)
}

// RegisterWrite registers theme mutation routes, the caller decides how they are protected.
func (h *Handler) RegisterWrite(r *routegroup.Bundle) {
	r.HandleFunc("PUT /theme", h.handleSetTheme)
	r.HandleFunc("POST /theme/toggle", h.handleToggleTheme)
}

// handleGetTheme returns the active theme.
// GET /api/v1/theme
func (h *Handler) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{"theme": h.theme.Theme().String(), "marker": h.theme.Marker().Value()})
}

// handleSetTheme sets the theme from {"theme":"light|dark"}.
// PUT /api/v1/theme
func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "failed to decode request")
		return
	}

	t, err := enum.ParseTheme(req.Theme)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "theme must be light or dark")
		return
	}

	if err := h.theme.Set(r.Context(), t); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, theme.ErrInvalidTheme) {
			code = http.StatusBadRequest
		}
		rest.SendErrorJSON(w, r, log.Default(), code, err, "failed to set theme")
		return
	}

	log.Printf("[INFO] theme set to %s from %s", t, r.RemoteAddr)
	rest.RenderJSON(w, rest.JSON{"theme": t.String()})
}

// handleToggleTheme flips the theme and returns the new value.
// POST /api/v1/theme/toggle
func (h *Handler) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t := h.theme.Toggle(r.Context())
	log.Printf("[INFO] theme toggled to %s from %s", t, r.RemoteAddr)
	rest.RenderJSON(w, rest.JSON{"theme": t.String()})
}

// handleListMotion returns all animation presets.
// GET /api/v1/motion
// Optional query params: ?reduced=true (near-instant fades for reduced-motion clients)
func (h *Handler) handleListMotion(w http.ResponseWriter, r *http.Request) {
	reduced, err := reducedParam(r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid reduced parameter")
		return
	}

	presets := motion.All()
	step := map[string]motion.Variants{"forward": motion.Step(1), "backward": motion.Step(-1)}
	if reduced {
		for name, v := range presets {
			presets[name] = motion.Reduced(v)
		}
		for dir, v := range step {
			step[dir] = motion.Reduced(v)
		}
	}

	rest.RenderJSON(w, rest.JSON{
		"presets":     presets,
		"step":        step,
		"transitions": motion.Transitions,
		"carousel":    motion.CarouselDrag,
	})
}

// handleGetMotion returns a single preset.
// GET /api/v1/motion/{name}
func (h *Handler) handleGetMotion(w http.ResponseWriter, r *http.Request) {
	reduced, err := reducedParam(r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid reduced parameter")
		return
	}

	v, err := motion.Lookup(r.PathValue("name"))
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "motion preset not found")
		return
	}
	if reduced {
		v = motion.Reduced(v)
	}
	rest.RenderJSON(w, v)
}

func reducedParam(r *http.Request) (bool, error) {
	s := r.URL.Query().Get("reduced")
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parse reduced: %w", err)
	}
	return v, nil
}
