// Package ambient queries the host's light/dark preference.
// Detectors answer (dark, ok); ok is false when the host can't tell.
package ambient

import (
	"context"
	"errors"
	"runtime"

	log "github.com/go-pkgz/lgr"
)

// Detector reports whether the host prefers dark rendering.
type Detector interface {
	PrefersDark(ctx context.Context) (dark, ok bool)
}

// Static is a fixed preference, set from configuration.
type Static struct {
	Dark bool
}

// PrefersDark always answers with the configured value.
func (s Static) PrefersDark(context.Context) (dark, ok bool) { return s.Dark, true }

// None never knows the preference.
type None struct{}

// PrefersDark always reports the preference as unavailable.
func (None) PrefersDark(context.Context) (dark, ok bool) { return false, false }

// Chain asks detectors in order, the first one that knows wins.
type Chain []Detector

// PrefersDark returns the first available answer.
func (c Chain) PrefersDark(ctx context.Context) (dark, ok bool) {
	for _, d := range c {
		if d == nil {
			continue
		}
		if dark, ok := d.PrefersDark(ctx); ok {
			return dark, true
		}
	}
	return false, false
}

// Watcher delivers preference changes to fn until ctx is canceled.
type Watcher interface {
	Watch(ctx context.Context, fn func(dark bool)) error
}

// Watch starts every detector in the chain that can watch. It fails only if none could.
func (c Chain) Watch(ctx context.Context, fn func(dark bool)) error {
	var errs []error
	started := 0
	for _, d := range c {
		w, ok := d.(Watcher)
		if !ok {
			continue
		}
		if err := w.Watch(ctx, fn); err != nil {
			errs = append(errs, err)
			continue
		}
		started++
	}
	if started > 0 {
		return nil
	}
	if len(errs) == 0 {
		return errors.New("no detector can watch preference changes")
	}
	return errors.Join(errs...)
}

// Auto returns the platform chain: macOS user defaults first on darwin,
// then the freedesktop settings portal. A detector that can't tell falls through.
func Auto() Chain {
	if runtime.GOOS == "darwin" {
		log.Printf("[DEBUG] ambient preference from macOS defaults, desktop portal")
		return Chain{NewDefaults(), NewPortal()}
	}
	log.Printf("[DEBUG] ambient preference from desktop portal")
	return Chain{NewPortal()}
}
