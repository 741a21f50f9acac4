// Package theme owns the active light/dark theme of the running app.
// Store resolves the startup value, persists every change under a fixed key,
// applies the presentation marker and notifies subscribers in registration order.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/snaapy/app/enum"
)

//go:generate moq -out mocks/kvstore.go -pkg mocks -skip-ensure -fmt goimports . KVStore
//go:generate moq -out mocks/ambient.go -pkg mocks -skip-ensure -fmt goimports . AmbientDetector

// StorageKey is the persisted key of the theme. Renaming it drops choices saved by earlier runs.
const StorageKey = "snaapy-theme"

// AmbientTimeout bounds the host preference query during Initialize.
const AmbientTimeout = 2 * time.Second

// DefaultTheme is used when neither a persisted nor an ambient preference is available.
var DefaultTheme = enum.ThemeLight

var (
	// ErrInvalidTheme is returned by Set for values outside of light/dark.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrNotInitialized is returned when the store is used before Initialize.
	ErrNotInitialized = errors.New("theme store is not initialized")
)

// KVStore is the durable key-value storage the theme is persisted to.
// Defined here (consumer side) to allow different store implementations.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// AmbientDetector reports the host's light/dark preference.
// ok is false when the preference can't be queried.
type AmbientDetector interface {
	PrefersDark(ctx context.Context) (dark, ok bool)
}

// AmbientWatcher delivers host preference changes to fn until ctx is canceled.
type AmbientWatcher interface {
	Watch(ctx context.Context, fn func(dark bool)) error
}

// Listener is called with the new theme after every successful change.
// Listeners run synchronously under the store's write lock and must not call Set or Toggle.
type Listener func(t enum.Theme)

type subscriber struct {
	id uint64
	fn Listener
}

// Store is the single source of truth for the active theme.
type Store struct {
	kv             KVStore
	ambient        AmbientDetector
	ambientTimeout time.Duration
	marker         *Marker

	writeMu sync.Mutex // serializes mutation, persistence, marker and notification

	mu          sync.RWMutex // guards fields below
	current     enum.Theme
	initialized bool
	subs        []subscriber
	nextID      uint64
}

// New makes a store. kv and ambient may be nil, both are treated as "signal absent".
func New(kv KVStore, ambient AmbientDetector) *Store {
	return &Store{kv: kv, ambient: ambient, ambientTimeout: AmbientTimeout, marker: &Marker{}}
}

// Initialize resolves the startup theme: persisted value, then ambient preference, then DefaultTheme.
// The resolved value is persisted, so later starts keep it even if the ambient preference changes.
// It never fails. Calling it again returns the current value and doesn't re-resolve.
func (s *Store) Initialize(ctx context.Context) enum.Theme {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	if s.initialized {
		cur := s.current
		s.mu.RUnlock()
		return cur
	}
	s.mu.RUnlock()

	resolved, source := s.resolve(ctx)
	s.mu.Lock()
	s.current = resolved
	s.initialized = true
	s.mu.Unlock()

	if err := s.persist(ctx, resolved); err != nil {
		log.Printf("[WARN] failed to persist initial theme %s: %v", resolved, err)
	}
	s.marker.Apply(resolved)
	log.Printf("[INFO] theme initialized to %s (%s)", resolved, source)
	return resolved
}

func (s *Store) resolve(ctx context.Context) (t enum.Theme, source string) {
	if t, ok := s.load(ctx); ok {
		return t, "persisted"
	}
	if s.ambient != nil {
		actx, cancel := context.WithTimeout(ctx, s.ambientTimeout)
		defer cancel()
		if dark, ok := s.ambient.PrefersDark(actx); ok {
			if dark {
				return enum.ThemeDark, "ambient"
			}
			return enum.ThemeLight, "ambient"
		}
	}
	return DefaultTheme, "default"
}

// Initialized reports whether Initialize has completed.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Get returns the active theme. Before Initialize it returns the zero Theme.
func (s *Store) Get() enum.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Marker returns the presentation marker driven by the store.
func (s *Store) Marker() *Marker { return s.marker }

// Set makes t the active theme, persists it, applies the marker and notifies subscribers, in that order.
// A failed storage write is logged and doesn't stop the marker or subscribers.
func (s *Store) Set(ctx context.Context, t enum.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t.String())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.Initialized() {
		return ErrNotInitialized
	}
	s.apply(ctx, t)
	return nil
}

// Toggle flips light↔dark with the same side effects as Set and returns the new theme.
// Returns the zero Theme if the store isn't initialized.
func (s *Store) Toggle(ctx context.Context) enum.Theme {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.Initialized() {
		log.Printf("[WARN] theme toggle before initialization ignored")
		return enum.Theme{}
	}
	next := s.Get().Toggle()
	s.apply(ctx, next)
	return next
}

// apply must be called with writeMu held.
func (s *Store) apply(ctx context.Context, t enum.Theme) {
	s.mu.Lock()
	s.current = t
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if err := s.persist(ctx, t); err != nil {
		log.Printf("[WARN] failed to persist theme %s: %v", t, err)
	}
	s.marker.Apply(t)
	for _, sub := range subs {
		sub.fn(t)
	}
	log.Printf("[DEBUG] theme set to %s, %d subscriber(s) notified", t, len(subs))
}

// Subscribe registers fn for theme changes and returns a function removing it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// WatchAmbient registers a listener for host preference changes.
// The listener only logs: an ambient change never overrides the active theme,
// following the system until the user picks a theme is not supported.
func (s *Store) WatchAmbient(ctx context.Context, w AmbientWatcher) error {
	if w == nil {
		return nil
	}
	err := w.Watch(ctx, func(dark bool) {
		pref := enum.ThemeLight
		if dark {
			pref = enum.ThemeDark
		}
		log.Printf("[DEBUG] ambient preference changed to %s, keeping %s", pref, s.Get())
	})
	if err != nil {
		return fmt.Errorf("failed to watch ambient preference: %w", err)
	}
	return nil
}
