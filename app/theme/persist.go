package theme

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/store"
)

// load reads the persisted theme. Missing storage, a missing key and
// any value other than "light" or "dark" all read as absent.
func (s *Store) load(ctx context.Context) (enum.Theme, bool) {
	if s.kv == nil {
		return enum.Theme{}, false
	}
	val, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] can't read persisted theme, ignored: %v", err)
		}
		return enum.Theme{}, false
	}
	t, err := enum.ParseTheme(val)
	if err != nil {
		log.Printf("[WARN] ignoring persisted theme %q: %v", val, err)
		return enum.Theme{}, false
	}
	return t, true
}

// persist writes the literal theme name under StorageKey.
func (s *Store) persist(ctx context.Context, t enum.Theme) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Set(ctx, StorageKey, t.String()); err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	return nil
}
