package theme

import (
	"context"

	"github.com/umputun/snaapy/app/enum"
)

// Consumer is the read/toggle view of the store handed to UI code.
// It never caches the theme, every read goes to the store.
type Consumer struct {
	store *Store
}

// NewConsumer returns ErrNotInitialized if st is nil or Initialize hasn't run yet.
// Callers are expected to abort startup on this error, it means theme state was read too early.
func NewConsumer(st *Store) (*Consumer, error) {
	if st == nil || !st.Initialized() {
		return nil, ErrNotInitialized
	}
	return &Consumer{store: st}, nil
}

// Theme returns the active theme.
func (c *Consumer) Theme() enum.Theme { return c.store.Get() }

// Marker returns the presentation marker.
func (c *Consumer) Marker() *Marker { return c.store.Marker() }

// Toggle flips the active theme.
func (c *Consumer) Toggle(ctx context.Context) enum.Theme { return c.store.Toggle(ctx) }

// Set changes the active theme, see Store.Set.
func (c *Consumer) Set(ctx context.Context, t enum.Theme) error { return c.store.Set(ctx, t) }

// Subscribe registers fn for theme changes.
func (c *Consumer) Subscribe(fn Listener) func() { return c.store.Subscribe(fn) }
