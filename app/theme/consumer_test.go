package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/store"
)

func TestNewConsumer(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		c, err := NewConsumer(nil)
		require.ErrorIs(t, err, ErrNotInitialized)
		assert.Nil(t, c)
	})

	t.Run("store not initialized", func(t *testing.T) {
		c, err := NewConsumer(New(store.NewMemory(), nil))
		require.ErrorIs(t, err, ErrNotInitialized)
		assert.Nil(t, c)
	})

	t.Run("initialized store", func(t *testing.T) {
		s := New(store.NewMemory(), nil)
		s.Initialize(context.Background())
		c, err := NewConsumer(s)
		require.NoError(t, err)
		assert.Equal(t, enum.ThemeLight, c.Theme())
	})
}

func TestConsumer_ReadsThrough(t *testing.T) {
	s := New(store.NewMemory(), nil)
	ctx := context.Background()
	s.Initialize(ctx)
	c, err := NewConsumer(s)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, enum.ThemeDark))
	assert.Equal(t, enum.ThemeDark, c.Theme(), "no stale value after a mutation")

	assert.Equal(t, enum.ThemeLight, c.Toggle(ctx))
	assert.Equal(t, enum.ThemeLight, s.Get())
	assert.Equal(t, "light", c.Marker().Value())

	require.NoError(t, c.Set(ctx, enum.ThemeDark))
	assert.Equal(t, enum.ThemeDark, s.Get())

	var got enum.Theme
	unsub := c.Subscribe(func(th enum.Theme) { got = th })
	defer unsub()
	c.Toggle(ctx)
	assert.Equal(t, enum.ThemeLight, got)
}
