package ambient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAndNone(t *testing.T) {
	dark, ok := Static{Dark: true}.PrefersDark(context.Background())
	assert.True(t, dark)
	assert.True(t, ok)

	dark, ok = Static{}.PrefersDark(context.Background())
	assert.False(t, dark)
	assert.True(t, ok)

	_, ok = None{}.PrefersDark(context.Background())
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		wantDark bool
		wantOK   bool
	}{
		{name: "empty", chain: Chain{}},
		{name: "only unknown", chain: Chain{None{}, nil, None{}}},
		{name: "first known wins", chain: Chain{None{}, Static{Dark: true}, Static{Dark: false}}, wantDark: true, wantOK: true},
		{name: "light is an answer", chain: Chain{Static{Dark: false}, Static{Dark: true}}, wantOK: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dark, ok := tc.chain.PrefersDark(context.Background())
			assert.Equal(t, tc.wantDark, dark)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

type watchDetector struct {
	None
	err     error
	started int
}

func (w *watchDetector) Watch(context.Context, func(bool)) error {
	if w.err != nil {
		return w.err
	}
	w.started++
	return nil
}

func TestChain_Watch(t *testing.T) {
	t.Run("starts every watcher", func(t *testing.T) {
		w1, w2 := &watchDetector{}, &watchDetector{}
		require.NoError(t, Chain{w1, Static{}, w2}.Watch(context.Background(), func(bool) {}))
		assert.Equal(t, 1, w1.started)
		assert.Equal(t, 1, w2.started)
	})

	t.Run("one failing watcher is fine", func(t *testing.T) {
		ok := &watchDetector{}
		require.NoError(t, Chain{&watchDetector{err: errors.New("no bus")}, ok}.Watch(context.Background(), func(bool) {}))
		assert.Equal(t, 1, ok.started)
	})

	t.Run("all failing", func(t *testing.T) {
		err := Chain{&watchDetector{err: errors.New("no bus")}}.Watch(context.Background(), func(bool) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no bus")
	})

	t.Run("nothing to watch", func(t *testing.T) {
		require.Error(t, Chain{Static{}, None{}}.Watch(context.Background(), func(bool) {}))
	})
}

func TestAuto(t *testing.T) {
	c := Auto()
	require.NotEmpty(t, c)
	var hasPortal bool
	for _, d := range c {
		if _, ok := d.(*Portal); ok {
			hasPortal = true
		}
	}
	assert.True(t, hasPortal, "portal is always in the chain")
}
