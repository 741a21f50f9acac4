package theme

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/snaapy/app/enum"
)

func TestMarker(t *testing.T) {
	m := &Marker{}
	assert.Empty(t, m.Value())
	assert.Equal(t, template.HTMLAttr(""), m.Attr())

	m.Apply(enum.ThemeDark)
	assert.Equal(t, "dark", m.Value())
	assert.Equal(t, template.HTMLAttr(`data-theme="dark"`), m.Attr())

	m.Apply(enum.ThemeLight)
	assert.Equal(t, template.HTMLAttr(`data-theme="light"`), m.Attr())
}
