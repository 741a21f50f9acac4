package theme

import (
	"html/template"
	"sync"

	"github.com/umputun/snaapy/app/enum"
)

// MarkerAttr is the document attribute the stylesheets key theme tokens off.
const MarkerAttr = "data-theme"

// Marker is the single flat presentation marker, the value of MarkerAttr on the root element.
type Marker struct {
	mu    sync.RWMutex
	value string
}

// Apply sets the marker to the theme name.
func (m *Marker) Apply(t enum.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = t.String()
}

// Value returns the current marker string, empty until the first Apply.
func (m *Marker) Value() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Attr renders the marker as an html attribute, e.g. data-theme="dark".
func (m *Marker) Attr() template.HTMLAttr {
	v := m.Value()
	if v == "" {
		return ""
	}
	return template.HTMLAttr(MarkerAttr + `="` + template.HTMLEscapeString(v) + `"`) //nolint:gosec // value is an enum name
}
