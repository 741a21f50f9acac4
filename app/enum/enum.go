// Package enum defines the enumerated values shared across the app.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower
type theme int

const (
	themeLight theme = iota
	themeDark
)

//go:generate go run github.com/go-pkgz/enum@latest -type page -lower
type page int

const (
	pageLanding page = iota
	pageBooth
	pageGallery
)
