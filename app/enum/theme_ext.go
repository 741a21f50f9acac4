package enum

// Toggle returns the opposite theme (dark↔light).
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is one of the declared themes, the zero value is not.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
