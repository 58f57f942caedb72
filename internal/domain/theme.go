package domain

// Theme is the persisted visual preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the preference key the theme is stored under
const ThemeKey = "theme"

// ParseTheme maps a stored value to a Theme. Anything unknown is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the dark palette applies
func (t Theme) IsDark() bool {
	return t == ThemeDark
}
