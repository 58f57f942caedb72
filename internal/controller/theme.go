package controller

import "github.com/mmcdole/tunedl/internal/domain"

// ThemeIcon is the toggle control's glyph and its description
type ThemeIcon struct {
	Glyph string
	Alt   string
}

// IconFor returns the toggle icon for the active theme: a sun while dark
// (switching to light), a moon while light
func IconFor(t domain.Theme) ThemeIcon {
	if t.IsDark() {
		return ThemeIcon{Glyph: "☀", Alt: "Switch to light mode"}
	}
	return ThemeIcon{Glyph: "☾", Alt: "Switch to dark mode"}
}

// InitTheme applies the stored preference, or fallback when nothing is stored
func InitTheme(s *State, stored string, ok bool, fallback domain.Theme) {
	if !ok {
		s.Theme = domain.ParseTheme(string(fallback))
		return
	}
	s.Theme = domain.ParseTheme(stored)
}

// ToggleTheme flips the theme and asks for the new value to be persisted
func ToggleTheme(s *State, _ Event) Effect {
	s.Theme = s.Theme.Toggle()
	return Effect{Kind: EffectPersistTheme, Theme: s.Theme}
}
