package widget

import (
	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
)

// ThemeScope is one of the three style scopes the theme must keep
// consistent: the widget panel, the launcher, and the host's root. The root
// scope exists because some style rules (the original's scrollbar coloring;
// here, the host chrome) live outside the widget's own subtree.
type ThemeScope interface {
	ApplyTheme(theme config.Theme)
}

// ThemeController toggles between the two visual variants and persists the
// choice. It operates synchronously and has no error conditions.
type ThemeController struct {
	current config.Theme
	scopes  []ThemeScope
	store   prefs.Store
}

// NewThemeController creates a controller starting at initial.
func NewThemeController(initial config.Theme, store prefs.Store, scopes ...ThemeScope) *ThemeController {
	return &ThemeController{
		current: initial,
		scopes:  scopes,
		store:   store,
	}
}

// Current returns the active theme.
func (t *ThemeController) Current() config.Theme {
	return t.current
}

// Apply pushes the active theme to every scope without changing it. Boot
// calls this once so all scopes start consistent.
func (t *ThemeController) Apply() {
	for _, scope := range t.scopes {
		scope.ApplyTheme(t.current)
	}
}

// Toggle flips to the opposite theme, applies it to all scopes at once, and
// persists the new value.
func (t *ThemeController) Toggle() config.Theme {
	t.current = t.current.Opposite()
	t.Apply()
	t.store.Set(prefs.KeyTheme, string(t.current))
	return t.current
}
