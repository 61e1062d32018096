package config

import (
	"strconv"

	"chatwidget/internal/prefs"
)

// Theme selects one of the two visual variants.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t names a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Position is the page edge the widget is anchored to. It determines the
// sign convention for resize drags.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

func (p Position) Valid() bool {
	return p == PositionLeft || p == PositionRight
}

// Dimension floors. A resize or a persisted preference can never take the
// widget below these.
const (
	MinWidth  = 300
	MinHeight = 400
)

// Config is the resolved widget configuration. It is immutable for the
// session except for Theme, Width and Height, which user interaction may
// mutate and re-persist.
type Config struct {
	APIBase        string
	Theme          Theme
	Position       Position
	WelcomeMessage string
	ButtonIcon     string
	Title          string
	Placeholder    string
	ContainerID    string
	Width          int
	Height         int
}

// Defaults returns the built-in configuration. Every field has a usable
// value, so resolution has no failure path.
func Defaults() Config {
	return Config{
		APIBase:        "",
		Theme:          ThemeLight,
		Position:       PositionRight,
		WelcomeMessage: "Hello! How can I help you today?",
		ButtonIcon:     "💬",
		Title:          "Chat Assistant",
		Placeholder:    "Type a message...",
		ContainerID:    "chat-widget-container",
		Width:          450,
		Height:         550,
	}
}

// Overrides carries caller-supplied configuration. Zero values mean "not
// provided" and fall through to the defaults.
type Overrides struct {
	APIBase        string
	Theme          Theme
	Position       Position
	WelcomeMessage string
	ButtonIcon     string
	Title          string
	Placeholder    string
	ContainerID    string
	Width          int
	Height         int
}

// Resolve merges built-in defaults, caller overrides and persisted user
// preferences into one configuration. Persisted theme/width/height win over
// overrides, which win over defaults: a persisted value is the user's last
// explicit choice and outranks the host's initial intent. Unparseable or
// out-of-range persisted values are ignored; dimensions are floored at
// MinWidth x MinHeight.
func Resolve(defaults Config, overrides Overrides, store prefs.Store) Config {
	cfg := defaults

	if overrides.APIBase != "" {
		cfg.APIBase = overrides.APIBase
	}
	if overrides.Theme.Valid() {
		cfg.Theme = overrides.Theme
	}
	if overrides.Position.Valid() {
		cfg.Position = overrides.Position
	}
	if overrides.WelcomeMessage != "" {
		cfg.WelcomeMessage = overrides.WelcomeMessage
	}
	if overrides.ButtonIcon != "" {
		cfg.ButtonIcon = overrides.ButtonIcon
	}
	if overrides.Title != "" {
		cfg.Title = overrides.Title
	}
	if overrides.Placeholder != "" {
		cfg.Placeholder = overrides.Placeholder
	}
	if overrides.ContainerID != "" {
		cfg.ContainerID = overrides.ContainerID
	}
	if overrides.Width > 0 {
		cfg.Width = overrides.Width
	}
	if overrides.Height > 0 {
		cfg.Height = overrides.Height
	}

	if store != nil {
		if v, ok := store.Get(prefs.KeyTheme); ok && Theme(v).Valid() {
			cfg.Theme = Theme(v)
		}
		if v, ok := store.Get(prefs.KeyWidth); ok {
			if w, err := strconv.Atoi(v); err == nil && w > 0 {
				cfg.Width = w
			}
		}
		if v, ok := store.Get(prefs.KeyHeight); ok {
			if h, err := strconv.Atoi(v); err == nil && h > 0 {
				cfg.Height = h
			}
		}
	}

	if cfg.Width < MinWidth {
		cfg.Width = MinWidth
	}
	if cfg.Height < MinHeight {
		cfg.Height = MinHeight
	}

	return cfg
}
