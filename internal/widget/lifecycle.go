package widget

import (
	"context"

	"github.com/rs/zerolog/log"

	"chatwidget/internal/api"
	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
	"chatwidget/internal/ui/components"
)

// BootState tracks the sequential boot sequence. Transitions only move
// forward, and each step waits for the prior one.
type BootState int

const (
	StateUninitialized BootState = iota
	StateStylesInjected
	StateDependenciesLoaded
	StateDomBuilt
	StateEventsBound
	StateHistoryLoaded
	StateDimensionsApplied
	StateReady
)

func (s BootState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStylesInjected:
		return "styles-injected"
	case StateDependenciesLoaded:
		return "dependencies-loaded"
	case StateDomBuilt:
		return "dom-built"
	case StateEventsBound:
		return "events-bound"
	case StateHistoryLoaded:
		return "history-loaded"
	case StateDimensionsApplied:
		return "dimensions-applied"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Backend is the full request surface the widget consumes.
type Backend interface {
	ChatSender
	HistoryFetcher
}

// Widget is the embeddable chat-widget core. It orchestrates the boot
// sequence, owns the open/collapsed toggle, and wires the theme, resize,
// exchange and history components over a shared preference store. It is
// headless: a host renders its state and feeds it pointer, keyboard and
// viewport events.
type Widget struct {
	cfg     config.Config
	store   prefs.Store
	backend Backend

	state BootState
	open  bool

	log      *Log
	exchange *MessageExchange
	theme    *ThemeController
	resize   *ResizeController

	// renderer is nil in degraded mode; every bot reply then renders as
	// plain escaped text.
	renderer *components.MarkdownRenderer

	themeScopes []ThemeScope
}

// New creates an unbooted widget. The theme scopes are the host surfaces the
// theme controller keeps consistent (panel, launcher, host root).
func New(cfg config.Config, store prefs.Store, backend Backend, scopes ...ThemeScope) *Widget {
	return &Widget{
		cfg:         cfg,
		store:       store,
		backend:     backend,
		state:       StateUninitialized,
		themeScopes: scopes,
	}
}

// Boot runs the fixed boot sequence. No step is fatal: the one fallible step
// is loading the rich-text renderer, and its failure is swallowed, leaving
// the widget in a degraded plain-text mode.
func (w *Widget) Boot(ctx context.Context) {
	if w.state != StateUninitialized {
		return
	}

	w.theme = NewThemeController(w.cfg.Theme, w.store, w.themeScopes...)
	w.theme.Apply()
	w.state = StateStylesInjected

	renderer, err := components.NewMarkdownRenderer(w.cfg.Theme, 80)
	if err != nil {
		log.Debug().Err(err).Msg("rich-text renderer unavailable, continuing in plain-text mode")
	} else {
		w.renderer = renderer
	}
	w.state = StateDependenciesLoaded

	w.log = NewLog()
	w.log.Append(Bubble{
		ID:      "welcome",
		Role:    RoleBot,
		Content: w.cfg.WelcomeMessage,
	})
	w.state = StateDomBuilt

	w.exchange = NewMessageExchange(w.backend, w.store, w.log)
	w.resize = NewResizeController(w.cfg.Position, Size{Width: w.cfg.Width, Height: w.cfg.Height}, w.store)
	w.state = StateEventsBound

	NewHistorySync(w.backend, w.store, w.log).Run(ctx)
	w.state = StateHistoryLoaded

	w.resize.Restore(Size{Width: w.cfg.Width, Height: w.cfg.Height})
	w.state = StateDimensionsApplied

	w.state = StateReady
	log.Debug().Str("state", w.state.String()).Msg("widget booted")
}

// State returns the current boot state.
func (w *Widget) State() BootState {
	return w.state
}

// Ready reports whether boot has completed.
func (w *Widget) Ready() bool {
	return w.state == StateReady
}

// ToggleOpen flips the visible/collapsed boolean and returns the new value.
func (w *Widget) ToggleOpen() bool {
	w.open = !w.open
	return w.open
}

// Open reports whether the panel is visible.
func (w *Widget) Open() bool {
	return w.open
}

// LauncherIcon returns the icon the launcher must show, kept in sync with
// the open/collapsed state.
func (w *Widget) LauncherIcon() string {
	if w.open {
		return "✕"
	}
	return w.cfg.ButtonIcon
}

// Config returns the resolved configuration.
func (w *Widget) Config() config.Config {
	return w.cfg
}

// Log returns the message log. Nil before boot reaches DomBuilt.
func (w *Widget) Log() *Log {
	return w.log
}

// Exchange returns the message-exchange component.
func (w *Widget) Exchange() *MessageExchange {
	return w.exchange
}

// Resize returns the resize controller.
func (w *Widget) Resize() *ResizeController {
	return w.resize
}

// Theme returns the theme controller.
func (w *Widget) Theme() *ThemeController {
	return w.theme
}

// ToggleTheme flips the theme across all scopes and re-styles the rich-text
// renderer to match. A renderer rebuild failure degrades that side only.
func (w *Widget) ToggleTheme() config.Theme {
	next := w.theme.Toggle()
	if w.renderer != nil {
		if err := w.renderer.UpdateTheme(next); err != nil {
			log.Debug().Err(err).Msg("renderer theme update failed")
		}
	}
	return next
}

// SetViewport feeds the host viewport to the resize controller and re-wraps
// the rich renderer to the panel's content width.
func (w *Widget) SetViewport(vp Viewport) {
	w.resize.SetViewport(vp)
}

// SetContentWidth re-wraps rich rendering for the host's current text width.
func (w *Widget) SetContentWidth(width int) {
	if w.renderer == nil || width <= 0 {
		return
	}
	if err := w.renderer.UpdateWidth(width); err != nil {
		log.Debug().Err(err).Msg("renderer width update failed")
	}
}

// RichEnabled reports whether the optional rich-text renderer loaded.
func (w *Widget) RichEnabled() bool {
	return w.renderer != nil
}

// RenderContent produces the rendered form of a bot reply. Content with no
// markdown signal renders as plain escaped text without touching the parser;
// marked-up content goes through the rich path, falling back to plain text
// for that single message if the parser fails.
func (w *Widget) RenderContent(content string) string {
	if w.renderer != nil && components.LooksLikeMarkdown(content) {
		out, err := w.renderer.Render(content)
		if err == nil {
			return out
		}
		log.Debug().Err(err).Msg("rich rendering failed, falling back to plain text")
	}
	return components.EscapePlainText(content)
}

var _ Backend = (*api.Client)(nil)
