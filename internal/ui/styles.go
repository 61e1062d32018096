package ui

import (
	"github.com/charmbracelet/lipgloss"

	"chatwidget/internal/config"
)

// PanelStyles styles the widget panel scope.
type PanelStyles struct {
	Frame        lipgloss.Style
	TitleBar     lipgloss.Style
	Handle       lipgloss.Style
	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	FailedBubble lipgloss.Style
	Pending      lipgloss.Style
	Input        lipgloss.Style
	Hint         lipgloss.Style
}

// LauncherStyles styles the launcher scope.
type LauncherStyles struct {
	Button lipgloss.Style
}

// RootStyles styles the host chrome outside the widget's own subtree, the
// scope the original kept consistent for global rules like scrollbar colors.
type RootStyles struct {
	Backdrop lipgloss.Style
}

func panelStylesFor(theme config.Theme) PanelStyles {
	if theme == config.ThemeDark {
		return PanelStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1),
			TitleBar: lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Background(lipgloss.Color("235")).
				Padding(0, 1).
				Bold(true),
			Handle: lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")),
			UserBubble: lipgloss.NewStyle().
				Foreground(lipgloss.Color("75")),
			BotBubble: lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")),
			FailedBubble: lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true),
			Pending: lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true),
			Input: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(lipgloss.Color("238")),
			Hint: lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")),
		}
	}
	return PanelStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("61")).
			Padding(0, 1),
		TitleBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("55")).
			Background(lipgloss.Color("254")).
			Padding(0, 1).
			Bold(true),
		Handle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("26")),
		BotBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")),
		FailedBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("124")).
			Bold(true),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("250")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

func launcherStylesFor(theme config.Theme) LauncherStyles {
	if theme == config.ThemeDark {
		return LauncherStyles{
			Button: lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 2).
				Bold(true),
		}
	}
	return LauncherStyles{
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("61")).
			Padding(0, 2).
			Bold(true),
	}
}

func rootStylesFor(theme config.Theme) RootStyles {
	if theme == config.ThemeDark {
		return RootStyles{
			Backdrop: lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")),
		}
	}
	return RootStyles{
		Backdrop: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// scopedStyles holds the three style scopes the theme controller keeps
// consistent. Each scope adapter below restyles exactly one of them.
type scopedStyles struct {
	panel    PanelStyles
	launcher LauncherStyles
	root     RootStyles
}

func newScopedStyles(theme config.Theme) *scopedStyles {
	return &scopedStyles{
		panel:    panelStylesFor(theme),
		launcher: launcherStylesFor(theme),
		root:     rootStylesFor(theme),
	}
}

type panelScope struct{ styles *scopedStyles }

func (s panelScope) ApplyTheme(theme config.Theme) {
	s.styles.panel = panelStylesFor(theme)
}

type launcherScope struct{ styles *scopedStyles }

func (s launcherScope) ApplyTheme(theme config.Theme) {
	s.styles.launcher = launcherStylesFor(theme)
}

type rootScope struct{ styles *scopedStyles }

func (s rootScope) ApplyTheme(theme config.Theme) {
	s.styles.root = rootStylesFor(theme)
}
