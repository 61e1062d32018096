package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
	"chatwidget/internal/widget"
)

// Model is the terminal host embedding the widget core. It plays the part of
// the host page: it feeds the core viewport and pointer events, renders its
// state, and runs each outbound send as an independent command settled by a
// per-indicator message.
type Model struct {
	ctx    context.Context
	widget *widget.Widget
	styles *scopedStyles

	input   textinput.Model
	spinner spinner.Model

	termWidth  int
	termHeight int
	booted     bool
}

// New wires the widget core to its three themed scopes and builds the host
// model. Boot runs asynchronously from Init.
func New(ctx context.Context, cfg config.Config, store prefs.Store, backend widget.Backend) *Model {
	styles := newScopedStyles(cfg.Theme)
	w := widget.New(cfg, store, backend,
		panelScope{styles},
		launcherScope{styles},
		rootScope{styles},
	)

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = 2000
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return &Model{
		ctx:     ctx,
		widget:  w,
		styles:  styles,
		input:   ti,
		spinner: sp,
	}
}

// Widget exposes the embedded core, mainly for tests.
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Init starts boot, the spinner, and input blinking (bubbletea interface).
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			m.widget.Boot(m.ctx)
			return bootDoneMsg{}
		},
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update handles messages (bubbletea interface).
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applyViewport()
		return m, nil

	case bootDoneMsg:
		m.booted = true
		m.applyViewport()
		return m, nil

	case sendResultMsg:
		m.widget.Exchange().Complete(msg.indicatorID, msg.resp, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	default:
		return m, nil
	}
}

func (m *Model) applyViewport() {
	if !m.booted || m.termWidth == 0 {
		return
	}
	layout := NewLayout(m.termWidth, m.termHeight)
	m.widget.SetViewport(layout.Viewport())
	m.syncContentWidth()
}

func (m *Model) syncContentWidth() {
	layout := NewLayout(m.termWidth, m.termHeight)
	rect := layout.PanelRect(m.widget.Resize().Size(), m.widget.Config().Position)
	inner := rect.Cols - 4
	if inner > 20 {
		m.widget.SetContentWidth(inner)
	}
	m.input.Width = maxInt(10, inner-4)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if !m.booted {
		return m, nil
	}

	if !m.widget.Open() {
		switch msg.String() {
		case "enter", " ", "space", "o":
			m.widget.ToggleOpen()
			m.input.Focus()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.widget.ToggleOpen()
		m.input.Blur()
		return m, nil

	case "ctrl+t":
		m.widget.ToggleTheme()
		return m, nil

	case "enter":
		out, ok := m.widget.Exchange().Begin(m.input.Value())
		if !ok {
			return m, nil
		}
		m.input.Reset()
		return m, m.sendCmd(out)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.booted {
		return m, nil
	}

	layout := NewLayout(m.termWidth, m.termHeight)
	anchor := m.widget.Config().Position
	launcher := layout.LauncherRect(anchor, lipgloss.Width(m.launcherView()))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if launcher.Contains(msg.X, msg.Y) {
			if m.widget.ToggleOpen() {
				m.input.Focus()
			} else {
				m.input.Blur()
			}
			return m, nil
		}
		if m.widget.Open() {
			m.widget.Resize().PointerDown(layout.PointerPx(msg.X, msg.Y))
		}

	case tea.MouseActionMotion:
		if m.widget.Resize().Dragging() {
			m.widget.Resize().PointerMove(layout.PointerPx(msg.X, msg.Y))
			m.syncContentWidth()
		}

	case tea.MouseActionRelease:
		m.widget.Resize().PointerUp()
	}

	return m, nil
}

func (m *Model) sendCmd(out widget.OutboundMessage) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.widget.Exchange().Dispatch(m.ctx, out)
		return sendResultMsg{indicatorID: out.IndicatorID, resp: resp, err: err}
	}
}

// View renders the host frame with the launcher and, when open, the widget
// panel overlaid at the cell region derived from the core's pixel bounds
// (bubbletea interface).
func (m *Model) View() string {
	if m.termWidth == 0 || m.termHeight == 0 || !m.booted {
		return "Initializing..."
	}

	layout := NewLayout(m.termWidth, m.termHeight)
	anchor := m.widget.Config().Position

	rows := make([]string, m.termHeight)
	rows[0] = m.styles.root.Backdrop.Render("host page — ctrl+c quits")

	if m.widget.Open() {
		rect := layout.PanelRect(m.widget.Resize().Size(), anchor)
		indent := strings.Repeat(" ", maxInt(0, rect.X))
		for i, line := range m.renderPanel(rect) {
			y := rect.Y + i
			if y >= 0 && y < m.termHeight {
				rows[y] = indent + line
			}
		}
	}

	launcher := m.launcherView()
	lRect := layout.LauncherRect(anchor, lipgloss.Width(launcher))
	if lRect.Y < m.termHeight {
		rows[lRect.Y] = strings.Repeat(" ", maxInt(0, lRect.X)) + launcher
	}

	return strings.Join(rows, "\n")
}

func (m *Model) launcherView() string {
	label := m.widget.LauncherIcon()
	if !m.widget.Open() {
		label += " " + m.widget.Config().Title
	}
	return m.styles.launcher.Button.Render(label)
}

func (m *Model) renderPanel(rect CellRect) []string {
	inner := maxInt(20, rect.Cols-4)

	titleBar := m.renderTitleBar(inner)
	inputLine := m.styles.panel.Input.Width(inner).Render(m.input.View())

	// Frame borders take 2 rows, the title 1, the input 2.
	convRows := maxInt(1, rect.Rows-5)
	conv := m.renderConversation(inner, convRows)

	body := strings.Join([]string{titleBar, conv, inputLine}, "\n")
	panel := m.styles.panel.Frame.Width(rect.Cols - 2).Render(body)
	return strings.Split(panel, "\n")
}

func (m *Model) renderTitleBar(width int) string {
	handle := m.styles.panel.Handle.Render("◤")
	if m.widget.Config().Position == config.PositionLeft {
		handle = m.styles.panel.Handle.Render("◥")
	}
	hints := m.styles.panel.Hint.Render("ctrl+t theme · esc close")

	title := truncate(m.widget.Config().Title, maxInt(4, width-lipgloss.Width(hints)-4))
	bar := handle + " " + title
	gap := width - lipgloss.Width(bar) - lipgloss.Width(hints)
	if gap < 1 {
		gap = 1
	}
	if m.widget.Config().Position == config.PositionLeft {
		bar = title + strings.Repeat(" ", gap) + hints + " " + handle
		return m.styles.panel.TitleBar.Width(width).Render(bar)
	}
	return m.styles.panel.TitleBar.Width(width).Render(bar + strings.Repeat(" ", gap) + hints)
}

func (m *Model) renderConversation(width, height int) string {
	var lines []string
	bubbles := m.widget.Log().Bubbles()
	for i, b := range bubbles {
		lines = append(lines, strings.Split(m.renderBubble(b, width), "\n")...)
		if i < len(bubbles)-1 {
			lines = append(lines, "")
		}
	}

	// Pin to the bottom: the newest exchange is always visible.
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBubble(b widget.Bubble, width int) string {
	if b.Pending {
		return m.styles.panel.Pending.Render(m.spinner.View() + " thinking...")
	}

	switch {
	case b.Role == widget.RoleUser:
		return m.styles.panel.UserBubble.Render("👤 " + wordWrap(b.Content, width-3))

	case b.Failed:
		return m.styles.panel.FailedBubble.Render("⚠ " + wordWrap(b.Content, width-3))

	default:
		rendered := m.widget.RenderContent(b.Content)
		if !strings.Contains(rendered, "\x1b") {
			rendered = m.styles.panel.BotBubble.Render(wordWrap(rendered, width-3))
		}
		lines := strings.Split(rendered, "\n")
		if len(lines) > 0 {
			lines[0] = "🤖 " + lines[0]
			for i := 1; i < len(lines); i++ {
				lines[i] = "   " + lines[i]
			}
		}
		return strings.Join(lines, "\n")
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var result []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len()+len(word)+1 > width {
			if currentLine.Len() > 0 {
				result = append(result, currentLine.String())
				currentLine.Reset()
			}
		}
		if currentLine.Len() > 0 {
			currentLine.WriteString(" ")
		}
		currentLine.WriteString(word)
	}
	if currentLine.Len() > 0 {
		result = append(result, currentLine.String())
	}

	return strings.Join(result, "\n")
}
