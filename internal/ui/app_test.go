package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwidget/internal/api"
	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
)

type stubBackend struct {
	resp *api.ChatResponse
	err  error
}

func (s *stubBackend) Chat(ctx context.Context, message, userID string) (*api.ChatResponse, error) {
	return s.resp, s.err
}

func (s *stubBackend) History(ctx context.Context, userID string) ([]api.HistoryItem, error) {
	return nil, nil
}

func newBootedModel(t *testing.T) *Model {
	t.Helper()
	store := prefs.NewMemoryStore()
	cfg := config.Resolve(config.Defaults(), config.Overrides{}, store)
	m := New(context.Background(), cfg, store, &stubBackend{
		resp: &api.ChatResponse{Response: "Hello!", UserID: "abc123"},
	})

	m.widget.Boot(context.Background())
	var model tea.Model = m
	model, _ = model.Update(bootDoneMsg{})
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(*Model)
}

func TestModel_ViewBeforeBoot(t *testing.T) {
	store := prefs.NewMemoryStore()
	cfg := config.Resolve(config.Defaults(), config.Overrides{}, store)
	m := New(context.Background(), cfg, store, &stubBackend{})

	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_CollapsedShowsLauncherOnly(t *testing.T) {
	m := newBootedModel(t)

	view := m.View()
	assert.Contains(t, view, m.widget.Config().ButtonIcon)
	assert.Contains(t, view, m.widget.Config().Title)
	assert.NotContains(t, view, "ctrl+t theme")
}

func TestModel_OpenShowsPanelAndSyncedIcon(t *testing.T) {
	m := newBootedModel(t)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)

	require.True(t, m.widget.Open())
	assert.Equal(t, "✕", m.widget.LauncherIcon())

	view := m.View()
	assert.Contains(t, view, m.widget.Config().Title)
	assert.Contains(t, view, "✕")
}

func TestModel_SendLifecycle(t *testing.T) {
	m := newBootedModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // open
	m = model.(*Model)

	m.input.SetValue("Hi")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)
	require.NotNil(t, cmd, "a non-empty send issues a command")

	// The loading indicator is up while the send is in flight.
	bubbles := m.widget.Log().Bubbles()
	require.True(t, bubbles[len(bubbles)-1].Pending)
	indicatorID := bubbles[len(bubbles)-1].ID

	// Settle it the way the runtime would.
	result := cmd().(sendResultMsg)
	assert.Equal(t, indicatorID, result.indicatorID)
	model, _ = m.Update(result)
	m = model.(*Model)

	bubbles = m.widget.Log().Bubbles()
	last := bubbles[len(bubbles)-1]
	assert.Equal(t, "Hello!", last.Content)
	assert.False(t, last.Pending)
	assert.Equal(t, "", m.input.Value(), "input cleared on send")
}

func TestModel_EmptySendIssuesNoCommand(t *testing.T) {
	m := newBootedModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // open
	m = model.(*Model)

	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.widget.Log().Len(), "only the greeting remains")
}

func TestModel_ThemeToggleKey(t *testing.T) {
	m := newBootedModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // open
	m = model.(*Model)

	before := m.widget.Theme().Current()
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = model.(*Model)
	assert.Equal(t, before.Opposite(), m.widget.Theme().Current())
}

func TestModel_MouseDragResizesPanel(t *testing.T) {
	m := newBootedModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // open
	m = model.(*Model)

	layout := NewLayout(120, 40)
	rect := layout.PanelRect(m.widget.Resize().Size(), config.PositionRight)

	// Press in the handle cell, drag left, release.
	model, _ = m.Update(tea.MouseMsg{X: rect.X, Y: rect.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = model.(*Model)
	require.True(t, m.widget.Resize().Dragging())

	before := m.widget.Resize().Size()
	model, _ = m.Update(tea.MouseMsg{X: rect.X - 5, Y: rect.Y, Action: tea.MouseActionMotion})
	m = model.(*Model)
	assert.Greater(t, m.widget.Resize().Size().Width, before.Width)

	model, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = model.(*Model)
	assert.False(t, m.widget.Resize().Dragging())
}

func TestModel_LauncherClickToggles(t *testing.T) {
	m := newBootedModel(t)
	layout := NewLayout(120, 40)
	lRect := layout.LauncherRect(config.PositionRight, len("x"))

	model, _ := m.Update(tea.MouseMsg{X: lRect.X, Y: lRect.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = model.(*Model)
	assert.True(t, m.widget.Open())
}
