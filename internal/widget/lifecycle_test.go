package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwidget/internal/api"
	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
	"chatwidget/internal/ui/components"
)

func bootWidget(t *testing.T, store prefs.Store, backend Backend) *Widget {
	t.Helper()
	cfg := config.Resolve(config.Defaults(), config.Overrides{}, store)
	w := New(cfg, store, backend)
	w.Boot(context.Background())
	require.True(t, w.Ready())
	return w
}

func TestBoot_ReachesReadyWithGreeting(t *testing.T) {
	w := bootWidget(t, prefs.NewMemoryStore(), &fakeBackend{})

	assert.Equal(t, StateReady, w.State())
	assert.NotNil(t, w.Exchange())
	assert.NotNil(t, w.Resize())
	assert.NotNil(t, w.Theme())

	bubbles := w.Log().Bubbles()
	require.Len(t, bubbles, 1)
	assert.Equal(t, "welcome", bubbles[0].ID)
	assert.Equal(t, RoleBot, bubbles[0].Role)
	assert.Equal(t, w.Config().WelcomeMessage, bubbles[0].Content)
}

func TestBoot_IsIdempotent(t *testing.T) {
	w := bootWidget(t, prefs.NewMemoryStore(), &fakeBackend{})

	w.Boot(context.Background())
	assert.Equal(t, StateReady, w.State())
	assert.Equal(t, 1, w.Log().Len())
}

func TestBoot_ReplaysHistoryForKnownIdentity(t *testing.T) {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyUserID, "abc123")
	backend := &fakeBackend{
		historyFn: func(ctx context.Context, userID string) ([]api.HistoryItem, error) {
			return []api.HistoryItem{
				{Role: "user", Content: "Hi"},
				{Role: "assistant", Content: "Hello!"},
			}, nil
		},
	}

	w := bootWidget(t, store, backend)

	bubbles := w.Log().Bubbles()
	require.Len(t, bubbles, 2)
	assert.Equal(t, "Hi", bubbles[0].Content)
	assert.Equal(t, "Hello!", bubbles[1].Content)
}

func TestBoot_AppliesResolvedDimensions(t *testing.T) {
	store := prefs.NewMemoryStore()
	store.Set(prefs.KeyWidth, "520")
	store.Set(prefs.KeyHeight, "630")

	w := bootWidget(t, store, &fakeBackend{})
	w.SetViewport(Viewport{Width: 1200, Height: 800})

	assert.Equal(t, Size{Width: 520, Height: 630}, w.Resize().Size())
}

func TestToggleOpen_SyncsLauncherIcon(t *testing.T) {
	w := bootWidget(t, prefs.NewMemoryStore(), &fakeBackend{})

	assert.False(t, w.Open())
	assert.Equal(t, w.Config().ButtonIcon, w.LauncherIcon())

	assert.True(t, w.ToggleOpen())
	assert.Equal(t, "✕", w.LauncherIcon())

	assert.False(t, w.ToggleOpen())
	assert.Equal(t, w.Config().ButtonIcon, w.LauncherIcon())
}

func TestRenderContent_PlainAndRichPaths(t *testing.T) {
	w := bootWidget(t, prefs.NewMemoryStore(), &fakeBackend{})
	require.True(t, w.RichEnabled())

	// No markdown signal: rendered as escaped plain text, parser untouched.
	assert.Equal(t, "hello", w.RenderContent("hello"))
	assert.Equal(t, "redtext", w.RenderContent("\x1b[31mred\x1b[0mtext"))

	// A fenced code block goes through the rich path. Highlighting may
	// split tokens with escape codes, so strip them before asserting.
	rich := w.RenderContent("```go\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, components.EscapePlainText(rich), "fmt.Println")
	assert.NotEqual(t, "```go\nfmt.Println(\"hi\")\n```", rich)
}

func TestRenderContent_DegradedModeIsPlainOnly(t *testing.T) {
	// An unbooted widget has no renderer, the same shape as a failed
	// dependency load.
	w := New(config.Defaults(), prefs.NewMemoryStore(), &fakeBackend{})
	assert.False(t, w.RichEnabled())
	assert.Equal(t, "**bold**", w.RenderContent("**bold**"))
}

func TestEndToEnd_FirstExchangeAssignsIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Hi", req.Message)
		require.Nil(t, req.UserID)
		_ = json.NewEncoder(w).Encode(api.ChatResponse{Response: "Hello!", UserID: "abc123"})
	}))
	defer srv.Close()

	store := prefs.NewMemoryStore()
	w := bootWidget(t, store, api.NewClient(srv.URL))

	out, ok := w.Exchange().Begin("Hi")
	require.True(t, ok)
	resp, err := w.Exchange().Dispatch(context.Background(), out)
	w.Exchange().Complete(out.IndicatorID, resp, err)

	id, ok := store.Get(prefs.KeyUserID)
	require.True(t, ok)
	assert.Equal(t, "abc123", id)

	bubbles := w.Log().Bubbles()
	require.Len(t, bubbles, 3) // greeting, user, reply
	last := bubbles[len(bubbles)-1]
	assert.Equal(t, "Hello!", last.Content)
	assert.Equal(t, "Hello!", w.RenderContent(last.Content))
}
