package widget

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"chatwidget/internal/api"
	"chatwidget/internal/prefs"
)

// HistoryFetcher reads the ordered transcript for an identity.
type HistoryFetcher interface {
	History(ctx context.Context, userID string) ([]api.HistoryItem, error)
}

// HistorySync replays a prior conversation on boot when a cached identity
// exists. Failure here is silent and non-fatal: the default greeting stays
// untouched unless a non-empty transcript actually arrives.
type HistorySync struct {
	fetcher HistoryFetcher
	store   prefs.Store
	log     *Log
}

// NewHistorySync creates the boot-time history loader.
func NewHistorySync(fetcher HistoryFetcher, store prefs.Store, log *Log) *HistorySync {
	return &HistorySync{
		fetcher: fetcher,
		store:   store,
		log:     log,
	}
}

// Run fetches and replays the transcript. Without a cached identity it does
// nothing. A fetch error or an empty transcript leaves the log as is; a
// non-empty transcript clears the greeting and replays every entry in the
// order received.
func (h *HistorySync) Run(ctx context.Context) {
	userID, ok := h.store.Get(prefs.KeyUserID)
	if !ok || userID == "" {
		return
	}

	items, err := h.fetcher.History(ctx, userID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("history fetch failed, keeping greeting")
		return
	}
	if len(items) == 0 {
		return
	}

	h.log.Clear()
	for _, item := range items {
		role := RoleUser
		if item.Role == "assistant" {
			role = RoleBot
		}
		h.log.Append(Bubble{
			ID:      uuid.NewString(),
			Role:    role,
			Content: item.Content,
		})
	}
}
