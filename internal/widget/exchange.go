package widget

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"chatwidget/internal/api"
	"chatwidget/internal/prefs"
)

// FailureReply is shown in place of a bot reply when a send fails.
const FailureReply = "Sorry, something went wrong. Please try again."

// ChatSender issues one message exchange with the backend.
type ChatSender interface {
	Chat(ctx context.Context, message, userID string) (*api.ChatResponse, error)
}

// OutboundMessage is one tracked in-flight send. The indicator id ties the
// eventual completion back to its own loading bubble, so overlapping sends
// settle independently with no shared counter and no ordering promise.
type OutboundMessage struct {
	IndicatorID string
	Message     string
	UserID      string
}

// MessageExchange owns the send/receive protocol: user bubble, loading
// indicator, exactly one outbound request, and the reply or failure bubble.
type MessageExchange struct {
	sender ChatSender
	store  prefs.Store
	log    *Log
}

// NewMessageExchange creates the exchange over the given backend, preference
// store and message log.
func NewMessageExchange(sender ChatSender, store prefs.Store, log *Log) *MessageExchange {
	return &MessageExchange{
		sender: sender,
		store:  store,
		log:    log,
	}
}

// Begin starts a send. Blank text is a no-op: nothing is appended and no
// request may be issued. Otherwise it appends the user bubble and a uniquely
// identified loading indicator, and returns the outbound message carrying
// the trimmed text and the cached identity (empty for none).
func (e *MessageExchange) Begin(text string) (OutboundMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return OutboundMessage{}, false
	}

	e.log.Append(Bubble{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: text,
	})

	indicatorID := uuid.NewString()
	e.log.Append(Bubble{
		ID:      indicatorID,
		Role:    RoleBot,
		Pending: true,
	})

	userID, _ := e.store.Get(prefs.KeyUserID)
	return OutboundMessage{
		IndicatorID: indicatorID,
		Message:     text,
		UserID:      userID,
	}, true
}

// Dispatch issues the outbound request. The host runs this off the UI flow
// and feeds the result back into Complete.
func (e *MessageExchange) Dispatch(ctx context.Context, out OutboundMessage) (*api.ChatResponse, error) {
	return e.sender.Chat(ctx, out.Message, out.UserID)
}

// Complete settles one send. The loading indicator is removed by its own id;
// a completion for an already-settled or unknown indicator does nothing. On
// failure a generic failure bubble replaces the reply. On success the reply
// is appended in arrival order, and if no identity was cached yet the
// response's identity is cached — the first completion to arrive wins, and
// once set the identity is never regenerated.
func (e *MessageExchange) Complete(indicatorID string, resp *api.ChatResponse, err error) {
	if !e.log.RemoveByID(indicatorID) {
		return
	}

	if err != nil {
		log.Debug().Err(err).Str("indicator_id", indicatorID).Msg("chat send failed")
		e.log.Append(Bubble{
			ID:      uuid.NewString(),
			Role:    RoleBot,
			Content: FailureReply,
			Failed:  true,
		})
		return
	}

	if cached, ok := e.store.Get(prefs.KeyUserID); (!ok || cached == "") && resp.UserID != "" {
		e.store.Set(prefs.KeyUserID, resp.UserID)
	}

	e.log.Append(Bubble{
		ID:      uuid.NewString(),
		Role:    RoleBot,
		Content: resp.Response,
	})
}
