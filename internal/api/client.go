package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is used when the widget is configured with an empty API
// base, the equivalent of the original same-origin deployment.
const DefaultBaseURL = "http://localhost:3000"

// ErrEmptyMessage is returned when a chat request would carry a blank
// message. The backend contract forbids sending one.
var ErrEmptyMessage = errors.New("chat message must not be empty")

// ChatRequest is the body of POST /api/chat. UserID is null until the
// backend assigns an identity.
type ChatRequest struct {
	Message string  `json:"message"`
	UserID  *string `json:"user_id"`
}

// ChatResponse is the backend's reply. UserID always carries the identity,
// newly minted if the request had none.
type ChatResponse struct {
	Response string `json:"response"`
	UserID   string `json:"user_id"`
}

// HistoryItem is one transcript entry from GET /api/history/{user_id},
// ordered oldest first.
type HistoryItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the conversational backend. It adds no retry or
// cancellation policy of its own: once issued, a request runs to completion
// or failure on the transport's terms.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the given API base. An empty base falls
// back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Chat sends one user message together with the cached identity (empty
// string for none) and returns the bot reply.
func (c *Client) Chat(ctx context.Context, message, userID string) (*ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	reqBody := ChatRequest{Message: message}
	if userID != "" {
		reqBody.UserID = &userID
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "encoding chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "building chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("user_id", userID).Int("message_len", len(message)).Msg("sending chat request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sending chat request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("chat request failed: %s", resp.Status)
	}

	var out ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding chat response")
	}

	return &out, nil
}

// History fetches the ordered transcript for an identity.
func (c *Client) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	if userID == "" {
		return nil, errors.New("history requires a user id")
	}

	endpoint := fmt.Sprintf("%s/api/history/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building history request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching history")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("history request failed: %s", resp.Status)
	}

	var items []HistoryItem
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "decoding history response")
	}

	return items, nil
}
