package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
)

const watchReadLimit = 1 << 20

// FeedMessage is one frame of the live change feed. Change events carry an
// ID and Data; control frames ("reset", "pong", "shutdown") do not.
type FeedMessage struct {
	Type    string          `json:"type"`
	ID      uint64          `json:"id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Time    time.Time       `json:"time,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrFeedReset is returned by Watch when the server can no longer replay
// the requested events and the caller must refetch its state.
var ErrFeedReset = errors.New("kinship: feed reset, full refresh required")

// Watch streams the live change feed to fn until ctx is cancelled, fn returns
// an error, or the server shuts down. Events after lastEventID are replayed
// first; pass 0 to replay everything the server still buffers.
func (c *Client) Watch(ctx context.Context, lastEventID uint64, fn func(FeedMessage) error) error {
	u := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/v1/ws"

	opts := &websocket.DialOptions{HTTPClient: c.httpClient, HTTPHeader: http.Header{}}
	if c.apiKey != "" {
		opts.HTTPHeader.Set("Authorization", "Bearer "+c.apiKey)
	}

	conn, _, err := websocket.Dial(ctx, u, opts)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.CloseNow() //nolint:errcheck // best-effort.

	conn.SetReadLimit(watchReadLimit)

	sub, err := json.Marshal(map[string]any{"type": "subscribe", "last_event_id": lastEventID})
	if err != nil {
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read feed: %w", err)
		}

		var msg FeedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("decode feed message: %w", err)
		}

		switch msg.Type {
		case "reset":
			return ErrFeedReset
		case "shutdown":
			conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort.
			return nil
		case "pong":
			continue
		}

		if err := fn(msg); err != nil {
			return err
		}
	}
}
