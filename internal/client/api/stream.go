// FILE: internal/client/api/stream.go
package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fasthttp/websocket"
)

// Stream is an open websocket subscription to one game
type Stream struct {
	conn *websocket.Conn
}

// Watch opens the game's websocket stream
func (c *Client) Watch(gameID string) (*Stream, error) {
	wsURL := c.BaseURL + "/api/v1/games/" + gameID + "/ws"
	switch {
	case strings.HasPrefix(wsURL, "https://"):
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	case strings.HasPrefix(wsURL, "http://"):
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	requestColor.Fprintf(c.Out, "\n[WS] %s\n", wsURL)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return &Stream{conn: conn}, nil
}

// Next blocks for the next frame
func (s *Stream) Next() (StreamMessage, error) {
	var msg StreamMessage
	err := s.conn.ReadJSON(&msg)
	return msg, err
}

// State decodes a state frame
func (m StreamMessage) State() (*GameResponse, error) {
	var g GameResponse
	if err := json.Unmarshal(m.Payload, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Stream) Close() error {
	return s.conn.Close()
}
