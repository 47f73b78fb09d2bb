package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
)

// Client is an observer connection.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to an observer server at addr (host:port) and subscribes.
func Dial(ctx context.Context, addr string, every int) (*Client, error) {
	url := addr
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		url = "ws://" + addr + "/ws"
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("observer: dial %s: %w", url, err)
	}
	c := &Client{conn: conn}
	if err := c.Subscribe(every); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Subscribe sends a SUBSCRIBE message.
func (c *Client) Subscribe(every int) error {
	return c.conn.WriteJSON(SubscribeMsg{Type: TypeSubscribe, ProtocolVersion: Version, Every: every})
}

// Command sends a command; its result arrives through Next.
func (c *Client) Command(cmd CommandMsg) error {
	cmd.Type = TypeCommand
	return c.conn.WriteJSON(cmd)
}

// Next blocks for the next message. Exactly one of the results is non-nil.
func (c *Client) Next() (*FrameMsg, *ResultMsg, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, nil, fmt.Errorf("observer: bad message: %w", err)
	}
	switch head.Type {
	case TypeFrame:
		var f FrameMsg
		if err := json.Unmarshal(msg, &f); err != nil {
			return nil, nil, fmt.Errorf("observer: bad frame: %w", err)
		}
		return &f, nil, nil
	case TypeResult:
		var r ResultMsg
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, nil, fmt.Errorf("observer: bad result: %w", err)
		}
		return nil, &r, nil
	default:
		return nil, nil, fmt.Errorf("observer: unexpected message type %q", head.Type)
	}
}

// Close sends a normal closure and closes the connection.
func (c *Client) Close() error {
	closeWith(c.conn, websocket.CloseNormalClosure, "bye")
	return c.conn.Close()
}
