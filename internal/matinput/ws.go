package matinput

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	wsPingPeriod   = 25 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = 1 << 16
	wsDialTimeout  = 10 * time.Second
)

// WSSource reads mat presses from a WebSocket relay. The relay sends one
// JSON object per press: {"matNumber": 3, "groupId": 1}.
type WSSource struct {
	endpoint string
	buffer   int
	dialer   *websocket.Dialer
	logger   *log.Logger
}

// NewWSSource creates a relay source for a ws:// or wss:// endpoint.
func NewWSSource(endpoint string, buffer int, logger *log.Logger) (*WSSource, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("matinput: invalid relay URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("matinput: unsupported relay URL scheme %q", u.Scheme)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WSSource{
		endpoint: endpoint,
		buffer:   buffer,
		dialer:   &websocket.Dialer{Proxy: http.ProxyFromEnvironment, HandshakeTimeout: wsDialTimeout},
		logger:   logger.WithPrefix("relay"),
	}, nil
}

// Name implements Source.
func (w *WSSource) Name() string {
	return "relay"
}

// wsPress is the frame the relay sends.
type wsPress struct {
	MatNumber int    `json:"matNumber"`
	GroupID   int    `json:"groupId"`
	Key       string `json:"key,omitempty"`
}

// Subscribe implements Source. The group is passed to the relay as a query
// parameter and also filtered locally. It returns at once; the reader
// goroutine dials and a failed handshake ends the subscription with that
// error.
func (w *WSSource) Subscribe(ctx context.Context, group int) (Subscription, error) {
	u, err := url.Parse(w.endpoint)
	if err != nil {
		return nil, fmt.Errorf("matinput: invalid relay URL: %w", err)
	}
	q := u.Query()
	q.Set("group", strconv.Itoa(group))
	u.RawQuery = q.Encode()

	s, sctx := newStream(ctx, w.buffer)

	go func() {
		err := w.run(sctx, u.String(), group, s.push)
		if sctx.Err() != nil {
			err = nil
		}
		if err != nil {
			w.logger.Warn("relay stream ended", "error", err)
		}
		s.finish(err)
		s.Close()
	}()

	return s, nil
}

// run dials the relay and reads presses until the connection or ctx ends.
func (w *WSSource) run(ctx context.Context, endpoint string, group int, emit func(Press)) error {
	conn, resp, err := w.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("matinput: dial relay: %w (status %s)", err, resp.Status)
		}
		return fmt.Errorf("matinput: dial relay: %w", err)
	}
	w.logger.Debug("relay connected", "group", group)

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	// Closing the connection unblocks ReadMessage when ctx ends.
	readDone := make(chan struct{})
	defer close(readDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteTimeout))
		case <-readDone:
		}
		conn.Close()
	}()

	go w.pingLoop(ctx, conn)

	return w.readLoop(conn, group, emit)
}

func (w *WSSource) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *WSSource) readLoop(conn *websocket.Conn, group int, emit func(Press)) error {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("matinput: read relay: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var p wsPress
		if err := json.Unmarshal(msg, &p); err != nil {
			w.logger.Debug("skipping malformed frame", "error", err)
			continue
		}
		if p.GroupID != group {
			continue
		}
		emit(Press{Pad: p.MatNumber, Group: p.GroupID, Key: p.Key})
	}
}

// RelayHandler returns an http.Handler that upgrades connections and
// forwards presses from src to every client. It lets one machine with
// database access fan presses out to arcade instances on the LAN.
func RelayHandler(src Source, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		group := DefaultGroup
		if g, err := strconv.Atoi(r.URL.Query().Get("group")); err == nil {
			group = g
		}

		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			logger.Warn("upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		sub, err := src.Subscribe(r.Context(), group)
		if err != nil {
			logger.Warn("relay subscribe failed", "error", err)
			return
		}
		defer sub.Close()

		// Drain client frames so pongs and close frames are processed.
		clientGone := make(chan struct{})
		go func() {
			defer close(clientGone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case p, ok := <-sub.Presses():
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(wsPress{MatNumber: p.Pad, GroupID: p.Group, Key: p.Key}); err != nil {
					return
				}
			case <-clientGone:
				return
			}
		}
	})
}
