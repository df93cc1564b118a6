package stream

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/GoPolymarket/go-clob-client/internal/pkg/logger"
	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/gorilla/websocket"
)

const DefaultUserWSURL = "wss://ws-subscriptions-clob.polymarket.com/ws/user"

// Fill is one execution reported on the user channel.
type Fill struct {
	ID        string `json:"id"`
	Market    string `json:"market"`
	AssetID   string `json:"asset_id"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Side      string `json:"side"`
	Timestamp string `json:"timestamp"`
}

// UserStream follows the authenticated user channel and records fills. The
// websocket auth payload reuses the same HMAC scheme as L2 REST headers.
type UserStream struct {
	url   string
	creds clobtypes.ApiCreds
	conn  *websocket.Conn
	fills []Fill
	mu    sync.RWMutex
}

func NewUserStream(url string, creds clobtypes.ApiCreds) *UserStream {
	if url == "" {
		url = DefaultUserWSURL
	}
	return &UserStream{
		url:   url,
		creds: creds,
		fills: make([]Fill, 0),
	}
}

func (s *UserStream) Start() {
	go s.connectAndRead()
}

func (s *UserStream) Stop() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// Fills returns a copy of the fills seen so far.
func (s *UserStream) Fills() []Fill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Fill, len(s.fills))
	copy(out, s.fills)
	return out
}

func (s *UserStream) connectAndRead() {
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		logger.Error("user stream dial failed", "error", err)
		return
	}
	s.conn = conn
	defer conn.Close()

	if err := s.authenticate(); err != nil {
		logger.Error("user stream auth failed", "error", err)
		return
	}

	sub := map[string]any{
		"type":         "subscribe",
		"channel_name": "user",
	}
	if err := conn.WriteJSON(sub); err != nil {
		logger.Error("user stream subscribe failed", "error", err)
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			logger.Error("user stream read failed", "error", err)
			return
		}
		s.handleMessage(raw)
	}
}

func (s *UserStream) authenticate() error {
	ts := time.Now().Unix()
	sig, err := auth.BuildHMACSignature(s.creds.Secret, ts, "GET", "/ws/user", "")
	if err != nil {
		return err
	}

	return s.conn.WriteJSON(map[string]string{
		"type":       "auth",
		"key":        s.creds.Key,
		"signature":  sig,
		"timestamp":  strconv.FormatInt(ts, 10),
		"passphrase": s.creds.Passphrase,
	})
}

type userEvent struct {
	EventType string `json:"event_type"`
	Fill
}

func (s *UserStream) handleMessage(raw []byte) {
	var events []userEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		var single userEvent
		if err2 := json.Unmarshal(raw, &single); err2 != nil {
			return
		}
		events = []userEvent{single}
	}

	for _, ev := range events {
		if ev.EventType != "trade" && ev.EventType != "fills" {
			continue
		}
		s.mu.Lock()
		s.fills = append(s.fills, ev.Fill)
		s.mu.Unlock()
	}
}
