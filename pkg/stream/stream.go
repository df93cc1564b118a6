// Package stream maintains live order books over the exchange's market
// websocket feed, with automatic reconnection and resubscription.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GoPolymarket/go-clob-client/internal/pkg/logger"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const (
	DefaultWSURL    = "wss://ws-subscriptions-clob.polymarket.com/ws/market"
	reconnBaseDelay = 1 * time.Second
	reconnMaxDelay  = 30 * time.Second
	pingPeriod      = 15 * time.Second
)

// MarketStream subscribes to book channels and keeps one Book per token.
type MarketStream struct {
	url         string
	conn        *websocket.Conn
	mu          sync.RWMutex
	books       map[string]*Book
	subs        []string
	ctx         context.Context
	cancel      context.CancelFunc
	isConnected bool
}

func NewMarketStream(url string) *MarketStream {
	if url == "" {
		url = DefaultWSURL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &MarketStream{
		url:    url,
		books:  make(map[string]*Book),
		subs:   make([]string, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the connection loop in a background goroutine.
func (s *MarketStream) Start() {
	go s.runLoop()
}

// Stop tears down the stream.
func (s *MarketStream) Stop() {
	s.cancel()
	if s.conn != nil {
		s.conn.Close()
	}
}

// Subscribe adds token ids to the subscription set. New ids are pushed to
// the live connection immediately when one is up.
func (s *MarketStream) Subscribe(tokenIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]string, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		if _, ok := s.books[id]; ok {
			continue
		}
		s.subs = append(s.subs, id)
		s.books[id] = NewBook(id)
		added = append(added, id)
	}

	if len(added) > 0 && s.isConnected {
		if err := s.writeSubscribe(added); err != nil {
			logger.Error("subscribe push failed", "error", err)
		}
	}
}

// Book returns the live book for a token, nil if never subscribed.
func (s *MarketStream) Book(tokenID string) *Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books[tokenID]
}

func (s *MarketStream) runLoop() {
	delay := reconnBaseDelay

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if err := s.connect(); err != nil {
			logger.Error("stream connect failed", "error", err, "retry_in", delay)
			time.Sleep(delay)
			delay *= 2
			if delay > reconnMaxDelay {
				delay = reconnMaxDelay
			}
			continue
		}

		delay = reconnBaseDelay
		s.mu.Lock()
		s.isConnected = true
		subs := make([]string, len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		if len(subs) > 0 {
			if err := s.writeSubscribeLocked(subs); err != nil {
				logger.Error("resubscribe failed", "error", err)
				s.conn.Close()
				continue
			}
		}

		s.readLoop()

		s.mu.Lock()
		s.isConnected = false
		s.mu.Unlock()
	}
}

func (s *MarketStream) connect() error {
	conn, _, err := websocket.DefaultDialer.DialContext(s.ctx, s.url, nil)
	if err != nil {
		return err
	}
	s.conn = conn

	// The feed is silent when books are quiet, so a missed pong within the
	// ping window is the only liveness signal.
	readTimeout := pingPeriod + 10*time.Second
	s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				if !s.isConnected || s.conn == nil {
					s.mu.Unlock()
					return
				}
				err := s.conn.WriteMessage(websocket.PingMessage, []byte{})
				s.mu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	return nil
}

type wsMessage struct {
	EventType string                  `json:"event_type"`
	AssetID   string                  `json:"asset_id"`
	Market    string                  `json:"market"`
	Bids      []clobtypes.OrderSummary `json:"bids"`
	Asks      []clobtypes.OrderSummary `json:"asks"`
	Changes   []wsPriceChange          `json:"changes"`
	Hash      string                  `json:"hash"`
}

type wsPriceChange struct {
	Price string `json:"price"`
	Size  string `json:"size"`
	Side  string `json:"side"`
}

func (s *MarketStream) readLoop() {
	defer s.conn.Close()

	readTimeout := pingPeriod + 10*time.Second

	for {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			logger.Error("stream read failed", "error", err)
			return
		}

		// The feed batches events into arrays but control frames arrive as
		// single objects.
		var msgs []wsMessage
		if err := json.Unmarshal(raw, &msgs); err != nil {
			var single wsMessage
			if err2 := json.Unmarshal(raw, &single); err2 != nil {
				continue
			} else {
				msgs = []wsMessage{single}
			}
		}

		for _, m := range msgs {
			switch m.EventType {
			case "book":
				s.applySnapshot(m)
			case "price_change":
				s.applyChanges(m)
			}
		}
	}
}

func (s *MarketStream) applySnapshot(msg wsMessage) {
	book := s.lookupBook(msg)
	if book == nil {
		return
	}

	bids := parseLevels(msg.Bids)
	asks := parseLevels(msg.Asks)
	book.Snapshot(bids, asks)
}

func (s *MarketStream) applyChanges(msg wsMessage) {
	book := s.lookupBook(msg)
	if book == nil {
		return
	}

	for _, ch := range msg.Changes {
		side := clobtypes.SideSell
		if ch.Side == string(clobtypes.SideBuy) {
			side = clobtypes.SideBuy
		}
		if err := book.Update(side, ch.Price, ch.Size); err != nil {
			logger.Error("bad price change", "error", err, "asset_id", book.TokenID)
		}
	}
}

func (s *MarketStream) lookupBook(msg wsMessage) *Book {
	id := msg.AssetID
	if id == "" {
		id = msg.Market
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books[id]
}

func parseLevels(raw []clobtypes.OrderSummary) []Level {
	out := make([]Level, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			continue
		}
		size, err := decimal.NewFromString(r.Size)
		if err != nil {
			continue
		}
		out = append(out, Level{Price: price, Size: size})
	}
	return out
}

func (s *MarketStream) writeSubscribe(tokenIDs []string) error {
	if s.conn == nil {
		return fmt.Errorf("no connection")
	}
	return s.conn.WriteJSON(map[string]any{
		"type":         "subscribe",
		"assets_ids":   tokenIDs,
		"channel_name": "book",
	})
}

func (s *MarketStream) writeSubscribeLocked(tokenIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeSubscribe(tokenIDs)
}
