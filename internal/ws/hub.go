// Package ws implements the swap-status fan-out over WebSocket: a hub of
// connected clients, a reverse index from intent id to subscribers, and a
// broadcast path the swap service pushes status changes through.
//
// The hub is a lifecycle-scoped object injected into the handler and the swap
// service; there is no package-level registry. All registry mutation happens
// under one mutex.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

const (
	// pingInterval is how often the hub pings every connection.
	pingInterval = 30 * time.Second

	// idleTimeout is how long a connection may stay silent before the sweep
	// closes it. Pongs and inbound messages both count as activity.
	idleTimeout = 60 * time.Second

	writeTimeout = 10 * time.Second

	maxMessageSize = 4096
)

// TokenValidator checks a bearer token and returns the session it belongs
// to. The auth service implements it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (models.Token, error)
}

// client is one connected socket plus its subscription set. Writes are
// serialized per client; registry membership is the hub's business.
type client struct {
	id   string
	conn *websocket.Conn

	// userAddress is set after a successful authenticate message.
	userAddress string

	// subscriptions is the forward index: the intent ids this client follows.
	subscriptions map[string]struct{}

	lastSeen time.Time

	writeMu sync.Mutex
}

// send writes one JSON message with the write deadline applied.
func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

// Hub owns the client registry and the reverse intent-id index and fans
// swap-status events out to subscribers.
type Hub struct {
	upgrader  websocket.Upgrader
	validator TokenValidator
	uuid      *utils.UUIDGenerator
	logger    *logger.Logger

	mu      sync.Mutex
	clients map[string]*client
	// subscribers is the reverse index: intent id → subscribed client ids.
	// An entry is removed as soon as its set empties.
	subscribers map[string]map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	pingInterval time.Duration
	idleTimeout  time.Duration
}

// NewHub constructs a Hub and starts its liveness sweep. Call Close on
// shutdown.
func NewHub(validator TokenValidator, logger *logger.Logger) *Hub {
	return newHub(validator, logger, pingInterval, idleTimeout)
}

func newHub(validator TokenValidator, logger *logger.Logger, pingEvery, idleAfter time.Duration) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser frontend runs on a different origin in every
			// deployment; subscription data is not sensitive.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		validator:    validator,
		uuid:         utils.NewUUIDGenerator(),
		logger:       logger,
		clients:      make(map[string]*client),
		subscribers:  make(map[string]map[string]struct{}),
		done:         make(chan struct{}),
		pingInterval: pingEvery,
		idleTimeout:  idleAfter,
	}

	h.wg.Add(1)
	go h.sweepLoop()

	return h
}

// SetValidator installs the token validator after construction. The hub and
// the auth service are built in a cycle (the swap service needs the hub as
// notifier, the hub needs the auth service), so main wires the validator
// last. A nil validator rejects every authenticate message.
func (h *Hub) SetValidator(v TokenValidator) {
	h.mu.Lock()
	h.validator = v
	h.mu.Unlock()
}

func (h *Hub) tokenValidator() TokenValidator {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.validator
}

// HandleConnection upgrades the request and runs the connection until the
// peer goes away. Intended to be mounted as the GET /ws handler.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:            h.uuid.Generate(),
		conn:          conn,
		subscriptions: make(map[string]struct{}),
		lastSeen:      time.Now(),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	log.Info().Str("client_id", c.id).Msg("websocket client connected")

	if err = c.send(serverMessage{Type: msgConnected, ClientID: c.id}); err != nil {
		h.removeClient(c.id)
		return
	}

	h.readPump(r.Context(), c)
}

// readPump consumes inbound messages until the connection errors or the hub
// shuts down. It runs on the request goroutine.
func (h *Hub) readPump(ctx context.Context, c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		h.touch(c.id)
		return c.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	})

	defer h.removeClient(c.id)

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.touch(c.id)
		_ = c.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))

		switch msg.Type {
		case msgPing:
			_ = c.send(serverMessage{Type: msgPong})

		case msgSubscribe:
			if msg.IntentID == "" {
				_ = c.send(serverMessage{Type: msgError, Message: "intent_id is required"})
				continue
			}
			h.subscribe(c.id, msg.IntentID)
			_ = c.send(serverMessage{Type: msgSubscribed, IntentID: msg.IntentID})

		case msgUnsubscribe:
			h.unsubscribe(c.id, msg.IntentID)
			_ = c.send(serverMessage{Type: msgUnsubscribed, IntentID: msg.IntentID})

		case msgAuthenticate:
			validator := h.tokenValidator()
			if validator == nil {
				_ = c.send(serverMessage{Type: msgError, Message: "invalid token"})
				continue
			}
			token, err := validator.ValidateToken(ctx, msg.Token)
			if err != nil {
				_ = c.send(serverMessage{Type: msgError, Message: "invalid token"})
				continue
			}
			h.mu.Lock()
			c.userAddress = token.UserAddress
			h.mu.Unlock()
			_ = c.send(serverMessage{Type: msgAuthenticated, UserAddress: token.UserAddress})

		default:
			_ = c.send(serverMessage{Type: msgError, Message: "unknown message type"})
		}
	}
}

// subscribe is idempotent: subscribing twice to the same intent id is a
// no-op.
func (h *Hub) subscribe(clientID, intentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}

	c.subscriptions[intentID] = struct{}{}
	if h.subscribers[intentID] == nil {
		h.subscribers[intentID] = make(map[string]struct{})
	}
	h.subscribers[intentID][clientID] = struct{}{}
}

func (h *Hub) unsubscribe(clientID, intentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		delete(c.subscriptions, intentID)
	}
	if set, ok := h.subscribers[intentID]; ok {
		delete(set, clientID)
		if len(set) == 0 {
			delete(h.subscribers, intentID)
		}
	}
}

// removeClient drops the client from every index and closes its socket.
// Safe to call more than once.
func (h *Hub) removeClient(clientID string) {
	h.mu.Lock()
	c, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
		for intentID := range c.subscriptions {
			if set, found := h.subscribers[intentID]; found {
				delete(set, clientID)
				if len(set) == 0 {
					delete(h.subscribers, intentID)
				}
			}
		}
	}
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		h.logger.Info().Str("client_id", clientID).Msg("websocket client disconnected")
	}
}

// touch records activity for the liveness sweep.
func (h *Hub) touch(clientID string) {
	h.mu.Lock()
	if c, ok := h.clients[clientID]; ok {
		c.lastSeen = time.Now()
	}
	h.mu.Unlock()
}

// BroadcastSwapStatus sends one swap_status_update to every live subscriber
// of the intent id. Clients whose socket errors on write are evicted from all
// indices. Implements the swap service's StatusNotifier.
func (h *Hub) BroadcastSwapStatus(intentID string, status models.SwapStatus, extra models.StatusExtra) {
	event := serverMessage{
		Type:     msgSwapStatusUpdate,
		IntentID: intentID,
		Status:   string(status),
	}
	if extra.TxHash != nil {
		event.TxHash = *extra.TxHash
	}
	if extra.Error != nil {
		event.Error = *extra.Error
	}
	if extra.OutputAmount != nil {
		event.OutputAmount = *extra.OutputAmount
	}

	h.mu.Lock()
	targets := make([]*client, 0, len(h.subscribers[intentID]))
	for clientID := range h.subscribers[intentID] {
		if c, ok := h.clients[clientID]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.send(event); err != nil {
			h.logger.Err(err).Str("client_id", c.id).Str("intent_id", intentID).Msg("broadcast write failed, evicting client")
			h.removeClient(c.id)
		}
	}
}

// sweepLoop pings every connection on a fixed cadence and closes the ones
// that have been silent past the idle timeout.
func (h *Hub) sweepLoop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.mu.Lock()
			stale := make([]string, 0)
			live := make([]*client, 0, len(h.clients))
			cutoff := time.Now().Add(-h.idleTimeout)
			for id, c := range h.clients {
				if c.lastSeen.Before(cutoff) {
					stale = append(stale, id)
				} else {
					live = append(live, c)
				}
			}
			h.mu.Unlock()

			for _, id := range stale {
				h.logger.Info().Str("client_id", id).Msg("closing idle websocket client")
				h.removeClient(id)
			}
			for _, c := range live {
				c.writeMu.Lock()
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				c.writeMu.Unlock()
			}
		}
	}
}

// Close stops the sweep and closes every connection.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		clients := make([]string, 0, len(h.clients))
		for id := range h.clients {
			clients = append(clients, id)
		}
		h.mu.Unlock()

		for _, id := range clients {
			h.removeClient(id)
		}
	})
}

// clientCount and subscriberCount expose registry sizes for tests.
func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) subscriberCount(intentID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[intentID])
}
