package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/pricing"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/utils"
)

// CartHub pushes cart changes to every tab a user has open. Tabs fetch the
// initial state over HTTP; the socket only carries updates after that.
type CartHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> open tabs
	broadcast  chan cartBroadcast
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	log        *zap.Logger
}

type subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

type cartBroadcast struct {
	UserID uint
	Update CartUpdate
}

// CartUpdate is the payload written to each tab.
type CartUpdate struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	Totals     pricing.Totals  `json:"totals"`
}

func NewCartHub(log *zap.Logger) *CartHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan cartBroadcast, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		log:        log,
	}
}

// Run pumps registrations and broadcasts until ctx is done.
func (h *CartHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.UserID] {
				if err := conn.WriteJSON(msg.Update); err != nil {
					h.log.Debug("ws write failed, dropping tab",
						zap.Uint("userId", msg.UserID),
						zap.Error(err))
					conn.Close()
					delete(h.clients[msg.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastCart fans the new cart state out to the user's tabs. It never
// blocks the caller: when the hub is backed up the update is dropped, the
// next one carries the full state anyway.
func (h *CartHub) BroadcastCart(userID uint, items []cart.LineItem) {
	totalItems := 0
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		totalItems += it.Quantity
		lines[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	update := CartUpdate{
		Items:      items,
		TotalItems: totalItems,
		Totals:     pricing.Calculate(lines),
	}

	select {
	case h.broadcast <- cartBroadcast{UserID: userID, Update: update}:
	default:
		h.log.Warn("cart broadcast dropped", zap.Uint("userId", userID))
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/cart
func (h *CartHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}

	sub := subscription{Conn: conn, UserID: userID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps the read side alive so control frames are answered; the
// client has nothing to say on this socket.
func (h *CartHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *CartHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, tabs := range h.clients {
		for conn := range tabs {
			conn.Close()
		}
	}
	h.clients = make(map[uint]map[*websocket.Conn]bool)
}
