package order

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"grandresort/internal/domain"
	"grandresort/internal/pkg/jwt"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

// FeedEvent is one frame on the kitchen order feed.
type FeedEvent struct {
	Type          string    `json:"type"`
	OrderID       int64     `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	OrderType     string    `json:"order_type"`
	Status        string    `json:"status"`
	TableNumber   string    `json:"table_number,omitempty"`
	RoomNumber    string    `json:"room_number,omitempty"`
	EstimatedTime int       `json:"estimated_time,omitempty"`
	At            time.Time `json:"at"`
}

// screen is a single connected kitchen display. All writes to the socket,
// pings included, go through the send channel drained by one writePump;
// gorilla/websocket allows only one concurrent writer per connection.
type screen struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Feed fans order events out to connected kitchen screens. One connection
// per staff user; a reconnect replaces the old socket.
type Feed struct {
	mu      sync.RWMutex
	screens map[int64]*screen
}

func NewFeed() *Feed {
	return &Feed{
		screens: make(map[int64]*screen),
	}
}

func (f *Feed) register(s *screen) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if old, ok := f.screens[s.userID]; ok {
		close(old.send)
	}
	f.screens[s.userID] = s
}

func (f *Feed) unregister(s *screen) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.screens[s.userID]; ok && existing == s {
		delete(f.screens, s.userID)
		close(s.send)
	}
}

// Publish queues the event for every connected screen. Screens that cannot
// keep up skip the frame rather than block the caller.
func (f *Feed) Publish(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, s := range f.screens {
		select {
		case s.send <- data:
		default:
		}
	}
}

func (f *Feed) ConnectedCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.screens)
}

func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, s := range f.screens {
		delete(f.screens, id)
		close(s.send)
	}
}

// Serve registers the connection and blocks until it closes.
func (f *Feed) Serve(conn *websocket.Conn, userID int64) {
	s := &screen{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	f.register(s)

	go f.writePump(s)
	f.readPump(s)
}

// writePump is the sole writer on the connection.
func (f *Feed) writePump(s *screen) {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames. The feed is one-directional; inbound frames
// only matter for detecting the close.
func (f *Feed) readPump(s *screen) {
	defer func() {
		f.unregister(s)
		s.conn.Close()
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for staff %d: %v", s.userID, err)
			}
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler upgrades staff connections onto the kitchen feed.
type FeedHandler struct {
	feed *Feed
	jwt  *jwt.Service
}

func NewFeedHandler(feed *Feed, jwtService *jwt.Service) *FeedHandler {
	return &FeedHandler{feed: feed, jwt: jwtService}
}

// HandleWebSocket serves GET /ws/kitchen?token=JWT_TOKEN.
//
// Auth goes through a query parameter because browser WebSocket clients
// cannot set headers.
func (h *FeedHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}
	if claims.Role != string(domain.RoleStaff) && claims.Role != string(domain.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Kitchen feed is staff only",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	log.Printf("Staff %d connected to kitchen feed", claims.UserID)
	h.feed.Serve(conn, claims.UserID)
	log.Printf("Staff %d disconnected from kitchen feed", claims.UserID)
}
