package handlers

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/DhavalCK/actify/internal/middleware"
)

// WSEvent is the JSON message sent to connected clients
type WSEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// connection wraps a websocket connection with its user ID
type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

// Hub manages the live dashboard connections per user. After each recompute
// cascade the fresh performance/streak/stats values are pushed here.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[*connection]bool
}

// Global hub instance
var WS = &Hub{
	users: make(map[uuid.UUID]map[*connection]bool),
}

// register adds a connection to a user's room
func (h *Hub) register(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[conn.userID] == nil {
		h.users[conn.userID] = make(map[*connection]bool)
	}
	h.users[conn.userID][conn] = true
	log.Printf("WS register: user %s connected (total: %d)", conn.userID, len(h.users[conn.userID]))
}

// unregister removes a connection from a user's room
func (h *Hub) unregister(conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.users[conn.userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.users, conn.userID)
		}
	}
}

// ToUser sends an event to every open connection of one user.
func (h *Hub) ToUser(userID uuid.UUID, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.users[userID]
	if !ok {
		return
	}

	msg, err := json.Marshal(WSEvent{Type: event, Data: data})
	if err != nil {
		log.Printf("WS marshal error: %v", err)
		return
	}

	for c := range conns {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("WS write error: %v", err)
		}
	}
}

// WebSocketUpgrade is the middleware that checks the upgrade request and validates JWT
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Authenticate via query param: ?token=<jwt>
		tokenString := c.Query("token")
		if tokenString == "" {
			// Also check Authorization header for non-browser clients
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		claims, err := middleware.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleWebSocket keeps a dashboard connection open for the authenticated user
func HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}

	conn := &connection{conn: c, userID: userID}
	WS.register(conn)
	defer WS.unregister(conn)

	// Keep the connection alive; clients only send pings/keepalives.
	for {
		_, _, err := c.ReadMessage()
		if err != nil {
			break
		}
	}
}
