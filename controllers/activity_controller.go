package controller

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type ActivityController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewActivityController(st *store.Store, logger *log.Logger) *ActivityController {
	return &ActivityController{Store: st, Logger: logger}
}

// GetActivity returns the most recent audit entries, newest first
func (ac *ActivityController) GetActivity(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	entries, err := ac.Store.Activity.List(c.Context(), limit)
	if err != nil {
		return storeError(c, "Failed to list activity", err)
	}
	return c.JSON(utils.SuccessResponse(entries))
}

// activityHub fans recorded activity out to websocket subscribers.
type activityHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

var hub = &activityHub{conns: make(map[*websocket.Conn]struct{})}

func (h *activityHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *activityHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

func (h *activityHub) broadcast(entry models.ActivityLogEntry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		// A dead connection is dropped on its next read; write errors
		// here just skip the subscriber.
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}

// HandleActivityWS keeps a subscriber connected until it hangs up.
// The feed is write-only; client messages are discarded.
func HandleActivityWS(conn *websocket.Conn) {
	hub.add(conn)
	defer func() {
		hub.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// LogActivity records an audit entry and pushes it to live
// subscribers. Failures are swallowed by the store.
func LogActivity(c *fiber.Ctx, st *store.Store, action, entityType string, entityID *int64, details string) {
	entry := models.ActivityLogEntry{
		UserID:     currentUserID(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	st.Activity.Log(c.Context(), entry)
	hub.broadcast(entry)
}
