package handler

import (
	"encoding/json"
	"io"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/notify"

	"github.com/gin-gonic/gin"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

type EventsHandler struct{ broker *notify.Broker }

func NewEventsHandler(broker *notify.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

// Stream is the SSE endpoint behind GET /v1/events. Each event names the
// collections that changed; terminals refetch those and nothing else.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events, cancel := h.broker.Subscribe()
	defer cancel()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		case <-ticker.C:
			c.SSEvent("heartbeat", time.Now().Format(time.RFC3339))
			return true
		}
	})
}
