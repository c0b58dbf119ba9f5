package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHub interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type EventsHandler struct {
	hub EventHub
}

func NewEventsHandler(hub EventHub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// HandleEvents godoc
// @Summary      Live change feed
// @Description  Upgrades to a WebSocket. Every write publishes {type, id, actor_id, at}; pages re-fetch on receipt.
// @Tags         events
// @Success      101
// @Router       /events [get]
func (h *EventsHandler) HandleEvents(ctx *gin.Context) {
	// The upgrader has already written the HTTP error on failure.
	if err := h.hub.ServeWS(ctx.Writer, ctx.Request); err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(fmt.Errorf("v1.HandleEvents -> %w", err)))
	}
}
