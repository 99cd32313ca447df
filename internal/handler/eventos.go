package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crkitchen/internal/apierror"
	"crkitchen/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Suscriptor delivers change events published by any instance.
type Suscriptor interface {
	Suscribir(ctx context.Context) (<-chan infra.Evento, error)
}

type EventosHandler struct {
	sub       Suscriptor
	keepAlive time.Duration
}

func NewEventosHandler(sub Suscriptor, keepAlive time.Duration) *EventosHandler {
	if keepAlive <= 0 {
		keepAlive = 20 * time.Second
	}
	return &EventosHandler{sub: sub, keepAlive: keepAlive}
}

// Stream GET /v1/eventos: Server-Sent Events. Sends "connected" on open, each
// change as data: {type,id,timestamp}, and a periodic keep-alive comment.
func (h *EventosHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	eventos, err := h.sub.Suscribir(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sse: subscribe failed")
		c.JSON(http.StatusServiceUnavailable, apierror.New("Notificaciones no disponibles"))
		return
	}

	clienteID := uuid.NewString()
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	escribir := func(v interface{}) bool {
		data, err := json.Marshal(v)
		if err != nil {
			return true
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return false
		}
		c.Writer.Flush()
		return true
	}

	if !escribir(gin.H{"type": "connected", "id": clienteID}) {
		return
	}
	log.Debug().Str("client_id", clienteID).Msg("sse: client connected")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("client_id", clienteID).Msg("sse: client disconnected")
			return
		case ev, ok := <-eventos:
			if !ok || !escribir(ev) {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": keep-alive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
