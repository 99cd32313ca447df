package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Evento describes a change in a collection. Id is empty for bulk writes.
type Evento struct {
	Tipo  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Fecha int64  `json:"timestamp"`
}

// Notificador fans change events out to every API instance through a Redis
// pub/sub channel; each instance relays them to its SSE clients.
type Notificador struct {
	rdb   *redis.Client
	canal string
	now   func() time.Time
}

func NewNotificador(rdb *redis.Client, canal string) *Notificador {
	return &Notificador{rdb: rdb, canal: canal, now: time.Now}
}

// Publicar is best-effort: a failed publish is logged and returned but the
// write that triggered it has already succeeded.
func (n *Notificador) Publicar(ctx context.Context, tipo, id string) error {
	data, err := json.Marshal(Evento{Tipo: tipo, ID: id, Fecha: n.now().UnixMilli()})
	if err != nil {
		return err
	}
	if err := n.rdb.Publish(ctx, n.canal, data).Err(); err != nil {
		log.Warn().Err(err).Str("type", tipo).Str("id", id).Msg("notificador: publish failed")
		return err
	}
	return nil
}

// Suscribir returns a channel of events that is closed when ctx ends.
func (n *Notificador) Suscribir(ctx context.Context) (<-chan Evento, error) {
	sub := n.rdb.Subscribe(ctx, n.canal)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan Evento, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Evento
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Warn().Err(err).Msg("notificador: invalid event payload")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
