package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificador_PublicarYSuscribir(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	n := NewNotificador(rdb, "test:cambios")
	n.now = func() time.Time { return time.UnixMilli(1700000000000) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventos, err := n.Suscribir(ctx)
	require.NoError(t, err)

	require.NoError(t, n.Publicar(ctx, "quotes", "q1"))

	select {
	case ev := <-eventos:
		assert.Equal(t, "quotes", ev.Tipo)
		assert.Equal(t, "q1", ev.ID)
		assert.Equal(t, int64(1700000000000), ev.Fecha)
	case <-time.After(2 * time.Second):
		t.Fatal("evento no recibido")
	}

	cancel()
	select {
	case _, ok := <-eventos:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("el canal no se cerró")
	}
}
