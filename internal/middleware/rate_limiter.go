package middleware

import (
	"net/http"
	"sync"
	"time"

	"crkitchen/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana counts the requests of one IP inside a fixed window.
type ventana struct {
	count int
	fin   time.Time
}

// limitador is a fixed-window counter per IP. Login and the general API use
// separate instances.
type limitador struct {
	nombre  string
	limite  int
	periodo time.Duration
	mensaje string

	mu  sync.Mutex
	ips map[string]*ventana
	now func() time.Time
}

func newLimitador(nombre string, limite int, periodo time.Duration, mensaje string) *limitador {
	l := &limitador{
		nombre:  nombre,
		limite:  limite,
		periodo: periodo,
		mensaje: mensaje,
		ips:     make(map[string]*ventana),
		now:     time.Now,
	}
	registrar(l)
	return l
}

// permitir counts one request and returns false once the IP is over the
// limit, along with the end of its window.
func (l *limitador) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.ips[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.periodo)}
		l.ips[ip] = v
	}
	v.count++
	return v.count <= l.limite, v.fin
}

func (l *limitador) purgar() (purgadas, restantes int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for ip, v := range l.ips {
		if now.After(v.fin) {
			delete(l.ips, ip)
			purgadas++
		}
	}
	return purgadas, len(l.ips)
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", fin.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimitador("login", 20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter is the general API limiter: limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimitador("api", limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// ── Purge ────────────────────────────────────────────────────────────────────
// Expired IPs are removed periodically so the maps do not grow forever.

const purgeInterval = 5 * time.Minute

var (
	limitadores   []*limitador
	limitadoresMu sync.Mutex
	purgaOnce     sync.Once
)

func registrar(l *limitador) {
	limitadoresMu.Lock()
	limitadores = append(limitadores, l)
	limitadoresMu.Unlock()
	purgaOnce.Do(func() { go purgeExpiredEntries() })
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		limitadoresMu.Lock()
		lista := append([]*limitador(nil), limitadores...)
		limitadoresMu.Unlock()

		for _, l := range lista {
			purgadas, restantes := l.purgar()
			if purgadas > 0 {
				log.Debug().
					Str("limiter", l.nombre).
					Int("purged", purgadas).
					Int("remaining", restantes).
					Msg("rate limiter map purged")
			}
		}
	}
}
