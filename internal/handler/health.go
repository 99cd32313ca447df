package handler

import (
	"context"
	"net/http"
	"time"

	"crkitchen/internal/infra"
	"crkitchen/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity. The AI breaker state and the job queue
// lengths are informative and do not affect the status code.
func Health(db *gorm.DB, rdb *redis.Client, iaCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if iaCB != nil {
			body["ai"] = iaCB.State().String()
		}
		if redisStatus == "connected" {
			if colas, err := worker.EstadoColas(ctx, rdb); err == nil {
				body["jobs"] = colas
			}
		}
		c.JSON(status, body)
	}
}
