package worker

// retry_cron.go
// Background goroutine that periodically moves failed jobs from the DLQ back
// to their source queue. Jobs that already failed MaxJobAttempts times are
// parked in dlq:{queue}:agotados instead.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB      *redis.Client
	Interval time.Duration
	Queues   []string
}

// StartRetryCron launches a background goroutine that ticks every Interval
// (30s by default) and re-drives DLQ entries. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = retryTickInterval
	}
	if len(cfg.Queues) == 0 {
		cfg.Queues = Colas
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				for _, q := range cfg.Queues {
					processRetries(ctx, cfg.RDB, q)
				}
			}
		}
	}()
}

// processRetries re-drives up to retryBatchSize entries of one DLQ and returns
// how many went back to the source queue.
func processRetries(ctx context.Context, rdb *redis.Client, queue string) int {
	dlqKey := DLQPrefix + queue
	redriven := 0
	for i := 0; i < retryBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("retry_cron: failed to pop DLQ")
			break
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("retry_cron: invalid DLQ entry, discarded")
			continue
		}

		if entry.Job.Attempts >= MaxJobAttempts {
			if err := rdb.LPush(ctx, dlqKey+DLQAgotados, raw).Err(); err != nil {
				log.Error().Err(err).Msg("retry_cron: failed to park exhausted job")
			}
			log.Error().
				Str("queue", queue).
				Str("job_type", entry.Job.Type).
				Int("attempts", entry.Job.Attempts).
				Str("reason", entry.Reason).
				Msg("retry_cron: max attempts exceeded, job parked")
			continue
		}

		if err := pushJob(ctx, rdb, queue, entry.Job); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to re-enqueue job")
			_ = rdb.LPush(ctx, dlqKey, raw).Err()
			break
		}
		redriven++
	}
	if redriven > 0 {
		log.Info().Int("count", redriven).Str("queue", queue).Msg("retry_cron: jobs re-enqueued")
	}
	return redriven
}
