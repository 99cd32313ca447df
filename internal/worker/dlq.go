package worker

// Jobs whose handler failed land in dlq:{queue}. RetryCron re-drives them
// until MaxJobAttempts; after that they are parked in dlq:{queue}:agotados
// for manual inspection.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix      = "dlq:"
	DLQAgotados    = ":agotados"
	MaxJobAttempts = 3
)

// DLQEntry keeps the failed job as it was enqueued, with its attempt counter
// already incremented.
type DLQEntry struct {
	Queue    string    `json:"queue"`
	Job      Job       `json:"job"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// SendToDLQ records one more failed attempt of job.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	job.Attempts++
	entry := DLQEntry{Queue: queue, Job: job, Reason: reason, FailedAt: time.Now().UTC()}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to push")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("dlq: job moved to dead letter queue")
}

// EstadoCola counts the jobs of one queue at each stage.
type EstadoCola struct {
	Pendientes int64 `json:"pending"`
	Fallidos   int64 `json:"failed"`
	Agotados   int64 `json:"exhausted"`
}

// Colas lists the queues served by the pool.
var Colas = []string{QueuePDF, QueueEmail}

// EstadoColas reads the length of every queue, its DLQ and its parking list
// in a single pipeline.
func EstadoColas(ctx context.Context, rdb *redis.Client) (map[string]EstadoCola, error) {
	pipe := rdb.Pipeline()
	type lens struct{ pend, dlq, agot *redis.IntCmd }
	cmds := make(map[string]lens, len(Colas))
	for _, q := range Colas {
		cmds[q] = lens{
			pend: pipe.LLen(ctx, q),
			dlq:  pipe.LLen(ctx, DLQPrefix+q),
			agot: pipe.LLen(ctx, DLQPrefix+q+DLQAgotados),
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	out := make(map[string]EstadoCola, len(cmds))
	for q, c := range cmds {
		out[q] = EstadoCola{Pendientes: c.pend.Val(), Fallidos: c.dlq.Val(), Agotados: c.agot.Val()}
	}
	return out, nil
}
