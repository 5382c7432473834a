package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// QueueEmail lista Redis dos jobs de e-mail.
	QueueEmail = "repcom:jobs:email"
	// DLQPrefix prefixo da lista de jobs que esgotaram as tentativas.
	DLQPrefix  = "dlq:"
)

// DLQEntry job falho com metadados para inspeção manual.
type DLQEntry struct {
	Job      Job    `json:"job"`
	Queue    string `json:"queue"`
	Reason   string `json:"reason"`
	FailedAt string `json:"failed_at"`
}

// RedisQueue fila sobre uma lista Redis (LPUSH na entrada, BRPOP na saída).
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

// Connect abre o cliente Redis a partir da URL e valida com PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("worker: serializar job: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("worker: lpush %s: %w", q.key, err)
	}
	log.Debug().Str("job_id", job.ID).Str("type", string(job.Type)).Msg("worker: job enfileirado")
	return nil
}

// Dequeue bloqueia até timeout esperando um job. Sem job devolve (nil, nil).
// Payload ilegível vai direto para a DLQ.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(res) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		log.Error().Err(err).Str("queue", q.key).Msg("worker: job ilegível descartado para a DLQ")
		q.pushDLQ(ctx, DLQEntry{Job: Job{Payload: json.RawMessage(quote(res[1]))}, Reason: err.Error()})
		return nil, nil
	}
	return &job, nil
}

// Retry devolve o job à fila com Attempt incrementado, ou o move para a DLQ
// quando as tentativas se esgotam ou o erro é permanente.
func (q *RedisQueue) Retry(ctx context.Context, job Job, cause error) error {
	job.Attempt++
	if job.Attempt >= MaxRetries || IsPermanent(cause) {
		q.pushDLQ(ctx, DLQEntry{Job: job, Reason: cause.Error()})
		return nil
	}
	log.Info().Str("job_id", job.ID).Int("attempt", job.Attempt).Err(cause).Msg("worker: job reenfileirado")
	return q.Enqueue(ctx, job)
}

// DLQLength quantidade de jobs na DLQ desta fila.
func (q *RedisQueue) DLQLength(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, DLQPrefix+q.key).Result()
}

func (q *RedisQueue) pushDLQ(ctx context.Context, entry DLQEntry) {
	entry.Queue = q.key
	entry.FailedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("worker: serializar entrada da DLQ")
		return
	}
	if err := q.rdb.LPush(ctx, DLQPrefix+q.key, data).Err(); err != nil {
		log.Error().Err(err).Str("job_id", entry.Job.ID).Msg("worker: falha ao gravar na DLQ")
		return
	}
	log.Warn().
		Str("job_id", entry.Job.ID).
		Str("type", string(entry.Job.Type)).
		Int("attempts", entry.Job.Attempt).
		Str("reason", entry.Reason).
		Msg("worker: job movido para a DLQ")
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
