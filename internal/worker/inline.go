package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// InlineQueue executa cada job numa goroutine do próprio processo, com as
// mesmas tentativas da fila Redis. Usada quando REDIS_URL não está definido.
type InlineQueue struct {
	handler Handler
	backoff time.Duration
	wg      sync.WaitGroup
}

func NewInlineQueue(handler Handler, backoff time.Duration) *InlineQueue {
	return &InlineQueue{handler: handler, backoff: backoff}
}

// Enqueue nunca falha; o job segue mesmo que ctx seja cancelado.
func (q *InlineQueue) Enqueue(ctx context.Context, job Job) error {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.run(context.WithoutCancel(ctx), job)
	}()
	return nil
}

// Wait aguarda os jobs em andamento (usado no shutdown).
func (q *InlineQueue) Wait() { q.wg.Wait() }

func (q *InlineQueue) run(ctx context.Context, job Job) {
	for {
		err := q.handler.Handle(ctx, job)
		if err == nil {
			log.Info().Str("job_id", job.ID).Str("type", string(job.Type)).Msg("worker: job concluído")
			return
		}
		job.Attempt++
		if job.Attempt >= MaxRetries || IsPermanent(err) {
			log.Error().Err(err).
				Str("job_id", job.ID).
				Str("type", string(job.Type)).
				Int("attempts", job.Attempt).
				Msg("worker: job descartado após falhas")
			return
		}
		log.Warn().Err(err).Str("job_id", job.ID).Int("attempt", job.Attempt).Msg("worker: nova tentativa")
		time.Sleep(q.backoff * time.Duration(job.Attempt))
	}
}
