package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Pool consome uma RedisQueue com N goroutines.
type Pool struct {
	queue   *RedisQueue
	handler Handler
	workers int
	poll    time.Duration
	wg      sync.WaitGroup
}

func NewPool(queue *RedisQueue, handler Handler, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{queue: queue, handler: handler, workers: workers, poll: 5 * time.Second}
}

// Start lança os workers. Eles param quando ctx é cancelado; use Wait para aguardar.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.workers).Msg("worker: pool iniciado")
}

// Wait bloqueia até todos os workers terminarem.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			log.Info().Int("worker", id).Msg("worker: encerrando")
			return
		}
		job, err := p.queue.Dequeue(ctx, p.poll)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: erro ao ler a fila")
				time.Sleep(time.Second)
			}
			continue
		}
		if job == nil {
			continue
		}
		p.process(ctx, *job)
	}
}

func (p *Pool) process(ctx context.Context, job Job) {
	start := time.Now()
	err := p.handler.Handle(ctx, job)
	if err == nil {
		log.Info().Str("job_id", job.ID).Str("type", string(job.Type)).Dur("took", time.Since(start)).Msg("worker: job concluído")
		return
	}
	log.Error().Err(err).Str("job_id", job.ID).Str("type", string(job.Type)).Int("attempt", job.Attempt).Msg("worker: job falhou")
	if rerr := p.queue.Retry(context.WithoutCancel(ctx), job, err); rerr != nil {
		log.Error().Err(rerr).Str("job_id", job.ID).Msg("worker: falha ao reenfileirar")
	}
}
