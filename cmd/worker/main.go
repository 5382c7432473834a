package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/mail"
	infrapdf "github.com/weslleycarlos/representacao-comercial/internal/infrastructure/pdf"
	"github.com/weslleycarlos/representacao-comercial/internal/worker"
	"github.com/weslleycarlos/representacao-comercial/pkg/config"
	"github.com/weslleycarlos/representacao-comercial/pkg/logger"
)

// Consumidor dedicado da fila de e-mails. Exige REDIS_URL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name + "-worker",
	})

	if cfg.Redis.URL == "" {
		log.Fatal().Msg("REDIS_URL obrigatório para o worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := worker.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com Redis")
	}
	defer rdb.Close()

	mux := worker.NewMux()
	worker.NewEmailHandler(mail.NewSMTPMailer(cfg.SMTP), infrapdf.NewOrderGenerator()).Register(mux)

	queue := worker.NewRedisQueue(rdb, worker.QueueEmail)
	pool := worker.NewPool(queue, mux, cfg.Worker.Count)
	pool.Start(ctx)

	<-ctx.Done()
	log.Info().Msg("sinal de desligamento recebido, aguardando jobs em andamento...")
	pool.Wait()

	if n, err := queue.DLQLength(context.Background()); err == nil && n > 0 {
		log.Warn().Int64("dlq", n).Msg("jobs na fila de mortos")
	}
	log.Info().Msg("worker encerrado")
}
