package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/weslleycarlos/representacao-comercial/internal/application/analytics"
	"github.com/weslleycarlos/representacao-comercial/internal/application/auth"
	"github.com/weslleycarlos/representacao-comercial/internal/application/catalog"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/application/sales"
	"github.com/weslleycarlos/representacao-comercial/internal/application/usecase"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/brasilapi"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/mail"
	infrapdf "github.com/weslleycarlos/representacao-comercial/internal/infrastructure/pdf"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/postgres"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/security"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/spreadsheet"
	"github.com/weslleycarlos/representacao-comercial/internal/infrastructure/storage"
	httpRouter "github.com/weslleycarlos/representacao-comercial/internal/interfaces/http"
	"github.com/weslleycarlos/representacao-comercial/internal/worker"
	"github.com/weslleycarlos/representacao-comercial/pkg/config"
	"github.com/weslleycarlos/representacao-comercial/pkg/logger"
)

// waiter fila de e-mails que precisa drenar antes do processo sair.
type waiter interface {
	Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migrações")
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migrações aplicadas")
		}
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	hasher := security.NewBcryptHasher(0)
	tokens := security.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	orderPDF := infrapdf.NewOrderGenerator()

	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP_HOST vazio: e-mails serão apenas registrados em log")
	}
	emailHandler := worker.NewEmailHandler(mail.NewSMTPMailer(cfg.SMTP), orderPDF)
	mux := worker.NewMux()
	emailHandler.Register(mux)

	// Com Redis os jobs são consumidos por este processo e por cmd/worker;
	// sem Redis, goroutines locais com as mesmas tentativas.
	var (
		queue   worker.Enqueuer
		drainer waiter
	)
	if cfg.Redis.URL != "" {
		rdb, err := worker.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão com Redis")
		}
		defer rdb.Close()
		redisQueue := worker.NewRedisQueue(rdb, worker.QueueEmail)
		workers := worker.NewPool(redisQueue, mux, cfg.Worker.Count)
		workers.Start(ctx)
		queue, drainer = redisQueue, workers
		log.Info().Int("workers", cfg.Worker.Count).Msg("fila de e-mails no Redis")
	} else {
		inline := worker.NewInlineQueue(mux, 2*time.Second)
		queue, drainer = inline, inline
		log.Info().Msg("REDIS_URL vazio: e-mails enviados em goroutine local")
	}
	notifier := worker.NewNotifier(queue)

	var docs ports.DocumentStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		docs = s3Store
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("arquivamento de documentos em S3")
	}

	registry := brasilapi.NewClient(cfg.Lookup.BrasilAPIURL, cfg.Lookup.Timeout, brasilapi.NewBreaker(brasilapi.BreakerConfig{}))

	authUC := auth.NewAuthUseCase(repos, txRunner, hasher, tokens, notifier, cfg.Frontend.URL)
	dashboardUC := analytics.NewDashboardUseCase(repos.Reports)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.ReplaceAll(cfg.HTTP.AllowedOrigins, " ", ""),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RepCom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: usecase.NewOrganizationUseCase(repos, txRunner, hasher),
		CompanyUC:      usecase.NewCompanyUseCase(repos, txRunner),
		SellerUC:       usecase.NewSellerUseCase(repos, txRunner, hasher),
		CustomerUC:     usecase.NewCustomerUseCase(repos, txRunner),
		PaymentUC:      usecase.NewPaymentMethodUseCase(repos, txRunner),
		CommissionUC:   usecase.NewCommissionRuleUseCase(repos, txRunner),
		AuditUC:        usecase.NewAuditUseCase(repos.Audit),
		LookupUC:       usecase.NewLookupUseCase(registry),
		CatalogUC:      catalog.NewCatalogUseCase(repos, txRunner),
		ImportUC:       catalog.NewImportUseCase(repos, txRunner, spreadsheet.Excel{}, docs),
		OrderUC:        sales.NewOrderUseCase(repos, txRunner, notifier, orderPDF, docs),
		ReportUC:       analytics.NewReportUseCase(repos.Reports),
		DashboardUC:    dashboardUC,
		Tokens:         tokens,
		Sessions:       authUC,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	// para de consumir a fila e espera os envios em andamento
	stop()
	drainer.Wait()

	log.Info().Msg("aplicação encerrada")
}
