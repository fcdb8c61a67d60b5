package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/jhoicas/veon-api/internal/application/sales"
	"github.com/jhoicas/veon-api/internal/application/usecase"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/infrastructure/docstore"
	"github.com/jhoicas/veon-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/veon-api/internal/infrastructure/pdf"
	"github.com/jhoicas/veon-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/veon-api/internal/interfaces/http"
	"github.com/jhoicas/veon-api/internal/storage"
	"github.com/jhoicas/veon-api/pkg/config"
	"github.com/jhoicas/veon-api/pkg/jwt"
	"github.com/jhoicas/veon-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("sales_counter", cfg.Sales.CounterMode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("document store")
	}
	defer store.Close()

	clientUC := usecase.NewClientUseCase(docstore.New[entity.Client](store, "clients"), store)
	products := docstore.New[entity.Product](store, "products")
	productUC := usecase.NewProductUseCase(products)
	providerUC := usecase.NewProviderUseCase(docstore.New[entity.Provider](store, "providers"))

	// PDF de cotizaciones
	quotationUC := usecase.NewQuotationUseCase(
		docstore.New[entity.Quotation](store, "quotations"),
		infrapdf.NewQuotationRenderer(cfg.App.Name),
		log,
	)

	// Contador de ventas del cliente: en la misma request o encolado para cmd/worker.
	var notifier sales.ClientSalesNotifier = sales.NewInlineNotifier(clientUC, log)
	if cfg.Sales.CounterMode == config.CounterQueue {
		queueClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer queueClient.Close()
		notifier = queue.NewNotifier(queueClient, log)
	}
	promMetrics := metrics.New()
	saleUC := sales.NewSaleUseCase(
		docstore.New[entity.Sale](store, "sales"), products, store, promMetrics.CountSales(notifier), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.Metrics(promMetrics))
	app.Use(httpRouter.SecureHeaders(cfg.App.Env == "production"))
	app.Use(cors.New())
	app.Use("/api", httpRouter.RateLimit(cfg.HTTP.RateLimit))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Veon API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/metrics", adaptor.HTTPHandler(promMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:    clientUC,
		ProductUC:   productUC,
		ProviderUC:  providerUC,
		QuotationUC: quotationUC,
		SaleUC:      saleUC,
		Verifier:    jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer),
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
