package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/config"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/handler"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/middleware"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/memory"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/mongo"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/postgres"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/s3"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/service"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/web"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	store  repository.Store
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel}))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize подключается к хранилищу и настраивает сервер.
// Сервер не запускается, пока хранилище не готово.
func (a *App) Initialize(ctx context.Context) error {
	store, err := OpenStore(ctx, a.config)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	a.store = store

	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare store: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "variant", a.config.App.Variant)
	return nil
}

// OpenStore подключается к хранилищу, выбранному по схеме DATABASE_URL
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	backend, err := cfg.Database.Backend()
	if err != nil {
		return nil, err
	}

	var store repository.Store
	switch backend {
	case config.BackendPostgres:
		store, err = postgres.New(ctx, postgres.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
	case config.BackendMongo:
		store, err = mongo.New(ctx, mongo.Options{
			URI:      cfg.Database.URL,
			Database: cfg.Database.Name,
		})
	case config.BackendS3:
		bucket, prefix, perr := parseS3URL(cfg.Database.URL)
		if perr != nil {
			return nil, perr
		}
		store, err = s3.New(ctx, s3.Options{
			Bucket:       bucket,
			Prefix:       prefix,
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
	case config.BackendMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unsupported store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Connected to store", "backend", string(backend))
	return store, nil
}

// parseS3URL разбирает s3://bucket/prefix
func parseS3URL(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 url: %w", err)
	}
	if u.Host == "" {
		return "", "", errors.New("s3 url must name a bucket: s3://bucket/prefix")
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	metrics := middleware.NewMetrics()
	healthHandler := handler.NewHealthHandler(a.store)
	staticHandler := handler.NewStaticHandler(web.Assets())

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(a.config.Server.CORSOrigins)))
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Timeout(a.config.Server.RequestTimeout))

	// Проверки состояния и метрики для мониторинга
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Варианты не обслуживаются одновременно
		switch a.config.App.Variant {
		case config.VariantUnits:
			a.unitRoutes(r)
		default:
			a.cardRoutes(r)
		}
		r.NotFound(handler.NotFound)
	})

	// Все остальные пути отдают клиент
	r.NotFound(staticHandler.ServeHTTP)

	// Создаем HTTP сервер с настройками таймаутов
	addr := a.config.Server.Address()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

func (a *App) cardRoutes(r chi.Router) {
	cardHandler := handler.NewCardHandler(service.NewCardService(a.store.Cards()))

	r.Get("/cards", cardHandler.List)
	r.Post("/cards", cardHandler.Create)
	r.Put("/cards/{id}", cardHandler.Update)
	r.Delete("/cards/{id}", cardHandler.Delete)
}

func (a *App) unitRoutes(r chi.Router) {
	unitHandler := handler.NewUnitHandler(service.NewUnitService(a.store.Units()))

	r.Get("/units", unitHandler.List)
	r.Post("/units", unitHandler.Create)
	r.Route("/units/{id}", func(r chi.Router) {
		r.Get("/", unitHandler.Get)
		r.Put("/", unitHandler.Update)
		r.Delete("/", unitHandler.Delete)

		// Вложенные списки
		r.Post("/sites", unitHandler.AddSite)
		r.Delete("/sites/{entryID}", unitHandler.RemoveSite)
		r.Post("/contacts", unitHandler.AddContact)
		r.Delete("/contacts/{entryID}", unitHandler.RemoveContact)
		r.Post("/mailman", unitHandler.AddMailmanList)
		r.Delete("/mailman/{entryID}", unitHandler.RemoveMailmanList)
	})
}

// Handler возвращает корневой HTTP обработчик (доступен после Initialize)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер и блокируется до его остановки
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключение к хранилищу
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
