package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	approveRequestHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/approve_request"
	expireRequestsHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/expire_requests"
	exportAuditHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/export_audit"
	findVenuesHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/find_venues"
	getRequestHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/get_request"
	getUserEventsHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/get_user_events"
	getUserRequestsHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/get_user_requests"
	"github.com/m04kA/EventSync-BookingService/internal/api/handlers/health"
	listPendingHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/list_pending"
	rejectRequestHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/reject_request"
	setCalendarEventHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/set_calendar_event"
	submitBookingHandler "github.com/m04kA/EventSync-BookingService/internal/api/handlers/submit_booking"
	"github.com/m04kA/EventSync-BookingService/internal/api/middleware"
	"github.com/m04kA/EventSync-BookingService/internal/config"
	"github.com/m04kA/EventSync-BookingService/internal/infra/cache"
	"github.com/m04kA/EventSync-BookingService/internal/infra/catalog"
	"github.com/m04kA/EventSync-BookingService/internal/infra/events"
	eventRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/event"
	occupancyRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/occupancy"
	requestRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/request"
	venueRepo "github.com/m04kA/EventSync-BookingService/internal/infra/storage/venue"
	"github.com/m04kA/EventSync-BookingService/internal/integrations/airanker"
	requestsService "github.com/m04kA/EventSync-BookingService/internal/service/requests"
	approveRequestUC "github.com/m04kA/EventSync-BookingService/internal/usecase/approve_request"
	expireRequestsUC "github.com/m04kA/EventSync-BookingService/internal/usecase/expire_requests"
	findVenuesUC "github.com/m04kA/EventSync-BookingService/internal/usecase/find_venues"
	rejectRequestUC "github.com/m04kA/EventSync-BookingService/internal/usecase/reject_request"
	submitBookingUC "github.com/m04kA/EventSync-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/EventSync-BookingService/internal/worker"
	"github.com/m04kA/EventSync-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EventSync-BookingService/pkg/logger"
	"github.com/m04kA/EventSync-BookingService/pkg/metrics"
	"github.com/m04kA/EventSync-BookingService/pkg/slotlock"
	"github.com/m04kA/EventSync-BookingService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("EVENTSYNC_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EventSync-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены); методы *metrics.Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

	// Проверяем соединение
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Database.TxRetries),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Redis: распределенный лок слотов и кэш каталога
	var (
		redisClient redis.Cmdable
		rdb         *redis.Client
		locker      submitBookingUC.SlotLocker = slotlock.NopLocker{}
	)
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Address,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: time.Duration(cfg.Redis.DialTimeout) * time.Millisecond,
			ReadTimeout: time.Duration(cfg.Redis.ReadTimeout) * time.Millisecond,
		})
		defer rdb.Close()

		redisClient = rdb
		locker = slotlock.NewRedisLocker(
			rdb,
			time.Duration(cfg.Redis.LockTTL)*time.Millisecond,
			time.Duration(cfg.Redis.LockWait)*time.Millisecond,
		)
		log.Info("Redis enabled at %s (slot lock + venue cache)", cfg.Redis.Address)
	} else {
		log.Warn("Redis disabled: slot serialization relies on database transactions only")
	}

	// Публикация событий жизненного цикла заявок
	var publisher submitBookingUC.EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Request events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем репозитории
	venueRepository := venueRepo.NewRepository(wrappedDB)
	occupancyRepository := occupancyRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	eventRepository := eventRepo.NewRepository(wrappedDB)

	venueCatalog := cache.NewVenueCatalog(
		venueRepository,
		redisClient,
		time.Duration(cfg.Cache.VenuesTTL)*time.Second,
		log,
	)

	// Каталог площадок из seed файла
	if cfg.Catalog.SeedFile != "" {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := catalog.Seed(seedCtx, cfg.Catalog.SeedFile, venueRepository, log)
		if err != nil {
			seedCancel()
			log.Fatal("Failed to seed venue catalog from %s: %v", cfg.Catalog.SeedFile, err)
		}
		venueCatalog.Invalidate(seedCtx)
		seedCancel()
		log.Info("Venue catalog seeded: %d venues from %s", n, cfg.Catalog.SeedFile)
	}

	// AI-ранжирование (опционально)
	var delegate findVenuesUC.Ranker
	if cfg.AIRanker.Enabled {
		aiClient := airanker.NewClient(
			cfg.AIRanker.URL,
			cfg.AIRanker.APIKey,
			time.Duration(cfg.AIRanker.Timeout)*time.Second,
			log,
		)
		delegate = findVenuesUC.NewAIRanker(aiClient)
		log.Info("AI ranker enabled (url=%s, timeout=%ds)", cfg.AIRanker.URL, cfg.AIRanker.Timeout)
	}

	// Инициализируем сервисы
	requestsSvc := requestsService.NewService(
		requestRepository,
		eventRepository,
		cfg.Admins,
		log,
	)

	// Инициализируем use cases
	findVenuesUseCase := findVenuesUC.NewUseCase(
		venueCatalog,
		occupancyRepository,
		delegate,
		metricsCollector,
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		venueCatalog,
		occupancyRepository,
		requestRepository,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Booking.MaxAdvanceDays,
		log,
	)

	approveRequestUseCase := approveRequestUC.NewUseCase(
		requestRepository,
		eventRepository,
		cfg.Admins,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	rejectRequestUseCase := rejectRequestUC.NewUseCase(
		requestRepository,
		occupancyRepository,
		cfg.Admins,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	expireRequestsUseCase := expireRequestsUC.NewUseCase(
		requestRepository,
		occupancyRepository,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Booking.PendingTTLDuration(),
		cfg.Booking.SweepBatchSize,
		log,
	)

	// Инициализируем handlers
	findVenues := findVenuesHandler.NewHandler(findVenuesUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	approveRequest := approveRequestHandler.NewHandler(approveRequestUseCase, log)
	rejectRequest := rejectRequestHandler.NewHandler(rejectRequestUseCase, log)
	listPending := listPendingHandler.NewHandler(requestsSvc, log)
	expireRequests := expireRequestsHandler.NewHandler(expireRequestsUseCase, requestsSvc, log)
	exportAudit := exportAuditHandler.NewHandler(requestsSvc, log)
	getUserRequests := getUserRequestsHandler.NewHandler(requestsSvc, log)
	getUserEvents := getUserEventsHandler.NewHandler(requestsSvc, log)
	setCalendarEvent := setCalendarEventHandler.NewHandler(requestsSvc, log)

	healthChecks := []health.Check{{Name: "postgres", Ping: wrappedDB.PingContext}}
	if rdb != nil {
		healthChecks = append(healthChecks, health.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	healthHandler := health.NewHandler(log, healthChecks...)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", healthHandler.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", healthHandler.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Поиск площадок ---
	protected.HandleFunc("/venues/search", findVenues.Handle).Methods(http.MethodPost)

	// --- Заявки ---
	// Подача заявки ограничена по частоте для каждого пользователя
	submitRoute := http.Handler(http.HandlerFunc(submitBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		submitRoute = limiter.Middleware(submitRoute)
		log.Info("Submit rate limit: %.1f req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/requests", submitRoute).Methods(http.MethodPost)
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Заявки и мероприятия пользователя
	protected.HandleFunc("/users/{userId}/requests", getUserRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/events", getUserEvents.Handle).Methods(http.MethodGet)

	// Привязка события календаря
	protected.HandleFunc("/events/{eventId}/calendar", setCalendarEvent.Handle).Methods(http.MethodPut)

	// --- Администрирование ---
	protected.HandleFunc("/admin/requests/pending", listPending.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/requests/export", exportAudit.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/requests/expire", expireRequests.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/requests/{requestId}/approve", approveRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/requests/{requestId}/reject", rejectRequest.Handle).Methods(http.MethodPost)

	// Фоновая очистка просроченных заявок
	sweeper := worker.NewSweeper(
		expireRequestsUseCase,
		cfg.Booking.SweepIntervalDuration(),
		log,
	)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.Booking.PendingTTL > 0 {
		go sweeper.Start(workerCtx)
		log.Info("Pending request sweeper started (ttl=%dh, interval=%ds)",
			cfg.Booking.PendingTTL, cfg.Booking.SweepInterval)
	} else {
		log.Info("Pending request expiry disabled")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopWorkers()
	sweeper.Stop()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
