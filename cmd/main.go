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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_business_hours"
	updateBusinessHoursHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/infra/migrator"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	storeRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/store"
	notificationServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	businessHoursService "github.com/m04kA/SMC-SalonService/internal/service/businesshours"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/tracing"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("SMC_CONFIG")
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx := context.Background()

	// Трейсинг (при выключенном только настраиваются пропагаторы)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		slotsObserver    getAvailableSlotsUC.SlotsObserver
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		slotsObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции
	if cfg.Database.MigrateOnStart {
		m, err := migrator.New(ctx, cfg.Database.DSN(), log)
		if err != nil {
			log.Fatal("Failed to create migrator: %v", err)
		}
		if err := m.Run(ctx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator: %v", err)
		}
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без collector обёртка ничего не замеряет
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis нужен только для ограничения частоты запросов к публичной странице
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
	}

	// Инициализируем интеграционных клиентов
	notificationClient := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	if notificationClient.Enabled() {
		log.Info("Notification client initialized (url=%s, timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	} else {
		log.Info("Notification service URL is not set, confirmations are disabled")
	}

	// Инициализируем репозитории
	storeRepository := storeRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, storeRepository, log)
	businessHoursSvc := businessHoursService.NewService(storeRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		storeRepository,
		staffRepository,
		serviceRepository,
		appointmentRepository,
		slotsObserver,
		log,
	).WithParallelism(cfg.Availability.Parallelism)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		storeRepository,
		staffRepository,
		serviceRepository,
		appointmentRepository,
		notificationClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(businessHoursSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRedisRateLimiter(
			rdb,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.Prefix,
		)
		resolver, err := middleware.NewClientIPResolver(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		public.Use(middleware.RateLimit(limiter, resolver, log, cfg.RateLimit.FailOpen))
		log.Info("Public rate limit enabled: %d requests per %ds", cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds)
	}

	// Свободное время на публичной странице записи салона
	public.HandleFunc("/store/{slug}/availability", getAvailableSlots.HandlePublic).Methods(http.MethodGet)

	// Часы работы салона
	api.HandleFunc("/stores/{storeId}/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Свободное время
	protected.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Настройки салона ---
	protected.HandleFunc("/stores/{storeId}/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Tracing.ServiceName),
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

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
