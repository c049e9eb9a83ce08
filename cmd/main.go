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

	cancelBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/confirm_booking"
	createBlockHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_block"
	createBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	deleteBlockHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/delete_block"
	getAvailabilityHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_catalog"
	listBlocksHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_blocks"
	listBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	intervalsCache "github.com/m04kA/SMC-StudioBooking/internal/infra/cache/intervals"
	blockRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/storage/snapshot"
	blocksService "github.com/m04kA/SMC-StudioBooking/internal/service/blocks"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// intervalStore источник занятых интервалов для расчёта доступности
type intervalStore = getAvailabilityUC.IntervalStore

// cacheInvalidator сброс кэша после записи
type cacheInvalidator = createBookingUC.CacheInvalidator

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-StudioBooking (studio=%q, timezone=%s)...", cfg.Studio.Name, cfg.Studio.Timezone)
	log.Info("Configuration loaded from %s", configPath)

	studioLocation, err := cfg.Studio.Location()
	if err != nil {
		log.Fatal("Invalid studio timezone: %v", err)
	}

	registry, err := cfg.Catalog.Registry()
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}
	log.Info("Slot catalog loaded: %d slots, flows=%v", registry.Shared().Len(), registry.Flows())

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Миграциям нужен исходный *sql.DB
	if cfg.Database.RunMigrations {
		if err := migrations.Up(wrappedDB.Unwrap(), log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Репозитории и транзакции
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Согласованный снимок бронирований и блоков за дату
	var store intervalStore = snapshot.NewStore(bookingRepository, blockRepository, txMgr)
	var invalidator cacheInvalidator = intervalsCache.NoopInvalidator{}

	// Кэш интервалов в Redis (опционально)
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Не фатально: кэш сам уходит в БД, пока Redis недоступен
			log.Warn("Redis is not reachable at %s: %v", cfg.Cache.Addr, err)
		}
		cancelPing()

		cache := intervalsCache.NewCache(redisClient, store, cfg.Cache.TTL(), cfg.Cache.KeyPrefix, log)
		store = cache
		invalidator = cache
		log.Info("Interval cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, invalidator, log)
	blockSvc := blocksService.NewService(blockRepository, invalidator, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store, registry, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockRepository,
		registry,
		txMgr,
		invalidator,
		createBookingUC.Options{
			Location:           studioLocation,
			MinNoticeMinutes:   cfg.Studio.MinNoticeMinutes,
			AdvanceBookingDays: cfg.Studio.AdvanceBookingDays,
		},
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getCatalog := getCatalogHandler.NewHandler(registry, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность и каталог ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/flows", getCatalog.HandleFlows).Methods(http.MethodGet)
	api.HandleFunc("/flows/{flow}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/flows/{flow}/slots", getCatalog.HandleSlots).Methods(http.MethodGet)
	api.HandleFunc("/slots", getCatalog.HandleSlots).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Ручные блоки ---
	api.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/blocks", listBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор статистики connection pool
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
