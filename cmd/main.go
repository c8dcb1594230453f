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

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/api"
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/health"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	servicesRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/services"
	userRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/supabase"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	salonsService "github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	usersService "github.com/m04kA/SMC-SalonBooking/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	registerOwnerUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/register_owner"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Репозитории, общие для postgres и хранилища в памяти
type (
	bookingStore interface {
		createBookingUC.BookingRepository
		bookingsService.BookingRepository
	}
	salonStore interface {
		createBookingUC.SalonRepository
		registerOwnerUC.SalonRepository
		salonsService.SalonRepository
		usersService.SalonRepository
	}
	serviceStore interface {
		catalogService.ServiceRepository
	}
	userStore interface {
		usersService.UserRepository
	}
	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

type repositories struct {
	bookings bookingStore
	salons   salonStore
	services serviceStore
	users    userStore
	tx       txManager
	pinger   health.Pinger
	close    func() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		repos = newMemoryRepositories()
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		repos, err = newPostgresRepositories(cfg.Database, metricsCollector, stopMetricsCh)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}
	defer repos.close()

	// Redis: кэш токенов и общий лимит запросов
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to redis at %s", cfg.Redis.Addr)
		}
		cancel()
	}

	// Провайдер аутентификации
	authClient := supabase.NewClient(
		cfg.Supabase.URL,
		cfg.Supabase.AnonKey,
		cfg.Supabase.ServiceKey,
		time.Duration(cfg.Supabase.Timeout)*time.Second,
		log,
	)
	var verifier middleware.TokenVerifier = authClient
	if rdb != nil {
		var recorder supabase.LookupRecorder
		if metricsCollector != nil {
			recorder = metricsCollector
		}
		verifier = supabase.NewCachedVerifier(
			authClient,
			rdb,
			time.Duration(cfg.Redis.TokenCacheTTL)*time.Second,
			log,
			recorder,
		)
		log.Info("Token verification cached in redis (ttl=%ds)", cfg.Redis.TokenCacheTTL)
	}
	log.Info("Auth provider initialized (url=%s timeout=%ds)", cfg.Supabase.URL, cfg.Supabase.Timeout)

	// Лимит запросов на публичные эндпоинты бронирования
	var limiter middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.Window) * time.Second
		if rdb != nil {
			limiter = middleware.NewRedisRateLimiter(rdb, cfg.RateLimit.Requests, window, "ratelimit")
		} else {
			limiter = middleware.NewLocalRateLimiter(cfg.RateLimit.Requests, window)
		}
		log.Info("Rate limit enabled (%d requests per %ds)", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(repos.bookings, repos.tx, log)
	catalogSvc := catalogService.NewService(repos.services, log)
	salonSvc := salonsService.NewService(repos.salons, repos.services, log)
	userSvc := usersService.NewService(repos.users, repos.salons, repos.tx, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		repos.bookings,
		repos.salons,
		repos.services,
		repos.users,
		repos.tx,
		location,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repos.bookings,
		repos.salons,
		repos.services,
		location,
		metricsCollector,
		log,
	)

	registerOwnerUseCase := registerOwnerUC.NewUseCase(
		repos.users,
		repos.salons,
		authClient,
		repos.tx,
		log,
	)

	r := api.NewRouter(api.Dependencies{
		CreateBooking:     createBookingUseCase,
		GetAvailableSlots: getAvailableSlotsUseCase,
		RegisterOwner:     registerOwnerUseCase,
		Bookings:          bookingSvc,
		Catalog:           catalogSvc,
		Salons:            salonSvc,
		Users:             userSvc,
		Verifier:          verifier,
		Pinger:            repos.pinger,
		RateLimiter:       limiter,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Location:          location,
		Logger:            log,
	})

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

func newPostgresRepositories(cfg config.DatabaseConfig, m *metrics.Metrics, stopCh <-chan struct{}) (*repositories, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	// Без метрик обертка только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &repositories{
		bookings: bookingRepo.NewRepository(wrappedDB),
		salons:   salonRepo.NewRepository(wrappedDB),
		services: servicesRepo.NewRepository(wrappedDB),
		users:    userRepo.NewRepository(wrappedDB),
		tx:       txmanager.NewTransactionManager(wrappedDB),
		pinger:   wrappedDB,
		close:    db.Close,
	}, nil
}

func newMemoryRepositories() *repositories {
	store := memory.NewStore()
	return &repositories{
		bookings: memory.NewBookingRepository(store),
		salons:   memory.NewSalonRepository(store),
		services: memory.NewServiceRepository(store),
		users:    memory.NewUserRepository(store),
		tx:       memory.NewTxManager(),
		close:    func() error { return nil },
	}
}
