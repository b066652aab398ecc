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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/get_booking"
	getPaymentHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/get_payment"
	healthHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/list_bookings"
	quoteStayHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/quote_stay"
	updateBookingHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/update_booking"
	updatePaymentHandler "github.com/m04kA/SMC-StayService/internal/api/handlers/update_payment"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/config"
	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/infra/broker/kafka"
	"github.com/m04kA/SMC-StayService/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/booking"
	listingRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/listing"
	paymentRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/payment"
	userRepo "github.com/m04kA/SMC-StayService/internal/infra/storage/user"
	"github.com/m04kA/SMC-StayService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-StayService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-StayService/internal/service/bookings"
	paymentsService "github.com/m04kA/SMC-StayService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-StayService/internal/usecase/create_booking"
	quoteStayUC "github.com/m04kA/SMC-StayService/internal/usecase/quote_stay"
	updateBookingUC "github.com/m04kA/SMC-StayService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-StayService/pkg/clock"
	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StayService/pkg/logger"
	"github.com/m04kA/SMC-StayService/pkg/metrics"
	"github.com/m04kA/SMC-StayService/pkg/txmanager"
)

type eventPublisher interface {
	Publish(ctx context.Context, eventType bookingevents.Type, booking *domain.Booking, payment *domain.Payment)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithFormat(cfg.Logs.File, cfg.Logs.Level, logger.Format(cfg.Logs.Format))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StayService...")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
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

	// Без collector обёртка не собирает статистику и не замеряет запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// "Сегодня" для проверок дат считается в часовом поясе сервиса
	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	timeProvider := clock.New(loc)

	// События бронирований
	var events eventPublisher = bookingevents.Noop{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, time.Duration(cfg.Kafka.Timeout)*time.Second)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		defer producer.Close()

		events = bookingevents.NewPublisher(producer, cfg.Kafka.Topic, metricsCollector, log)
		log.Info("Booking events are published to kafka (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Хранилище ответов для Idempotency-Key
	var idempotencyStore middleware.IdempotencyStore
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, idempotency keys will be ignored until it is: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		idempotencyStore = idempotency.NewStore(rdb, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Idempotency store initialized (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	listingRepository := listingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	availabilityChecker := availability.NewChecker(bookingRepository)

	paymentSvc := paymentsService.NewService(
		bookingRepository,
		paymentRepository,
		listingRepository,
		txMgr,
		events,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		listingRepository,
		userRepository,
		paymentRepository,
		paymentSvc,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		listingRepository,
		availabilityChecker,
		paymentSvc,
		bookingSvc,
		events,
		metricsCollector,
		txMgr,
		timeProvider,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		listingRepository,
		availabilityChecker,
		paymentSvc,
		bookingSvc,
		events,
		txMgr,
		timeProvider,
		log,
	)
	quoteStayUseCase := quoteStayUC.NewUseCase(
		listingRepository,
		availabilityChecker,
		timeProvider,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(paymentSvc, log)
	quoteStay := quoteStayHandler.NewHandler(quoteStayUseCase, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Предварительный расчет стоимости и доступности дат
	api.HandleFunc("/listings/{listingId}/quote", quoteStay.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret), log))
	idempotent := middleware.Idempotency(idempotencyStore, log)

	// --- Бронирования ---
	protected.Handle("/bookings", idempotent(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// --- Платежи ---
	protected.HandleFunc("/payments/{bookingId}", getPayment.Handle).Methods(http.MethodGet)
	protected.Handle("/payments/{bookingId}", idempotent(http.HandlerFunc(updatePayment.Handle))).Methods(http.MethodPut, http.MethodPatch)

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
