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

	cancelReservationHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/get_reservation"
	getTurfReservationsHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/get_turf_reservations"
	getUserReservationsHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/get_user_reservations"
	rescheduleReservationHandler "github.com/m04kA/Turf-ReservationService/internal/api/handlers/reschedule_reservation"
	"github.com/m04kA/Turf-ReservationService/internal/api/middleware"
	"github.com/m04kA/Turf-ReservationService/internal/config"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/Turf-ReservationService/internal/infra/storage/reservation"
	loyaltyClient "github.com/m04kA/Turf-ReservationService/internal/integrations/loyalty"
	turfCatalogClient "github.com/m04kA/Turf-ReservationService/internal/integrations/turfcatalog"
	weatherClient "github.com/m04kA/Turf-ReservationService/internal/integrations/weather"
	reservationsService "github.com/m04kA/Turf-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/Turf-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/Turf-ReservationService/internal/usecase/get_availability"
	rescheduleReservationUC "github.com/m04kA/Turf-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/m04kA/Turf-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/Turf-ReservationService/pkg/logger"
	"github.com/m04kA/Turf-ReservationService/pkg/metrics"
	"github.com/m04kA/Turf-ReservationService/pkg/receipt"
	"github.com/m04kA/Turf-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/Turf-ReservationService/pkg/txmanager"
)

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

	log.Info("Starting Turf-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	turfClient := turfCatalogClient.NewClient(
		cfg.TurfService.URL,
		time.Duration(cfg.TurfService.Timeout)*time.Second,
		log,
	)
	loyalty := loyaltyClient.NewClient(
		cfg.LoyaltyService.URL,
		time.Duration(cfg.LoyaltyService.Timeout)*time.Second,
		log,
	)
	weather := weatherClient.NewClient(
		cfg.WeatherService.URL,
		time.Duration(cfg.WeatherService.Timeout)*time.Second,
		time.Duration(cfg.WeatherService.CacheTTLMinutes)*time.Minute,
		log,
	)
	log.Info("Integration clients initialized (TurfService=%s, LoyaltyService=%s, WeatherService=%s)",
		cfg.TurfService.URL, cfg.LoyaltyService.URL, cfg.WeatherService.URL)

	// Kafka producer для событий жизненного цикла (если включен)
	var producer *events.Producer
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Генератор чеков и платежных транзакций
	receipts := receipt.New()

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		repository *reservationRepo.Repository
		txMgr      TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		repository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		repository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	reservationSvc := reservationsService.NewService(
		repository,
		turfClient,
		loyalty,
		producer,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		repository,
		turfClient,
		weather,
		loyalty,
		producer,
		receipts,
		txMgr,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		repository,
		turfClient,
		weather,
		loyalty,
		producer,
		receipts,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		repository,
		turfClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getTurfReservations := getTurfReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность площадки на дату
	api.HandleFunc("/turfs/{turfId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на новый слот
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Отметка бронирования сыгранным (владелец площадки)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Список бронирований площадки
	protected.HandleFunc("/turfs/{turfId}/reservations", getTurfReservations.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
