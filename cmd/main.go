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

	cancelReservationHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/create_reservation"
	getPlatformHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_platform"
	getReservationHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_reservation"
	getSalonHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_salon"
	getSalonReservationsHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_salon_reservations"
	getSalonsHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_salons"
	getUserReservationsHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/get_user_reservations"
	initializePlatformHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/initialize_platform"
	markNoShowHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/mark_no_show"
	registerSalonHandler "github.com/m04kA/SMC-EscrowService/internal/api/handlers/register_salon"
	"github.com/m04kA/SMC-EscrowService/internal/api/middleware"
	"github.com/m04kA/SMC-EscrowService/internal/config"
	"github.com/m04kA/SMC-EscrowService/internal/infra/events"
	ledgerRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/ledger"
	platformRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/platform"
	reservationRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/reservation"
	salonRepo "github.com/m04kA/SMC-EscrowService/internal/infra/storage/salon"
	platformService "github.com/m04kA/SMC-EscrowService/internal/service/platform"
	reservationsService "github.com/m04kA/SMC-EscrowService/internal/service/reservations"
	salonsService "github.com/m04kA/SMC-EscrowService/internal/service/salons"
	cancelReservationUC "github.com/m04kA/SMC-EscrowService/internal/usecase/cancel_reservation"
	completeReservationUC "github.com/m04kA/SMC-EscrowService/internal/usecase/complete_reservation"
	createReservationUC "github.com/m04kA/SMC-EscrowService/internal/usecase/create_reservation"
	markNoShowUC "github.com/m04kA/SMC-EscrowService/internal/usecase/mark_no_show"
	"github.com/m04kA/SMC-EscrowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-EscrowService/pkg/logger"
	"github.com/m04kA/SMC-EscrowService/pkg/metrics"
	"github.com/m04kA/SMC-EscrowService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-EscrowService/pkg/txmanager"
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

	log.Info("Starting SMC-EscrowService...")
	log.Info("Configuration loaded from config.toml")

	policy := cfg.Policy.DomainPolicy()
	log.Info("Disbursement policy: eur_rate=%d units, commission=%d bps, no_show_grace=%s",
		policy.EURRateUnits, policy.CommissionBps, policy.NoShowGrace)

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
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

	// Инициализируем публикацию событий
	var publisher interface {
		Publish(ctx context.Context, routingKey string, event interface{}) error
	}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		publisher = events.NopPublisher{}
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		salonRepository       *salonRepo.Repository
		platformRepository    *platformRepo.Repository
		ledgerRepository      *ledgerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		salonRepository = salonRepo.NewRepository(wrappedDB)
		platformRepository = platformRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		salonRepository = salonRepo.NewRepository(db)
		platformRepository = platformRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	platformSvc := platformService.NewService(platformRepository, publisher, log)
	salonsSvc := salonsService.NewService(salonRepository, txMgr, publisher, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, salonRepository, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		salonRepository,
		platformRepository,
		ledgerRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		platformRepository,
		ledgerRepository,
		txMgr,
		publisher,
		metricsCollector,
		policy,
		log,
	)
	completeReservationUseCase := completeReservationUC.NewUseCase(
		reservationRepository,
		salonRepository,
		platformRepository,
		ledgerRepository,
		txMgr,
		publisher,
		metricsCollector,
		policy,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		reservationRepository,
		salonRepository,
		platformRepository,
		ledgerRepository,
		txMgr,
		publisher,
		metricsCollector,
		policy,
		log,
	)

	// Инициализируем handlers
	initializePlatform := initializePlatformHandler.NewHandler(platformSvc, log)
	getPlatform := getPlatformHandler.NewHandler(platformSvc, log)
	registerSalon := registerSalonHandler.NewHandler(salonsSvc, log)
	getSalons := getSalonsHandler.NewHandler(salonsSvc, log)
	getSalon := getSalonHandler.NewHandler(salonsSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getSalonReservations := getSalonReservationsHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	completeReservation := completeReservationHandler.NewHandler(completeReservationUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог салонов
	api.HandleFunc("/salons", getSalons.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salons/{salonId}", getSalon.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT с wallet-адресом)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Платформа ---
	protected.HandleFunc("/platform", initializePlatform.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/platform", getPlatform.Handle).Methods(http.MethodGet)

	// --- Салоны ---
	protected.HandleFunc("/salons", registerSalon.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/reservations", getSalonReservations.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

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
