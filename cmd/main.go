package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/yakidesk/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/yakidesk/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_booking"
	getBookingsByDateHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_bookings_by_date"
	getDeskHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_desk"
	getProfileHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_profile"
	getUserBookingsHandler "github.com/m04kA/yakidesk/internal/api/handlers/get_user_bookings"
	listDesksHandler "github.com/m04kA/yakidesk/internal/api/handlers/list_desks"
	listUsersHandler "github.com/m04kA/yakidesk/internal/api/handlers/list_users"
	rootRoleHandler "github.com/m04kA/yakidesk/internal/api/handlers/root_role"
	updateUserStatusHandler "github.com/m04kA/yakidesk/internal/api/handlers/update_user_status"
	upsertProfileHandler "github.com/m04kA/yakidesk/internal/api/handlers/upsert_profile"
	"github.com/m04kA/yakidesk/internal/api/middleware"
	"github.com/m04kA/yakidesk/internal/config"
	bookingRepo "github.com/m04kA/yakidesk/internal/infra/storage/booking"
	deskRepo "github.com/m04kA/yakidesk/internal/infra/storage/desk"
	userRepo "github.com/m04kA/yakidesk/internal/infra/storage/user"
	"github.com/m04kA/yakidesk/internal/integrations/identity"
	"github.com/m04kA/yakidesk/internal/integrations/notifier"
	"github.com/m04kA/yakidesk/internal/resolver"
	bookingsService "github.com/m04kA/yakidesk/internal/service/bookings"
	desksService "github.com/m04kA/yakidesk/internal/service/desks"
	usersService "github.com/m04kA/yakidesk/internal/service/users"
	createBookingUC "github.com/m04kA/yakidesk/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/yakidesk/internal/usecase/get_available_slots"
	"github.com/m04kA/yakidesk/pkg/dbmetrics"
	"github.com/m04kA/yakidesk/pkg/logger"
	"github.com/m04kA/yakidesk/pkg/metrics"
	"github.com/m04kA/yakidesk/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("YAKIDESK_CONFIG"); p != "" {
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

	log.Info("Starting yakidesk...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: nil-интерфейсы, если выключены
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		bookingMetrics   createBookingUC.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		bookingMetrics = metricsCollector
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
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
	err = wrappedDB.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Публикация событий бронирований (опционально)
	var eventPublisher createBookingUC.EventPublisher
	if cfg.Redis.Enabled {
		redisClient, err := notifier.NewClient(context.Background(), notifier.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		publisher := notifier.NewPublisher(redisClient, cfg.Redis.Channel, log)
		eventPublisher = publisher
		log.Info("Booking events published to redis channel %s (addr=%s)", publisher.Channel(), cfg.Redis.Addr)
	} else {
		log.Info("Redis disabled, booking events are not published")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	deskRepository := deskRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, eventPublisher, bookingMetrics, log)
	deskSvc := desksService.NewService(deskRepository, log)
	userSvc := usersService.NewService(userRepository, cfg.Admin.Emails, log)
	if len(cfg.Admin.Emails) > 0 {
		log.Info("Bootstrap admins configured: %d", len(cfg.Admin.Emails))
	}

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		deskRepository,
		userRepository,
		resolver.New(),
		txMgr,
		eventPublisher,
		bookingMetrics,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, deskRepository, log)

	// Проверка токенов провайдера идентификации
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.Leeway)

	// Handlers
	listDesks := listDesksHandler.NewHandler(deskSvc, log)
	getDesk := getDeskHandler.NewHandler(deskSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookingsByDate := getBookingsByDateHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	upsertProfile := upsertProfileHandler.NewHandler(userSvc, log)
	getProfile := getProfileHandler.NewHandler(userSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	updateUserStatus := updateUserStatusHandler.NewHandler(userSvc, log)
	rootRole := rootRoleHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/desks", listDesks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/desks/{deskId}", getDesk.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, userSvc, log))

	// --- Слоты и бронирования ---
	protected.HandleFunc("/desks/{deskId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookingsByDate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Профили ---
	protected.HandleFunc("/users/me", upsertProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование (root) ---
	protected.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/status", updateUserStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/roles/root", rootRole.HandleGrant).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/roles/root", rootRole.HandleRevoke).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
