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

	cancelBookingHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/create_booking"
	getArtistAvailabilityHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_artist_availability"
	getArtistBookingsHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_artist_bookings"
	getAvailabilityCalendarHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_availability_calendar"
	getAvailableSlotsHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/get_user_bookings"
	resetArtistAvailabilityHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/reset_artist_availability"
	updateArtistAvailabilityHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/update_artist_availability"
	updateBookingStatusHandler "github.com/m04kA/InkStudio-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/InkStudio-BookingService/internal/api/middleware"
	"github.com/m04kA/InkStudio-BookingService/internal/availability"
	"github.com/m04kA/InkStudio-BookingService/internal/config"
	availabilityCache "github.com/m04kA/InkStudio-BookingService/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/InkStudio-BookingService/internal/infra/storage/migrations"
	studioRepo "github.com/m04kA/InkStudio-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/InkStudio-BookingService/internal/integrations/notifications"
	userServiceClient "github.com/m04kA/InkStudio-BookingService/internal/integrations/userservice"
	"github.com/m04kA/InkStudio-BookingService/internal/jobs"
	availabilityService "github.com/m04kA/InkStudio-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/InkStudio-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/InkStudio-BookingService/internal/usecase/create_booking"
	getAvailabilityCalendarUC "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_availability_calendar"
	getAvailableSlotsUC "github.com/m04kA/InkStudio-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/InkStudio-BookingService/pkg/dbmetrics"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/metrics"
	"github.com/m04kA/InkStudio-BookingService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
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

	log.Info("Starting InkStudio-BookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, _ := cfg.Booking.Location() // проверено в config.Validate
	log.Info("Studio timezone: %s", location)

	// Метрики (nil, если выключены: все Observe* безопасны для nil)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(startupCtx, db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	studioRepository := studioRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)

	// Расписания читаются через Redis, если он настроен
	var availabilityStore availabilityService.AvailabilityRepository = availabilityRepository
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			// кеш деградирует до чтения из БД, старт не блокируем
			log.Warn("Redis ping failed, cache will fall through to database: %v", err)
		}
		availabilityStore = availabilityCache.NewCache(
			availabilityRepository,
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Интеграции
	publisher := notifications.NewKafkaPublisher(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		log,
	)

	// nil интерфейс отключает проверку клиента
	var userClient createBookingUC.UserServiceClient
	if cfg.UserService.Enabled() {
		userClient = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	engine := availability.NewEngine(availability.Rules{
		FullDayThresholdMinutes:      cfg.Booking.FullDayThresholdMinutes,
		PostAppointmentBufferMinutes: cfg.Booking.PostAppointmentBufferMinutes,
		SlotStepMinutes:              cfg.Booking.SlotStepMinutes,
	})

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, studioRepository, publisher, location, log)
	availabilitySvc := availabilityService.NewService(availabilityStore, studioRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityStore,
		studioRepository,
		userClient,
		engine,
		txMgr,
		publisher,
		metricsCollector,
		location,
		cfg.Booking.ConflictRetries,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityStore,
		studioRepository,
		engine,
		metricsCollector,
		location,
		log,
	)

	getAvailabilityCalendarUseCase := getAvailabilityCalendarUC.NewUseCase(
		bookingRepository,
		availabilityStore,
		studioRepository,
		engine,
		metricsCollector,
		location,
		cfg.Booking.CalendarConcurrency,
		log,
	)

	// Фоновые задачи
	scheduler, err := jobs.NewScheduler(bookingRepository, cfg.Jobs.CompleteFinishedSchedule, log)
	if err != nil {
		log.Fatal("Failed to initialize jobs: %v", err)
	}
	scheduler.Start()

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilityCalendar := getAvailabilityCalendarHandler.NewHandler(getAvailabilityCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getArtistBookings := getArtistBookingsHandler.NewHandler(bookingSvc, location, log)
	getArtistAvailability := getArtistAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateArtistAvailability := updateArtistAvailabilityHandler.NewHandler(availabilitySvc, log)
	resetArtistAvailability := resetArtistAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := wrappedDB.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные времена начала сеанса на день
	api.HandleFunc("/artists/{artistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступность по дням за период
	api.HandleFunc("/artists/{artistId}/availability-calendar", getAvailabilityCalendar.Handle).Methods(http.MethodGet)

	// Расписание мастера
	api.HandleFunc("/artists/{artistId}/availability", getArtistAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление студией (для персонала) ---
	protected.HandleFunc("/artists/{artistId}/bookings", getArtistBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/artists/{artistId}/availability", updateArtistAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/artists/{artistId}/availability", resetArtistAvailability.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	scheduler.Stop(shutdownCtx)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close kafka writer: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
