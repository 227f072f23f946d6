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
	"github.com/rs/cors"

	createBookingHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_availability"
	getBlockedSlotsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_blocked_slots"
	getBookingHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_booking"
	getBookingsSummaryHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_bookings_summary"
	getLocationBookingsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_location_bookings"
	getServicesHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_services"
	getSettingsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_user_bookings"
	getUserRewardsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/get_user_rewards"
	healthHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/health"
	redeemFreeWashHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/redeem_free_wash"
	toggleBlockedSlotHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/toggle_blocked_slot"
	updateDailySettingsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/update_daily_settings"
	updateSettingsHandler "github.com/m04kA/SMC-WashBooking/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-WashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-WashBooking/internal/config"
	"github.com/m04kA/SMC-WashBooking/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/location"
	rewardsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/rewards"
	settingsRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-WashBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-WashBooking/internal/integrations/identity"
	blockedSlotsService "github.com/m04kA/SMC-WashBooking/internal/service/blockedslots"
	bookingsService "github.com/m04kA/SMC-WashBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-WashBooking/internal/service/catalog"
	rewardsService "github.com/m04kA/SMC-WashBooking/internal/service/rewards"
	settingsService "github.com/m04kA/SMC-WashBooking/internal/service/settings"
	usersService "github.com/m04kA/SMC-WashBooking/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-WashBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-WashBooking/internal/usecase/get_availability"
	redeemFreeWashUC "github.com/m04kA/SMC-WashBooking/internal/usecase/redeem_free_wash"
	"github.com/m04kA/SMC-WashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashBooking/pkg/logger"
	"github.com/m04kA/SMC-WashBooking/pkg/metrics"
	"github.com/m04kA/SMC-WashBooking/pkg/txmanager"
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

	log.Info("Starting SMC-WashBooking...")

	// Сетка слотов общая для доступности и бронирования
	grid, err := domain.NewGrid(domain.GridConfig{
		OpenTime:            cfg.Engine.OpenTime,
		CloseTime:           cfg.Engine.CloseTime,
		SlotIntervalMinutes: cfg.Engine.SlotIntervalMinutes,
		UTCOffsetMinutes:    cfg.Engine.UTCOffsetMinutes,
		ZoneName:            cfg.Engine.ZoneName,
	})
	if err != nil {
		log.Fatal("Invalid slot grid: %v", err)
	}
	log.Info("Slot grid: %s-%s every %d min, utc offset %d min",
		cfg.Engine.OpenTime, cfg.Engine.CloseTime, cfg.Engine.SlotIntervalMinutes, cfg.Engine.UTCOffsetMinutes)

	// Метрики опциональны: nil коллектор молча пропускает все вызовы
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis используется только как кэш профилей identity provider
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable, identity cache disabled: %v", err)
			rdb = nil
		}
		cancel()
	}

	identityClient := identity.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		rdb,
		time.Duration(cfg.Identity.CacheTTL)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds, cache=%t)",
		cfg.Identity.URL, cfg.Identity.Timeout, rdb != nil)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	locationRepository := locationRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	blockedSlotRepository := blockedSlotRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	rewardsRepository := rewardsRepo.NewRepository(wrappedDB)

	// Сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		locationRepository,
		cfg.Engine.DefaultActiveBays,
		cfg.Engine.MaxActiveBays,
		log,
	)
	blockedSlotsSvc := blockedSlotsService.NewService(blockedSlotRepository, locationRepository, txMgr, grid, log)
	rewardsSvc := rewardsService.NewService(rewardsRepository, txMgr, log)
	usersSvc := usersService.NewService(userRepository, identityClient, log)
	catalogSvc := catalogService.NewService(locationRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, locationRepository, grid, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		locationRepository,
		bookingRepository,
		blockedSlotRepository,
		settingsSvc,
		grid,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		locationRepository,
		blockedSlotRepository,
		settingsSvc,
		usersSvc,
		rewardsSvc,
		txMgr,
		grid,
		metricsCollector,
		log,
	)
	redeemFreeWashUseCase := redeemFreeWashUC.NewUseCase(
		bookingRepository,
		locationRepository,
		blockedSlotRepository,
		rewardsRepository,
		settingsSvc,
		txMgr,
		grid,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	redeemFreeWash := redeemFreeWashHandler.NewHandler(redeemFreeWashUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getUserRewards := getUserRewardsHandler.NewHandler(rewardsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	updateDailySettings := updateDailySettingsHandler.NewHandler(settingsSvc, log)
	getBlockedSlots := getBlockedSlotsHandler.NewHandler(blockedSlotsSvc, log)
	toggleBlockedSlot := toggleBlockedSlotHandler.NewHandler(blockedSlotsSvc, log)
	getLocationBookings := getLocationBookingsHandler.NewHandler(bookingSvc, log)
	getBookingsSummary := getBookingsSummaryHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		api.Use(limiter.Limit)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer токен)
	// ============================================================

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, log)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/redeem-free-wash", redeemFreeWash.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Профиль пользователя ---
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/rewards", getUserRewards.Handle).Methods(http.MethodGet)

	// --- Панель менеджера ---
	manager := protected.PathPrefix("/manager").Subrouter()
	manager.Use(middleware.RequireRole(domain.RoleManager))

	manager.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	manager.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPost)
	manager.HandleFunc("/settings/daily", updateDailySettings.Handle).Methods(http.MethodPost)
	manager.HandleFunc("/blocked-slots", getBlockedSlots.Handle).Methods(http.MethodGet)
	manager.HandleFunc("/blocked-slots", toggleBlockedSlot.Handle).Methods(http.MethodPost)
	manager.HandleFunc("/bookings", getLocationBookings.Handle).Methods(http.MethodGet)
	manager.HandleFunc("/bookings/summary", getBookingsSummary.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
