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

	cancelBookingHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/create_booking"
	createPricingRuleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/create_pricing_rule"
	createScheduleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/create_schedule"
	deletePricingRuleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/delete_pricing_rule"
	deleteScheduleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/delete_schedule"
	getAvailableSlotsHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_booking"
	getMentorBookingsHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_mentor_bookings"
	getMentorSchedulesHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_mentor_schedules"
	getPricingRulesHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_pricing_rules"
	getScheduleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_schedule"
	getScheduleWindowsHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_schedule_windows"
	getStudentBookingsHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/get_student_bookings"
	paymentWebhookHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/payment_webhook"
	priceSessionHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/price_session"
	setAvailabilityHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/set_availability"
	updateBookingStatusHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/update_booking_status"
	updatePricingRuleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/update_pricing_rule"
	updateScheduleHandler "github.com/m04kA/MNT-BookingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/MNT-BookingService/internal/api/middleware"
	"github.com/m04kA/MNT-BookingService/internal/config"
	"github.com/m04kA/MNT-BookingService/internal/domain"
	"github.com/m04kA/MNT-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/booking"
	pricingRuleRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/pricingrule"
	scheduleRepo "github.com/m04kA/MNT-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/MNT-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/MNT-BookingService/internal/service/bookings"
	pricingRulesService "github.com/m04kA/MNT-BookingService/internal/service/pricingrules"
	schedulesService "github.com/m04kA/MNT-BookingService/internal/service/schedules"
	createBookingUC "github.com/m04kA/MNT-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/MNT-BookingService/internal/usecase/get_available_slots"
	priceSessionUC "github.com/m04kA/MNT-BookingService/internal/usecase/price_session"
	"github.com/m04kA/MNT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MNT-BookingService/pkg/logger"
	"github.com/m04kA/MNT-BookingService/pkg/metrics"
	"github.com/m04kA/MNT-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/MNT-BookingService/pkg/txmanager"
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

	log.Info("Starting MNT-BookingService...")
	log.Info("Configuration loaded from config.toml")
	log.Debug("Config: http_port=%d, booking horizon=%dd, notice=%dmin",
		cfg.Server.HTTPPort, cfg.Booking.HorizonDays, cfg.Booking.MinBookingNoticeMinutes)

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

	// Подключаемся к Redis (кеш ответов каталога)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, catalog cache disabled: %v", err)
			redisClient = nil
		} else {
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
			defer redisClient.Close()
		}
	}

	// Подключаемся к RabbitMQ (публикация событий уведомлений)
	type EventPublisher interface {
		Publish(ctx context.Context, key string, payload interface{})
		Close()
	}
	var publisher EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Event publisher connected to RabbitMQ")
	} else {
		publisher = events.NopPublisher{}
		log.Info("RabbitMQ disabled, events will not be published")
	}
	defer publisher.Close()

	// Инициализируем клиент каталога материалов
	catalogClient := catalogServiceClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		redisClient,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		pricingRuleRepository *pricingRuleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		pricingRuleRepository = pricingRuleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		pricingRuleRepository = pricingRuleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Дефолты ценообразования передаются явно из конфигурации
	pricingDefaults := domain.PricingDefaults{
		MentorFeePercentage:     cfg.Pricing.DefaultMentorFeePercentage,
		OfflineSurchargePercent: cfg.Pricing.OfflineSurchargePercent,
		LevelMultipliers:        cfg.Pricing.LevelMultipliers,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		publisher,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		txMgr,
		catalogClient,
		publisher,
		log,
	)
	pricingRuleSvc := pricingRulesService.NewService(
		pricingRuleRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		pricingRuleRepository,
		getAvailableSlotsUC.Config{
			HorizonDays:             cfg.Booking.HorizonDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			PricingDefaults:         pricingDefaults,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		pricingRuleRepository,
		txMgr,
		publisher,
		createBookingUC.Config{
			HorizonDays:             cfg.Booking.HorizonDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			PricingDefaults:         pricingDefaults,
		},
		log,
	)

	priceSessionUseCase := priceSessionUC.NewUseCase(
		pricingRuleRepository,
		catalogClient,
		pricingDefaults,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingSvc, log)
	getMentorBookings := getMentorBookingsHandler.NewHandler(bookingSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(bookingSvc, log)
	priceSession := priceSessionHandler.NewHandler(priceSessionUseCase, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getMentorSchedules := getMentorSchedulesHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	getScheduleWindows := getScheduleWindowsHandler.NewHandler(scheduleSvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(scheduleSvc, log)
	createPricingRule := createPricingRuleHandler.NewHandler(pricingRuleSvc, log)
	getPricingRules := getPricingRulesHandler.NewHandler(pricingRuleSvc, log)
	updatePricingRule := updatePricingRuleHandler.NewHandler(pricingRuleSvc, log)
	deletePricingRule := deletePricingRuleHandler.NewHandler(pricingRuleSvc, log)

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

	// Доступные слоты ментора
	api.HandleFunc("/mentors/{mentorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Просмотр расписаний
	api.HandleFunc("/schedules/{scheduleId}", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/schedules", getMentorSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{scheduleId}/windows", getScheduleWindows.Handle).Methods(http.MethodGet)

	// Предварительный расчёт цены сессии
	api.HandleFunc("/pricing/quote", priceSession.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/mentors/{mentorId}/bookings", getMentorBookings.Handle).Methods(http.MethodGet)

	// --- Расписания (для менторов) ---
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules/{scheduleId}", updateSchedule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/schedules/{scheduleId}/windows", setAvailability.Handle).Methods(http.MethodPut)

	// ============================================================
	// ADMIN ROUTES (требуют JWT с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret))
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))

	admin.HandleFunc("/pricing-rules", createPricingRule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/pricing-rules", getPricingRules.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/pricing-rules/{ruleId}", getPricingRules.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/pricing-rules/{ruleId}", updatePricingRule.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/pricing-rules/{ruleId}", deletePricingRule.Handle).Methods(http.MethodDelete)

	// ============================================================
	// WEBHOOK ROUTES (секрет в заголовке, без JWT)
	// ============================================================

	webhooks := api.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(middleware.WebhookAuth(cfg.Auth.WebhookSecret))

	webhooks.HandleFunc("/payment", paymentWebhook.Handle).Methods(http.MethodPost)

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
