package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	addSpecialistHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/add_specialist"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createWalkInHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_walkin_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_booking"
	exportBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/export_bookings"
	getAllBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_all_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_dashboard"
	getNotificationsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_notifications"
	getOpeningHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_opening_hours"
	getSpecialistsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_specialists"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	getVendorHistoryHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_vendor_history"
	getWalkInDetailsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_walkin_details"
	getWalkInQRHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_walkin_qr"
	settlePaymentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/settle_payment"
	updateBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking"
	updateOpeningHoursHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_opening_hours"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/filestorage"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/ratelimit"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/migrations"
	notificationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/notification"
	vendorRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/vendor"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/pushgateway"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/conflicts"
	"github.com/m04kA/SMC-SalonBooking/internal/service/notifier"
	vendorsService "github.com/m04kA/SMC-SalonBooking/internal/service/vendors"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	createWalkInUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_walkin_booking"
	exportBookingsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/export_bookings"
	generateQRUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/generate_walkin_qr"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getDashboardUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_dashboard"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// database общий интерфейс обёртки соединения с метриками и без
type database interface {
	dbmetrics.DBExecutor
	dbmetrics.TxBeginner
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

	// Инициализируем метрики (если включены)
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

	if cfg.Database.AutoMigrate {
		version, err := migrations.Up(db)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database schema is at version %d", version)
	}

	// Redis нужен только для ограничения частоты записей в живую очередь
	var walkInThrottle createWalkInUC.Throttle
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ratelimit.Ping(pingCtx, redisClient); err != nil {
			// Ограничение работает в режиме fail-open, поэтому сервис стартует и без Redis
			log.Warn("Redis is unavailable, walk-in throttle will fail open: %v", err)
		}
		cancelPing()

		walkInThrottle = ratelimit.NewLimiter(redisClient, "walkin")
		log.Info("Redis connected (addr=%s)", cfg.Redis.Addr)
	}

	// Обёртка соединения (с метриками или без)
	var conn database
	if cfg.Metrics.Enabled {
		conn = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		conn = dbmetrics.NewPlain(db)
	}
	txMgr := txmanager.NewTransactionManager(conn)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(conn)
	vendorRepository := vendorRepo.NewRepository(conn)
	notificationRepository := notificationRepo.NewRepository(conn)

	// Хранилище изображений
	files, err := filestorage.New(cfg.Storage.Dir, cfg.Storage.PublicURL, cfg.Storage.MaxWidth)
	if err != nil {
		log.Fatal("Failed to initialize file storage: %v", err)
	}

	// Push-уведомления
	var pushClient notifier.PushClient
	if cfg.Push.Enabled {
		pushClient = pushgateway.NewClient(
			cfg.Push.URL,
			cfg.Push.APIKey,
			time.Duration(cfg.Push.Timeout)*time.Second,
			log,
		)
		log.Info("Push gateway client initialized (url=%s, timeout=%ds)", cfg.Push.URL, cfg.Push.Timeout)
	}
	dispatcher := notifier.NewDispatcher(
		vendorRepository,
		notificationRepository,
		pushClient,
		metricsCollector,
		time.Duration(cfg.Push.Timeout)*time.Second,
		cfg.Push.Concurrency,
		cfg.Push.QueueSize,
		log,
	)

	// Инициализируем сервисы
	conflictDetector := conflicts.NewDetector(bookingRepository, metricsCollector)
	bookingSvc := bookingsService.NewService(bookingRepository, dispatcher, txMgr, log)
	vendorSvc := vendorsService.NewService(vendorRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		conflictDetector,
		files,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
	)
	createWalkInUseCase := createWalkInUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		walkInThrottle,
		dispatcher,
		txMgr,
		metricsCollector,
		createWalkInUC.Config{
			MaxPerPhone: cfg.WalkIn.MaxPerPhone,
			Window:      cfg.WalkIn.Window(),
		},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, vendorRepository, log)
	dashboardUseCase := getDashboardUC.NewUseCase(bookingRepository, cfg.Dashboard.NextLineSize, log)
	exportUseCase := exportBookingsUC.NewUseCase(bookingRepository, log)
	qrUseCase := generateQRUC.NewUseCase(vendorRepository, cfg.QR.ClientURL, cfg.QR.Size, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, cfg.Server.MaxUploadMB, log)
	createWalkIn := createWalkInHandler.NewHandler(createWalkInUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	approveBooking := updateBookingHandler.NewHandler(bookingSvc, updateBookingHandler.ActionApprove, log)
	declineBooking := updateBookingHandler.NewHandler(bookingSvc, updateBookingHandler.ActionDecline, log)
	completeBooking := updateBookingHandler.NewHandler(bookingSvc, updateBookingHandler.ActionComplete, log)
	cancelBooking := updateBookingHandler.NewHandler(bookingSvc, updateBookingHandler.ActionCancel, log)
	vendorHistory := getVendorHistoryHandler.NewHandler(bookingSvc, log)
	dashboard := getDashboardHandler.NewHandler(dashboardUseCase, log)
	exportBookings := exportBookingsHandler.NewHandler(exportUseCase, log)
	walkInQR := getWalkInQRHandler.NewHandler(qrUseCase, log)
	walkInDetails := getWalkInDetailsHandler.NewHandler(vendorSvc, log)
	getOpeningHours := getOpeningHoursHandler.NewHandler(vendorSvc, log)
	updateOpeningHours := updateOpeningHoursHandler.NewHandler(vendorSvc, log)
	getSpecialists := getSpecialistsHandler.NewHandler(vendorSvc, log)
	addSpecialist := addSpecialistHandler.NewHandler(vendorSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	settlePayment := settlePaymentHandler.NewHandler(bookingSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(dispatcher, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler)
		log.Info("HTTP rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Загруженные изображения раздаются как статика
	if strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		prefix := strings.TrimSuffix(cfg.Storage.PublicURL, "/") + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Storage.Dir))))
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Запись в живую очередь по QR-коду
	api.HandleFunc("/walk-in", createWalkIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/walk-in/{qrToken}", walkInDetails.Handle).Methods(http.MethodGet)

	// Свободные слоты и расписание исполнителя
	api.HandleFunc("/vendors/{vendorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vendors/{vendorId}/opening-hours", getOpeningHours.Handle).Methods(http.MethodGet)

	// Вебхук платежного шлюза
	api.Handle("/internal/payments/settled",
		middleware.RequireSharedSecret(cfg.Auth.WebhookSecret)(http.HandlerFunc(settlePayment.Handle)),
	).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer, cfg.Auth.Enabled)
	if !cfg.Auth.Enabled {
		log.Warn("Auth is disabled, identity is taken from %s/%s headers", middleware.HeaderUserID, middleware.HeaderRole)
	}

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Handler)

	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	vendorOnly := middleware.RequireRole(domain.RoleOwner, domain.RoleFreelancer)
	ownerOnly := middleware.RequireRole(domain.RoleOwner)
	vendorOrAdmin := middleware.RequireRole(domain.RoleOwner, domain.RoleFreelancer, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Бронирования ---
	protected.Handle("/bookings", customerOnly(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Жизненный цикл брони
	protected.Handle("/bookings/{bookingId}/approve", vendorOrAdmin(http.HandlerFunc(approveBooking.Handle))).Methods(http.MethodPatch)
	protected.Handle("/bookings/{bookingId}/decline", vendorOrAdmin(http.HandlerFunc(declineBooking.Handle))).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Уведомления текущего пользователя
	protected.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)

	// --- Кабинет исполнителя ---
	vendor := protected.PathPrefix("/vendor").Subrouter()
	vendor.Use(vendorOnly)

	vendor.HandleFunc("/home", dashboard.Handle).Methods(http.MethodGet)
	vendor.HandleFunc("/requests", vendorHistory.HandleRequests).Methods(http.MethodGet)
	vendor.HandleFunc("/history", vendorHistory.Handle).Methods(http.MethodGet)
	vendor.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	vendor.HandleFunc("/opening-hours", updateOpeningHours.Handle).Methods(http.MethodPut)

	// Только для владельца салона
	vendor.Handle("/qr", ownerOnly(http.HandlerFunc(walkInQR.Handle))).Methods(http.MethodGet)
	vendor.Handle("/specialists", ownerOnly(http.HandlerFunc(getSpecialists.Handle))).Methods(http.MethodGet)
	vendor.Handle("/specialists", ownerOnly(http.HandlerFunc(addSpecialist.Handle))).Methods(http.MethodPost)

	// --- Администратор ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(adminOnly)

	admin.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/servicing-now", dashboard.HandleServicingNow).Methods(http.MethodGet)

	// CORS поверх всего роутера
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.HeaderUserID, middleware.HeaderRole},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений, поставленных до остановки
	dispatcher.Close()
	log.Info("Notification dispatcher stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
