package main

import (
	bookingevents "wardrobe/internal/bookings/events"
	bookinghandler "wardrobe/internal/bookings/handler"
	bookingrepo "wardrobe/internal/bookings/repository"
	bookingservice "wardrobe/internal/bookings/service"
	bookingvalidator "wardrobe/internal/bookings/validator"
	cataloghandler "wardrobe/internal/catalog/handler"
	catalogrepo "wardrobe/internal/catalog/repository"
	catalogservice "wardrobe/internal/catalog/service"
	catalogvalidator "wardrobe/internal/catalog/validator"
	identityhandler "wardrobe/internal/identity/handler"
	identityrepo "wardrobe/internal/identity/repository"
	identityservice "wardrobe/internal/identity/service"
	identityvalidator "wardrobe/internal/identity/validator"
	"wardrobe/pkg/app"
	"wardrobe/pkg/auth"
	"wardrobe/pkg/config"
	"wardrobe/pkg/kafka"
	kafka_middleware "wardrobe/pkg/kafka/middleware"
	"wardrobe/pkg/metrics"

	"golang.org/x/crypto/bcrypt"
)

const (
	ServiceName      = "wardrobe-api"
	MetricsNamespace = "wardrobe"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Wardrobe API")

	if cfg.AuthSecret == "" {
		cfg.Log.Fatal("AUTH_SECRET must be set to issue access tokens")
	}
	cfg.Connect()

	m := metrics.New(MetricsNamespace)
	serverApp := app.NewApplication(cfg, m)

	userService := initIdentity(cfg, m)
	costumeService := initCatalog(cfg)
	bookingService := initBookings(cfg, m, costumeService, serverApp)

	serverApp.SetApp(userService,
		identityhandler.NewAuthHandler(userService, cfg.Log),
		cataloghandler.NewCostumeHandler(costumeService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}

func initIdentity(cfg *config.Config, m *metrics.Metrics) identityservice.UserService {
	tokens, err := auth.NewTokenService(cfg.AuthSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize token service", "error", err)
	}

	userService := identityservice.NewUserService(
		identityrepo.New(cfg),
		identityvalidator.NewUserValidator(cfg.Log),
		tokens,
		auth.NewPasswordHasher(bcrypt.DefaultCost),
		m,
		cfg,
	)

	cfg.Log.Info("Identity service initialized", "storage", cfg.StorageDriver)
	return userService
}

func initCatalog(cfg *config.Config) catalogservice.CostumeService {
	costumeService := catalogservice.NewCostumeService(
		catalogrepo.New(cfg),
		catalogvalidator.NewCostumeValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Catalog service initialized", "storage", cfg.StorageDriver)
	return costumeService
}

func initBookings(cfg *config.Config, m *metrics.Metrics, costumes bookingservice.CostumeLookup, serverApp *app.Application) bookingservice.BookingService {
	bookingService := bookingservice.NewBookingService(
		bookingrepo.New(cfg),
		bookingrepo.NewLockRepository(cfg),
		costumes,
		bookingvalidator.NewBookingValidator(cfg.Log),
		initEvents(cfg, m, serverApp),
		m,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"storage", cfg.StorageDriver,
		"enforce_overlap", cfg.BookingEnforceOverlap,
		"enforce_size", cfg.BookingEnforceSize,
	)
	return bookingService
}

func initEvents(cfg *config.Config, m *metrics.Metrics, serverApp *app.Application) bookingservice.EventPublisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return bookingevents.Nop{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.EventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}
	serverApp.OnShutdown(producer)

	cfg.Log.Info("Booking events enabled", "topic", cfg.EventsTopic, "brokers", cfg.Kafka.Brokers)
	return bookingevents.NewPublisher(producer, cfg.Kafka.PublishTimeout, cfg.Log)
}
