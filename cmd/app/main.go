package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DevHubFusionX/food-delivery-backend/cmd"
	httpadapter "github.com/DevHubFusionX/food-delivery-backend/internal/adapters/in/http"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/couponrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/menurepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/adapters/out/postgres/orderrepo"
	"github.com/DevHubFusionX/food-delivery-backend/internal/core/domain/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := getConfigs()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	gormDB, err := openDB(configs)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err = migrate(gormDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() (cmd.Config, error) {
	// Missing .env is fine in containerized deployments where the
	// environment is set directly.
	_ = godotenv.Load(".env")

	taxRate, err := envInt64("TAX_RATE_BASIS_POINTS", services.DefaultTaxRateBasisPoints)
	if err != nil {
		return cmd.Config{}, err
	}

	grace, err := envInt("COMPLETION_GRACE_MINUTES", 30)
	if err != nil {
		return cmd.Config{}, err
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		TaxRateBasisPoints:     taxRate,
		CompletionGraceMinutes: grace,
	}, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func openDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&couponrepo.CouponDTO{},
		&menurepo.RestaurantDTO{},
		&menurepo.MenuItemDTO{},
	)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateAssignRiderCommandHandler(),
		app.CreateApplyPaymentOutcomeCommandHandler(),
		app.CreateGetOrderStatusQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
