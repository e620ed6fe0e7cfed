package main

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres/auditrepo"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/providerrepo"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresgorm "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReconcileCommissionsCommandHandler(),
		configs.ReconciliationSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		DeliveryBasePrice:  goDotEnvVariable("DELIVERY_BASE_PRICE"),
		DeliveryPricePerKm: goDotEnvVariable("DELIVERY_PRICE_PER_KM"),
		DeliveryPricePerKg: goDotEnvVariable("DELIVERY_PRICE_PER_KG"),

		FreeDeliveryEnabled:  goDotEnvVariable("FREE_DELIVERY_ENABLED"),
		FreeDeliveryRadiusKm: goDotEnvVariable("FREE_DELIVERY_RADIUS_KM"),

		ReconciliationSchedule: goDotEnvVariable("RECONCILIATION_SCHEDULE"),
	}
	if config.ReconciliationSchedule == "" {
		config.ReconciliationSchedule = "*/5 * * * *"
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresgorm.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&cartrepo.CartLineDTO{},
		&providerrepo.ProviderDTO{},
		&auditrepo.EventDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateDeliveryOrderCommandHandler(),
		app.CreateCreateMarketplaceOrderCommandHandler(),
		app.CreateCreateQuotedOrderCommandHandler(),
		app.CreateAssignProviderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetAuditTrailQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
