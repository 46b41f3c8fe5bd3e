package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"laundry/cmd"
	laundryhttp "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/workflowrepo"
	"laundry/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrateDatabase(gormDB); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := startJobs(&app, configs, logger)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:     goDotEnvVariable("HTTP_PORT"),
		DBHost:       goDotEnvVariable("DB_HOST"),
		DBPort:       goDotEnvVariable("DB_PORT"),
		DBUser:       goDotEnvVariable("DB_USER"),
		DBPassword:   goDotEnvVariable("DB_PASSWORD"),
		DBName:       goDotEnvVariable("DB_NAME"),
		DBSslMode:    goDotEnvVariable("DB_SSLMODE"),
		BulkBatchCap: intEnvVariable("BULK_BATCH_CAP"),
		DraftMaxAge:  goDotEnvVariable("DRAFT_MAX_AGE"),
	}
}

func goDotEnvVariable(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		return 0
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func migrateDatabase(gormDB *gorm.DB) error {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PieceDTO{},
		&orderrepo.HistoryDTO{},
		&workflowrepo.SettingsDTO{},
	)
	if err != nil {
		return err
	}
	return workflowrepo.EnsureIndexes(gormDB)
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	draftMaxAge, err := time.ParseDuration(configs.DraftMaxAge)
	if err != nil || draftMaxAge <= 0 {
		draftMaxAge = 24 * time.Hour
	}

	jobManager := jobs.NewJobManager(
		app.CreateGetStaleDraftsQueryHandler(),
		app.CreateTransitionOrderCommandHandler(),
		draftMaxAge,
		logger,
	)

	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}

	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := laundryhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateRollbackOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateBulkTransitionCommandHandler(),
		app.CreateSplitOrderCommandHandler(),
		app.CreateGeneratePiecesCommandHandler(),
		app.CreateRecordScanCommandHandler(),
		app.CreateRejectPieceCommandHandler(),
		app.CreateSyncQuantityReadyCommandHandler(),
		app.CreateGetAllowedTransitionsQueryHandler(),
		app.CreateGetStatusHistoryQueryHandler(),
		app.CreateCheckQualityGateQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
