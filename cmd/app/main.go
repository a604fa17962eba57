package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.CreateDispatchOutboxCommandHandler(),
		app.CreateRequeueFailedCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:               goDotEnvVariable("JWT_SECRET"),
		Timezone:                goDotEnvVariable("TIMEZONE"),
		OtpLength:               goDotEnvVariable("OTP_LENGTH"),
		OtpTTLHours:             goDotEnvVariable("OTP_TTL_HOURS"),
		GeocoderBaseURL:         goDotEnvVariable("GEOCODER_BASE_URL"),
		GeocoderAPIKey:          goDotEnvVariable("GEOCODER_API_KEY"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
		RedisAddr:               goDotEnvVariable("REDIS_ADDR"),
		OutboxBatchSize:         goDotEnvVariable("OUTBOX_BATCH_SIZE"),
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

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()

	mapper := httpin.NewErrorMapper(logger)
	e.HTTPErrorHandler = mapper.Handle

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	contract, err := httpin.LoadOpenAPIContract()
	if err != nil {
		log.Fatalf("Failed to load API contract: %v", err)
	}
	httpin.RegisterOpenAPIRoute(e, contract)

	auth := httpin.NewAuthMiddleware(configs.JWTSecret)
	app.CreateHTTPServer().RegisterRoutes(e, auth)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
