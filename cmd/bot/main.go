package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gvcargo/internal/bot"
	"gvcargo/internal/config"
	"gvcargo/internal/database"
	"gvcargo/internal/domain"
	"gvcargo/internal/events"
	"gvcargo/internal/google"
	"gvcargo/internal/i18n"
	"gvcargo/internal/logging"
	"gvcargo/internal/metrics"
	"gvcargo/internal/models"
	"gvcargo/internal/repository"
	"gvcargo/internal/service"
	"gvcargo/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	catalog, err := i18n.Load(cfg.I18n.CatalogPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.I18n.CatalogPath).Msg("Ошибка загрузки переводов")
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sheetsService := initGoogleSheets(ctx, cfg, &logger)

	redisClient, stateService := initStateService(ctx, cfg, &logger)
	defer func() {
		_ = repository.Close(redisClient)
	}()

	metrics.Register()

	// Запускаем воркер синхронизации Google Sheets
	var sheetsWorker *worker.SheetsWorker
	if sheetsService != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker = worker.NewSheetsWorker(db, sheetsService, redisClient, retryPolicy, &logger)
		go sheetsWorker.Start(ctx)
	}

	eventBus := events.NewEventBus()

	// Инициализация бизнес-сервисов
	userService := service.NewUserService(db, cfg, &logger)

	// Типизированный nil в интерфейсе сломал бы проверку в сервисе.
	var syncWorker domain.SyncWorker
	if sheetsWorker != nil {
		syncWorker = sheetsWorker
	}
	orderService := service.NewOrderService(db, eventBus, syncWorker, &logger)
	botMetrics := bot.NewMetrics()

	if cfg.Monitoring.PrometheusEnabled {
		monitoringServer := metrics.NewServer(cfg.Monitoring.PrometheusPort, &logger)
		go func() {
			if err := monitoringServer.Start(); err != nil {
				logger.Error().Err(err).Msg("Monitoring server error")
			}
		}()
		defer func() {
			_ = monitoringServer.Shutdown(context.Background())
		}()
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	return startBot(ctx, cfg, stateService, userService, orderService, eventBus, catalog, botMetrics, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

// initGoogleSheets returns nil when the mirror is not configured; the
// bot keeps working without it.
func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if cfg.Google.CredentialsFile == "" || cfg.Google.SpreadsheetID == "" {
		logger.Warn().Msg("Google Sheets mirror disabled: credentials or spreadsheet id missing")
		return nil
	}

	sheetsSvc, err := google.NewSheetsService(
		cfg.Google.CredentialsFile,
		cfg.Google.SpreadsheetID,
		cfg.Google.SheetName,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("Google Sheets connection test failed")
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, time.Duration(models.DefaultRedisTTL)*time.Second)
	fallbackRepo := repository.NewMemoryStateRepository(time.Duration(models.DefaultRedisTTL) * time.Second)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	stateService *service.StateService,
	userService *service.UserService,
	orderService *service.OrderService,
	eventBus *events.EventBus,
	catalog *i18n.Catalog,
	botMetrics *bot.Metrics,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper, float64(cfg.Bot.SendRateLimit))

	telegramBot, err := bot.NewBot(
		tgService, cfg, stateService, userService,
		orderService, eventBus, catalog, botMetrics, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}
