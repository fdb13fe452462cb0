package bot

import (
	"context"
	"os"
	"time"

	"gvcargo/internal/config"
	"gvcargo/internal/domain"
	"gvcargo/internal/events"
	"gvcargo/internal/i18n"
	"gvcargo/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Bot struct {
	tgService    domain.TelegramService
	config       *config.Config
	stateService domain.StateManager
	userService  domain.UserDirectory
	orderService domain.OrderCommitter
	eventBus     *events.EventBus
	catalog      *i18n.Catalog
	metrics      *Metrics
	logger       *zerolog.Logger
}

func NewBot(
	tgService domain.TelegramService,
	config *config.Config,
	stateService domain.StateManager,
	userService domain.UserDirectory,
	orderService domain.OrderCommitter,
	eventBus *events.EventBus,
	catalog *i18n.Catalog,
	botMetrics *Metrics,
	logger *zerolog.Logger,
) (*Bot, error) {
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}

	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	b := &Bot{
		tgService:    tgService,
		config:       config,
		stateService: stateService,
		userService:  userService,
		orderService: orderService,
		eventBus:     eventBus,
		catalog:      catalog,
		metrics:      botMetrics,
		logger:       logger,
	}

	eventBus.Subscribe(events.EventOrderCreated, b.onOrderCreated)

	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tgService.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	// Создаем контекст для обработки каждого обновления
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		var userID int64
		if update.Message != nil {
			userID = update.Message.From.ID
		} else if update.CallbackQuery != nil {
			userID = update.CallbackQuery.From.ID
		}

		if userID == 0 {
			return
		}

		if b.userService.IsBlacklisted(userID) {
			return
		}

		if !b.userService.IsAdmin(userID) {
			allowed, err := b.stateService.CheckRateLimit(updateCtx, userID, b.config.Bot.RateLimitMessages, time.Duration(b.config.Bot.RateLimitWindow)*time.Second)
			if err != nil {
				b.logger.Error().Err(err).Int64("user_id", userID).Msg("Rate limit check failed")
			} else if !allowed {
				b.logger.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
				if update.Message != nil {
					lang := b.userLang(updateCtx, userID)
					b.sendMessage(update.Message.Chat.ID, b.text("rate_limited", lang))
				}
				return
			}
		}

		if update.CallbackQuery != nil {
			metrics.IncUpdate("callback")
			b.handleCallbackQuery(updateCtx, update)
			return
		}

		if update.Message == nil {
			return
		}

		metrics.IncUpdate("message")
		b.handleMessage(updateCtx, update)
	})
}
