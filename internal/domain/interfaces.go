package domain

import (
	"context"
	"time"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository is the durable-store surface the services depend on.
type Repository interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username string) (*models.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	SetUserLanguage(ctx context.Context, telegramID int64, lang string) error
	SetUserConsent(ctx context.Context, telegramID int64) error
	CountUsers(ctx context.Context) (int64, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	CountOrders(ctx context.Context) (int64, error)
	GetOrdersByTelegramID(ctx context.Context, telegramID int64) ([]models.Order, error)
	GetOrderByApplicantCode(ctx context.Context, code string) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
}

// StateRepository persists transient per-user conversation scratch
// state and browse cursors.
type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, userID int64) error
	GetCursor(ctx context.Context, userID int64) (*models.BrowseCursor, error)
	SetCursor(ctx context.Context, cursor *models.BrowseCursor) error
	ClearCursor(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// StateManager is the service-level view of StateRepository.
type StateManager interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
	SetUserState(ctx context.Context, userID int64, step string, data map[string]interface{}) error
	ClearUserState(ctx context.Context, userID int64) error
	GetCursor(ctx context.Context, userID int64) (*models.BrowseCursor, error)
	SetCursor(ctx context.Context, cursor *models.BrowseCursor) error
	ClearCursor(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the raw bot API surface wrapped by the service.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// TelegramService is the transport collaborator the bot talks to.
type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendHTML(chatID int64, text string) (tgbotapi.Message, error)
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID string, text string) error
	AnswerCallbackAlert(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// SheetsWriter mirrors committed orders into the external ledger.
type SheetsWriter interface {
	EnsureHeader(ctx context.Context) error
	AppendOrder(ctx context.Context, order *models.Order) error
}

// SyncWorker queues best-effort ledger-mirror tasks.
type SyncWorker interface {
	EnqueueAppend(ctx context.Context, order *models.Order) error
}

// UserDirectory resolves Telegram identities to durable user records.
type UserDirectory interface {
	GetOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, error)
	SetLanguage(ctx context.Context, telegramID int64, lang string) error
	SetConsent(ctx context.Context, telegramID int64) error
	CountUsers(ctx context.Context) (int64, error)
	IsAdmin(userID int64) bool
	IsBlacklisted(userID int64) bool
}

// OrderCommitter runs the commit pipeline for a finished conversation.
type OrderCommitter interface {
	Commit(ctx context.Context, order *models.Order) error
	FindByApplicantCode(ctx context.Context, code string) (*models.Order, error)
	ListByOwner(ctx context.Context, telegramID int64) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
}
