package service

import (
	"context"

	"gvcargo/internal/domain"
	"gvcargo/internal/metrics"
	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// TelegramService wraps the bot API with a global outbound rate limiter.
type TelegramService struct {
	bot     domain.TelegramSender
	limiter *rate.Limiter
}

// NewTelegramService builds the service; sendRate is outbound messages
// per second, zero disables the limiter.
func NewTelegramService(bot domain.TelegramSender, sendRate float64) *TelegramService {
	var limiter *rate.Limiter
	if sendRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(sendRate), 1)
	}
	return &TelegramService{
		bot:     bot,
		limiter: limiter,
	}
}

func (s *TelegramService) wait() {
	if s.limiter != nil {
		_ = s.limiter.Wait(context.Background())
	}
}

func (s *TelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.wait()
	msg, err := s.bot.Send(c)
	if err != nil {
		metrics.IncSendError()
	}
	return msg, err
}

func (s *TelegramService) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.wait()
	resp, err := s.bot.Request(c)
	if err != nil {
		metrics.IncSendError()
	}
	return resp, err
}

func (s *TelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return s.Send(msg)
}

func (s *TelegramService) SendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeHTML
	msg.DisableWebPagePreview = true
	return s.Send(msg)
}

func (s *TelegramService) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.Send(msg)
}

func (s *TelegramService) SendWithInlineKeyboard(
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.Send(msg)
}

func (s *TelegramService) EditMessage(
	chatID int64,
	messageID int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if keyboard != nil {
		msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
		msg.ParseMode = models.ParseModeHTML
		return s.Send(msg)
	}
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = models.ParseModeHTML
	return s.Send(msg)
}

func (s *TelegramService) DeleteMessage(chatID int64, messageID int) error {
	_, err := s.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (s *TelegramService) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := s.bot.Request(callback)
	return err
}

func (s *TelegramService) AnswerCallbackAlert(callbackID, text string) error {
	callback := tgbotapi.NewCallbackWithAlert(callbackID, text)
	_, err := s.bot.Request(callback)
	return err
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.bot.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}
