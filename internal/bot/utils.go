package bot

import (
	"context"
	"fmt"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Вспомогательные методы для работы с состояниями пользователей

func (b *Bot) setUserState(ctx context.Context, userID int64, step string, tempData map[string]interface{}) {
	if tempData == nil {
		tempData = make(map[string]interface{})
	}

	if err := b.stateService.SetUserState(ctx, userID, step, tempData); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Str("step", step).Msg("Failed to set user state")
	}
}

func (b *Bot) getUserState(ctx context.Context, userID int64) *models.UserState {
	state, err := b.stateService.GetUserState(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to get user state")
		return nil
	}
	return state
}

func (b *Bot) clearUserState(ctx context.Context, userID int64) {
	if err := b.stateService.ClearUserState(ctx, userID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to clear user state")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.tgService.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) sendHTML(chatID int64, text string) {
	if _, err := b.tgService.SendHTML(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// text возвращает перевод по ключу для языка пользователя.
func (b *Bot) text(key, lang string) string {
	return b.catalog.Get(key, lang)
}

func (b *Bot) textf(key, lang string, args ...interface{}) string {
	return b.catalog.Getf(key, lang, args...)
}

// userLang resolves the stored language of a user, defaulting to Russian.
func (b *Bot) userLang(ctx context.Context, telegramID int64) string {
	user, err := b.userService.GetOrCreate(ctx, telegramID, "")
	if err != nil || user == nil || user.LanguageCode == "" {
		return models.LangRU
	}
	return user.LanguageCode
}

// showMainMenu отправляет главное меню с учетом прав пользователя
func (b *Bot) showMainMenu(ctx context.Context, chatID, userID int64, lang string) {
	var rows [][]tgbotapi.KeyboardButton

	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(b.text("main_menu_order_btn", lang)),
	))
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(b.text("main_menu_my_orders_btn", lang)),
		tgbotapi.NewKeyboardButton(b.text("main_menu_help_btn", lang)),
	))
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(b.text("main_menu_settings_btn", lang)),
	))

	if b.userService.IsAdmin(userID) {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.text("admin_order_info_btn", lang)),
			tgbotapi.NewKeyboardButton(b.text("admin_stats_btn", lang)),
		))
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.text("admin_export_btn", lang)),
		))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true

	if _, err := b.tgService.SendWithKeyboard(chatID, b.text("main_menu_title", lang), keyboard); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send main menu")
	}
}

// languageKeyboard builds the language picker; prefix is the
// callback-data namespace ("initial_lang" or "change_lang").
func (b *Bot) languageKeyboard(prefix string, extraRows ...[]tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", fmt.Sprintf("%s_%s", prefix, models.LangRU)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", fmt.Sprintf("%s_%s", prefix, models.LangEN)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbekcha", fmt.Sprintf("%s_%s", prefix, models.LangUZ)),
		),
	}
	rows = append(rows, extraRows...)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
