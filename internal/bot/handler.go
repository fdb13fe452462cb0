package bot

import (
	"context"
	"strings"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	text := update.Message.Text
	l := zerolog.Ctx(ctx)

	l.Debug().
		Int64("user_id", userID).
		Str("username", update.Message.From.UserName).
		Str("text", text).
		Msg("Handling message")

	user, err := b.userService.GetOrCreate(ctx, userID, update.Message.From.UserName)
	if err != nil {
		l.Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve user")
		b.sendMessage(update.Message.Chat.ID, b.text("generic_error", models.LangRU))
		return
	}
	lang := user.LanguageCode

	lower := strings.ToLower(strings.TrimSpace(text))
	if text == "/start" || lower == "сброс" || lower == "reset" {
		b.clearUserState(ctx, userID)
		b.handleStart(ctx, update.Message.Chat.ID, user)
		return
	}

	if update.Message.Location != nil {
		b.handleLocationMessage(ctx, update, user)
		return
	}

	// Шаги диалога имеют приоритет над кнопками меню.
	state := b.getUserState(ctx, userID)
	if state != nil {
		switch state.CurrentStep {
		case models.StateAwaitFullName:
			b.handleFullNameStep(ctx, update, state, lang)
			return
		case models.StateAwaitPhone:
			b.handlePhoneStep(ctx, update, state, lang)
			return
		case models.StateAwaitOrderNumber:
			b.handleOrderNumberStep(ctx, update, state, lang)
			return
		case models.StateAwaitApplicantCode:
			if b.userService.IsAdmin(userID) {
				b.handleApplicantCodeLookup(ctx, update, lang)
				return
			}
		}
	}

	// Незавершенная регистрация: любой текст возвращает к /start.
	if lang == "" || !user.Agreed {
		b.handleStart(ctx, update.Message.Chat.ID, user)
		return
	}

	switch text {
	case b.text("main_menu_order_btn", lang):
		b.startIntake(ctx, update.Message.Chat.ID, userID, lang)

	case b.text("main_menu_my_orders_btn", lang):
		b.startBrowse(ctx, update.Message.Chat.ID, userID, lang)

	case b.text("main_menu_help_btn", lang):
		b.sendMessage(update.Message.Chat.ID, b.text("help_text", lang))

	case b.text("main_menu_settings_btn", lang):
		b.showSettings(ctx, update.Message.Chat.ID, lang)

	case b.text("admin_stats_btn", lang):
		if b.userService.IsAdmin(userID) {
			b.handleStats(ctx, update.Message.Chat.ID, lang)
		}

	case b.text("admin_order_info_btn", lang):
		if b.userService.IsAdmin(userID) {
			b.startOrderLookup(ctx, update.Message.Chat.ID, userID, lang)
		}

	case b.text("admin_export_btn", lang):
		if b.userService.IsAdmin(userID) {
			b.handleExportOrders(ctx, update.Message.Chat.ID, lang)
		}
	}
}

// handleStart drives registration: language first, consent second,
// main menu once both are done.
func (b *Bot) handleStart(ctx context.Context, chatID int64, user *models.User) {
	if user.LanguageCode == "" {
		kb := b.languageKeyboard("initial_lang")
		if _, err := b.tgService.SendWithInlineKeyboard(chatID, b.text("choose_language", models.LangRU), kb); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send language picker")
		}
		return
	}

	lang := user.LanguageCode
	if user.Agreed {
		b.showMainMenu(ctx, chatID, user.TelegramID, lang)
		return
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("agree_yes_btn", lang), "agree_yes"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("agree_no_btn", lang), "agree_no"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, b.text("agreement_prompt", lang))
	msg.ParseMode = models.ParseModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = markup
	if _, err := b.tgService.Send(msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send agreement prompt")
	}
}

func (b *Bot) showSettings(ctx context.Context, chatID int64, lang string) {
	backRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.text("back_btn", lang), "back_to_main"),
	)
	kb := b.languageKeyboard("change_lang", backRow)
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, b.text("settings_menu_title", lang), kb); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send settings menu")
	}
}
