package bot

import (
	"context"
	"strings"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	data := callback.Data
	userID := callback.From.ID

	switch {
	case strings.HasPrefix(data, "initial_lang_"):
		b.handleInitialLanguage(ctx, callback, strings.TrimPrefix(data, "initial_lang_"))

	case strings.HasPrefix(data, "change_lang_"):
		b.handleChangeLanguage(ctx, callback, strings.TrimPrefix(data, "change_lang_"))

	case data == "agree_yes" || data == "agree_no":
		b.handleAgreement(ctx, callback, data == "agree_yes")

	case data == "confirm_yes" || data == "confirm_no":
		b.handleNameConfirm(ctx, callback, data == "confirm_yes")

	case data == "save_yes" || data == "save_no":
		b.handleFinalConfirm(ctx, callback, data == "save_yes")

	case data == "prev" || data == "next":
		b.advanceBrowse(ctx, callback, data == "next")

	case data == "back_to_main":
		b.answerCallback(callback.ID, "")
		b.deleteMessage(ctx, callback.Message.Chat.ID, callback.Message.MessageID)

	default:
		zerolog.Ctx(ctx).Debug().Str("data", data).Int64("user_id", userID).Msg("Unknown callback")
		b.answerCallback(callback.ID, "")
	}
}

func (b *Bot) handleInitialLanguage(ctx context.Context, callback *tgbotapi.CallbackQuery, lang string) {
	if !validLanguage(lang) {
		b.answerCallback(callback.ID, "")
		return
	}

	userID := callback.From.ID
	if err := b.userService.SetLanguage(ctx, userID, lang); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to set language")
		b.answerCallback(callback.ID, "")
		return
	}

	b.answerCallback(callback.ID, b.text("language_selected", lang))
	b.deleteMessage(ctx, callback.Message.Chat.ID, callback.Message.MessageID)

	// Продолжаем регистрацию: показываем соглашение или меню.
	user, err := b.userService.GetOrCreate(ctx, userID, callback.From.UserName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve user")
		return
	}
	b.handleStart(ctx, callback.Message.Chat.ID, user)
}

func (b *Bot) handleChangeLanguage(ctx context.Context, callback *tgbotapi.CallbackQuery, lang string) {
	if !validLanguage(lang) {
		b.answerCallback(callback.ID, "")
		return
	}

	userID := callback.From.ID
	if err := b.userService.SetLanguage(ctx, userID, lang); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to set language")
		b.answerCallback(callback.ID, "")
		return
	}

	b.answerCallback(callback.ID, b.text("language_selected", lang))
	b.deleteMessage(ctx, callback.Message.Chat.ID, callback.Message.MessageID)
	b.showMainMenu(ctx, callback.Message.Chat.ID, userID, lang)
}

func (b *Bot) handleAgreement(ctx context.Context, callback *tgbotapi.CallbackQuery, agreed bool) {
	userID := callback.From.ID
	lang := b.userLang(ctx, userID)
	b.answerCallback(callback.ID, "")

	if !agreed {
		b.editText(ctx, callback, b.text("agree_no_reply", lang))
		return
	}

	if err := b.userService.SetConsent(ctx, userID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to store consent")
		b.sendMessage(callback.Message.Chat.ID, b.text("generic_error", lang))
		return
	}

	b.editText(ctx, callback, b.text("agree_thanks", lang))
	b.showMainMenu(ctx, callback.Message.Chat.ID, userID, lang)
}

func (b *Bot) handleNameConfirm(ctx context.Context, callback *tgbotapi.CallbackQuery, confirmed bool) {
	userID := callback.From.ID
	lang := b.userLang(ctx, userID)
	b.answerCallback(callback.ID, "")

	state := b.getUserState(ctx, userID)
	if state == nil || state.CurrentStep != models.StateAwaitNameConfirm {
		return
	}

	if !confirmed {
		b.editText(ctx, callback, b.text("restart_prompt", lang))
		b.setUserState(ctx, userID, models.StateAwaitFullName, nil)
		return
	}

	user, err := b.userService.GetOrCreate(ctx, userID, callback.From.UserName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve user")
		b.sendMessage(callback.Message.Chat.ID, b.text("generic_error", lang))
		return
	}

	b.editText(ctx, callback, b.warehouseAddress(user.ID, lang))
	b.setUserState(ctx, userID, models.StateAwaitOrderNumber, state.TempData)
}

func (b *Bot) handleFinalConfirm(ctx context.Context, callback *tgbotapi.CallbackQuery, confirmed bool) {
	userID := callback.From.ID
	lang := b.userLang(ctx, userID)
	b.answerCallback(callback.ID, "")

	state := b.getUserState(ctx, userID)
	if state == nil || state.CurrentStep != models.StateAwaitFinalConfirm {
		return
	}

	if !confirmed {
		b.editText(ctx, callback, b.text("final_restart_prompt", lang))
		b.setUserState(ctx, userID, models.StateAwaitFullName, nil)
		return
	}

	user, err := b.userService.GetOrCreate(ctx, userID, callback.From.UserName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve user")
		b.sendMessage(callback.Message.Chat.ID, b.text("generic_error", lang))
		return
	}

	b.commitOrder(ctx, callback, state, user, lang)
}

func (b *Bot) answerCallback(callbackID, text string) {
	if err := b.tgService.AnswerCallback(callbackID, text); err != nil {
		b.logger.Error().Err(err).Msg("Failed to answer callback")
	}
}

func (b *Bot) editText(ctx context.Context, callback *tgbotapi.CallbackQuery, text string) {
	if _, err := b.tgService.EditMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", callback.Message.Chat.ID).Msg("Failed to edit message")
	}
}

func (b *Bot) deleteMessage(ctx context.Context, chatID int64, messageID int) {
	if err := b.tgService.DeleteMessage(chatID, messageID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to delete message")
	}
}

func validLanguage(lang string) bool {
	for _, l := range models.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
