package bot

import (
	"context"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// startBrowse snapshots the user's orders and shows the first card.
func (b *Bot) startBrowse(ctx context.Context, chatID, userID int64, lang string) {
	orders, err := b.orderService.ListByOwner(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to list orders")
		b.sendMessage(chatID, b.text("order_info_error", lang))
		return
	}
	if len(orders) == 0 {
		b.sendMessage(chatID, b.text("no_orders", lang))
		return
	}

	cursor := &models.BrowseCursor{
		UserID: userID,
		Orders: orders,
		Index:  0,
	}
	b.sendOrderCard(ctx, chatID, cursor, lang, true)
}

// advanceBrowse moves the cursor one position and redraws in place.
func (b *Bot) advanceBrowse(ctx context.Context, callback *tgbotapi.CallbackQuery, forward bool) {
	userID := callback.From.ID
	lang := b.userLang(ctx, userID)

	cursor, err := b.stateService.GetCursor(ctx, userID)
	if err != nil || cursor == nil || len(cursor.Orders) == 0 {
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to get browse cursor")
		}
		if alertErr := b.tgService.AnswerCallbackAlert(callback.ID, b.text("order_info_error", lang)); alertErr != nil {
			b.logger.Error().Err(alertErr).Msg("Failed to answer callback")
		}
		return
	}

	cursor.Advance(forward)
	b.answerCallback(callback.ID, "")
	b.sendOrderCard(ctx, callback.Message.Chat.ID, cursor, lang, false)
}

// sendOrderCard renders the current card. Edits in place unless asked
// for a new message; a failed edit falls back to a fresh message so the
// user is never stuck.
func (b *Bot) sendOrderCard(ctx context.Context, chatID int64, cursor *models.BrowseCursor, lang string, newMessage bool) {
	order := cursor.Current()
	if order == nil {
		b.sendMessage(chatID, b.text("order_info_error", lang))
		return
	}

	text := b.renderOrderCard(order, cursor.Index, len(cursor.Orders), lang)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("prev_btn", lang), "prev"),
			tgbotapi.NewInlineKeyboardButtonData(b.text("next_btn", lang), "next"),
		),
	)

	if !newMessage {
		if _, err := b.tgService.EditMessage(chatID, cursor.MessageID, text, &kb); err == nil {
			b.saveCursor(ctx, cursor)
			return
		} else {
			zerolog.Ctx(ctx).Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to edit order card, sending new one")
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = kb
	sent, err := b.tgService.Send(msg)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send order card")
		return
	}
	cursor.MessageID = sent.MessageID
	b.saveCursor(ctx, cursor)
}

func (b *Bot) saveCursor(ctx context.Context, cursor *models.BrowseCursor) {
	if err := b.stateService.SetCursor(ctx, cursor); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", cursor.UserID).Msg("Failed to save browse cursor")
	}
}
