package bot

import (
	"context"
	"strings"
	"time"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const orderDateLayout = "2006-01-02 15:04:05"

// startIntake resets the scratch state and asks for the full name.
func (b *Bot) startIntake(ctx context.Context, chatID, userID int64, lang string) {
	b.setUserState(ctx, userID, models.StateAwaitFullName, map[string]interface{}{
		"started_at": time.Now().Format(time.RFC3339),
	})
	b.sendMessage(chatID, b.text("get_name_prompt", lang))
}

// handleFullNameStep validates the name has at least two words.
func (b *Bot) handleFullNameStep(ctx context.Context, update tgbotapi.Update, state *models.UserState, lang string) {
	fullName := strings.TrimSpace(update.Message.Text)
	if len(strings.Fields(fullName)) < 2 {
		b.sendMessage(update.Message.Chat.ID, b.text("name_error", lang))
		return
	}

	state.TempData["full_name"] = fullName
	b.setUserState(ctx, update.Message.From.ID, models.StateAwaitPhone, state.TempData)
	b.sendMessage(update.Message.Chat.ID, b.text("get_phone_prompt", lang))
}

// handlePhoneStep validates the international phone format.
func (b *Bot) handlePhoneStep(ctx context.Context, update tgbotapi.Update, state *models.UserState, lang string) {
	phone := strings.TrimSpace(update.Message.Text)
	if !strings.HasPrefix(phone, "+") {
		b.sendMessage(update.Message.Chat.ID, b.text("phone_error", lang))
		return
	}

	state.TempData["phone"] = phone
	b.setUserState(ctx, update.Message.From.ID, models.StateAwaitNameConfirm, state.TempData)

	text := b.text("confirm_data_prompt", lang) + "\n\n" +
		"👤 " + b.text("full_name_label", lang) + ": " + state.GetString("full_name") + "\n" +
		"📞 " + b.text("phone_label", lang) + ": " + phone
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("confirm_yes_btn", lang), "confirm_yes"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("confirm_no_btn", lang), "confirm_no"),
		),
	)
	if _, err := b.tgService.SendWithInlineKeyboard(update.Message.Chat.ID, text, markup); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", update.Message.Chat.ID).Msg("Failed to send confirm prompt")
	}
}

// handleOrderNumberStep stores the marketplace order number and asks
// for a location.
func (b *Bot) handleOrderNumberStep(ctx context.Context, update tgbotapi.Update, state *models.UserState, lang string) {
	orderNumber := strings.TrimSpace(update.Message.Text)
	if orderNumber == "" {
		b.sendMessage(update.Message.Chat.ID, b.text("get_order_number_error", lang))
		return
	}

	state.TempData["order_number"] = orderNumber
	state.TempData["order_date"] = time.Now().Format(orderDateLayout)
	b.setUserState(ctx, update.Message.From.ID, models.StateAwaitLocation, state.TempData)

	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(b.text("location_share_btn", lang)),
		),
	)
	markup.ResizeKeyboard = true
	markup.OneTimeKeyboard = true
	if _, err := b.tgService.SendWithKeyboard(update.Message.Chat.ID, b.text("get_location_prompt", lang), markup); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", update.Message.Chat.ID).Msg("Failed to send location prompt")
	}
}

// handleLocationMessage accepts the shared coordinates and shows the
// final confirmation. Stray location payloads outside the intake are
// ignored.
func (b *Bot) handleLocationMessage(ctx context.Context, update tgbotapi.Update, user *models.User) {
	userID := update.Message.From.ID
	lang := user.LanguageCode

	state := b.getUserState(ctx, userID)
	if state == nil || state.CurrentStep != models.StateAwaitLocation {
		return
	}

	chatID := update.Message.Chat.ID
	loc := update.Message.Location

	msg := tgbotapi.NewMessage(chatID, b.text("location_received", lang))
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.tgService.Send(msg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to acknowledge location")
	}

	state.TempData["latitude"] = loc.Latitude
	state.TempData["longitude"] = loc.Longitude
	b.setUserState(ctx, userID, models.StateAwaitFinalConfirm, state.TempData)

	summary := b.renderFinalSummary(state, user.ID, lang)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("final_confirm_btn", lang), "save_yes"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.text("final_reject_btn", lang), "save_no"),
		),
	)
	summaryMsg := tgbotapi.NewMessage(chatID, summary)
	summaryMsg.ParseMode = models.ParseModeHTML
	summaryMsg.DisableWebPagePreview = true
	summaryMsg.ReplyMarkup = kb
	if _, err := b.tgService.Send(summaryMsg); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send final summary")
	}
}

// commitOrder runs the commit pipeline from the collected scratch data
// and reports the outcome in place of the confirmation message.
func (b *Bot) commitOrder(ctx context.Context, callback *tgbotapi.CallbackQuery, state *models.UserState, user *models.User, lang string) {
	chatID := callback.Message.Chat.ID

	order := &models.Order{
		UserID:      user.ID,
		TelegramID:  user.TelegramID,
		FullName:    state.GetString("full_name"),
		Phone:       state.GetString("phone"),
		OrderNumber: state.GetString("order_number"),
	}

	if orderDate, err := time.Parse(orderDateLayout, state.GetString("order_date")); err == nil {
		order.OrderDate = orderDate
	} else {
		order.OrderDate = time.Now()
	}

	if lat, ok := state.GetFloat64("latitude"); ok {
		v := lat
		order.Latitude = &v
	}
	if lon, ok := state.GetFloat64("longitude"); ok {
		v := lon
		order.Longitude = &v
	}
	order.Location = sheetsLocation(order.Latitude, order.Longitude)

	if err := b.orderService.Commit(ctx, order); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", user.TelegramID).Msg("Order commit failed")
		b.sendMessage(chatID, b.getErrorMessage(err, lang))
		return
	}

	if b.metrics != nil {
		b.metrics.OrdersCreated.Inc()
		if startedAt := state.GetTime("started_at"); !startedAt.IsZero() {
			b.metrics.IntakeDuration.Observe(time.Since(startedAt).Seconds())
		}
	}

	if _, err := b.tgService.EditMessage(chatID, callback.Message.MessageID, b.renderOrderSuccess(order, lang), nil); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to edit success message")
	}

	b.clearUserState(ctx, user.TelegramID)
	b.showMainMenu(ctx, chatID, user.TelegramID, lang)
}
