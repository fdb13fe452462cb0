package bot

import (
	"context"
	"errors"
	"strings"

	"gvcargo/internal/database"
	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// handleStats reports the registered-user and order totals.
func (b *Bot) handleStats(ctx context.Context, chatID int64, lang string) {
	userCount, err := b.userService.CountUsers(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to count users")
		b.sendMessage(chatID, b.text("generic_error", lang))
		return
	}

	orderCount, err := b.orderService.CountOrders(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to count orders")
		b.sendMessage(chatID, b.text("generic_error", lang))
		return
	}

	b.sendMessage(chatID, b.textf("stats_message", lang, userCount)+"\n"+b.textf("stats_orders", lang, orderCount))
}

// startOrderLookup asks the admin for an applicant code.
func (b *Bot) startOrderLookup(ctx context.Context, chatID, userID int64, lang string) {
	b.setUserState(ctx, userID, models.StateAwaitApplicantCode, nil)
	b.sendMessage(chatID, b.text("admin_find_order_prompt", lang))
}

// handleApplicantCodeLookup resolves an applicant code to an order.
func (b *Bot) handleApplicantCodeLookup(ctx context.Context, update tgbotapi.Update, lang string) {
	code := strings.TrimSpace(update.Message.Text)
	b.clearUserState(ctx, update.Message.From.ID)

	order, err := b.orderService.FindByApplicantCode(ctx, code)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			b.sendMessage(update.Message.Chat.ID, b.textf("admin_order_not_found", lang, code))
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("applicant_code", code).Msg("Order lookup failed")
		b.sendMessage(update.Message.Chat.ID, b.text("generic_error", lang))
		return
	}

	b.sendHTML(update.Message.Chat.ID, b.renderAdminOrderInfo(order, lang))
}
