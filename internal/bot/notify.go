package bot

import (
	"context"
	"encoding/json"
	"time"

	"gvcargo/internal/events"
	"gvcargo/internal/models"
)

// onOrderCreated forwards every committed order to the review channel.
// Notification failures are logged and never surface to the user.
func (b *Bot) onOrderCreated(event *events.Event) error {
	if b.config.Telegram.ReviewChannelID == 0 {
		return nil
	}

	var payload events.OrderEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		b.logger.Error().Err(err).Msg("Failed to decode order event")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := b.orderService.FindByApplicantCode(ctx, payload.ApplicantCode)
	if err != nil {
		b.logger.Error().Err(err).Str("applicant_code", payload.ApplicantCode).Msg("Failed to load order for notification")
		return err
	}

	text := b.renderReviewNotification(order, models.LangRU)
	if _, err := b.tgService.SendHTML(b.config.Telegram.ReviewChannelID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", b.config.Telegram.ReviewChannelID).Msg("Failed to notify review channel")
		return err
	}

	return nil
}
