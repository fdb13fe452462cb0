package bot

import (
	"fmt"
	"strings"

	"gvcargo/internal/models"
)

// locationLinks renders the dual map links for a coordinate pair, or
// the localized "not specified" placeholder.
func (b *Bot) locationLinks(latitude, longitude *float64, lang string) string {
	if latitude == nil || longitude == nil {
		return b.text("location_not_specified", lang)
	}
	googleLink := fmt.Sprintf("<a href='https://www.google.com/maps/search/?api=1&query=%f,%f'>Google</a>", *latitude, *longitude)
	yandexLink := fmt.Sprintf("<a href='https://yandex.com/maps/?ll=%f,%f&z=15'>Yandex</a>", *longitude, *latitude)
	return fmt.Sprintf("\n%s | %s", googleLink, yandexLink)
}

// sheetsLocation is the plain URL stored in the database and mirrored
// to the ledger.
func sheetsLocation(latitude, longitude *float64) string {
	if latitude == nil || longitude == nil {
		return ""
	}
	return fmt.Sprintf("https://maps.google.com/?q=%f,%f", *latitude, *longitude)
}

// renderOrderCard builds the paginated "my orders" card.
func (b *Bot) renderOrderCard(order *models.Order, index, total int, lang string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 %s\n\n", b.textf("order_x_of_y", lang, index+1, total)))
	sb.WriteString(fmt.Sprintf("%s: %s\n", b.text("your_order_number", lang), order.ApplicantCode))
	sb.WriteString(fmt.Sprintf("👤 %s: %s\n", b.text("full_name_label", lang), order.FullName))
	sb.WriteString(fmt.Sprintf("📞 %s: %s\n", b.text("phone_label", lang), order.Phone))
	sb.WriteString(fmt.Sprintf("📦 %s: %s\n", b.text("taobao_order_num_label", lang), order.OrderNumber))
	sb.WriteString(fmt.Sprintf("📅 %s: %s\n", b.text("date_label", lang), order.OrderDate.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("📍 %s: %s", b.text("location_label", lang), b.locationLinks(order.Latitude, order.Longitude, lang)))
	return sb.String()
}

// renderFinalSummary builds the pre-commit confirmation shown to the
// user once all intake fields are collected.
func (b *Bot) renderFinalSummary(state *models.UserState, userID int64, lang string) string {
	var lat, lon *float64
	if v, ok := state.GetFloat64("latitude"); ok {
		lat = &v
	}
	if v, ok := state.GetFloat64("longitude"); ok {
		lon = &v
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", b.text("final_check_prompt", lang)))
	sb.WriteString(fmt.Sprintf("👤 %s: %s\n", b.text("full_name_label", lang), state.GetString("full_name")))
	sb.WriteString(fmt.Sprintf("📞 %s: %s\n", b.text("phone_label", lang), state.GetString("phone")))
	sb.WriteString(fmt.Sprintf("♾️ %s: <code>Gv%d</code>\n", b.text("taobao_id_label", lang), userID))
	sb.WriteString(fmt.Sprintf("📦 %s: %s\n", b.text("taobao_order_num_label", lang), state.GetString("order_number")))
	sb.WriteString(fmt.Sprintf("📅 %s: %s\n", b.text("date_label", lang), state.GetString("order_date")))
	sb.WriteString(fmt.Sprintf("📍 %s: %s", b.text("location_label", lang), b.locationLinks(lat, lon, lang)))
	return sb.String()
}

// renderOrderSuccess builds the message a commit replaces the
// confirmation with.
func (b *Bot) renderOrderSuccess(order *models.Order, lang string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", b.text("order_success_title", lang)))
	sb.WriteString(fmt.Sprintf("%s: <code>%s</code>\n\n", b.text("your_order_number", lang), order.ApplicantCode))
	sb.WriteString(fmt.Sprintf("<b>%s:</b>\n", b.text("details", lang)))
	sb.WriteString(fmt.Sprintf("👤 %s\n", order.FullName))
	sb.WriteString(fmt.Sprintf("📞 %s\n", order.Phone))
	sb.WriteString(fmt.Sprintf("📦 Taobao №: %s\n", order.OrderNumber))
	sb.WriteString(fmt.Sprintf("📅 %s\n", order.OrderDate.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("📍 %s: %s", b.text("location_label", lang), b.locationLinks(order.Latitude, order.Longitude, lang)))
	return sb.String()
}

// renderReviewNotification builds the review-channel announcement for
// a freshly committed order.
func (b *Bot) renderReviewNotification(order *models.Order, lang string) string {
	var sb strings.Builder
	sb.WriteString("🆕 <b>Новый заказ!</b>\n\n")
	sb.WriteString(fmt.Sprintf("Номер заказа заявителя: <code>%s</code>\n", order.ApplicantCode))
	sb.WriteString(fmt.Sprintf("Уникальный ID: <code>%d</code>\n\n", order.UserID))
	sb.WriteString("<b>Клиент:</b>\n")
	sb.WriteString(fmt.Sprintf("👤 %s\n", order.FullName))
	sb.WriteString(fmt.Sprintf("📞 %s\n", order.Phone))
	sb.WriteString(fmt.Sprintf("🆔 <a href='tg://user?id=%d'>%d</a>\n\n", order.TelegramID, order.TelegramID))
	sb.WriteString("<b>Заказ:</b>\n")
	sb.WriteString(fmt.Sprintf("📦 Taobao №: %s\n", order.OrderNumber))
	sb.WriteString(fmt.Sprintf("📅 Дата: %s\n", order.OrderDate.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("📍 Локация: %s", b.locationLinks(order.Latitude, order.Longitude, lang)))
	return sb.String()
}

// renderAdminOrderInfo builds the admin lookup card for an order.
func (b *Bot) renderAdminOrderInfo(order *models.Order, lang string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n\n", b.textf("admin_order_found_title", lang, order.ApplicantCode)))
	sb.WriteString(fmt.Sprintf("%s\n", b.text("admin_user_data_label", lang)))
	sb.WriteString(fmt.Sprintf("👤 %s: %s\n", b.text("full_name_label", lang), order.FullName))
	sb.WriteString(fmt.Sprintf("📞 %s: %s\n", b.text("phone_label", lang), order.Phone))
	sb.WriteString(fmt.Sprintf("💬 Telegram ID: <code>%d</code> (<a href='tg://user?id=%d'>%s</a>)\n\n",
		order.TelegramID, order.TelegramID, b.text("admin_open_chat_link", lang)))
	sb.WriteString(fmt.Sprintf("%s\n", b.text("admin_order_data_label", lang)))
	sb.WriteString(fmt.Sprintf("📦 %s: %s\n", b.text("taobao_order_num_label", lang), order.OrderNumber))
	sb.WriteString(fmt.Sprintf("📅 %s: %s\n", b.text("date_label", lang), order.OrderDate.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("📍 %s: %s", b.text("location_label", lang), order.Location))
	return sb.String()
}

// warehouseAddress is the pickup point shown once personal data is
// confirmed. The block is language independent except for the closing
// instruction.
func (b *Bot) warehouseAddress(userID int64, lang string) string {
	return fmt.Sprintf(
		"📍 Филиал в Китае: \n\n"+
			"Warehouse 55055, No. B7, No. 101 Zhanqian Road, Liwan District, Guangzhou, Niuyun Hengtong Logistics 13178855505\n\n"+
			"广州市荔湾区站前路101号B7号5505库房牛运亨通物流13178855505\n\n"+
			"%s",
		b.textf("address_prompt", lang, userID),
	)
}
