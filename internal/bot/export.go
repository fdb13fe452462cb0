package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gvcargo/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// handleExportOrders builds an xlsx snapshot of every order and sends
// it to the admin as a document.
func (b *Bot) handleExportOrders(ctx context.Context, chatID int64, lang string) {
	filePath, err := b.exportOrdersToExcel(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Orders export failed")
		b.sendMessage(chatID, b.text("export_error", lang))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	doc.Caption = b.text("export_ready", lang)
	if _, err := b.tgService.Send(doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("file_path", filePath).Msg("Failed to send export document")
		b.sendMessage(chatID, b.text("export_error", lang))
	}
}

// exportOrdersToExcel создает Excel файл со всеми заказами
func (b *Bot) exportOrdersToExcel(ctx context.Context) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	orders, err := b.orderService.GetAllOrders(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting orders: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Заказы"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовки повторяют колонки реестра в Google Sheets
	headers := []string{
		"Telegram ID", "ФИО", "Телефон",
		"Номер заказа (Taobao)", "Дата заказа",
		"Локация", "Номер заказа заявителя",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i, order := range orders {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), order.TelegramID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), order.FullName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), order.Phone)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), order.OrderNumber)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), order.OrderDate.Format("2006-01-02 15:04:05"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), exportLocation(order))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), order.ApplicantCode)
	}

	// Настраиваем ширину колонок
	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", "B", 30)
	_ = f.SetColWidth(sheetName, "C", "C", 18)
	_ = f.SetColWidth(sheetName, "D", "D", 25)
	_ = f.SetColWidth(sheetName, "E", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 40)
	_ = f.SetColWidth(sheetName, "G", "G", 15)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("orders_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Int("orders", len(orders)).Msg("Orders Excel file created")
	return filePath, nil
}

func exportLocation(order models.Order) string {
	if order.Location != "" {
		return order.Location
	}
	if order.HasLocation() {
		return fmt.Sprintf("%f, %f", *order.Latitude, *order.Longitude)
	}
	return ""
}
