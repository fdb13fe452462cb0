package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gvcargo/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Столбцы реестра заказов в таблице.
var orderHeaders = []interface{}{
	"Telegram ID",
	"ФИО",
	"Телефон",
	"Номер заказа (Taobao)",
	"Дата заказа",
	"Локация",
	"Номер заказа заявителя",
}

// SheetsService mirrors committed orders into a Google spreadsheet.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsService builds a client from a service-account credentials file.
func NewSheetsService(credentialsFile, spreadsheetID, sheetName string) (*SheetsService, error) {
	ctx := context.Background()

	// Читаем файл учетных данных сервисного аккаунта
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	// Создаем JWT конфигурацию
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	client := config.Client(ctx)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	if sheetName == "" {
		sheetName = "Orders"
	}

	return &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// TestConnection проверяет подключение к таблице
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// GetServiceAccountEmail возвращает email сервисного аккаунта
func (s *SheetsService) GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}

	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}

	return creds.ClientEmail, nil
}

// EnsureHeader writes the header row when the sheet is empty.
func (s *SheetsService) EnsureHeader(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName+"!A1:G1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to read header row: %v", err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{orderHeaders}}
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, s.sheetName+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// AppendOrder добавляет новый заказ в конец реестра
func (s *SheetsService) AppendOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{orderRowValues(order)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName+"!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ReplaceOrdersSheet полностью перезаписывает реестр заказов
func (s *SheetsService) ReplaceOrdersSheet(ctx context.Context, orders []*models.Order) error {
	clearRange := s.sheetName + "!A2:Z"
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear orders sheet: %v", err)
	}

	var values [][]interface{}
	for _, order := range orders {
		values = append(values, orderRowValues(order))
	}
	if len(values) == 0 {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, s.sheetName+"!A2", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update orders sheet: %v", err)
	}
	return nil
}

func orderRowValues(order *models.Order) []interface{} {
	location := order.Location
	if location == "" && order.HasLocation() {
		location = fmt.Sprintf("%f, %f", *order.Latitude, *order.Longitude)
	}

	return []interface{}{
		order.TelegramID,
		order.FullName,
		order.Phone,
		order.OrderNumber,
		order.OrderDate.Format("2006-01-02 15:04:05"),
		location,
		order.ApplicantCode,
	}
}
