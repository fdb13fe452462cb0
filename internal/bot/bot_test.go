package bot

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"gvcargo/internal/config"
	"gvcargo/internal/database"
	"gvcargo/internal/domain"
	"gvcargo/internal/i18n"
	"gvcargo/internal/models"
	"gvcargo/internal/repository"
	"gvcargo/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegramService struct {
	domain.TelegramService
	updatesChan chan tgbotapi.Update
	sentTexts   []string
	htmlTexts   []string
	edits       []string
	deleted     []int
	answers     []string
	alerts      []string
	inlineKbs   []tgbotapi.InlineKeyboardMarkup
	replyKbs    []tgbotapi.ReplyKeyboardMarkup
	editErr     error
	nextMsgID   int
}

func (f *fakeTelegramService) message() tgbotapi.Message {
	f.nextMsgID++
	return tgbotapi.Message{MessageID: f.nextMsgID}
}

func (f *fakeTelegramService) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if mc, ok := c.(tgbotapi.MessageConfig); ok {
		f.sentTexts = append(f.sentTexts, mc.Text)
		if kb, ok := mc.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			f.inlineKbs = append(f.inlineKbs, kb)
		}
	}
	return f.message(), nil
}

func (f *fakeTelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	f.sentTexts = append(f.sentTexts, text)
	return f.message(), nil
}

func (f *fakeTelegramService) SendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	f.sentTexts = append(f.sentTexts, text)
	f.htmlTexts = append(f.htmlTexts, text)
	return f.message(), nil
}

func (f *fakeTelegramService) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error) {
	f.sentTexts = append(f.sentTexts, text)
	f.replyKbs = append(f.replyKbs, keyboard)
	return f.message(), nil
}

func (f *fakeTelegramService) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	f.sentTexts = append(f.sentTexts, text)
	f.inlineKbs = append(f.inlineKbs, keyboard)
	return f.message(), nil
}

func (f *fakeTelegramService) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	if f.editErr != nil {
		return tgbotapi.Message{}, f.editErr
	}
	f.edits = append(f.edits, text)
	return tgbotapi.Message{MessageID: messageID}, nil
}

func (f *fakeTelegramService) DeleteMessage(chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTelegramService) AnswerCallback(callbackID string, text string) error {
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeTelegramService) AnswerCallbackAlert(callbackID string, text string) error {
	f.alerts = append(f.alerts, text)
	return nil
}

func (f *fakeTelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updatesChan
}

func (f *fakeTelegramService) GetSelf() tgbotapi.User {
	return tgbotapi.User{UserName: "test_bot"}
}

func (f *fakeTelegramService) lastText(t *testing.T) string {
	t.Helper()
	if len(f.sentTexts) == 0 {
		t.Fatal("no messages sent")
	}
	return f.sentTexts[len(f.sentTexts)-1]
}

type fakeUserDirectory struct {
	users     map[int64]*models.User
	admins    map[int64]bool
	blacklist map[int64]bool
	nextID    int64
}

func newFakeUserDirectory() *fakeUserDirectory {
	return &fakeUserDirectory{
		users:     make(map[int64]*models.User),
		admins:    make(map[int64]bool),
		blacklist: make(map[int64]bool),
	}
}

func (f *fakeUserDirectory) GetOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	if user, ok := f.users[telegramID]; ok {
		return user, nil
	}
	f.nextID++
	user := &models.User{ID: f.nextID, TelegramID: telegramID, Username: username}
	f.users[telegramID] = user
	return user, nil
}

func (f *fakeUserDirectory) SetLanguage(ctx context.Context, telegramID int64, lang string) error {
	if user, ok := f.users[telegramID]; ok {
		user.LanguageCode = lang
	}
	return nil
}

func (f *fakeUserDirectory) SetConsent(ctx context.Context, telegramID int64) error {
	if user, ok := f.users[telegramID]; ok {
		user.Agreed = true
	}
	return nil
}

func (f *fakeUserDirectory) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserDirectory) IsAdmin(userID int64) bool       { return f.admins[userID] }
func (f *fakeUserDirectory) IsBlacklisted(userID int64) bool { return f.blacklist[userID] }

func (f *fakeUserDirectory) register(telegramID int64, lang string) *models.User {
	f.nextID++
	user := &models.User{ID: f.nextID, TelegramID: telegramID, Username: "tester", LanguageCode: lang, Agreed: true}
	f.users[telegramID] = user
	return user
}

type fakeOrderCommitter struct {
	committed []*models.Order
	byOwner   map[int64][]models.Order
	byCode    map[string]*models.Order
	commitErr error
}

func newFakeOrderCommitter() *fakeOrderCommitter {
	return &fakeOrderCommitter{
		byOwner: make(map[int64][]models.Order),
		byCode:  make(map[string]*models.Order),
	}
}

func (f *fakeOrderCommitter) Commit(ctx context.Context, order *models.Order) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	order.ID = int64(len(f.committed) + 1)
	order.ApplicantCode = fmt.Sprintf("Gv%d", 1000+len(f.committed)+1)
	f.committed = append(f.committed, order)
	f.byCode[order.ApplicantCode] = order
	return nil
}

func (f *fakeOrderCommitter) FindByApplicantCode(ctx context.Context, code string) (*models.Order, error) {
	if order, ok := f.byCode[code]; ok {
		return order, nil
	}
	return nil, database.ErrOrderNotFound
}

func (f *fakeOrderCommitter) ListByOwner(ctx context.Context, telegramID int64) ([]models.Order, error) {
	return f.byOwner[telegramID], nil
}

func (f *fakeOrderCommitter) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(f.committed)), nil
}

func (f *fakeOrderCommitter) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range f.committed {
		orders = append(orders, *o)
	}
	return orders, nil
}

type testBot struct {
	bot     *Bot
	tg      *fakeTelegramService
	users   *fakeUserDirectory
	orders  *fakeOrderCommitter
	states  domain.StateManager
	catalog *i18n.Catalog
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	catalog, err := i18n.Load("../../configs/translations.json")
	require.NoError(t, err)

	logger := zerolog.New(io.Discard)
	states := service.NewStateService(repository.NewMemoryStateRepository(time.Hour), &logger)
	tg := &fakeTelegramService{updatesChan: make(chan tgbotapi.Update, 1)}
	users := newFakeUserDirectory()
	orders := newFakeOrderCommitter()

	cfg := &config.Config{
		Telegram: config.TelegramConfig{BotToken: "test"},
		Bot:      config.BotConfig{RateLimitMessages: 100, RateLimitWindow: 60},
	}

	b, err := NewBot(tg, cfg, states, users, orders, nil, catalog, nil, &logger)
	require.NoError(t, err)

	return &testBot{bot: b, tg: tg, users: users, orders: orders, states: states, catalog: catalog}
}

func msgUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: userID, UserName: "tester"},
			Chat:      &tgbotapi.Chat{ID: userID},
			Text:      text,
		},
	}
}

func locationUpdate(userID int64, lat, lon float64) tgbotapi.Update {
	u := msgUpdate(userID, "")
	u.Message.Location = &tgbotapi.Location{Latitude: lat, Longitude: lon}
	return u
}

func cbUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: userID, UserName: "tester"},
			Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: userID}},
			Data:    data,
		},
	}
}

func TestRegistrationFlow(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	// First contact: any text yields the language picker.
	tb.bot.handleMessage(ctx, msgUpdate(100, "hello"))
	assert.Equal(t, tb.catalog.Get("choose_language", models.LangRU), tb.tg.lastText(t))
	require.Len(t, tb.tg.inlineKbs, 1)
	assert.Equal(t, "initial_lang_ru", *tb.tg.inlineKbs[0].InlineKeyboard[0][0].CallbackData)

	// Picking a language removes the picker and shows the agreement.
	tb.bot.handleCallbackQuery(ctx, cbUpdate(100, "initial_lang_en"))
	assert.Equal(t, "en", tb.users.users[100].LanguageCode)
	assert.Len(t, tb.tg.deleted, 1)
	assert.Equal(t, tb.catalog.Get("agreement_prompt", "en"), tb.tg.lastText(t))

	// Declining keeps the user unregistered.
	tb.bot.handleCallbackQuery(ctx, cbUpdate(100, "agree_no"))
	assert.False(t, tb.users.users[100].Agreed)
	assert.Equal(t, tb.catalog.Get("agree_no_reply", "en"), tb.tg.edits[len(tb.tg.edits)-1])

	// Accepting stores consent and opens the main menu.
	tb.bot.handleCallbackQuery(ctx, cbUpdate(100, "agree_yes"))
	assert.True(t, tb.users.users[100].Agreed)
	assert.Equal(t, tb.catalog.Get("main_menu_title", "en"), tb.tg.lastText(t))
	require.NotEmpty(t, tb.tg.replyKbs)
}

func TestMainMenuAdminRows(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	tb.users.register(100, "ru")
	tb.bot.showMainMenu(ctx, 100, 100, "ru")
	require.Len(t, tb.tg.replyKbs, 1)
	assert.Len(t, tb.tg.replyKbs[0].Keyboard, 3)

	tb.users.admins[200] = true
	tb.users.register(200, "ru")
	tb.bot.showMainMenu(ctx, 200, 200, "ru")
	require.Len(t, tb.tg.replyKbs, 2)
	assert.Len(t, tb.tg.replyKbs[1].Keyboard, 5)
}

func TestChangeLanguageFromSettings(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	tb.users.register(100, "ru")

	tb.bot.handleMessage(ctx, msgUpdate(100, tb.catalog.Get("main_menu_settings_btn", "ru")))
	assert.Equal(t, tb.catalog.Get("settings_menu_title", "ru"), tb.tg.lastText(t))

	tb.bot.handleCallbackQuery(ctx, cbUpdate(100, "change_lang_uz"))
	assert.Equal(t, "uz", tb.users.users[100].LanguageCode)
	assert.Equal(t, tb.catalog.Get("main_menu_title", "uz"), tb.tg.lastText(t))
}

func TestResetCommandsClearState(t *testing.T) {
	tb := newTestBot(t)
	ctx := context.Background()

	tb.users.register(100, "ru")

	for _, text := range []string{"/start", "сброс", "reset", "Сброс"} {
		tb.bot.startIntake(ctx, 100, 100, "ru")
		tb.bot.handleMessage(ctx, msgUpdate(100, text))

		state, err := tb.states.GetUserState(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, state, "command %q must clear the state", text)
	}
}

func TestBlacklistedUserIgnored(t *testing.T) {
	tb := newTestBot(t)

	tb.users.blacklist[100] = true
	tb.bot.processUpdate(context.Background(), msgUpdate(100, "/start"))

	assert.Empty(t, tb.tg.sentTexts)
}

func TestBotStartAndStop(t *testing.T) {
	tb := newTestBot(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tb.bot.Start(ctx)
		close(done)
	}()

	tb.tg.updatesChan <- msgUpdate(100, "/start")

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	assert.NotEmpty(t, tb.tg.sentTexts)
	assert.Contains(t, tb.users.users, int64(100))
}
