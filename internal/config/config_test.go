package config

import (
	"os"
	"path/filepath"
	"testing"

	"gvcargo/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
  review_channel_id: -100200300
database:
  path: "test.db"
admins:
  - 111
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	t.Setenv("TEST_BOT_TOKEN", "test_token")

	// Mock .env file
	if err := os.WriteFile(".env", []byte(""), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Remove(".env")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "test_token" {
		t.Errorf("expected bot_token test_token, got %s", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ReviewChannelID != -100200300 {
		t.Errorf("expected review channel -100200300, got %d", cfg.Telegram.ReviewChannelID)
	}
	if len(cfg.Admins) != 1 || cfg.Admins[0] != 111 {
		t.Errorf("expected 1 admin with id 111, got %v", cfg.Admins)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token", ReviewChannelID: -1},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: false,
		},
		{
			name: "missing token",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "", ReviewChannelID: -1},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: true,
		},
		{
			name: "placeholder token",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "YOUR_BOT_TOKEN_HERE", ReviewChannelID: -1},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: true,
		},
		{
			name: "missing review channel",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token", ReviewChannelID: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.I18n.CatalogPath != "configs/translations.json" {
		t.Errorf("expected default catalog path, got %s", cfg.I18n.CatalogPath)
	}
	if cfg.Google.SheetName != "Orders" {
		t.Errorf("expected default sheet name Orders, got %s", cfg.Google.SheetName)
	}
	if cfg.Exports.Path != "exports" {
		t.Errorf("expected default exports path, got %s", cfg.Exports.Path)
	}
	if cfg.Bot.RateLimitMessages != models.RateLimitMessages {
		t.Errorf("expected default rate limit messages %d, got %d", models.RateLimitMessages, cfg.Bot.RateLimitMessages)
	}
	if cfg.Bot.RateLimitWindow != models.RateLimitWindow {
		t.Errorf("expected default rate limit window %d, got %d", models.RateLimitWindow, cfg.Bot.RateLimitWindow)
	}
	if cfg.Bot.SendRateLimit != 25 {
		t.Errorf("expected default send rate limit 25, got %d", cfg.Bot.SendRateLimit)
	}

	cfg = &Config{Monitoring: MonitoringConfig{PrometheusEnabled: true}}
	cfg.applyDefaults()
	if cfg.Monitoring.PrometheusPort != 9090 {
		t.Errorf("expected default prometheus port 9090, got %d", cfg.Monitoring.PrometheusPort)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := Config{Admins: []int64{111, 222}}

	if !cfg.IsAdmin(111) {
		t.Error("expected 111 to be admin")
	}
	if cfg.IsAdmin(333) {
		t.Error("expected 333 not to be admin")
	}
}
