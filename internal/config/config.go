package config

import (
	"errors"
	"fmt"
	"os"

	"gvcargo/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	I18n       I18nConfig       `yaml:"i18n"`
	Google     GoogleConfig     `yaml:"google"`
	Exports    ExportConfig     `yaml:"exports"`
	Bot        BotConfig        `yaml:"bot"`
	Admins     []int64          `yaml:"admins"`
	Blacklist  []int64          `yaml:"blacklist"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken        string `yaml:"bot_token"`
	ReviewChannelID int64  `yaml:"review_channel_id"`
	Debug           bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type I18nConfig struct {
	CatalogPath string `yaml:"catalog_path"`
}

type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type BotConfig struct {
	RateLimitMessages int `yaml:"rate_limit_messages"`
	RateLimitWindow   int `yaml:"rate_limit_window"`
	SendRateLimit     int `yaml:"send_rate_limit"` // outbound messages per second
}

func Load(configPath string) (*Config, error) {
	// .env отсутствует в контейнерах, это не ошибка
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if c.Telegram.ReviewChannelID == 0 {
		return errors.New("telegram review channel id is required")
	}

	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	return nil
}

// IsAdmin reports membership in the static admin allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.I18n.CatalogPath == "" {
		c.I18n.CatalogPath = "configs/translations.json"
	}
	if c.Google.SheetName == "" {
		c.Google.SheetName = "Orders"
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = models.RateLimitMessages
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = models.RateLimitWindow
	}
	if c.Bot.SendRateLimit == 0 {
		c.Bot.SendRateLimit = 25
	}
}
