package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI string

	// Sweep schedule as an RFC 5545 rule and the lookahead window in days.
	SweepRule  string
	WindowDays int

	// Email channel. Enabled when SMTPHost and EmailTo are both set.
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	EmailTo   string

	// Telegram channel. Enabled when token and chat id are both set.
	TelegramToken  string
	TelegramChatID int64

	CurrencySymbol string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		DatabaseURI:    os.Getenv("DATABASE_URI"),
		SweepRule:      getEnvOrDefault("SWEEP_RULE", "FREQ=DAILY;BYHOUR=8;BYMINUTE=0"),
		WindowDays:     getEnvInt("REMINDER_WINDOW_DAYS", 5),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		EmailTo:        os.Getenv("EMAIL_TO"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),
		CurrencySymbol: getEnvOrDefault("CURRENCY_SYMBOL", "₹"),
	}, nil
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailTo != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
