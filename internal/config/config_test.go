package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/famledger")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SweepRule != "FREQ=DAILY;BYHOUR=8;BYMINUTE=0" {
		t.Fatalf("default sweep rule = %q", cfg.SweepRule)
	}
	if cfg.WindowDays != 5 {
		t.Fatalf("default window = %d, want 5", cfg.WindowDays)
	}
	if cfg.CurrencySymbol != "₹" {
		t.Fatalf("default currency = %q", cfg.CurrencySymbol)
	}
	if cfg.EmailEnabled() || cfg.TelegramEnabled() {
		t.Fatal("channels must be disabled without credentials")
	}
}

func TestChannelToggles(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_TO", "family@example.com")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("REMINDER_WINDOW_DAYS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.EmailEnabled() {
		t.Fatal("email channel should be enabled")
	}
	if !cfg.TelegramEnabled() {
		t.Fatal("telegram channel should be enabled")
	}
	if cfg.TelegramChatID != -100200300 {
		t.Fatalf("chat id = %d", cfg.TelegramChatID)
	}
	if cfg.WindowDays != 7 {
		t.Fatalf("window = %d, want 7", cfg.WindowDays)
	}
}
