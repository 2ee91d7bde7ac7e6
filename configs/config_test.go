package configs

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("PAYMENT_WINDOW_MINUTES", "")

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Server.Env, "development")
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("TokenTTLHours = %d, want 24", cfg.Auth.TokenTTLHours)
	}
	if cfg.Trading.PaymentWindowMinutes != 60 {
		t.Errorf("PaymentWindowMinutes = %d, want 60", cfg.Trading.PaymentWindowMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_HOURS", "48")
	t.Setenv("PAYMENT_WINDOW_MINUTES", "30")

	cfg := Load()

	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "9000")
	}
	if cfg.Auth.TokenTTLHours != 48 {
		t.Errorf("TokenTTLHours = %d, want 48", cfg.Auth.TokenTTLHours)
	}
	if cfg.Trading.PaymentWindowMinutes != 30 {
		t.Errorf("PaymentWindowMinutes = %d, want 30", cfg.Trading.PaymentWindowMinutes)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := Load()
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("TokenTTLHours = %d, want default 24", cfg.Auth.TokenTTLHours)
	}
}
