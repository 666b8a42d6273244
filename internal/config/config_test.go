package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "MONGO_URI", "DB_NAME", "SMTP_HOST", "SMTP_PORT", "SMTP_USER",
		"SMTP_PASS", "EMAIL_FROM", "ADMIN_EMAIL", "FRONTEND_URL", "MAX_FREE_CHARS",
		"UPLOAD_DIR", "PUBLIC_DIR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Puerto != "3001" {
		t.Errorf("expected default port 3001, got %q", cfg.Puerto)
	}
	if cfg.MaxFreeChars != 500 {
		t.Errorf("expected default ceiling 500, got %d", cfg.MaxFreeChars)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.UploadDir != "uploads" || cfg.PublicDir != "public" {
		t.Errorf("unexpected dirs: %q %q", cfg.UploadDir, cfg.PublicDir)
	}
	if cfg.FrontendURL != "" {
		t.Errorf("expected empty FrontendURL, got %q", cfg.FrontendURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_FREE_CHARS", "250")
	t.Setenv("FRONTEND_URL", "https://guiapericial.example.com/")
	t.Setenv("SMTP_USER", "envios@example.com")
	t.Setenv("EMAIL_FROM", "")

	cfg := Load()

	if cfg.Puerto != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Puerto)
	}
	if cfg.MaxFreeChars != 250 {
		t.Errorf("expected ceiling 250, got %d", cfg.MaxFreeChars)
	}
	// La base pública se guarda sin barra final
	if cfg.FrontendURL != "https://guiapericial.example.com" {
		t.Errorf("expected trimmed FrontendURL, got %q", cfg.FrontendURL)
	}
	// EMAIL_FROM cae al usuario SMTP
	if cfg.EmailFrom != "envios@example.com" {
		t.Errorf("expected EmailFrom fallback to SMTP_USER, got %q", cfg.EmailFrom)
	}
}

func TestLoadValorInvalido(t *testing.T) {
	t.Setenv("MAX_FREE_CHARS", "cero")
	t.Setenv("SMTP_PORT", "-1")

	cfg := Load()

	if cfg.MaxFreeChars != 500 {
		t.Errorf("expected fallback 500 on invalid value, got %d", cfg.MaxFreeChars)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected fallback 587 on invalid port, got %d", cfg.SMTPPort)
	}
}
