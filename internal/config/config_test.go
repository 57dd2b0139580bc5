package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CHAPTERDESK_API_KEY", "PATHSTORE_URL", "PATHSTORE_API_KEY",
		"STRICT_PUBLISH", "SESSION_TTL", "MAX_UPLOAD_BYTES", "SEED_SPLIT_HEADINGS", "PDF_FALLBACK_PDFTOTEXT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if !cfg.StrictPublish {
		t.Error("expected strict publish by default")
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.SeedSplitHeadings {
		t.Error("expected heading split off by default")
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STRICT_PUBLISH", "false")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")
	t.Setenv("SEED_SPLIT_HEADINGS", "true")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "notabool")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.StrictPublish {
		t.Error("expected strict publish off")
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("expected 15m, got %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected non-positive limit to fall back, got %d", cfg.MaxUploadBytes)
	}
	if !cfg.SeedSplitHeadings {
		t.Error("expected heading split on")
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected unparsable bool to keep the default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing api key", Config{}, true},
		{"api key only", Config{ChapterdeskAPIKey: "k"}, false},
		{"pathstore without key", Config{ChapterdeskAPIKey: "k", PathstoreURL: "http://ps"}, true},
		{"pathstore with key", Config{ChapterdeskAPIKey: "k", PathstoreURL: "http://ps", PathstoreAPIKey: "p"}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
