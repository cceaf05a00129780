package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.OllamaBaseURL() != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %q", cfg.OllamaBaseURL())
	}
	if cfg.OCREngine != "tesseract" {
		t.Errorf("OCREngine = %q", cfg.OCREngine)
	}
	if cfg.TesseractLan != "tha+eng" {
		t.Errorf("TesseractLan = %q", cfg.TesseractLan)
	}
	if cfg.TargetLanguage != "th" {
		t.Errorf("TargetLanguage = %q", cfg.TargetLanguage)
	}
	if cfg.CaptureInterval != 2*time.Second {
		t.Errorf("CaptureInterval = %v", cfg.CaptureInterval)
	}
	if cfg.Region.Width != 800 || cfg.Region.Height != 600 {
		t.Errorf("Region = %+v", cfg.Region)
	}
	if !cfg.AutoTranslate {
		t.Error("AutoTranslate should default on")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "10.0.0.5")
	t.Setenv("OLLAMA_PORT", "12000")
	t.Setenv("OCR_ENGINE", "vision")
	t.Setenv("MIN_WORD_LENGTH", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OllamaBaseURL() != "http://10.0.0.5:12000" {
		t.Errorf("OllamaBaseURL = %q", cfg.OllamaBaseURL())
	}
	if cfg.OCREngine != "vision" {
		t.Errorf("OCREngine = %q", cfg.OCREngine)
	}
	if cfg.MinWordLength != 3 {
		t.Errorf("MinWordLength = %d", cfg.MinWordLength)
	}
}

func TestCaptureIntervalClamped(t *testing.T) {
	t.Setenv("CAPTURE_INTERVAL", "5ms")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CaptureInterval != MinCaptureInterval {
		t.Errorf("interval = %v, want clamped to %v", cfg.CaptureInterval, MinCaptureInterval)
	}

	t.Setenv("CAPTURE_INTERVAL", "10m")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CaptureInterval != MaxCaptureInterval {
		t.Errorf("interval = %v, want clamped to %v", cfg.CaptureInterval, MaxCaptureInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"OCR_ENGINE", "paddle"},
		{"TRANSLATION_SERVICE", "deepl"},
		{"TRANSLATION_CACHE_SIZE", "0"},
		{"VOCABULARY_CAPACITY", "-1"},
		{"MIN_WORD_LENGTH", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s accepted, want error", tt.key, tt.val)
			}
		})
	}
}
