// Package config handles platform configuration
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Capture interval bounds (milliseconds). Values outside are clamped on load.
const (
	MinCaptureInterval = 500 * time.Millisecond
	MaxCaptureInterval = 10 * time.Second
)

// Region is a screen area in pixels.
type Region struct {
	X      int `env:"REGION_X" env-default:"100"`
	Y      int `env:"REGION_Y" env-default:"100"`
	Width  int `env:"REGION_WIDTH" env-default:"800"`
	Height int `env:"REGION_HEIGHT" env-default:"600"`
}

// Config is built once at startup and passed by pointer into constructors.
// Core packages never read ambient global state.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8000"`

	OllamaHost       string `env:"OLLAMA_HOST" env-default:"localhost"`
	OllamaPort       int    `env:"OLLAMA_PORT" env-default:"11434"`
	VisionModel      string `env:"VISION_MODEL" env-default:"gemma3:4b"`
	TranslationModel string `env:"TRANSLATION_MODEL" env-default:"gemma3:4b"`

	OCREngine    string `env:"OCR_ENGINE" env-default:"tesseract"` // "tesseract" or "vision"
	TesseractLan string `env:"TESSERACT_LANG" env-default:"tha+eng"`

	TranslationService string `env:"TRANSLATION_SERVICE" env-default:"ollama"` // "ollama" or "google"
	TargetLanguage     string `env:"TARGET_LANGUAGE" env-default:"th"`

	ConnectTimeout time.Duration `env:"TRANSLATE_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `env:"TRANSLATE_READ_TIMEOUT" env-default:"15s"`

	TranslationCacheSize int  `env:"TRANSLATION_CACHE_SIZE" env-default:"100"`
	VocabularyCapacity   int  `env:"VOCABULARY_CAPACITY" env-default:"1000"`
	MinWordLength        int  `env:"MIN_WORD_LENGTH" env-default:"2"`
	AutoTranslate        bool `env:"AUTO_TRANSLATE" env-default:"true"`

	CaptureInterval time.Duration `env:"CAPTURE_INTERVAL" env-default:"2s"`
	Region          Region

	VocabularyFile string `env:"VOCABULARY_FILE" env-default:""`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.clamp()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) clamp() {
	if c.CaptureInterval < MinCaptureInterval {
		c.CaptureInterval = MinCaptureInterval
	}
	if c.CaptureInterval > MaxCaptureInterval {
		c.CaptureInterval = MaxCaptureInterval
	}
}

func (c *Config) validate() error {
	if c.TranslationCacheSize <= 0 {
		return fmt.Errorf("TRANSLATION_CACHE_SIZE must be positive, got %d", c.TranslationCacheSize)
	}
	if c.VocabularyCapacity <= 0 {
		return fmt.Errorf("VOCABULARY_CAPACITY must be positive, got %d", c.VocabularyCapacity)
	}
	if c.MinWordLength <= 0 {
		return fmt.Errorf("MIN_WORD_LENGTH must be positive, got %d", c.MinWordLength)
	}
	switch c.OCREngine {
	case "tesseract", "vision":
	default:
		return fmt.Errorf("unknown OCR_ENGINE %q", c.OCREngine)
	}
	switch c.TranslationService {
	case "ollama", "google":
	default:
		return fmt.Errorf("unknown TRANSLATION_SERVICE %q", c.TranslationService)
	}
	return nil
}

// OllamaBaseURL returns the loopback Ollama endpoint.
func (c *Config) OllamaBaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.OllamaHost, c.OllamaPort)
}
