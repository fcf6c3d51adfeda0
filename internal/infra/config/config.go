package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Telegram struct {
		Token string `envconfig:"TG_BOT_TOKEN"`
	} `envconfig:""`

	Gemini struct {
		APIKey     string `envconfig:"GEMINI_API_KEY"`
		BaseURL    string `envconfig:"GEMINI_BASE_URL"`
		TextModel  string `envconfig:"GEMINI_TEXT_MODEL" default:"gemini-2.5-flash"`
		ImageModel string `envconfig:"GEMINI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
		TimeoutSec int    `envconfig:"GEMINI_TIMEOUT_SEC" default:"60"`
	} `envconfig:""`

	Broadcast struct {
		Topic           string `envconfig:"TOPIC" default:"Random"`
		IntervalMinutes int    `envconfig:"INTERVAL_MINUTES" default:"1"`
		RatePerSec      int    `envconfig:"BROADCAST_RATE_PER_SEC" default:"10"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения. Токен провайдера обязателен,
// интервал не может быть меньше минуты.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatal("TG_BOT_TOKEN не задан")
	}
	if cfg.Broadcast.IntervalMinutes < 1 {
		log.Fatalf("INTERVAL_MINUTES должен быть не меньше 1, получено %d", cfg.Broadcast.IntervalMinutes)
	}
	return cfg
}
