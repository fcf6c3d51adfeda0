package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/metrics"
)

// Client доставляет артефакты и опрашивает события через Bot API.
type Client struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewClient создаёт клиента Bot API.
func NewClient(token string, logger zerolog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("создание бота: %w", err)
	}
	logger.Info().Str("bot", bot.Self.UserName).Msg("Bot API клиент готов")
	return &Client{bot: bot, log: logger}, nil
}

// SendPhoto отправляет изображение с HTML-подписью в один чат.
func (c *Client) SendPhoto(ctx context.Context, chatID string, image []byte, captionHTML string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("некорректный chat id %q: %w", chatID, err)
	}

	photo := tgbotapi.NewPhoto(id, tgbotapi.FileBytes{Name: "generated-fact.jpg", Bytes: image})
	photo.Caption = clampCaption(captionHTML)
	photo.ParseMode = tgbotapi.ModeHTML

	start := time.Now()
	_, err = c.bot.Send(photo)
	metrics.ObserveNetworkRequest("telegram", "send_photo", "bot_api", start, err)
	if err != nil {
		return fmt.Errorf("отправка фото: %w", err)
	}
	return nil
}

// PollEvents выгружает накопленные апдейты и переводит их в доменные события.
func (c *Client) PollEvents(ctx context.Context) ([]domain.Event, error) {
	start := time.Now()
	updates, err := c.bot.GetUpdates(tgbotapi.UpdateConfig{})
	metrics.ObserveNetworkRequest("telegram", "get_updates", "bot_api", start, err)
	if err != nil {
		return nil, fmt.Errorf("получение апдейтов: %w", err)
	}

	events := make([]domain.Event, 0, len(updates))
	for _, upd := range updates {
		if ev, ok := convertUpdate(upd); ok {
			events = append(events, ev)
		}
	}
	c.log.Debug().Int("updates", len(updates)).Int("events", len(events)).Msg("апдейты получены")
	return events, nil
}
