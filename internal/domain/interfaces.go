package domain

import "context"

// Generator запрашивает у провайдера генерации текстовый факт
// и изображение к нему.
type Generator interface {
	// GenerateText возвращает готовый к публикации текст с HTML-разметкой.
	GenerateText(ctx context.Context, topic Topic) (string, error)
	// GenerateImage строит изображение по тексту факта.
	GenerateImage(ctx context.Context, text string) ([]byte, error)
}

// Messenger доставляет один артефакт в один чат.
type Messenger interface {
	SendPhoto(ctx context.Context, chatID string, image []byte, captionHTML string) error
}

// UpdateSource выгружает батч накопленных событий провайдера.
type UpdateSource interface {
	PollEvents(ctx context.Context) ([]Event, error)
}
