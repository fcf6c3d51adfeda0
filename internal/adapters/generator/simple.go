package generator

import (
	"context"
	"encoding/base64"
	"math/rand"
	"time"

	"github.com/frediicrewii/facting/internal/domain"
)

// Simple возвращает заготовленные факты без обращения к провайдеру.
// Используется в dev-окружении, когда ключ Gemini не задан.
type Simple struct {
	rand *rand.Rand
}

// NewSimple создаёт офлайн-генератор.
func NewSimple() *Simple {
	return &Simple{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var cannedFacts = []string{
	"<b>🐙 Осьминоги</b>\nУ осьминога <i>три сердца</i>, и два из них останавливаются, когда он плывёт.\n\n#природа #факты",
	"<b>🌌 Нейтронные звёзды</b>\nЧайная ложка вещества нейтронной звезды весит около <i>миллиарда тонн</i>.\n\n#космос #астрономия",
	"<b>🏛 Древний Рим</b>\nРимляне чистили зубы порошком из <i>толчёной пемзы</i> и уксуса.\n\n#история #рим",
}

// placeholderPNG — прозрачный PNG 1×1 для офлайн-превью.
var placeholderPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// GenerateText возвращает случайный заготовленный факт.
func (s *Simple) GenerateText(ctx context.Context, topic domain.Topic) (string, error) {
	return cannedFacts[s.rand.Intn(len(cannedFacts))], nil
}

// GenerateImage возвращает изображение-заглушку.
func (s *Simple) GenerateImage(ctx context.Context, text string) ([]byte, error) {
	return placeholderPNG, nil
}
