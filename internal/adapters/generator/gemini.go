package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/gemini"
)

type contentClient interface {
	GenerateContent(ctx context.Context, model string, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

// Gemini реализует генератор фактов через Generative Language API.
type Gemini struct {
	client     contentClient
	textModel  string
	imageModel string
	timeout    time.Duration
}

// NewGemini создаёт провайдер генерации.
func NewGemini(client contentClient, textModel, imageModel string, timeout time.Duration) *Gemini {
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gemini{client: client, textModel: textModel, imageModel: imageModel, timeout: timeout}
}

var htmlTagRegexp = regexp.MustCompile(`<[^>]*>`)

const textPromptTemplate = `Create an engaging, lively Telegram channel post about %s in Russian.

Structure:
1. Headline: A short, catchy title with a relevant emoji at the start, wrapped in <b> tags.
2. Body: An interesting, mind-blowing fact. Use <i> tags for key emphasis if needed. The tone should be like a popular science channel (curious, exciting).
3. Footer: 2-3 relevant hashtags in Russian.

Constraints:
- Language: Russian (Русский).
- Format: Use HTML tags (<b>, <i>, <u>, <s>, <a>) strictly. Do not use Markdown (**).
- Length: Keep it concise (under 500 characters) but expressive.
- No preamble. Start directly with the headline.`

const imagePromptTemplate = `Create a hyper-realistic, cinematic, high-quality photograph or digital art illustrating this concept: %q.
Style: 4k resolution, detailed texture, dramatic lighting, photorealistic, National Geographic style.
No text inside the image.`

// GenerateText запрашивает факт по теме.
func (g *Gemini) GenerateText(ctx context.Context, topic domain.Topic) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(textPromptTemplate, topicPrompt(topic))
	resp, err := g.client.GenerateContent(ctx, g.textModel, textRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("генерация факта: %w", err)
	}
	text := strings.TrimSpace(resp.FirstText())
	if text == "" {
		return "", fmt.Errorf("генерация факта: пустой ответ модели")
	}
	return text, nil
}

// GenerateImage строит изображение по факту. Модель получает текст
// без HTML-разметки.
func (g *Gemini) GenerateImage(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	clean := strings.TrimSpace(htmlTagRegexp.ReplaceAllString(text, ""))
	prompt := fmt.Sprintf(imagePromptTemplate, clean)
	resp, err := g.client.GenerateContent(ctx, g.imageModel, textRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("генерация изображения: %w", err)
	}
	data, ok := resp.FirstInlineData()
	if !ok {
		return nil, fmt.Errorf("генерация изображения: в ответе нет изображения")
	}
	image, err := base64.StdEncoding.DecodeString(data.Data)
	if err != nil {
		return nil, fmt.Errorf("декодирование изображения: %w", err)
	}
	return image, nil
}

// topicPrompt разворачивает тему Random в список направлений.
func topicPrompt(topic domain.Topic) string {
	if topic == domain.TopicRandom {
		return "history, science, nature, or technology"
	}
	return strings.ToLower(string(topic))
}

func textRequest(prompt string) gemini.GenerateContentRequest {
	return gemini.GenerateContentRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{{Text: prompt}}}},
	}
}
