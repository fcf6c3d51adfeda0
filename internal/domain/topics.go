package domain

import "fmt"

// Topic — тема генерируемых фактов.
type Topic string

const (
	TopicRandom     Topic = "Random"
	TopicScience    Topic = "Science"
	TopicHistory    Topic = "History"
	TopicNature     Topic = "Nature"
	TopicSpace      Topic = "Space"
	TopicTechnology Topic = "Technology"
	TopicArt        Topic = "Art"
	TopicPsychology Topic = "Psychology"
	TopicGeography  Topic = "Geography"
)

// Topics перечисляет допустимые темы в порядке отображения.
var Topics = []Topic{
	TopicRandom,
	TopicScience,
	TopicHistory,
	TopicNature,
	TopicSpace,
	TopicTechnology,
	TopicArt,
	TopicPsychology,
	TopicGeography,
}

// ParseTopic проверяет, что значение входит в список допустимых тем.
func ParseTopic(raw string) (Topic, error) {
	for _, t := range Topics {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("неизвестная тема %q", raw)
}
