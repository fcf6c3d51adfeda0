package domain

import "time"

// ChatKind описывает тип чата Telegram.
type ChatKind string

const (
	ChatKindUser       ChatKind = "user"
	ChatKindGroup      ChatKind = "group"
	ChatKindChannel    ChatKind = "channel"
	ChatKindSupergroup ChatKind = "supergroup"
	ChatKindUnknown    ChatKind = "unknown"
)

// ParseChatKind приводит тип чата из Bot API к известному значению.
// Личные чаты Bot API помечает как "private".
func ParseChatKind(raw string) ChatKind {
	switch ChatKind(raw) {
	case ChatKindUser, ChatKindGroup, ChatKindChannel, ChatKindSupergroup:
		return ChatKind(raw)
	case "private":
		return ChatKindUser
	default:
		return ChatKindUnknown
	}
}

// Recipient описывает одного получателя рассылки. Признак Active определяет
// участие в следующем цикле и не влияет на присутствие в справочнике.
type Recipient struct {
	ChatID  string
	Name    string
	Kind    ChatKind
	Active  bool
	AddedAt time.Time
}

// Artifact содержит сгенерированную пару «текст + изображение».
// Хранится только последний успешный артефакт для предпросмотра.
type Artifact struct {
	Text        string
	Image       []byte
	GeneratedAt time.Time
}

// Severity задаёт важность записи журнала активности.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEntry — одна запись журнала активности. Записи не изменяются
// и не удаляются, порядок соответствует порядку добавления.
type LogEntry struct {
	ID        string
	Timestamp time.Time
	Message   string
	Severity  Severity
}

// CycleState описывает текущее состояние цикла рассылки.
type CycleState string

const (
	StateIdle            CycleState = "idle"
	StateAwaitingCycle   CycleState = "awaiting_next_cycle"
	StateGeneratingText  CycleState = "generating_text"
	StateGeneratingImage CycleState = "generating_image"
	StateBroadcasting    CycleState = "broadcasting"
)
