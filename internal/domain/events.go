package domain

// MemberStatus — статус бота внутри чата по данным провайдера.
type MemberStatus string

const (
	MemberStatusMember        MemberStatus = "member"
	MemberStatusAdministrator MemberStatus = "administrator"
	MemberStatusCreator       MemberStatus = "creator"
	MemberStatusKicked        MemberStatus = "kicked"
	MemberStatusLeft          MemberStatus = "left"
)

// ChatDescriptor содержит поля чата из события провайдера.
type ChatDescriptor struct {
	ID        string
	Kind      ChatKind
	Title     string
	Username  string
	FirstName string
	LastName  string
}

// DisplayName выводит имя получателя: title, иначе username, иначе
// first_name (с last_name при наличии), иначе запасной вариант
// из числового идентификатора.
func (c ChatDescriptor) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	if c.Username != "" {
		return c.Username
	}
	if c.FirstName != "" {
		if c.LastName != "" {
			return c.FirstName + " " + c.LastName
		}
		return c.FirstName
	}
	return "User " + c.ID
}

// EventKind различает события опроса провайдера.
type EventKind string

const (
	// EventMessage — новое входящее сообщение или пост из чата.
	EventMessage EventKind = "message"
	// EventMembership — изменение статуса бота внутри чата.
	EventMembership EventKind = "membership"
)

// Event — одно событие из батча getUpdates.
// NewStatus заполняется только для EventMembership.
type Event struct {
	Kind      EventKind
	Chat      ChatDescriptor
	NewStatus MemberStatus
}
