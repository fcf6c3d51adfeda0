package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/frediicrewii/facting/internal/domain"
)

func TestConvertUpdateMessage(t *testing.T) {
	upd := tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{
		ID: 100, Type: "supergroup", Title: "Наука",
	}}}

	ev, ok := convertUpdate(upd)
	if !ok {
		t.Fatal("ожидали событие для входящего сообщения")
	}
	if ev.Kind != domain.EventMessage {
		t.Fatalf("ожидали событие message, получили %s", ev.Kind)
	}
	if ev.Chat.ID != "100" || ev.Chat.Kind != domain.ChatKindSupergroup || ev.Chat.Title != "Наука" {
		t.Fatalf("дескриптор чата собран неверно: %+v", ev.Chat)
	}
}

func TestConvertUpdateChannelPost(t *testing.T) {
	upd := tgbotapi.Update{ChannelPost: &tgbotapi.Message{Chat: &tgbotapi.Chat{
		ID: -200, Type: "channel", Title: "Канал",
	}}}

	ev, ok := convertUpdate(upd)
	if !ok || ev.Kind != domain.EventMessage {
		t.Fatalf("пост канала должен стать событием message: %+v", ev)
	}
	if ev.Chat.ID != "-200" {
		t.Fatalf("ожидали id -200, получили %q", ev.Chat.ID)
	}
}

func TestConvertUpdateMembership(t *testing.T) {
	upd := tgbotapi.Update{MyChatMember: &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: 300, Type: "private", FirstName: "Иван", LastName: "Петров"},
		NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
	}}

	ev, ok := convertUpdate(upd)
	if !ok {
		t.Fatal("ожидали событие смены статуса")
	}
	if ev.Kind != domain.EventMembership || ev.NewStatus != domain.MemberStatusKicked {
		t.Fatalf("событие смены статуса собрано неверно: %+v", ev)
	}
	if ev.Chat.Kind != domain.ChatKindUser {
		t.Fatalf("private должен стать user, получили %s", ev.Chat.Kind)
	}
	if ev.Chat.DisplayName() != "Иван Петров" {
		t.Fatalf("ожидали имя с фамилией, получили %q", ev.Chat.DisplayName())
	}
}

func TestConvertUpdateSkipsUnrelated(t *testing.T) {
	if _, ok := convertUpdate(tgbotapi.Update{}); ok {
		t.Fatal("апдейт без чата должен пропускаться")
	}
}

func TestClampCaption(t *testing.T) {
	short := "короткая подпись"
	if clampCaption(short) != short {
		t.Fatal("короткая подпись не должна меняться")
	}

	long := strings.Repeat("ё", captionLimit+10)
	clamped := clampCaption(long)
	if got := len([]rune(clamped)); got != captionLimit {
		t.Fatalf("ожидали обрезку до %d рун, получили %d", captionLimit, got)
	}
}
