package domain

import "testing"

func TestDisplayNamePrefersTitle(t *testing.T) {
	c := ChatDescriptor{ID: "100", Title: "Канал", Username: "chan", FirstName: "Иван"}
	if got := c.DisplayName(); got != "Канал" {
		t.Fatalf("ожидали title, получили %q", got)
	}
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	c := ChatDescriptor{ID: "100", Username: "ivan_petrov", FirstName: "Иван"}
	if got := c.DisplayName(); got != "ivan_petrov" {
		t.Fatalf("ожидали username, получили %q", got)
	}
}

func TestDisplayNameJoinsFirstAndLastName(t *testing.T) {
	c := ChatDescriptor{ID: "100", FirstName: "Иван", LastName: "Петров"}
	if got := c.DisplayName(); got != "Иван Петров" {
		t.Fatalf("ожидали имя с фамилией, получили %q", got)
	}
}

func TestDisplayNameSynthesizedFallback(t *testing.T) {
	c := ChatDescriptor{ID: "100"}
	if got := c.DisplayName(); got != "User 100" {
		t.Fatalf("ожидали запасной вариант, получили %q", got)
	}
}

func TestParseChatKindUnknown(t *testing.T) {
	if got := ParseChatKind("private"); got != ChatKindUser {
		t.Fatalf("ожидали user для private, получили %q", got)
	}
	if got := ParseChatKind("secret"); got != ChatKindUnknown {
		t.Fatalf("ожидали unknown, получили %q", got)
	}
	if got := ParseChatKind("supergroup"); got != ChatKindSupergroup {
		t.Fatalf("ожидали supergroup, получили %q", got)
	}
}

func TestParseTopic(t *testing.T) {
	if _, err := ParseTopic("Science"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if _, err := ParseTopic("Cooking"); err == nil {
		t.Fatal("ожидали ошибку для неизвестной темы")
	}
}
