package activity

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
)

func TestAppendKeepsOrder(t *testing.T) {
	j := NewJournal(zerolog.Nop())
	j.Append("первая", domain.SeverityInfo)
	j.Append("вторая", domain.SeveritySuccess)
	j.Append("третья", domain.SeverityError)

	entries := j.Entries()
	if len(entries) != 3 {
		t.Fatalf("ожидали 3 записи, получили %d", len(entries))
	}
	if entries[0].Message != "первая" || entries[2].Message != "третья" {
		t.Fatalf("порядок записей нарушен: %v", entries)
	}
	if entries[1].Severity != domain.SeveritySuccess {
		t.Fatalf("ожидали severity success, получили %s", entries[1].Severity)
	}
	if entries[0].ID == entries[1].ID {
		t.Fatal("ожидали уникальные идентификаторы записей")
	}
}

func TestAppendEvictsOldestBeyondLimit(t *testing.T) {
	j := NewJournal(zerolog.Nop())
	j.limit = 5
	for i := 0; i < 8; i++ {
		j.Append(fmt.Sprintf("запись %d", i), domain.SeverityInfo)
	}

	entries := j.Entries()
	if len(entries) != 5 {
		t.Fatalf("ожидали 5 записей после вытеснения, получили %d", len(entries))
	}
	if entries[0].Message != "запись 3" {
		t.Fatalf("ожидали вытеснение самых старых, первая запись %q", entries[0].Message)
	}
	if entries[4].Message != "запись 7" {
		t.Fatalf("ожидали последнюю запись 7, получили %q", entries[4].Message)
	}
}
