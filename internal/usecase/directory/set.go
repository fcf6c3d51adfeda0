package directory

import (
	"time"

	"github.com/frediicrewii/facting/internal/domain"
)

// Set — упорядоченный набор получателей с ключом по chat id.
// Используется и как содержимое справочника, и как рабочая копия
// при сверке: правки накапливаются в копии, затем вся копия
// подменяет содержимое справочника одним присваиванием.
type Set struct {
	items []domain.Recipient
	index map[string]int
}

// NewSet создаёт пустой набор.
func NewSet() Set {
	return Set{index: make(map[string]int)}
}

// Contains сообщает, известен ли получатель с таким id.
func (s *Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// UpsertFromEvent вставляет нового получателя с active=true по данным
// события провайдера. Повторное «появление» уже известного чата ничего
// не меняет: ни имя, ни признак активности. Возвращает true, если
// запись была добавлена.
func (s *Set) UpsertFromEvent(chat domain.ChatDescriptor, now time.Time) bool {
	if s.Contains(chat.ID) {
		return false
	}
	s.append(domain.Recipient{
		ChatID:  chat.ID,
		Name:    chat.DisplayName(),
		Kind:    chat.Kind,
		Active:  true,
		AddedAt: now,
	})
	return true
}

// RemoveByID удаляет получателя, сохраняя порядок остальных.
// Возвращает true, если запись существовала.
func (s *Set) RemoveByID(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ChatID] = i
	}
	return true
}

// Clone возвращает независимую копию набора.
func (s *Set) Clone() Set {
	next := Set{
		items: make([]domain.Recipient, len(s.items)),
		index: make(map[string]int, len(s.index)),
	}
	copy(next.items, s.items)
	for id, pos := range s.index {
		next.index[id] = pos
	}
	return next
}

// List возвращает получателей в порядке добавления.
func (s *Set) List() []domain.Recipient {
	out := make([]domain.Recipient, len(s.items))
	copy(out, s.items)
	return out
}

// Len возвращает размер набора.
func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) append(r domain.Recipient) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[r.ChatID] = len(s.items)
	s.items = append(s.items, r)
}
