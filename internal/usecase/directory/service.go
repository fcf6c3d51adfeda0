package directory

import (
	"errors"
	"sync"
	"time"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/metrics"
)

// ErrDuplicate возвращается при ручном добавлении уже известного получателя.
var ErrDuplicate = errors.New("получатель уже есть в справочнике")

// Service хранит справочник получателей в памяти процесса.
// Инвариант: chat id — единственный ключ, двух записей с одним id не бывает.
type Service struct {
	mu  sync.RWMutex
	set Set
	now func() time.Time
}

// NewService создаёт пустой справочник.
func NewService() *Service {
	return &Service{set: NewSet(), now: time.Now}
}

// AddManual вставляет получателя по введённому вручную chat id:
// имя совпадает с id, тип неизвестен, active=true. Если id уже известен,
// существующая запись не меняется и возвращается ErrDuplicate.
func (s *Service) AddManual(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set.Contains(id) {
		return ErrDuplicate
	}
	s.set.append(domain.Recipient{
		ChatID:  id,
		Name:    id,
		Kind:    domain.ChatKindUnknown,
		Active:  true,
		AddedAt: s.now(),
	})
	s.updateGauge()
	return nil
}

// ToggleActive переключает участие получателя в рассылке.
// Возвращает false, если id неизвестен.
func (s *Service) ToggleActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.set.index[id]
	if !ok {
		return false
	}
	s.set.items[pos].Active = !s.set.items[pos].Active
	s.updateGauge()
	return true
}

// ListActive возвращает активных получателей в порядке справочника.
func (s *Service) ListActive() []domain.Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Recipient, 0, s.set.Len())
	for _, r := range s.set.items {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

// Recipients возвращает весь справочник в порядке добавления.
func (s *Service) Recipients() []domain.Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.List()
}

// Snapshot возвращает независимую рабочую копию для сверки.
func (s *Service) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Clone()
}

// Replace атомарно подменяет содержимое справочника подготовленной копией.
func (s *Service) Replace(next Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = next
	s.updateGauge()
}

func (s *Service) updateGauge() {
	active := 0
	for _, r := range s.set.items {
		if r.Active {
			active++
		}
	}
	metrics.ActiveRecipients.Set(float64(active))
}
