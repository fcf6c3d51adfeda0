package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
)

// defaultLimit ограничивает рост журнала в долгоживущем процессе.
const defaultLimit = 1000

// Journal — журнал активности. Записи только добавляются; при превышении
// лимита вытесняются самые старые.
type Journal struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
	limit   int
	log     zerolog.Logger
	now     func() time.Time
}

// NewJournal создаёт журнал активности.
func NewJournal(logger zerolog.Logger) *Journal {
	return &Journal{
		limit: defaultLimit,
		log:   logger,
		now:   time.Now,
	}
}

// Append добавляет запись и дублирует её в zerolog.
func (j *Journal) Append(message string, severity domain.Severity) {
	entry := domain.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: j.now(),
		Message:   message,
		Severity:  severity,
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	if len(j.entries) > j.limit {
		j.entries = j.entries[len(j.entries)-j.limit:]
	}
	j.mu.Unlock()

	switch severity {
	case domain.SeverityError:
		j.log.Error().Msg(message)
	case domain.SeverityWarning:
		j.log.Warn().Msg(message)
	default:
		j.log.Info().Msg(message)
	}
}

// Entries возвращает копию записей в порядке добавления.
func (j *Journal) Entries() []domain.LogEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]domain.LogEntry, len(j.entries))
	copy(out, j.entries)
	return out
}
