package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/metrics"
	"github.com/frediicrewii/facting/internal/usecase/activity"
	"github.com/frediicrewii/facting/internal/usecase/directory"
)

// Result — итог сверки справочника с событиями провайдера.
type Result struct {
	Added   int
	Removed int
}

// UpToDate сообщает, что батч не изменил справочник.
func (r Result) UpToDate() bool {
	return r.Added == 0 && r.Removed == 0
}

// Service сверяет справочник получателей с батчем событий провайдера.
// Правки накапливаются в рабочей копии и применяются одной подменой,
// поэтому при ошибке опроса справочник остаётся нетронутым.
type Service struct {
	dir     *directory.Service
	source  domain.UpdateSource
	journal *activity.Journal
	log     zerolog.Logger
	now     func() time.Time
}

// NewService создаёт сервис сверки.
func NewService(dir *directory.Service, source domain.UpdateSource, journal *activity.Journal, logger zerolog.Logger) *Service {
	return &Service{dir: dir, source: source, journal: journal, log: logger, now: time.Now}
}

// Sync опрашивает провайдера и применяет батч событий к справочнику.
func (s *Service) Sync(ctx context.Context) (Result, error) {
	s.journal.Append("Scanning for updates...", domain.SeverityInfo)

	events, err := s.source.PollEvents(ctx)
	if err != nil {
		s.journal.Append(fmt.Sprintf("Scan failed: %v", err), domain.SeverityError)
		metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("опрос обновлений: %w", err)
	}

	next := s.dir.Snapshot()
	result := s.merge(&next, events)

	if result.UpToDate() {
		s.journal.Append("Sync complete. List is up to date.", domain.SeverityInfo)
		metrics.ReconcileRunsTotal.WithLabelValues("noop").Inc()
		return result, nil
	}

	s.dir.Replace(next)
	if result.Added > 0 {
		s.journal.Append(fmt.Sprintf("Synced: Found %d new subscribers.", result.Added), domain.SeveritySuccess)
	}
	if result.Removed > 0 {
		s.journal.Append(fmt.Sprintf("Synced: Removed %d inactive users.", result.Removed), domain.SeverityWarning)
	}
	metrics.ReconcileRunsTotal.WithLabelValues("changed").Inc()
	return result, nil
}

// merge применяет события по порядку к рабочей копии справочника.
func (s *Service) merge(next *directory.Set, events []domain.Event) Result {
	var result Result
	now := s.now()
	for _, ev := range events {
		switch ev.Kind {
		case domain.EventMessage:
			if next.UpsertFromEvent(ev.Chat, now) {
				result.Added++
			}
		case domain.EventMembership:
			switch ev.NewStatus {
			case domain.MemberStatusKicked, domain.MemberStatusLeft:
				if next.RemoveByID(ev.Chat.ID) {
					result.Removed++
				}
			case domain.MemberStatusMember, domain.MemberStatusAdministrator, domain.MemberStatusCreator:
				if next.UpsertFromEvent(ev.Chat, now) {
					result.Added++
				}
			default:
				// Прочие статусы (restricted и т.п.) не влияют на справочник.
			}
		}
	}
	return result
}
