package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/infra/metrics"
	"github.com/frediicrewii/facting/internal/usecase/activity"
	"github.com/frediicrewii/facting/internal/usecase/directory"
)

var (
	// ErrAlreadyRunning возвращается при запуске работающей рассылки.
	ErrAlreadyRunning = errors.New("рассылка уже запущена")
	// ErrNoActiveRecipients возвращается при запуске без активных получателей.
	ErrNoActiveRecipients = errors.New("нет активных получателей")
	// ErrNotIdle возвращается при смене настроек во время работы.
	ErrNotIdle = errors.New("настройки меняются только при остановленной рассылке")
)

// Settings — параметры цикла рассылки.
type Settings struct {
	Topic           domain.Topic
	IntervalMinutes int
	RatePerSec      int
}

// Status — снимок состояния планировщика для внешнего интерфейса.
type Status struct {
	State            domain.CycleState
	SecondsRemaining int
	Topic            domain.Topic
	IntervalMinutes  int
}

// Service — планировщик цикла «генерация → рассылка → ожидание».
// Единственная горутина run владеет и обратным отсчётом, и циклом,
// поэтому больше одного цикла одновременно не выполняется, а тики
// секундомера во время цикла игнорируются.
type Service struct {
	dir       *directory.Service
	generator domain.Generator
	messenger domain.Messenger
	journal   *activity.Journal
	log       zerolog.Logger
	limiter   *rate.Limiter

	mu          sync.Mutex
	settings    Settings
	state       domain.CycleState
	secondsLeft int
	last        *domain.Artifact
	cancel      context.CancelFunc

	tickEvery time.Duration
	now       func() time.Time
}

// NewService создаёт планировщик в состоянии Idle.
func NewService(dir *directory.Service, generator domain.Generator, messenger domain.Messenger, journal *activity.Journal, settings Settings, logger zerolog.Logger) *Service {
	if settings.IntervalMinutes < 1 {
		settings.IntervalMinutes = 1
	}
	if settings.Topic == "" {
		settings.Topic = domain.TopicRandom
	}
	rps := settings.RatePerSec
	if rps <= 0 {
		rps = 10
	}
	return &Service{
		dir:         dir,
		generator:   generator,
		messenger:   messenger,
		journal:     journal,
		log:         logger,
		limiter:     rate.NewLimiter(rate.Limit(rps), rps),
		settings:    settings,
		state:       domain.StateIdle,
		secondsLeft: settings.IntervalMinutes * 60,
		tickEvery:   time.Second,
		now:         time.Now,
	}
}

// Start запускает рассылку. Первый цикл выполняется сразу.
// Запуск без активных получателей отклоняется, состояние остаётся Idle.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.state != domain.StateIdle {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if len(s.dir.ListActive()) == 0 {
		s.mu.Unlock()
		return ErrNoActiveRecipients
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = domain.StateAwaitingCycle
	s.secondsLeft = 0
	topic := s.settings.Topic
	interval := s.settings.IntervalMinutes
	s.mu.Unlock()

	s.journal.Append(fmt.Sprintf("Bot started. Topic: %s, Interval: %dm", topic, interval), domain.SeveritySuccess)
	go s.run(ctx)
	return nil
}

// Stop останавливает рассылку. Отложенный запуск цикла отменяется;
// уже начатый вызов провайдера довершится, но его результат будет отброшен.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.state == domain.StateIdle {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.cancel = nil
	s.state = domain.StateIdle
	s.secondsLeft = s.settings.IntervalMinutes * 60
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.journal.Append("Bot stopped by user", domain.SeverityWarning)
}

// UpdateSettings меняет тему и интервал. Допустимо только в Idle.
func (s *Service) UpdateSettings(topic domain.Topic, intervalMinutes int) error {
	if _, err := domain.ParseTopic(string(topic)); err != nil {
		return fmt.Errorf("проверка темы: %w", err)
	}
	if intervalMinutes < 1 {
		return fmt.Errorf("интервал %d меньше минимального", intervalMinutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateIdle {
		return ErrNotIdle
	}
	s.settings.Topic = topic
	s.settings.IntervalMinutes = intervalMinutes
	s.secondsLeft = intervalMinutes * 60
	s.log.Debug().Str("topic", string(topic)).Int("interval_minutes", intervalMinutes).Msg("настройки обновлены")
	return nil
}

// Status возвращает снимок состояния.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:            s.state,
		SecondsRemaining: s.secondsLeft,
		Topic:            s.settings.Topic,
		IntervalMinutes:  s.settings.IntervalMinutes,
	}
}

// LastArtifact возвращает последний успешно сгенерированный артефакт.
func (s *Service) LastArtifact() (domain.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.Artifact{}, false
	}
	return *s.last, true
}

// run — единственный владелец секундомера и цикла.
func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()
	for {
		if s.countdownExpired() {
			s.runCycle(ctx)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Service) countdownExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.StateAwaitingCycle && s.secondsLeft <= 0
}

func (s *Service) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateAwaitingCycle && s.secondsLeft > 0 {
		s.secondsLeft--
	}
}

// runCycle выполняет один цикл «текст → изображение → рассылка».
// Любой сбой генерации и полный провал доставки переводят планировщик
// обратно в ожидание на полный интервал.
func (s *Service) runCycle(ctx context.Context) {
	s.mu.Lock()
	topic := s.settings.Topic
	interval := s.settings.IntervalMinutes
	s.mu.Unlock()

	if len(s.dir.ListActive()) == 0 {
		s.journal.Append("Cannot start cycle: no recipients selected", domain.SeverityError)
		s.haltNoRecipients(interval)
		return
	}

	// Остановка не прерывает начатый вызов провайдера: вызов получает
	// контекст без отмены, а результат после остановки отбрасывается.
	callCtx := context.WithoutCancel(ctx)

	if !s.transition(ctx, domain.StateGeneratingText) {
		return
	}
	s.journal.Append(fmt.Sprintf("Generating %s fact (Russian)...", topic), domain.SeverityInfo)
	startText := s.now()
	text, err := s.generator.GenerateText(callCtx, topic)
	metrics.ObserveGeneration("text", startText)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.journal.Append(fmt.Sprintf("Failed to generate fact: %v", err), domain.SeverityError)
		metrics.BroadcastCyclesTotal.WithLabelValues("generation_error").Inc()
		s.awaitNextCycle(ctx, interval)
		return
	}
	s.journal.Append(fmt.Sprintf("Fact generated: %q", clipRunes(text, 30)), domain.SeveritySuccess)

	if !s.transition(ctx, domain.StateGeneratingImage) {
		return
	}
	s.journal.Append("Generating visual representation...", domain.SeverityInfo)
	startImage := s.now()
	image, err := s.generator.GenerateImage(callCtx, text)
	metrics.ObserveGeneration("image", startImage)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.journal.Append(fmt.Sprintf("Failed to generate image: %v", err), domain.SeverityError)
		metrics.BroadcastCyclesTotal.WithLabelValues("generation_error").Inc()
		s.awaitNextCycle(ctx, interval)
		return
	}
	s.journal.Append("Image generated successfully", domain.SeveritySuccess)

	s.mu.Lock()
	s.last = &domain.Artifact{Text: text, Image: image, GeneratedAt: s.now()}
	s.mu.Unlock()

	if !s.transition(ctx, domain.StateBroadcasting) {
		return
	}
	// Список активных перечитывается непосредственно перед рассылкой:
	// отключённые во время генерации получатели в неё не попадают.
	targets := s.dir.ListActive()
	s.journal.Append(fmt.Sprintf("Broadcasting to %d recipients...", len(targets)), domain.SeverityInfo)

	sent := 0
	for _, r := range targets {
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}
		if err := s.messenger.SendPhoto(callCtx, r.ChatID, image, text); err != nil {
			s.journal.Append(fmt.Sprintf("Failed to send to %s: %v", r.Name, err), domain.SeverityError)
			metrics.BroadcastSendsTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.BroadcastSendsTotal.WithLabelValues("success").Inc()
		sent++
	}
	if ctx.Err() != nil {
		return
	}

	switch {
	case len(targets) == 0:
		s.journal.Append("Cannot broadcast: no recipients selected", domain.SeverityError)
		metrics.BroadcastCyclesTotal.WithLabelValues("failed").Inc()
	case sent == len(targets):
		s.journal.Append(fmt.Sprintf("Successfully broadcasted to all %d targets!", sent), domain.SeveritySuccess)
		metrics.BroadcastCyclesTotal.WithLabelValues("success").Inc()
	case sent > 0:
		s.journal.Append(fmt.Sprintf("Partial success: Sent to %d/%d", sent, len(targets)), domain.SeverityWarning)
		metrics.BroadcastCyclesTotal.WithLabelValues("partial").Inc()
	default:
		s.journal.Append("Failed to send to any recipients", domain.SeverityError)
		metrics.BroadcastCyclesTotal.WithLabelValues("failed").Inc()
	}
	s.awaitNextCycle(ctx, interval)
}

// transition переводит планировщик в следующее состояние цикла.
// Возвращает false после остановки: результат цикла отброшен.
func (s *Service) transition(ctx context.Context, next domain.CycleState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || s.state == domain.StateIdle {
		return false
	}
	s.state = next
	return true
}

func (s *Service) awaitNextCycle(ctx context.Context, intervalMinutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || s.state == domain.StateIdle {
		return
	}
	s.state = domain.StateAwaitingCycle
	s.secondsLeft = intervalMinutes * 60
}

// haltNoRecipients останавливает рассылку, когда к началу цикла
// не осталось ни одного активного получателя.
func (s *Service) haltNoRecipients(intervalMinutes int) {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.state = domain.StateIdle
	s.secondsLeft = intervalMinutes * 60
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func clipRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
