package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/usecase/activity"
	"github.com/frediicrewii/facting/internal/usecase/broadcast"
	"github.com/frediicrewii/facting/internal/usecase/directory"
	"github.com/frediicrewii/facting/internal/usecase/reconcile"
)

type noopGenerator struct{}

func (noopGenerator) GenerateText(context.Context, domain.Topic) (string, error) { return "факт", nil }
func (noopGenerator) GenerateImage(context.Context, string) ([]byte, error)      { return []byte{1}, nil }

type noopMessenger struct{}

func (noopMessenger) SendPhoto(context.Context, string, []byte, string) error { return nil }

type noopSource struct{ events []domain.Event }

func (s noopSource) PollEvents(context.Context) ([]domain.Event, error) { return s.events, nil }

func newTestRouter(source domain.UpdateSource) (*chi.Mux, *directory.Service) {
	logger := zerolog.Nop()
	journal := activity.NewJournal(logger)
	dir := directory.NewService()
	scheduler := broadcast.NewService(dir, noopGenerator{}, noopMessenger{}, journal, broadcast.Settings{Topic: domain.TopicRandom, IntervalMinutes: 1}, logger)
	reconciler := reconcile.NewService(dir, source, journal, logger)
	h := NewHandler(scheduler, dir, reconciler, journal, logger)

	r := chi.NewRouter()
	h.Routes(r)
	return r, dir
}

func TestAddRecipientAndDuplicate(t *testing.T) {
	router, _ := newTestRouter(noopSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipients", strings.NewReader(`{"chat_id":"100"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидали 201, получили %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipients", strings.NewReader(`{"chat_id":"100"}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("повторное добавление должно вернуть 409, получили %d", rec.Code)
	}
}

func TestToggleUnknownRecipient(t *testing.T) {
	router, _ := newTestRouter(noopSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipients/42/toggle", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидали 404, получили %d", rec.Code)
	}
}

func TestStartWithoutRecipientsConflicts(t *testing.T) {
	router, _ := newTestRouter(noopSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bot/start", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("запуск без получателей должен вернуть 409, получили %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bot/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", rec.Code)
	}
	var status map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if status["state"] != string(domain.StateIdle) {
		t.Fatalf("состояние должно остаться idle, получили %v", status["state"])
	}
}

func TestSyncReportsCounts(t *testing.T) {
	source := noopSource{events: []domain.Event{
		{Kind: domain.EventMessage, Chat: domain.ChatDescriptor{ID: "7", Title: "Чат"}},
	}}
	router, dir := newTestRouter(source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipients/sync", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", rec.Code)
	}
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if result["added"].(float64) != 1 || result["up_to_date"].(bool) {
		t.Fatalf("ожидали одно добавление, получили %v", result)
	}
	if len(dir.Recipients()) != 1 {
		t.Fatalf("получатель должен попасть в справочник: %v", dir.Recipients())
	}
}

func TestSettingsRejectedWhileRunning(t *testing.T) {
	router, dir := newTestRouter(noopSource{})
	if err := dir.AddManual("1"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bot/start", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидали 200, получили %d", rec.Code)
	}
	defer func() {
		stop := httptest.NewRecorder()
		router.ServeHTTP(stop, httptest.NewRequest(http.MethodPost, "/bot/stop", nil))
	}()

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/bot/settings", strings.NewReader(`{"topic":"Space","interval_minutes":5}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("смена настроек на ходу должна вернуть 409, получили %d", rec.Code)
	}
}

func TestPreviewBeforeFirstCycle(t *testing.T) {
	router, _ := newTestRouter(noopSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("до первого цикла превью должно вернуть 404, получили %d", rec.Code)
	}
}
