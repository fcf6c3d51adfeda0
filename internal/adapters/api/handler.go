package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/frediicrewii/facting/internal/domain"
	"github.com/frediicrewii/facting/internal/usecase/activity"
	"github.com/frediicrewii/facting/internal/usecase/broadcast"
	"github.com/frediicrewii/facting/internal/usecase/directory"
	"github.com/frediicrewii/facting/internal/usecase/reconcile"
)

// Handler — управляющий интерфейс для внешней панели:
// запуск и остановка рассылки, справочник получателей, сверка,
// журнал активности и предпросмотр последнего артефакта.
type Handler struct {
	scheduler  *broadcast.Service
	dir        *directory.Service
	reconciler *reconcile.Service
	journal    *activity.Journal
	log        zerolog.Logger
}

// NewHandler создаёт обработчик.
func NewHandler(scheduler *broadcast.Service, dir *directory.Service, reconciler *reconcile.Service, journal *activity.Journal, logger zerolog.Logger) *Handler {
	return &Handler{scheduler: scheduler, dir: dir, reconciler: reconciler, journal: journal, log: logger}
}

// Routes регистрирует маршруты управления ботом.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/bot/start", h.handleStart)
	r.Post("/bot/stop", h.handleStop)
	r.Get("/bot/status", h.handleStatus)
	r.Put("/bot/settings", h.handleSettings)
	r.Get("/recipients", h.handleListRecipients)
	r.Post("/recipients", h.handleAddRecipient)
	r.Post("/recipients/{id}/toggle", h.handleToggleRecipient)
	r.Post("/recipients/sync", h.handleSync)
	r.Get("/logs", h.handleLogs)
	r.Get("/preview", h.handlePreview)
	r.Get("/preview/image", h.handlePreviewImage)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Start(); err != nil {
		switch {
		case errors.Is(err, broadcast.ErrNoActiveRecipients), errors.Is(err, broadcast.ErrAlreadyRunning):
			h.writeError(w, http.StatusConflict, err)
		default:
			h.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	h.writeJSON(w, http.StatusOK, h.statusPayload())
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Stop()
	h.writeJSON(w, http.StatusOK, h.statusPayload())
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.statusPayload())
}

type settingsRequest struct {
	Topic           string `json:"topic"`
	IntervalMinutes int    `json:"interval_minutes"`
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	err := h.scheduler.UpdateSettings(domain.Topic(req.Topic), req.IntervalMinutes)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, h.statusPayload())
	case errors.Is(err, broadcast.ErrNotIdle):
		h.writeError(w, http.StatusConflict, err)
	default:
		h.writeError(w, http.StatusBadRequest, err)
	}
}

type recipientPayload struct {
	ChatID  string    `json:"chat_id"`
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Active  bool      `json:"active"`
	AddedAt time.Time `json:"added_at"`
}

func (h *Handler) handleListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients := h.dir.Recipients()
	payload := make([]recipientPayload, 0, len(recipients))
	for _, rec := range recipients {
		payload = append(payload, recipientPayload{
			ChatID:  rec.ChatID,
			Name:    rec.Name,
			Kind:    string(rec.Kind),
			Active:  rec.Active,
			AddedAt: rec.AddedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, payload)
}

type addRecipientRequest struct {
	ChatID string `json:"chat_id"`
}

func (h *Handler) handleAddRecipient(w http.ResponseWriter, r *http.Request) {
	var req addRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ChatID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("chat_id обязателен"))
		return
	}
	if err := h.dir.AddManual(req.ChatID); err != nil {
		if errors.Is(err, directory.ErrDuplicate) {
			h.journal.Append("Recipient "+req.ChatID+" already exists", domain.SeverityWarning)
			h.writeError(w, http.StatusConflict, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.journal.Append("Added manual recipient: "+req.ChatID, domain.SeveritySuccess)
	h.writeJSON(w, http.StatusCreated, map[string]string{"chat_id": req.ChatID})
}

func (h *Handler) handleToggleRecipient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.dir.ToggleActive(id) {
		h.writeError(w, http.StatusNotFound, errors.New("получатель не найден"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"chat_id": id})
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciler.Sync(r.Context())
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"added":      result.Added,
		"removed":    result.Removed,
		"up_to_date": result.UpToDate(),
	})
}

type logEntryPayload struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
}

func (h *Handler) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := h.journal.Entries()
	payload := make([]logEntryPayload, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, logEntryPayload{
			ID:        entry.ID,
			Timestamp: entry.Timestamp,
			Message:   entry.Message,
			Severity:  string(entry.Severity),
		})
	}
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	artifact, ok := h.scheduler.LastArtifact()
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("артефакт ещё не сгенерирован"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"text":         artifact.Text,
		"generated_at": artifact.GeneratedAt,
		"image_bytes":  len(artifact.Image),
	})
}

func (h *Handler) handlePreviewImage(w http.ResponseWriter, r *http.Request) {
	artifact, ok := h.scheduler.LastArtifact()
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.New("артефакт ещё не сгенерирован"))
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(artifact.Image))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Image); err != nil {
		h.log.Error().Err(err).Msg("не удалось отдать изображение")
	}
}

func (h *Handler) statusPayload() map[string]any {
	status := h.scheduler.Status()
	return map[string]any{
		"state":             string(status.State),
		"seconds_remaining": status.SecondsRemaining,
		"topic":             string(status.Topic),
		"interval_minutes":  status.IntervalMinutes,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("не удалось записать ответ")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, err error) {
	h.writeJSON(w, code, map[string]string{"error": err.Error()})
}
