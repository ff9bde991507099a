package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/feed"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

const maxBodyBytes = 1 << 20

type createdResponse struct {
	ID string `json:"id"`
}

type listResponse struct {
	Items   []domain.Notification `json:"items"`
	Total   int                   `json:"total"`
	Matched int                   `json:"matched"`
	Unread  int                   `json:"unread"`
	Version uint64                `json:"version"`
}

type countResponse struct {
	Count int `json:"count"`
}

type toastResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	RemainingMs int64  `json:"remaining_ms"`
	Paused      bool   `json:"paused"`
	Persistent  bool   `json:"persistent"`
}

type stateResponse struct {
	Version        uint64                        `json:"version"`
	Unread         int                           `json:"unread"`
	Critical       *domain.Notification          `json:"critical"`
	CriticalState  string                        `json:"critical_state"`
	Backlog        []string                      `json:"backlog"`
	Toasts         []toastResponse               `json:"toasts"`
	ToastPosition  string                        `json:"toast_position"`
	ToastDirection string                        `json:"toast_direction"`
	Settings       settings.NotificationSettings `json:"settings"`
}

func newStateResponse(st engine.State) stateResponse {
	resp := stateResponse{
		Version:        st.Version,
		Unread:         st.Unread,
		Critical:       st.Critical,
		CriticalState:  st.CriticalState.String(),
		Backlog:        make([]string, 0, len(st.Backlog)),
		Toasts:         make([]toastResponse, 0, len(st.Toasts)),
		ToastPosition:  string(st.ToastPosition),
		ToastDirection: string(st.ToastDirection),
		Settings:       st.Settings,
	}
	for _, n := range st.Backlog {
		resp.Backlog = append(resp.Backlog, n.ID)
	}
	for _, t := range st.Toasts {
		resp.Toasts = append(resp.Toasts, toastResponse{
			ID:          t.Notification.ID,
			Title:       t.Notification.Title,
			Priority:    t.Notification.Priority.String(),
			RemainingMs: t.Remaining.Milliseconds(),
			Paused:      t.Paused,
			Persistent:  t.Persistent,
		})
	}
	return resp
}

func (s *Server) handleAddNotification(w http.ResponseWriter, r *http.Request) {
	s.ingest(w, r, feed.KindNotification)
}

func (s *Server) handleAddAlert(w http.ResponseWriter, r *http.Request) {
	s.ingest(w, r, feed.KindAlert)
}

func (s *Server) ingest(w http.ResponseWriter, r *http.Request, kind string) {
	var rec feed.Record
	if err := decodeBody(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec.Kind = kind
	rec.DelayMs = 0
	ev, err := rec.Event()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := feed.Ingest(r.Context(), s.engine, ev)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.log.Info("notification received", "id", id, "kind", kind, "title", ev.Title())
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r, s.opts.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := s.engine.Query(q)
	writeJSON(w, http.StatusOK, listResponse{
		Items:   res.Items,
		Total:   res.Total,
		Matched: res.Matched,
		Unread:  res.Unread,
		Version: res.Version,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	n, err := s.engine.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleUnread(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: s.engine.UnreadCount()})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	s.withExisting(w, r, infallible(s.engine.MarkAsRead))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.withExisting(w, r, s.engine.Dismiss)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.withExisting(w, r, infallible(s.engine.Remove))
}

// withExisting runs fn for the {id} parameter, answering 404 for unknown ids.
func (s *Server) withExisting(w http.ResponseWriter, r *http.Request, fn func(id string) error) {
	id := chi.URLParam(r, "id")
	if _, err := s.engine.Get(id); err != nil {
		s.writeEngineError(w, err)
		return
	}
	if err := fn(id); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func infallible(fn func(id string)) func(id string) error {
	return func(id string) error {
		fn(id)
		return nil
	}
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: s.engine.MarkAllAsRead()})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, countResponse{Count: s.engine.ClearAll()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.engine.State()))
}

func (s *Server) handleDismissCritical(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DismissCritical(chi.URLParam(r, "id")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCriticalAction(w http.ResponseWriter, r *http.Request) {
	n, err := s.engine.TakeCriticalAction(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "label"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	ok, err := s.engine.DismissToast(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "toast not visible")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Settings())
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	next, err := s.engine.UpdateSettings(p)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// parseQuery reads type, priority, read, source, alerts, hide_dismissed,
// older_than, newer_than, q, sort, order and limit.
func parseQuery(r *http.Request, now time.Time) (query.Query, error) {
	v := r.URL.Query()
	opts := domain.FilterOptions{
		Types:      v.Get("type"),
		Priorities: v.Get("priority"),
		ReadFilter: v.Get("read"),
		Source:     v.Get("source"),
	}
	var err error
	if opts.AlertsOnly, err = parseBool(v.Get("alerts")); err != nil {
		return query.Query{}, fmt.Errorf("invalid alerts: %w", err)
	}
	if opts.HideDismissed, err = parseBool(v.Get("hide_dismissed")); err != nil {
		return query.Query{}, fmt.Errorf("invalid hide_dismissed: %w", err)
	}
	if opts.OlderThan, err = parseDuration(v.Get("older_than")); err != nil {
		return query.Query{}, fmt.Errorf("invalid older_than: %w", err)
	}
	if opts.NewerThan, err = parseDuration(v.Get("newer_than")); err != nil {
		return query.Query{}, fmt.Errorf("invalid newer_than: %w", err)
	}
	filter, err := opts.ToFilter(now)
	if err != nil {
		return query.Query{}, err
	}

	q := query.Query{Filter: filter, Search: v.Get("q")}
	if field, order := v.Get("sort"), v.Get("order"); field != "" || order != "" {
		sortOpts := domain.DefaultSortOptions()
		if field != "" {
			if sortOpts.Field, err = domain.ParseSortByField(field); err != nil {
				return query.Query{}, err
			}
		}
		if order != "" {
			if sortOpts.Order, err = domain.ParseSortOrder(order); err != nil {
				return query.Query{}, err
			}
		}
		q.Sort = &sortOpts
	}
	if raw := v.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return query.Query{}, fmt.Errorf("invalid limit: %q", raw)
		}
		q.Limit = limit
	}
	return q, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("bad payload: %w", err)
	}
	return nil
}
