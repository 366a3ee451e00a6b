package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"proxy-rotator/config"
	"proxy-rotator/internal/errdefs"
	"proxy-rotator/internal/logger"
	"proxy-rotator/internal/models"

	"go.uber.org/zap"
)

const defaultJournalLimit = 50

// Rotator is the part of the plugin the HTTP host needs.
type Rotator interface {
	Refresh(ctx context.Context)
	Next(ctx context.Context) (string, bool)
	FetchThrough(ctx context.Context, target string) (string, bool)
	Proxies() []string
	Settings() models.SettingsPanel
	SetEnabled(ctx context.Context, enabled bool) models.SettingsPanel
	ToggleEnabled(ctx context.Context) models.SettingsPanel
	Journal(ctx context.Context, limit int) ([]models.FetchRecord, error)
}

type Handler struct {
	log     *logger.Logger
	cfg     *config.Config
	rotator Rotator
}

func NewHandler(ctx context.Context, cfg *config.Config, rotator Rotator) *Handler {
	return &Handler{
		log:     logger.GetLoggerFromCtx(ctx),
		cfg:     cfg,
		rotator: rotator,
	}
}

type settingsRequest struct {
	Enabled *bool `json:"enabled"`
}

type proxiesResponse struct {
	Count   int      `json:"count"`
	Proxies []string `json:"proxies"`
}

type nextResponse struct {
	Proxy string `json:"proxy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func encode[T any](w http.ResponseWriter, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, status, v); err != nil {
		h.log.Error(r.Context(), "write response", zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.respond(w, r, status, errorResponse{Error: msg})
}

func (h *Handler) handleGetSettings() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, http.StatusOK, h.rotator.Settings())
	})
}

func (h *Handler) handlePutSettings() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decode[settingsRequest](r)
		if err != nil || req.Enabled == nil {
			h.fail(w, r, http.StatusBadRequest, `body must be {"enabled": true|false}`)
			return
		}
		h.respond(w, r, http.StatusOK, h.rotator.SetEnabled(r.Context(), *req.Enabled))
	})
}

func (h *Handler) handleToggleSettings() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, http.StatusOK, h.rotator.ToggleEnabled(r.Context()))
	})
}

func (h *Handler) handleListProxies() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxies := h.rotator.Proxies()
		h.respond(w, r, http.StatusOK, proxiesResponse{Count: len(proxies), Proxies: proxies})
	})
}

// Refresh failures are only logged, so the response reports the list as it is afterwards.
func (h *Handler) handleRefresh() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.rotator.Refresh(r.Context())
		proxies := h.rotator.Proxies()
		h.respond(w, r, http.StatusOK, proxiesResponse{Count: len(proxies), Proxies: proxies})
	})
}

func (h *Handler) handleNextProxy() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr, ok := h.rotator.Next(r.Context())
		if !ok {
			h.fail(w, r, http.StatusServiceUnavailable, "proxy list is empty")
			return
		}
		h.respond(w, r, http.StatusOK, nextResponse{Proxy: addr})
	})
}

func (h *Handler) handleFetch() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		if target == "" {
			h.fail(w, r, http.StatusBadRequest, "url query parameter required")
			return
		}

		body, ok := h.rotator.FetchThrough(r.Context(), target)
		if !ok {
			h.fail(w, r, http.StatusBadGateway, "fetch through proxy failed")
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, body); err != nil {
			h.log.Error(r.Context(), "write response", zap.Error(err))
		}
	})
}

func (h *Handler) handleJournal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := defaultJournalLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				h.fail(w, r, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}

		recs, err := h.rotator.Journal(r.Context(), limit)
		switch {
		case err == nil:
			h.respond(w, r, http.StatusOK, recs)
		case errdefs.Is(err, errdefs.ErrJournalDisabled):
			h.fail(w, r, http.StatusNotFound, "journal is disabled")
		case errdefs.Is(err, errdefs.ErrInvalidInput):
			h.fail(w, r, http.StatusBadRequest, err.Error())
		default:
			h.log.Error(r.Context(), "journal query failed", zap.Error(err))
			h.fail(w, r, http.StatusInternalServerError, "journal query failed")
		}
	})
}
