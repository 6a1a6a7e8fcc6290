package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/settlement"
	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"github.com/goodnatureofminers/ratrace-oracle/internal/webhook"
	"go.uber.org/zap"
)

// MaxWebhookBody caps the size of a delivery body.
const MaxWebhookBody = 1 << 20

// Delivery outcomes reported to metrics.
const (
	outcomeAccepted     = "accepted"
	outcomeDuplicate    = "duplicate"
	outcomeIgnored      = "ignored"
	outcomeUnauthorized = "unauthorized"
	outcomeRejected     = "rejected"
	outcomeConflict     = "conflict"
	outcomeNotFound     = "not_found"
	outcomeRecorded     = "settlement_failed"
	outcomeError        = "error"
)

// WebhookHandler authenticates, decodes and applies contract event deliveries.
type WebhookHandler struct {
	verifier SignatureChecker
	guard    ReplayGuard
	events   EventHandler
	metrics  DeliveryMetrics
	logger   *zap.Logger
}

// NewWebhookHandler builds a WebhookHandler. A nil guard disables dedupe.
func NewWebhookHandler(verifier SignatureChecker, guard ReplayGuard, events EventHandler, metrics DeliveryMetrics, logger *zap.Logger) *WebhookHandler {
	if guard == nil {
		guard = webhook.NopReplayGuard{}
	}
	return &WebhookHandler{
		verifier: verifier,
		guard:    guard,
		events:   events,
		metrics:  metrics,
		logger:   logger.Named("webhook"),
	}
}

type webhookResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ServeHTTP verifies the signature before looking at the body, so forged
// deliveries never reach the decoder.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	logger := h.logger.With(zap.String("request_id", RequestID(r.Context())))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxWebhookBody))
	if err != nil {
		h.finish(w, "", outcomeRejected, http.StatusRequestEntityTooLarge, err, started)
		return
	}

	signature := r.Header.Get(webhook.SignatureHeader)
	if err := h.verifier.Check(body, signature, r.Header); err != nil {
		logger.Warn("webhook rejected", zap.Error(err))
		h.finish(w, "", outcomeUnauthorized, http.StatusUnauthorized, webhook.ErrUnauthenticated, started)
		return
	}

	event, err := webhook.DecodeEnvelope(body)
	switch {
	case errors.Is(err, webhook.ErrUnknownEvent):
		logger.Debug("ignoring unknown event", zap.Error(err))
		h.finish(w, "", outcomeIgnored, http.StatusAccepted, nil, started)
		return
	case err != nil:
		logger.Warn("malformed delivery", zap.Error(err))
		h.finish(w, "", outcomeRejected, http.StatusBadRequest, err, started)
		return
	}
	name := string(event.Name)
	logger = logger.With(zap.String("event", name), zap.Uint64("race_id", event.RaceID), zap.String("tx", event.TxHash))

	first, err := h.guard.Acquire(r.Context(), signature)
	if err != nil {
		// Dedupe is best effort; the driver is idempotent anyway.
		logger.Warn("replay guard unavailable", zap.Error(err))
		first = true
	}
	if !first {
		logger.Debug("duplicate delivery")
		h.finish(w, name, outcomeDuplicate, http.StatusOK, nil, started)
		return
	}

	err = h.events.Handle(r.Context(), event)
	status, outcome := classify(err)
	if status >= http.StatusInternalServerError || status == http.StatusConflict || status == http.StatusNotFound {
		// Let the provider's retry reach the driver again.
		if releaseErr := h.guard.Release(r.Context(), signature); releaseErr != nil {
			logger.Warn("release replay guard", zap.Error(releaseErr))
		}
	}
	switch {
	case err == nil:
		logger.Info("event applied")
	case status >= http.StatusInternalServerError:
		logger.Error("event failed", zap.Error(err))
	default:
		logger.Warn("event not applied", zap.Error(err))
	}
	h.finish(w, name, outcome, status, err, started)
}

func (h *WebhookHandler) finish(w http.ResponseWriter, event, outcome string, status int, err error, started time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveDelivery(event, outcome, started)
	}
	resp := webhookResponse{Status: outcome}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

// classify maps a driver error to its HTTP status and metrics outcome.
func classify(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, outcomeAccepted
	case errors.Is(err, settlement.ErrNotAuthorized):
		return http.StatusForbidden, outcomeRejected
	case errors.Is(err, settlement.ErrSettlementFailed):
		return http.StatusAccepted, outcomeRecorded
	case errors.Is(err, settlement.ErrInvalidEvent), errors.Is(err, webhook.ErrMalformedEvent), errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest, outcomeRejected
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, outcomeNotFound
	case errors.Is(err, settlement.ErrInvalidTransition),
		errors.Is(err, storage.ErrRatBusy),
		errors.Is(err, storage.ErrRaceClosed),
		errors.Is(err, storage.ErrDuplicateEntry):
		return http.StatusConflict, outcomeConflict
	default:
		return http.StatusInternalServerError, outcomeError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
