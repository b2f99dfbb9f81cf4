package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"sheetledger/internal/api/middleware"
	"sheetledger/internal/ledger"
)

// RecordService is the slice of the append coordinator the handlers use.
type RecordService interface {
	Handle(ctx context.Context, payload map[string]interface{}) (*ledger.Result, error)
	InitSheet(ctx context.Context) (*ledger.Result, error)
}

// RecordsHandler handles record submission endpoints.
type RecordsHandler struct {
	svc RecordService
	log zerolog.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(svc RecordService, log zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{svc: svc, log: log}
}

// SubmitRecord handles POST /api/records. The body is the action
// envelope: {"action": "...", "data": {...}}.
func (h *RecordsHandler) SubmitRecord(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Handle(r.Context(), payload)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"result": res,
	})
}

// InitSheet handles POST /api/sheet/init.
func (h *RecordsHandler) InitSheet(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.InitSheet(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"result": res,
	})
}

func (h *RecordsHandler) writeFailure(w http.ResponseWriter, err error) {
	kind := ledger.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	var le *ledger.Error
	if errors.As(err, &le) {
		message = le.Message()
	}

	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("Record operation failed")
	} else {
		h.log.Warn().Str("kind", string(kind)).Str("reason", message).Msg("Record rejected")
	}

	middleware.WriteError(w, status, message)
}

func statusForKind(kind ledger.FailureKind) int {
	switch kind {
	case ledger.ValidationFailed:
		return http.StatusBadRequest
	case ledger.StoreUnavailable:
		return http.StatusServiceUnavailable
	case ledger.WriteFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
