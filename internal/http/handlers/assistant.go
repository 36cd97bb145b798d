package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/assistant"
	"github.com/carecompass/platform/internal/media"
	"github.com/carecompass/platform/internal/modules"
	"github.com/carecompass/platform/internal/session"
	"github.com/carecompass/platform/pkg/logging"
)

// AssistantHandler exposes sessions, module analyses, exports, and sample
// fetches over HTTP.
type AssistantHandler struct {
	svc    *assistant.Service
	logger *logging.Logger
}

// NewAssistantHandler creates the handler.
func NewAssistantHandler(svc *assistant.Service, logger *logging.Logger) *AssistantHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeError maps the analysis error taxonomy onto HTTP statuses. Every
// failure is a per-request JSON body; nothing propagates to a global handler.
func (h *AssistantHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	kind := analysis.KindOf(err)

	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
		kind = "not_found"
	case errors.Is(err, assistant.ErrNoResult):
		status = http.StatusNotFound
		kind = "not_found"
	case kind == analysis.KindInput:
		status = http.StatusBadRequest
	case kind == analysis.KindMedia:
		status = http.StatusBadRequest
	case kind == analysis.KindConflict:
		status = http.StatusConflict
	case kind == analysis.KindValidation:
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: fmt.Sprint(kind)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// CreateSession handles POST /api/sessions.
func (h *AssistantHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.CreateSession(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// GetSession handles GET /api/sessions/{sessionID}.
func (h *AssistantHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type navigateRequest struct {
	View   string `json:"view"`
	Module string `json:"module,omitempty"`
}

// Navigate handles POST /api/sessions/{sessionID}/navigate.
func (h *AssistantHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, analysis.WrapError(analysis.KindInput, "invalid request body", err))
		return
	}

	var module modules.Module
	if req.View == string(session.ViewDashboard) {
		parsed, err := modules.Parse(req.Module)
		if err != nil {
			h.writeError(w, analysis.WrapError(analysis.KindInput, "invalid navigation target", err))
			return
		}
		module = parsed
	}

	state, err := h.svc.Navigate(r.Context(), chi.URLParam(r, "sessionID"), session.View(req.View), module)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type analyzeRequest struct {
	Attachments []media.EncodedAttachment `json:"attachments"`
	Text        string                    `json:"text"`
}

// Analyze handles POST /api/sessions/{sessionID}/modules/{module}/analyze.
func (h *AssistantHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	module, err := modules.Parse(chi.URLParam(r, "module"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, analysis.WrapError(analysis.KindInput, "invalid request body", err))
		return
	}

	resp, err := h.svc.Submit(r.Context(), assistant.SubmitRequest{
		SessionID:   chi.URLParam(r, "sessionID"),
		Module:      module,
		Attachments: req.Attachments,
		Text:        req.Text,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /api/sessions/{sessionID}/modules/{module}/export,
// serving the live result as a pretty-printed JSON download.
func (h *AssistantHandler) Export(w http.ResponseWriter, r *http.Request) {
	module, err := modules.Parse(chi.URLParam(r, "module"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	filename, data, err := h.svc.Export(r.Context(), chi.URLParam(r, "sessionID"), module)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type sampleResponse struct {
	Attachment  media.EncodedAttachment `json:"attachment"`
	PrefillText string                  `json:"prefillText,omitempty"`
}

// Sample handles GET /api/modules/{module}/sample.
func (h *AssistantHandler) Sample(w http.ResponseWriter, r *http.Request) {
	module, err := modules.Parse(chi.URLParam(r, "module"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	attachment, prefill, err := h.svc.Sample(r.Context(), module)
	if err != nil {
		h.logger.Warn("sample fetch failed", "module", module, "error", err)
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sampleResponse{Attachment: attachment, PrefillText: prefill})
}

// HealthCheck handles GET /health.
func (h *AssistantHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
