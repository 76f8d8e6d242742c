package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type adaptationRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

func (rt *Router) generateAdaptation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req adaptationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	message := strings.TrimSpace(req.Message)
	contextID := strings.TrimSpace(req.Context)
	if message == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if contextID == "" {
		respondError(w, http.StatusBadRequest, "Cultural context is required")
		return
	}

	messageCheck := rt.deps.Validator.ValidateMessage(message)
	if !messageCheck.Valid {
		respondError(w, http.StatusBadRequest, messageCheck.Message)
		return
	}
	message = messageCheck.Cleaned

	// Unrecognized context ids flow through to the adapter, which falls
	// back to the generic English template.
	result := rt.deps.Adapter.Adapt(r.Context(), message, contextID)
	rt.deps.Metrics.RecordAdaptation(serviceName, result.Source)

	respondData(w, http.StatusOK, map[string]any{
		"adaptedMessage":  result.AdaptedMessage,
		"originalMessage": result.OriginalMessage,
		"culturalContext": result.ContextID,
		"timestamp":       result.Timestamp.Format(time.RFC3339),
	})
}
