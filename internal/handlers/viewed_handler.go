package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/apex-supplements/store-api/internal/auth"
)

// ViewedHandler acknowledges the client's recently viewed products list.
// The list itself lives in the browser; nothing is stored server side.
type ViewedHandler struct {
	credentials auth.CredentialChecker
	log         *slog.Logger
}

// NewViewedHandler creates a new viewed-products handler
func NewViewedHandler(credentials auth.CredentialChecker, log *slog.Logger) *ViewedHandler {
	return &ViewedHandler{credentials: credentials, log: log}
}

type viewedRequest struct {
	Credential json.RawMessage `json:"credential"`
	Viewed     json.RawMessage `json:"viewed"`
}

// ViewedResponse is the success body of POST /api/products/viewed
type ViewedResponse struct {
	Response
	Count int `json:"count"`
}

// Acknowledge handles POST /api/products/viewed
func (h *ViewedHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	req, err := decodeObject[viewedRequest](w, r, maxCartBody)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Request body must be a valid JSON object", h.log)
		return
	}

	if err := h.credentials.Check(jsonString(req.Credential)); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid authentication token", h.log)
		return
	}

	// Anything but an array counts as an empty list.
	var viewed []json.RawMessage
	if err := json.Unmarshal(req.Viewed, &viewed); err != nil {
		viewed = nil
	}

	h.log.Debug("viewed products received", "count", len(viewed))
	WriteJSON(w, http.StatusOK, ViewedResponse{
		Response: Response{OK: true, Message: "Viewed products received and token validated"},
		Count:    len(viewed),
	}, h.log)
}
