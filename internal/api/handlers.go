// Package api provides the HTTP transport over the study resource service.
package api

import (
	"errors"
	"io"
	"net/http"

	"study-backend/internal/api/respond"
	"study-backend/internal/codec"
	"study-backend/internal/core/study"
	"study-backend/internal/store"
)

// StudyHandler provides HTTP transport for the four study documents.
type StudyHandler struct {
	service *study.Service
}

// NewStudyHandler creates a handler over the given service.
func NewStudyHandler(svc *study.Service) *StudyHandler {
	return &StudyHandler{service: svc}
}

// writeReadError maps domain errors from a GET path to HTTP status codes.
// A parse failure on read means the stored document is corrupt, so it maps
// to 500 rather than a client error.
func writeReadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case codec.IsParseError(err):
		respond.WriteInternalError(w, "stored document is corrupt: "+err.Error())
	default:
		writeCommonError(w, err)
	}
}

// writeWriteError maps domain errors from a PUT path. Here a parse failure
// is the caller's malformed body.
func writeWriteError(w http.ResponseWriter, err error) {
	if codec.IsParseError(err) {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	writeCommonError(w, err)
}

func writeCommonError(w http.ResponseWriter, err error) {
	if vs, ok := study.AsViolations(err); ok {
		respond.WriteViolations(w, vs)
		return
	}
	if study.IsDuplicateIDError(err) {
		respond.WriteConflict(w, err.Error())
		return
	}
	respond.WriteInternalError(w, err.Error())
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.WriteBadRequest(w, "failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		respond.WriteBadRequest(w, "request body is required")
		return nil, false
	}
	return body, true
}

// GetKnowledgeBase GET /api/knowledge-base
func (h *StudyHandler) GetKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	kb, err := h.service.GetKnowledgeBase(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kb)
}

// PutKnowledgeBase PUT /api/knowledge-base
func (h *StudyHandler) PutKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	kb, err := h.service.ReplaceKnowledgeBase(r.Context(), body)
	if err != nil {
		writeWriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kb)
}

// GetPrompts GET /api/prompts
func (h *StudyHandler) GetPrompts(w http.ResponseWriter, r *http.Request) {
	pc, err := h.service.GetPrompts(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, pc)
}

// PutPrompts PUT /api/prompts
func (h *StudyHandler) PutPrompts(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	pc, err := h.service.ReplacePrompts(r.Context(), body)
	if err != nil {
		writeWriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, pc)
}

// GetPracticeHistory GET /api/practice-history
// Absence of the backing document yields an empty history, never a 404.
func (h *StudyHandler) GetPracticeHistory(w http.ResponseWriter, r *http.Request) {
	ph, err := h.service.GetPracticeHistory(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ph)
}

// GetDialoguePhrases GET /api/dialogue-phrases
func (h *StudyHandler) GetDialoguePhrases(w http.ResponseWriter, r *http.Request) {
	dp, err := h.service.GetDialoguePhrases(r.Context())
	if err != nil {
		writeReadError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, dp)
}

// PutDialoguePhrases PUT /api/dialogue-phrases
func (h *StudyHandler) PutDialoguePhrases(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	dp, err := h.service.ReplaceDialoguePhrases(r.Context(), body)
	if err != nil {
		writeWriteError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, dp)
}
