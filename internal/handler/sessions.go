package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/metrics"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
	"github.com/veylan/ForgeLedger_Go/internal/session"
)

// SaveSessionRequest represents a request to save or update a calculation session
type SaveSessionRequest struct {
	Name          string          `json:"session_name" validate:"required,max=100"`
	Mode          string          `json:"calculation_mode" validate:"required,calcmode"`
	MaterialType  string          `json:"material_type" validate:"material"`
	Tier          int             `json:"tier" validate:"gte=0,lte=8"`
	Input         json.RawMessage `json:"input" validate:"required"`
	NetProfit     float64         `json:"net_profit"`
	ProfitPerUnit float64         `json:"profit_per_unit"`
}

// SaveSessionResponse wraps a persisted session with a confirmation message
type SaveSessionResponse struct {
	Message string          `json:"message"`
	Session *domain.Session `json:"session"`
}

// ListSessionsResponse contains a page of sessions plus the total stored count
type ListSessionsResponse struct {
	Sessions []domain.Session `json:"sessions"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
}

// SessionHandler handles saved-calculation HTTP requests
type SessionHandler struct {
	service session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

func (req *SaveSessionRequest) toDomain() *domain.Session {
	return &domain.Session{
		Name:          req.Name,
		Mode:          domain.CalculationMode(req.Mode),
		MaterialType:  domain.MaterialType(req.MaterialType),
		Tier:          domain.Tier(req.Tier),
		Input:         req.Input,
		NetProfit:     req.NetProfit,
		ProfitPerUnit: req.ProfitPerUnit,
	}
}

// sessionIDFromPath extracts and parses the {id} path parameter.
// If ok is false the error response has already been written.
func sessionIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return 0, false
	}
	return id, true
}

// HandleSave handles session save requests
// @Summary Save a calculation session
// @Description Persists a named calculator input snapshot with its headline results
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SaveSessionRequest true "Session to save"
// @Success 201 {object} SaveSessionResponse "Saved session"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /sessions [post]
func (h *SessionHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save session"); err != nil {
		return
	}

	saved, err := h.service.Save(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveSessionFailed, err)
		return
	}
	metrics.SessionsSaved.Inc()

	respondJSON(w, http.StatusCreated, SaveSessionResponse{
		Message: MsgSessionSavedSuccess,
		Session: saved,
	})
}

// HandleGet handles single-session fetch requests
// @Summary Get a saved session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} domain.Session "Saved session"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromPath(w, r)
	if !ok {
		return
	}

	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSessionFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, s)
}

// HandleList handles session list requests
// @Summary List saved sessions
// @Description Returns a page of saved sessions, newest first, optionally filtered by calculator mode
// @Tags sessions
// @Produce json
// @Param mode query string false "Calculator mode filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListSessionsResponse "Sessions page"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Router /sessions [get]
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.SessionFilter{
		Mode: domain.CalculationMode(r.URL.Query().Get("mode")),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		filter.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		filter.Offset = offset
	}

	sessions, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgListSessionsFailed, err)
		return
	}

	total, err := h.service.Count(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListSessionsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ListSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
		Total:    total,
	})
}

// HandleSearch handles session name search requests
// @Summary Search saved sessions by name
// @Tags sessions
// @Produce json
// @Param q query string true "Name fragment to match"
// @Param limit query int false "Maximum results"
// @Success 200 {object} ListSessionsResponse "Matching sessions"
// @Failure 400 {object} ErrorResponse "Missing query"
// @Router /sessions/search [get]
func (h *SessionHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := GetQueryParam(r, w, "q")
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		limit = parsed
	}

	sessions, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, r, ErrMsgSearchFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ListSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
		Total:    len(sessions),
	})
}

// HandleUpdate handles session update requests
// @Summary Update a saved session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body SaveSessionRequest true "New session contents"
// @Success 200 {object} SaveSessionResponse "Updated session"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /sessions/{id} [put]
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromPath(w, r)
	if !ok {
		return
	}

	var req SaveSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update session"); err != nil {
		return
	}

	s := req.toDomain()
	s.ID = id

	updated, err := h.service.Update(r.Context(), s)
	if err != nil {
		respondServiceError(w, r, ErrMsgUpdateSessionFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SaveSessionResponse{
		Message: MsgSessionUpdatedSuccess,
		Session: updated,
	})
}

// HandleDelete handles session delete requests
// @Summary Delete a saved session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} SuccessResponse "Deletion confirmation"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, ok := sessionIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, ErrMsgDeleteSessionFailed, err)
		return
	}
	metrics.SessionsDeleted.Inc()
	log.Info("Session deleted", "session_id", id)

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeletedSuccess})
}
