package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/handler"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
)

// mockSessionService is a testify mock of session.Service
type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Save(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionService) Get(ctx context.Context, id int) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionService) List(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *mockSessionService) Search(ctx context.Context, query string, limit int) ([]domain.Session, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *mockSessionService) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func sessionTestRouter(svc *mockSessionService) *chi.Mux {
	handler.InitValidator()
	h := handler.NewSessionHandler(svc)

	r := chi.NewRouter()
	r.Post("/sessions", h.HandleSave)
	r.Get("/sessions", h.HandleList)
	r.Get("/sessions/search", h.HandleSearch)
	r.Get("/sessions/{id}", h.HandleGet)
	r.Put("/sessions/{id}", h.HandleUpdate)
	r.Delete("/sessions/{id}", h.HandleDelete)
	return r
}

func testSession() *domain.Session {
	return &domain.Session{
		ID:            1,
		Name:          "T4 ore run",
		Mode:          domain.ModeRefining,
		MaterialType:  domain.MaterialOre,
		Tier:          4,
		Input:         json.RawMessage(`{"target_quantity":100}`),
		NetProfit:     -4000,
		ProfitPerUnit: -40,
	}
}

func TestSessionHandler_Save(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Save", mock.Anything, mock.Anything).Return(testSession(), nil)
	router := sessionTestRouter(svc)

	body, _ := json.Marshal(handler.SaveSessionRequest{
		Name:          "T4 ore run",
		Mode:          "refining",
		MaterialType:  "ore",
		Tier:          4,
		Input:         json.RawMessage(`{"target_quantity":100}`),
		NetProfit:     -4000,
		ProfitPerUnit: -40,
	})

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.SaveSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Calculation saved successfully", resp.Message)
	assert.Equal(t, 1, resp.Session.ID)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Save_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body handler.SaveSessionRequest
	}{
		{
			name: "missing name",
			body: handler.SaveSessionRequest{
				Mode:  "refining",
				Input: json.RawMessage(`{}`),
			},
		},
		{
			name: "unknown mode",
			body: handler.SaveSessionRequest{
				Name:  "run",
				Mode:  "speculation",
				Input: json.RawMessage(`{}`),
			},
		},
		{
			name: "missing input",
			body: handler.SaveSessionRequest{
				Name: "run",
				Mode: "refining",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSessionService)
			router := sessionTestRouter(svc)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Save")
		})
	}
}

func TestSessionHandler_Get(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Get", mock.Anything, 1).Return(testSession(), nil)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var s domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "T4 ore run", s.Name)
	assert.Equal(t, domain.ModeRefining, s.Mode)
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Get", mock.Anything, 42).Return(nil, domain.ErrSessionNotFound)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Saved calculation not found")
}

func TestSessionHandler_Get_InvalidID(t *testing.T) {
	svc := new(mockSessionService)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session ID")
	svc.AssertNotCalled(t, "Get")
}

func TestSessionHandler_List(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("List", mock.Anything, repository.SessionFilter{
		Mode:  domain.ModeRefining,
		Limit: 10,
	}).Return([]domain.Session{*testSession()}, nil)
	svc.On("Count", mock.Anything).Return(7, nil)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions?mode=refining&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.ListSessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "T4 ore run", resp.Sessions[0].Name)
}

func TestSessionHandler_List_InvalidLimit(t *testing.T) {
	svc := new(mockSessionService)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions?limit=ten", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid limit parameter")
	svc.AssertNotCalled(t, "List")
}

func TestSessionHandler_Search(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Search", mock.Anything, "ore", 0).Return([]domain.Session{*testSession()}, nil)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/search?q=ore", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.ListSessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestSessionHandler_Search_MissingQuery(t *testing.T) {
	svc := new(mockSessionService)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Search")
}

func TestSessionHandler_Update(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.ID == 1 && s.Name == "renamed run"
	})).Return(testSession(), nil)
	router := sessionTestRouter(svc)

	body, _ := json.Marshal(handler.SaveSessionRequest{
		Name:  "renamed run",
		Mode:  "refining",
		Input: json.RawMessage(`{}`),
	})

	req := httptest.NewRequest(http.MethodPut, "/sessions/1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.SaveSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Calculation updated successfully", resp.Message)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Delete(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Delete", mock.Anything, 1).Return(nil)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Calculation deleted successfully")
	svc.AssertExpectations(t)
}

func TestSessionHandler_Delete_NotFound(t *testing.T) {
	svc := new(mockSessionService)
	svc.On("Delete", mock.Anything, 42).Return(domain.ErrSessionNotFound)
	router := sessionTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
