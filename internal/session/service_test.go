package session

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
)

func validTestSession() *domain.Session {
	return &domain.Session{
		Name:          "T4 ore run",
		Mode:          domain.ModeRefining,
		MaterialType:  domain.MaterialOre,
		Tier:          4,
		Input:         json.RawMessage(`{"target_quantity":100}`),
		NetProfit:     -4000,
		ProfitPerUnit: -40,
	}
}

func TestSave(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validTestSession()
	stored := *input
	stored.ID = 7
	repo.On("Create", mock.Anything, input).Return(&stored, nil)

	saved, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 7, saved.ID)
	repo.AssertExpectations(t)
}

func TestSave_TrimsName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validTestSession()
	input.Name = "  padded name  "
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
		return s.Name == "padded name"
	})).Return(input, nil)

	_, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSave_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Session)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(s *domain.Session) { s.Name = "   " },
			wantErr: domain.ErrInvalidSession,
		},
		{
			name:    "name too long",
			mutate:  func(s *domain.Session) { s.Name = strings.Repeat("x", MaxNameLength+1) },
			wantErr: domain.ErrInvalidSession,
		},
		{
			name:    "unknown mode",
			mutate:  func(s *domain.Session) { s.Mode = "alchemy" },
			wantErr: domain.ErrInvalidSession,
		},
		{
			name:    "unknown material",
			mutate:  func(s *domain.Session) { s.MaterialType = "mithril" },
			wantErr: domain.ErrUnknownMaterial,
		},
		{
			name:    "tier out of range",
			mutate:  func(s *domain.Session) { s.Tier = 9 },
			wantErr: domain.ErrUnknownTier,
		},
		{
			name:    "missing input snapshot",
			mutate:  func(s *domain.Session) { s.Input = nil },
			wantErr: domain.ErrInvalidSession,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo)

			input := validTestSession()
			tc.mutate(input)

			_, err := svc.Save(context.Background(), input)
			assert.ErrorIs(t, err, tc.wantErr)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestSave_TierZeroAllowed(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	// Multi-tier sessions span a range, so no single tier is recorded
	input := validTestSession()
	input.Mode = domain.ModeMultiTier
	input.Tier = 0
	repo.On("Create", mock.Anything, input).Return(input, nil)

	_, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, 42).Return(nil, domain.ErrSessionNotFound)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestList_AppliesLimitDefaults(t *testing.T) {
	tests := []struct {
		name      string
		filter    repository.SessionFilter
		wantLimit int
	}{
		{"zero limit gets default", repository.SessionFilter{}, DefaultListLimit},
		{"oversized limit clamped", repository.SessionFilter{Limit: 5000}, MaxListLimit},
		{"explicit limit kept", repository.SessionFilter{Limit: 10}, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo)

			repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.SessionFilter) bool {
				return f.Limit == tc.wantLimit
			})).Return([]domain.Session{}, nil)

			_, err := svc.List(context.Background(), tc.filter)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestList_RejectsUnknownMode(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), repository.SessionFilter{Mode: "alchemy"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
	repo.AssertNotCalled(t, "List")
}

func TestSearch(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Search", mock.Anything, "ore", DefaultListLimit).
		Return([]domain.Session{*validTestSession()}, nil)

	results, err := svc.Search(context.Background(), "  ore  ", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertExpectations(t)
}

func TestSearch_EmptyQuery(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Search")
}

func TestUpdate_RequiresID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validTestSession()
	_, err := svc.Update(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	input := validTestSession()
	input.ID = 3
	repo.On("Update", mock.Anything, input).Return(input, nil)

	updated, err := svc.Update(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.ID)
}

func TestDelete(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, 5).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5))
	repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, 99).Return(domain.ErrSessionNotFound)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Count", mock.Anything).Return(12, nil)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
