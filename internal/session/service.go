package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
)

// Service handles saved-calculation business logic
type Service interface {
	// Save validates and stores a new calculation session
	Save(ctx context.Context, session *domain.Session) (*domain.Session, error)

	// Get retrieves a session by id
	Get(ctx context.Context, id int) (*domain.Session, error)

	// List retrieves sessions, newest first, optionally filtered by mode
	List(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, error)

	// Search retrieves sessions whose name contains the query
	Search(ctx context.Context, query string, limit int) ([]domain.Session, error)

	// Update validates and overwrites an existing session
	Update(ctx context.Context, session *domain.Session) (*domain.Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id int) error

	// Count reports how many sessions exist
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo repository.Session
}

// NewService creates a new session service
func NewService(repo repository.Session) Service {
	return &service{repo: repo}
}

func validateSession(session *domain.Session) error {
	name := strings.TrimSpace(session.Name)
	if name == "" {
		return fmt.Errorf("%w: session name is required", domain.ErrInvalidSession)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: session name exceeds %d characters", domain.ErrInvalidSession, MaxNameLength)
	}
	if !session.Mode.IsValid() {
		return fmt.Errorf("%w: unknown calculation mode %q", domain.ErrInvalidSession, session.Mode)
	}
	if session.MaterialType != "" && !session.MaterialType.IsValid() {
		return fmt.Errorf("%w: unknown material %q", domain.ErrUnknownMaterial, session.MaterialType)
	}
	if session.Tier != 0 && !session.Tier.IsValid() {
		return fmt.Errorf("%w: tier %d", domain.ErrUnknownTier, int(session.Tier))
	}
	if len(session.Input) == 0 {
		return fmt.Errorf("%w: input snapshot is required", domain.ErrInvalidSession)
	}
	session.Name = name
	return nil
}

func (s *service) Save(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	log := logger.FromContext(ctx)

	if err := validateSession(session); err != nil {
		return nil, err
	}

	saved, err := s.repo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info(LogMsgSessionSaved, LogFieldSessionID, saved.ID, LogFieldName, saved.Name, LogFieldMode, saved.Mode)
	return saved, nil
}

func (s *service) Get(ctx context.Context, id int) (*domain.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, error) {
	if filter.Mode != "" && !filter.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown calculation mode %q", domain.ErrInvalidSession, filter.Mode)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]domain.Session, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.Search(ctx, query, limit)
}

func (s *service) Update(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	log := logger.FromContext(ctx)

	if session.ID <= 0 {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidSession)
	}
	if err := validateSession(session); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, session)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgSessionUpdated, LogFieldSessionID, updated.ID, LogFieldName, updated.Name)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	log := logger.FromContext(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info(LogMsgSessionDeleted, LogFieldSessionID, id)
	return nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
