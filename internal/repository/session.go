package repository

import (
	"context"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

// SessionFilter narrows session listings.
type SessionFilter struct {
	Mode   domain.CalculationMode
	Limit  int
	Offset int
}

// Session defines the interface for saved-calculation persistence
type Session interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id int) (*domain.Session, error)
	List(ctx context.Context, filter SessionFilter) ([]domain.Session, error)
	Search(ctx context.Context, namePattern string, limit int) ([]domain.Session, error)
	Update(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}
