package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veylan/ForgeLedger_Go/internal/database/postgres"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Session repository.Session
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Session: postgres.NewSessionRepository(dbPool),
	}
}
