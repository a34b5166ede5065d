package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/repository"
)

type sessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *pgxpool.Pool) repository.Session {
	return &sessionRepository{db: db}
}

const sessionColumns = `id, session_name, calculation_mode, material_type, tier, input, net_profit, profit_per_unit, created_at, updated_at`

// Create stores a new saved calculation and returns it with generated fields
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	query := `
		INSERT INTO sessions (session_name, calculation_mode, material_type, tier, input, net_profit, profit_per_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sessionColumns

	row := r.db.QueryRow(ctx, query,
		session.Name,
		session.Mode,
		session.MaterialType,
		session.Tier,
		session.Input,
		session.NetProfit,
		session.ProfitPerUnit,
	)
	return scanSession(row)
}

// GetByID retrieves a saved calculation by its id
func (r *sessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrSessionNotFound, id)
		}
		return nil, err
	}
	return session, nil
}

// List retrieves saved calculations, newest first
func (r *sessionRepository) List(ctx context.Context, filter repository.SessionFilter) ([]domain.Session, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.Mode != "" {
		fmt.Fprintf(&queryBuilder, " AND calculation_mode = $%d", argNum)
		args = append(args, filter.Mode)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY updated_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}

	if filter.Offset > 0 {
		fmt.Fprintf(&queryBuilder, " OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// Search retrieves saved calculations whose name matches the pattern,
// case-insensitively
func (r *sessionRepository) Search(ctx context.Context, namePattern string, limit int) ([]domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE session_name ILIKE $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, "%"+namePattern+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

// Update overwrites a saved calculation in place
func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	query := `
		UPDATE sessions
		SET session_name = $2,
		    calculation_mode = $3,
		    material_type = $4,
		    tier = $5,
		    input = $6,
		    net_profit = $7,
		    profit_per_unit = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sessionColumns

	row := r.db.QueryRow(ctx, query,
		session.ID,
		session.Name,
		session.Mode,
		session.MaterialType,
		session.Tier,
		session.Input,
		session.NetProfit,
		session.ProfitPerUnit,
	)

	updated, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrSessionNotFound, session.ID)
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a saved calculation
func (r *sessionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrSessionNotFound, id)
	}
	return nil
}

// Count reports how many saved calculations exist
func (r *sessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Mode,
		&s.MaterialType,
		&s.Tier,
		&s.Input,
		&s.NetProfit,
		&s.ProfitPerUnit,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSessions(rows pgx.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
