package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// UserRepository implements port.UserReader using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Counselors returns every user holding the counselor role.
func (r *UserRepository) Counselors(ctx context.Context) ([]port.Counselor, error) {
	query := `SELECT id FROM users WHERE role = 'counselor'`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counselors: %w", err)
	}
	defer rows.Close()

	var counselors []port.Counselor
	for rows.Next() {
		var c port.Counselor
		if err := rows.Scan(&c.ID); err != nil {
			return nil, fmt.Errorf("failed to scan counselor: %w", err)
		}
		counselors = append(counselors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counselors: %w", err)
	}
	return counselors, nil
}
