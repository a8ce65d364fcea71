package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"mercadinho/internal/common"
	"mercadinho/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

// Create inserts a new user row. Username uniqueness is enforced by the
// database constraint so that concurrent registrations of the same name
// settle on exactly one winner; a unique violation surfaces as ErrConflict.
func (r *pgUserRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	query := `INSERT INTO usuarios (username, senha) VALUES ($1, $2) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, fmt.Errorf("username %q already exists: %w", username, common.ErrConflict)
		}
		return 0, fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return id, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, senha FROM usuarios WHERE username = $1`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}
