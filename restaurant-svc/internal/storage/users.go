package storage

import (
	"context"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/pkg/errors"
)

const userSelect = `SELECT id, name, surname, username, email, password_hash, role, account_status, created_at, updated_at FROM users`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.AccountStatus, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, u *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, name, surname, username, email, password_hash, role, account_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Surname, u.Username, u.Email, u.PasswordHash, u.Role, u.AccountStatus,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return translate(err, "insert user", domain.MsgUserNotFound)
}

func (r *PostgresRepository) getUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE "+column+" = $1", value))
	if err != nil {
		return nil, translate(err, "get user by "+column, domain.MsgUserNotFound)
	}
	return u, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return r.getUserBy(ctx, "id", id)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserBy(ctx, "email", email)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserBy(ctx, "username", username)
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, u *domain.User) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users
		SET name = $1, surname = $2, username = $3, email = $4, password_hash = $5, role = $6, account_status = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`,
		u.Name, u.Surname, u.Username, u.Email, u.PasswordHash, u.Role, u.AccountStatus, u.ID,
	).Scan(&u.UpdatedAt)
	return translate(err, "update user", domain.MsgUserNotFound)
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "delete user")
	}
	return result.RowsAffected()
}
