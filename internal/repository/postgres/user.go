package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/sessionauth/internal/model"
)

const uniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, first_name, last_name, email, age, password_hash, role, cart_id, created_at, updated_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, first_name, last_name, email, age, password_hash, role, cart_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	cartID := uuid.NullUUID{}
	if user.CartID != nil {
		cartID = uuid.NullUUID{UUID: *user.CartID, Valid: true}
	}

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Age,
		user.PasswordHash, user.Role, cartID, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, fmt.Errorf("%w: %s", model.ErrDuplicateEmail, user.Email)
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		user   model.User
		cartID uuid.NullUUID
	)

	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Age,
		&user.PasswordHash, &user.Role, &cartID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	if cartID.Valid {
		id := cartID.UUID
		user.CartID = &id
	}

	return user, nil
}
