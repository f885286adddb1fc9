package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
	"inkpress/internal/domain/valueobject"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email.String(), u.HashedPassword, u.Role.String(), u.AvatarURL)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, role, avatar_url, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, role, avatar_url, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`, email.String())
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var (
		u         entity.User
		emailStr  string
		roleStr   string
		deletedAt *time.Time
	)
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &emailStr, &u.HashedPassword, &roleStr, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	role, err := valueobject.NewRole(roleStr)
	if err != nil {
		return nil, err
	}
	u.Email = email
	u.Role = role
	u.DeletedAt = deletedAt
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, role = $3, avatar_url = $4, updated_at = now()
		WHERE id = $5 AND deleted_at IS NULL
	`, u.Email.String(), u.HashedPassword, u.Role.String(), u.AvatarURL, u.ID)
	return err
}

// Delete soft-deletes; deleting an already-deleted or missing row is a no-op.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
