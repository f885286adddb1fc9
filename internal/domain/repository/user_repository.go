package repository

import (
	"context"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/valueobject"
)

// UserRepository is the persistence contract for users. Lookups return
// (nil, nil) when no live row matches; use cases translate absence into
// domain failures.
type UserRepository interface {
	// Create persists a new user and fills in the storage-assigned id and
	// timestamps on the passed entity.
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
