package entity

import (
	"time"

	"inkpress/internal/domain/valueobject"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in HashedPassword; a plaintext
// password never reaches this type.
//
// ID 0 is a construction placeholder meaning "not yet persisted"; the
// repository assigns the durable id on create.
type User struct {
	ID             int64
	Email          valueobject.Email
	HashedPassword string
	Role           valueobject.Role
	AvatarURL      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func NewUser(id int64, email valueobject.Email, hashedPassword string, role valueobject.Role) *User {
	now := time.Now()
	return &User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Equals compares by identity: two users are equal iff same id.
func (u *User) Equals(other *User) bool {
	return other != nil && u.ID == other.ID
}

func (u *User) IsDeleted() bool { return u.DeletedAt != nil }

func (u *User) MarkDeleted() {
	if u.DeletedAt == nil {
		now := time.Now()
		u.DeletedAt = &now
		u.UpdatedAt = now
	}
}

func (u *User) Restore() {
	if u.DeletedAt != nil {
		u.DeletedAt = nil
		u.UpdatedAt = time.Now()
	}
}
