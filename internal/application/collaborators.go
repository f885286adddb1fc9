package application

import (
	"context"
	"time"
)

// PasswordHasher is the credential-hashing collaborator. Satisfied by
// helpers.BcryptHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer produces a signed credential for an identity. Satisfied by
// helpers.JWTManager.
type TokenIssuer interface {
	Sign(userID int64, email, role string) (string, time.Time, error)
}

// EmailEnqueuer hands an email job off to the queue. Satisfied by
// helpers.RabbitPublisher. Enqueue failures never fail a use case.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, body any) error
}
