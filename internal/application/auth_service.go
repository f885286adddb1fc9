package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
	"inkpress/internal/domain/valueobject"
	"inkpress/pkg/helpers"
	"inkpress/pkg/mailer"
)

// AuthService holds the register/login use cases and the profile extras.
type AuthService struct {
	Users  repository.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger

	// Optional collaborators; nil disables the feature.
	Emails    EmailEnqueuer
	GCS       *storage.Client
	GCSBucket string
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens, Logger: logger}
}

// Register creates a new account with role "user". The duplicate-email check
// runs before the insert, and the response is rebuilt from a re-fetch so the
// storage-assigned id and timestamps are authoritative.
func (s *AuthService) Register(ctx context.Context, emailStr, password string) (*UserView, error) {
	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Email already registered")
	}

	hashed, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	// id 0 is the "not yet persisted" placeholder; storage assigns the real one
	user := entity.NewUser(0, email, hashed, valueobject.RoleUser)
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperr.Integrity("failed to retrieve created user")
	}

	if s.Emails != nil {
		if err := s.Emails.PublishJSON(ctx, mailer.WelcomeJob(created.Email.String())); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", created.Email.String()).Warn("welcome email enqueue failed")
		}
	}

	return newUserView(created), nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password fail identically so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, emailStr, password string) (*LoginView, error) {
	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !s.Hasher.Compare(user.HashedPassword, password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, exp, err := s.Tokens.Sign(user.ID, user.Email.String(), user.Role.String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("token signing failed")
		}
		return nil, err
	}

	return &LoginView{
		ID:          user.ID,
		Email:       user.Email.String(),
		Role:        user.Role.String(),
		AccessToken: token,
		ExpiresAt:   exp,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*UserView, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return newUserView(user), nil
}

// UploadAvatar stores the image in GCS and records its public URL on the user.
func (s *AuthService) UploadAvatar(ctx context.Context, userID int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Policy("avatar storage is not configured")
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.NotFound("User not found")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	user.AvatarURL = url
	if err := s.Users.Update(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}
