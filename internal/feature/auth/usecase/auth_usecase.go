package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"fynix_backend/internal/feature/auth/domain/entity"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when a user
	// with the same email address exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator creates signed tokens for authenticated users.
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup registers a new user with a hashed password.
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: email, Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and returns a signed JWT on success.
// A bcrypt comparison runs even when the user does not exist, so response
// timing does not leak account existence.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash compared when the lookup failed.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// Generic error for both unknown user and wrong password.
	if err != nil || compareErr != nil {
		return "", errors.New("invalid email or password")
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, nil
}
