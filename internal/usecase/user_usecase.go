// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser creates a user account together with its zero-balance wallet.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterOutput, error)

	// Login verifies credentials and issues tokens. Deactivated accounts are rejected.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetProfile retrieves the user's profile including wallet balance.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
