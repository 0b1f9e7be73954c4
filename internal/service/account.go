package service

import (
	"context"
	"time"

	"shoestore/internal/models"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type Claims struct {
	UserID uuid.UUID
	Role   models.Role
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, role string, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginInput struct {
	Email    string
	Password string
	// GuestSessionID, when present, is the cart to fold into the
	// user's on successful login.
	GuestSessionID string
}

type AuthResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

type UserFilter struct {
	Role     *models.Role
	Query    string
	Page     int
	PageSize int
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Me(ctx context.Context) (*models.User, error)

	// back office (ADMIN)
	ListUsers(ctx context.Context, f UserFilter) ([]models.User, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)

	// SeedAdmin ensures the configured administrator account exists.
	SeedAdmin(ctx context.Context, email, password string) error
}

var _ AccountService = (*accountService)(nil)
