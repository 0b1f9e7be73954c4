package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLen = 8

type accountService struct {
	repo      *repository.Repository
	hasher    PasswordHasher
	tokens    TokenProvider
	cart      CartService
	accessTTL time.Duration
	log       *zap.Logger
}

func NewAccountService(repo *repository.Repository, hasher PasswordHasher, tokens TokenProvider, cart CartService, accessTTL time.Duration, log *zap.Logger) *accountService {
	return &accountService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		cart:      cart,
		accessTTL: accessTTL,
		log:       log,
	}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, validationErr("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationErr("email is not valid")
	}
	if len(in.Password) < minPasswordLen {
		return nil, validationErr("password must be at least 8 characters")
	}

	exists, err := s.repo.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:     email,
		Password:  hash,
		Role:      models.RoleCustomer,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issueToken(ctx, u)
}

func (s *accountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Compare(u.Password, in.Password) {
		return nil, ErrInvalidCredentials
	}

	if in.GuestSessionID != "" {
		if err := s.cart.MergeGuestCart(ctx, in.GuestSessionID, u.ID); err != nil {
			// A failed merge must not block the login itself.
			s.log.Warn("guest cart merge failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err))
		}
	}

	return s.issueToken(ctx, u)
}

func (s *accountService) issueToken(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.SignAccess(ctx, u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *accountService) Me(ctx context.Context) (*models.User, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *accountService) ListUsers(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.Users.List(ctx, repository.UserListFilter{
		Role:   f.Role,
		Query:  f.Query,
		Limit:  size,
		Offset: (page - 1) * size,
	})
}

func (s *accountService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	u, err := s.repo.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *accountService) SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	switch role {
	case models.RoleAdmin, models.RoleEmployee, models.RoleCustomer:
	default:
		return nil, validationErr("unknown role")
	}
	// An admin demoting themselves would lock the back office.
	if adminID == id && role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	ok, err := s.repo.Users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.repo.Users.GetByID(ctx, id)
}

// SeedAdmin is idempotent: an existing account with the configured
// email is promoted if needed, otherwise the account is created.
func (s *accountService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return validationErr("admin seed email and password are required")
	}

	existing, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role == models.RoleAdmin {
			return nil
		}
		_, err := s.repo.Users.UpdateRole(ctx, existing.ID, models.RoleAdmin)
		if err == nil {
			s.log.Info("existing user promoted to admin", zap.String("email", email))
		}
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u := &models.User{
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		return err
	}
	s.log.Info("admin account seeded", zap.String("email", email))
	return nil
}
