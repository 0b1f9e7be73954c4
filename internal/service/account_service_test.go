package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAccountServiceForTest(users *MockUserRepo, cart CartService) *accountService {
	if cart == nil {
		cart = &MockCartService{}
	}
	return NewAccountService(
		&repository.Repository{Users: users},
		fakeHasher{},
		fakeTokens{},
		cart,
		time.Hour,
		zap.NewNop(),
	)
}

func TestRegister(t *testing.T) {
	var created *models.User
	users := &MockUserRepo{
		CreateFunc: func(ctx context.Context, u *models.User) error {
			u.ID = uuid.New()
			created = u
			return nil
		},
	}
	svc := newAccountServiceForTest(users, nil)

	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "New.User@Example.COM",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created == nil || created.Email != "new.user@example.com" {
		t.Fatalf("email not normalized: %+v", created)
	}
	if created.Role != models.RoleCustomer {
		t.Fatalf("role = %s, want customer", created.Role)
	}
	if created.Password == "supersecret" {
		t.Fatal("password stored in plain text")
	}
	if res.AccessToken == "" {
		t.Fatal("no access token issued")
	}
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	users := &MockUserRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := newAccountServiceForTest(users, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "supersecret"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v, want ErrEmailTaken", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "short"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("weak password: got %v, want ErrValidation", err)
	}
}

func TestLogin(t *testing.T) {
	uid := uuid.New()
	users := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email != "a@b.co" {
				return nil, nil
			}
			return &models.User{ID: uid, Email: email, Password: "hash:supersecret", Role: models.RoleCustomer}, nil
		},
	}

	var mergedGuest string
	cart := &MockCartService{
		MergeGuestCartFunc: func(ctx context.Context, guestSessionID string, userID uuid.UUID) error {
			mergedGuest = guestSessionID
			if userID != uid {
				t.Fatalf("merge target = %s, want %s", userID, uid)
			}
			return nil
		},
	}
	svc := newAccountServiceForTest(users, cart)

	res, err := svc.Login(context.Background(), LoginInput{
		Email:          "a@b.co",
		Password:       "supersecret",
		GuestSessionID: "guest-42",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatal("no token issued")
	}
	if mergedGuest != "guest-42" {
		t.Fatalf("guest cart not merged: %q", mergedGuest)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.co", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSurvivesMergeFailure(t *testing.T) {
	users := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, Password: "hash:supersecret"}, nil
		},
	}
	cart := &MockCartService{
		MergeGuestCartFunc: func(ctx context.Context, guestSessionID string, userID uuid.UUID) error {
			return errors.New("merge boom")
		},
	}
	svc := newAccountServiceForTest(users, cart)

	if _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.co", Password: "supersecret", GuestSessionID: "g"}); err != nil {
		t.Fatalf("login must not fail on merge error: %v", err)
	}
}

func TestSetRoleGuards(t *testing.T) {
	adminID := uuid.New()
	users := &MockUserRepo{
		UpdateRoleFunc: func(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
			return true, nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	svc := newAccountServiceForTest(users, nil)

	adminCtx := WithRole(WithUserID(context.Background(), adminID), models.RoleAdmin)

	// self-demotion refused
	if _, err := svc.SetRole(adminCtx, adminID, models.RoleCustomer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self-demotion: got %v, want ErrForbidden", err)
	}

	// employees cannot manage users
	empCtx := WithRole(WithUserID(context.Background(), uuid.New()), models.RoleEmployee)
	if _, err := svc.SetRole(empCtx, uuid.New(), models.RoleEmployee); !errors.Is(err, ErrForbidden) {
		t.Fatalf("employee: got %v, want ErrForbidden", err)
	}

	if _, err := svc.SetRole(adminCtx, uuid.New(), models.Role("SUPERUSER")); err == nil {
		t.Fatal("unknown role must be rejected")
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	adminEmail := "admin@shoestore.local"
	existing := &models.User{ID: uuid.New(), Email: adminEmail, Role: models.RoleAdmin}

	creates := 0
	users := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return existing, nil
		},
		CreateFunc: func(ctx context.Context, u *models.User) error {
			creates++
			return nil
		},
	}
	svc := newAccountServiceForTest(users, nil)

	if err := svc.SeedAdmin(context.Background(), adminEmail, "seedpassword"); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if creates != 0 {
		t.Fatal("existing admin must not be recreated")
	}
}
