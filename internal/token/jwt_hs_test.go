package token

import (
	"context"
	"testing"
	"time"

	"shoestore/internal/models"

	"github.com/google/uuid"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	p := NewHSProvider("test-secret", "shoestore", "shoestore-clients")
	ctx := context.Background()
	uid := uuid.New()

	signed, exp, err := p.SignAccess(ctx, uid, string(models.RoleAdmin), time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("exp too close: %v", exp)
	}

	claims, err := p.ParseAndValidateAccess(ctx, signed)
	if err != nil {
		t.Fatalf("ParseAndValidateAccess: %v", err)
	}
	if claims.UserID != uid {
		t.Fatalf("user id = %s, want %s", claims.UserID, uid)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role = %s", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	signed, _, err := NewHSProvider("secret-a", "shoestore", "shoestore-clients").
		SignAccess(ctx, uuid.New(), string(models.RoleCustomer), time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := NewHSProvider("secret-b", "shoestore", "shoestore-clients").ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestParseRejectsWrongAudienceAndExpired(t *testing.T) {
	ctx := context.Background()

	signed, _, err := NewHSProvider("s", "shoestore", "other-app").
		SignAccess(ctx, uuid.New(), string(models.RoleCustomer), time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := NewHSProvider("s", "shoestore", "shoestore-clients").ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("audience mismatch must be rejected")
	}

	past := NewHSProvider("s", "shoestore", "shoestore-clients")
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err = past.SignAccess(ctx, uuid.New(), string(models.RoleCustomer), time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := NewHSProvider("s", "shoestore", "shoestore-clients").ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
