package service

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	n, err := generateOrderNumber(at)
	if err != nil {
		t.Fatalf("generateOrderNumber: %v", err)
	}
	re := regexp.MustCompile(`^ORD20250314150926\d{4}$`)
	if !re.MatchString(n) {
		t.Fatalf("order number %q does not match ORD<timestamp><4 digits>", n)
	}
}

func TestValidateCheckoutInput(t *testing.T) {
	valid := CheckoutInput{
		Email:     " buyer@example.com ",
		FirstName: "Ada",
		LastName:  "Lovelace",
		City:      "London",
		Address:   "12 St James Square",
	}
	if err := validateCheckoutInput(&valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if valid.Email != "buyer@example.com" {
		t.Fatalf("email not trimmed: %q", valid.Email)
	}

	cases := []struct {
		name string
		in   CheckoutInput
	}{
		{"missing email", CheckoutInput{FirstName: "A", LastName: "B", City: "C", Address: "D"}},
		{"bad email", CheckoutInput{Email: "not-an-email", FirstName: "A", LastName: "B", City: "C", Address: "D"}},
		{"missing name", CheckoutInput{Email: "a@b.co", City: "C", Address: "D"}},
		{"missing address", CheckoutInput{Email: "a@b.co", FirstName: "A", LastName: "B"}},
	}
	for _, tc := range cases {
		in := tc.in
		if err := validateCheckoutInput(&in); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: got %v, want ErrValidation", tc.name, err)
		}
	}
}
