package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	before := time.Now()
	tok, err := IssueToken("1", "demo@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.UserID != "1" {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, "1")
	}
	if claims.Email != "demo@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}

	iat := claims.IssuedAt.Time
	exp := claims.ExpiresAt.Time
	if iat.Before(before.Truncate(time.Second)) || iat.After(time.Now()) {
		t.Fatalf("issuedAt out of range: %v", iat)
	}
	if got := exp.Sub(iat); got != time.Hour {
		t.Fatalf("expiry window mismatch: got %v want %v", got, time.Hour)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken("1", "a@b.c", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("1", "a@b.c", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = VerifyToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrTokenSignatureInvalid) {
		t.Fatalf("expected common.ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken("1", "a@b.c", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Flip one character in the signature segment.
	i := strings.LastIndex(tok, ".") + 1
	b := []byte(tok)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	_, err = VerifyToken(string(b), secret)
	if !errors.Is(err, common.ErrTokenSignatureInvalid) {
		t.Fatalf("expected common.ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyToken_MissingTimingClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	// Correctly signed tokens that omit exp (and iat) must be rejected:
	// without timing claims there is no validity window to check.
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no exp no iat", jwt.MapClaims{"userId": "1", "email": "a@b.c"}},
		{"iat only", jwt.MapClaims{"userId": "1", "email": "a@b.c", "iat": time.Now().Unix()}},
		{"exp only", jwt.MapClaims{"userId": "1", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString(secret)
			if err != nil {
				t.Fatalf("sign error: %v", err)
			}

			_, err = VerifyToken(tok, secret)
			if !errors.Is(err, common.ErrTokenMalformed) {
				t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.token, []byte("k"))
			if !errors.Is(err, common.ErrTokenMalformed) {
				t.Fatalf("expected common.ErrTokenMalformed, got %v", err)
			}
		})
	}
}
