// Package auth implements the cryptographic primitives behind AuthVault:
// bcrypt credential hashing and signed, time-bound identity tokens (HS256).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed claims set embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// IssueToken mints an HS256-signed token for the given identity with
// issuedAt = now and expiresAt = now + ttl.
func IssueToken(userID, email string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string. On failure it returns one
// of the common sentinels so callers can log the precise reason while still
// presenting a single generic message outward:
//
//   - common.ErrTokenMalformed: the string is not a parseable token, or a
//     parseable one missing its iat/exp claims
//   - common.ErrTokenSignatureInvalid: the signature does not verify
//   - common.ErrTokenExpired: the token is outside its validity window
//
// Signature comparison is constant-time inside the jwt library. Only HS256
// is accepted; any other alg is treated as an invalid signature.
func VerifyToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(), jwt.WithExpirationRequired())

	switch {
	case err == nil && token.Valid:
		// A token is only valid inside its [issuedAt, expiresAt] window, so
		// both claims must be present. The parser enforces exp via
		// WithExpirationRequired; a missing iat slips through it.
		if claims.IssuedAt == nil || claims.ExpiresAt == nil {
			return nil, common.ErrTokenMalformed
		}
		return claims, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, common.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return nil, common.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, common.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	default:
		return nil, common.ErrTokenSignatureInvalid
	}
}
