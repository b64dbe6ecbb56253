// internal/common/utils/jwt.go
// Signed session tokens. Lives in utils so auth and its callers share it
// without an import cycle.

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTClaims are the DateMate session claims. The user ID doubles as the
// registered subject.
type JWTClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// NewJWTClaims builds claims valid from issuedAt for ttl. Every token gets a
// fresh jti so two tokens minted in the same second differ.
func NewJWTClaims(userID int64, email, name, tokenType, issuer string, issuedAt time.Time, ttl time.Duration) *JWTClaims {
	return &JWTClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}

// GenerateJWT signs claims with HS256
func GenerateJWT(claims *JWTClaims, secret string) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateJWT checks signature, expiry and the subject/user ID pairing
func ValidateJWT(tokenString string, secret string) (*JWTClaims, error) {
	var claims JWTClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
