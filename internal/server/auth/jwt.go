// Package auth issues and verifies the access tokens that carry a caller's
// identity. Tokens are HS256 JWTs signed with the server secret; the wallet
// or identity provider that vouches for the identity is outside this
// service and mints them with the same secret (see cmd/tokengen).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/dmitrijs2005/idregistry/internal/identity"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims and the caller identity.
type Claims struct {
	jwt.RegisteredClaims
	Identity string `json:"identity"`
}

const issuer = "idregistry"

func GenerateToken(id string, secretKey []byte, validityDuration time.Duration) (string, error) {
	norm, err := identity.Normalize(id)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   norm,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Identity: norm,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies tokenString and returns the normalized
// identity it carries.
func GetIdentityFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	id, err := identity.Normalize(claims.Identity)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return id, nil
}
