package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIdentity reads the identity claim of token without verifying the
// signature; only the server holds the key. The CLI uses it to show who it
// is acting as.
func TokenIdentity(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	id, _ := claims["identity"].(string)
	if id == "" {
		return "", errors.New("token carries no identity")
	}
	return id, nil
}
