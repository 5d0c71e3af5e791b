// Package auth issues and verifies the identity tokens the HTTP API
// accepts. A token carries the principal id and e-mail the identity policy
// needs to derive a storage key.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studylab/studyvault/internal/common"
)

// Claims includes the registered claims plus the account identity.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"pid"`
	Email       string `json:"email"`
}

func GenerateToken(principalID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		PrincipalID: principalID,
		Email:       email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and returns the embedded identity.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.PrincipalID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
