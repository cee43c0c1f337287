package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims defines the JWT payload for operator tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// GenerateJWT creates a signed operator token valid for 24h.
func GenerateJWT(secret []byte, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAndVerify validates the token string and returns its claims.
func ParseAndVerify(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// ensure HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
