package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/habitd/habitd/config"
)

// Claims identifies the habit owner a token acts for. Tokens are minted by
// the identity service (or the -mint-token flag in development); this
// service only verifies them.
type Claims struct {
	OwnerID uint `json:"owner_id"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for an owner.
func GenerateToken(ownerID uint, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.App.JWTSecret))
}

// ParseToken validates a token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.App.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.OwnerID == 0 {
		return nil, errors.New("token carries no owner")
	}

	return claims, nil
}
