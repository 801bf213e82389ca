package jwt

import (
	"errors"
	"fmt"
	"time"

	"charactervault/web/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid session token")

// GenerateToken creates a new session token for a given user ID. The
// returned claims carry the token id and expiry the session is tracked by.
func GenerateToken(userID uint) (string, *Claims, error) {
	ttl := config.AppConfig.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour * 24 * 7
	}
	now := time.Now()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(config.AppConfig.SecretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

// ParseToken verifies a session token and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
