package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes. The access token is meant to be refreshed via the
// refresh cookie well before the cookie itself expires.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateAccessToken issues a short-lived access token for the user.
func GenerateAccessToken(userID uint, email, role string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["email"] = email
	claims["role"] = role
	claims["exp"] = time.Now().Add(AccessTokenTTL).Unix()
	secret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken issues a longer-lived refresh token for the user.
func GenerateRefreshToken(userID uint) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["exp"] = time.Now().Add(RefreshTokenTTL).Unix()
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	return token.SignedString([]byte(refreshSecret))
}

// ParseRefreshToken validates a refresh token and returns the user id.
func ParseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_REFRESH_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid refresh token claims")
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("refresh token has no user_id")
	}
	return uint(idFloat), nil
}
