package utils

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT generates a signed admin token
func GenerateJWT(userID string, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateJWT validates a token and returns its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// couponAlphabet excludes ambiguous characters (0/O, 1/I/L) so codes survive
// being read aloud or retyped from a screenshot.
const couponAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateCouponSuffix returns a random uppercase code suffix of the given length
func GenerateCouponSuffix(length int) (string, error) {
	if length <= 0 {
		length = 8
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = couponAlphabet[int(b[i])%len(couponAlphabet)]
	}
	return string(b), nil
}

// MaskContact masks an email or phone for logging (first 2 + last 2 characters)
func MaskContact(contact string) string {
	if len(contact) > 4 {
		return contact[:2] + "****" + contact[len(contact)-2:]
	}
	if contact == "" {
		return ""
	}
	return "****"
}
