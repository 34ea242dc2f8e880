package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"clinicport/config"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "clinicport-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for an account. The role claim
// ("patient" or "doctor") is what the middleware gates on.
func GenerateToken(accountID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string. Only hashes
// are stored in the auth cache.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractAccountFromToken returns the account id and role carried by a
// valid token.
func ExtractAccountFromToken(tokenString string) (accountID, role string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	accountID, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if accountID == "" || role == "" {
		return "", "", errors.New("token missing subject or role")
	}
	return accountID, role, nil
}
