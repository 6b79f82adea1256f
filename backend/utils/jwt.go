package utils

import (
	"errors"
	"strings"
	"time"

	"studytrack/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const TokenType = "bearer"

type Claims struct {
	jwt.RegisteredClaims
}

// GenerateJWTToken signs an HS256 token for subject that expires after ttl.
func GenerateJWTToken(subject string, ttl time.Duration, cfg *config.Config) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.JWTIssuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseJWTToken verifies signature, expiry and issuer and returns the subject.
func ParseJWTToken(tokenString string, cfg *config.Config) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", NewInvalidTokenError("Token has expired")
		}
		return "", NewInvalidTokenError("Could not validate credentials")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", NewInvalidTokenError("Invalid token claims")
	}
	if !claims.VerifyIssuer(cfg.JWTIssuer, true) {
		return "", NewInvalidTokenError("Invalid token issuer")
	}
	if claims.Subject == "" {
		return "", NewInvalidTokenError("Token has no subject")
	}
	return claims.Subject, nil
}

// ExtractBearerToken returns the token from an "Authorization: Bearer" header.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", NewInvalidTokenError("Missing authorization token")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, TokenType) || strings.TrimSpace(token) == "" {
		return "", NewInvalidTokenError("Authorization header must use the Bearer scheme")
	}
	return strings.TrimSpace(token), nil
}

// ExtractSubjectFromToken reads and verifies the bearer token of the request.
func ExtractSubjectFromToken(c *fiber.Ctx, cfg *config.Config) (string, error) {
	token, err := ExtractBearerToken(c)
	if err != nil {
		return "", err
	}
	return ParseJWTToken(token, cfg)
}
