package service

import (
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"gstbill/internal/config"
	"gstbill/internal/domain"
)

// Claims are the bearer token claims issued by the hosted auth provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService verifies bearer tokens. Sign-in itself happens at the auth
// provider; this service never issues tokens.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if s.cfg.Audience != "" {
		aud, _ := claims.GetAudience()
		if !slices.Contains(aud, s.cfg.Audience) {
			return nil, domain.ErrUnauthorized
		}
	}
	return claims, nil
}
