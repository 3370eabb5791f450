package auth

import (
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"livechat/domain"
	"livechat/errors"
	"time"
)

const issuer = "livechat"

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity a connection acts as.
type Principal struct {
	UserID string
	Role   domain.Role
}

// TokenIssuer signs and checks HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
}

func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration}
}

// GenerateToken creates a signed JWT for a specific user.
func (t *TokenIssuer) GenerateToken(userID string, roles []domain.Role) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Roles:  lo.Map(roles, func(r domain.Role, _ int) string { return string(r) }),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (t *TokenIssuer) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}
	return nil, errors.ErrInvalidToken
}

// Authenticate resolves the principal behind a token. requested picks one of
// the token roles; empty means the first one.
func (t *TokenIssuer) Authenticate(tokenString, requested string) (Principal, error) {
	claims, err := t.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, err
	}
	if len(claims.Roles) == 0 {
		return Principal{}, errors.ErrUnknownRole
	}
	name := lo.Ternary(requested == "", claims.Roles[0], requested)
	if !lo.Contains(claims.Roles, name) {
		return Principal{}, errors.ErrUnknownRole
	}
	role, err := domain.ToRole(name)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.UserID, Role: role}, nil
}
