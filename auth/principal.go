package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Principal is the authenticated caller. It is passed explicitly to whatever
// needs it; nothing reads identity out of ambient state.
type Principal struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Phone  string   `json:"phone"`
	Roles  []string `json:"roles"`
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// IssueToken signs a bearer token carrying the principal. The identity
// provider issues these in production; tests issue their own.
func IssueToken(secret []byte, p Principal, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.UserID,
		"name":    p.Name,
		"phone":   p.Phone,
		"roles":   p.Roles,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies an HMAC-signed bearer token and extracts the principal.
func ParseToken(secret []byte, tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{}
	if v, ok := claims["user_id"].(string); ok {
		p.UserID = v
	}
	if p.UserID == "" {
		return Principal{}, ErrInvalidToken
	}
	if v, ok := claims["name"].(string); ok {
		p.Name = v
	}
	if v, ok := claims["phone"].(string); ok {
		p.Phone = v
	}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				p.Roles = append(p.Roles, role)
			}
		}
	}
	return p, nil
}
