package lib

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "therive"

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Generates a signed token for the given user
func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Resolve returns the claims of a valid token, or nil for malformed, tampered or expired tokens
func (t *TokenIssuer) Resolve(tokenString string) *Claims {
	if tokenString == "" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil
	}

	return claims
}

// ResolveUserID is Resolve reduced to the user id
func (t *TokenIssuer) ResolveUserID(tokenString string) (string, bool) {
	claims := t.Resolve(tokenString)
	if claims == nil {
		return "", false
	}
	return claims.UserID, true
}
