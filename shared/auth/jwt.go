package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are carried by the signed session cookie. The registered
// "jti" claim holds the opaque session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// JWTAuthenticator signs and verifies session cookie values.
type JWTAuthenticator struct {
	audience string
	issuer   string
	secret   []byte
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(audience, issuer, secret string) JWTAuthenticator {
	return JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		secret:   []byte(secret),
	}
}

// SignSessionToken wraps the session token in an HS256 JWT that expires after ttl.
func (a JWTAuthenticator) SignSessionToken(sessionToken string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionToken,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ParseSessionToken verifies a signed cookie value and returns the session token it carries.
func (a JWTAuthenticator) ParseSessionToken(tokenString string) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errors.New("invalid token")
	}

	if claims.ID == "" {
		return "", errors.New("missing session token")
	}

	return claims.ID, nil
}
