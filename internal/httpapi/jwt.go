package httpapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenExpiry = 7 * 24 * time.Hour

// insecure default so the server still boots without JWT_SECRET; anything
// real must configure its own secret.
const devJWTSecret = "cryptex-dev-secret"

// tokenIssuer signs and verifies stateless session tokens. There is no
// server-side revocation list; verification is pure claim checking.
type tokenIssuer struct {
	key []byte
}

func newTokenIssuer(secret string) tokenIssuer {
	if secret == "" {
		secret = devJWTSecret
	}
	return tokenIssuer{key: []byte(secret)}
}

func (ti tokenIssuer) issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(sessionTokenExpiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.key)
}

func (ti tokenIssuer) parse(tokenStr string) (userID string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ti.key, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
