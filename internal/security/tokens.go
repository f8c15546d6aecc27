package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed input, bad signature, wrong algorithm, or expired timestamp.
var ErrInvalidToken = errors.New("invalid token")

// Claims holds the JWT claims carried by a session token. A token is the
// whole session: validity is decided by signature and expiry alone, never by
// a server-side table.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenProvider issues and verifies HS256 JWTs using a process-wide shared
// secret. It performs no I/O and holds no mutable state, so a single instance
// is safe for concurrent use across requests.
type TokenProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. ttl is the
// fixed token lifetime (1h in production config).
func NewTokenProvider(secret []byte, issuer string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, issuer: issuer, ttl: ttl}
}

// Issue signs a token for the given user id and email with iat/exp temporal
// claims. Returns the token string and its expiry time.
func (p *TokenProvider) Issue(userID, email string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	return token, expiresAt, err
}

// Verify parses and verifies tokenString (signature, exp, signing method) and
// returns the decoded claims. It does not consult storage: a deleted or
// altered user is not detected until a downstream lookup fails. Any failure
// maps to ErrInvalidToken.
func (p *TokenProvider) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if p.issuer != "" && claims.Issuer != p.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
