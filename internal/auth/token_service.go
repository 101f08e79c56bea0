package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// SessionExpiry is the lifetime of a plain login session.
	SessionExpiry = 24 * time.Hour
	// RememberedSessionExpiry is the lifetime of a "remember me" session.
	RememberedSessionExpiry = 30 * 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, malformed payload, wrong algorithm, or elapsed expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents session token claims.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing key.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// IssueToken signs a token embedding userID with the given lifetime.
// The token ID (JTI) keys the session record in the session store and is
// returned alongside the signed token.
func (s *TokenService) IssueToken(userID uint, ttl time.Duration) (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return sessionID, token, err
}

// VerifyToken validates a token and returns its claims. Every failure mode
// collapses to ErrInvalidToken; nothing else escapes this boundary.
func (s *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
