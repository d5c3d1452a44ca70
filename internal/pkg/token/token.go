package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken covers bad signature, malformed payload, wrong token
// kind and expiry. Callers do not distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies session tokens. Access and refresh tokens
// use distinct secrets so compromise of one cannot forge the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) IssueAccess(userID int64) (string, error) {
	return s.issue(userID, KindAccess, s.accessSecret, s.accessTTL)
}

func (s *Service) IssueRefresh(userID int64) (string, error) {
	return s.issue(userID, KindRefresh, s.refreshSecret, s.refreshTTL)
}

func (s *Service) issue(userID int64, kind Kind, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Kind:   string(kind),
		RegisteredClaims: jwtlib.RegisteredClaims{
			// Unique ID makes every issued token distinct, so rotation
			// always produces a new value even within one clock second.
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify validates the signature and expiry of tokenStr against the
// secret for the given kind and checks that the token actually is of
// that kind.
func (s *Service) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret := s.accessSecret
	if kind == KindRefresh {
		secret = s.refreshSecret
	}

	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Kind != string(kind) || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
