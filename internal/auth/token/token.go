// Package token issues and verifies the HS256 access tokens handed out at
// login.
package token

import (
	"errors"
	"fmt"
	"time"

	autherrors "github.com/Satyam6458/HR-Management/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimUserID = "user_id"
	ClaimRole   = "role"
)

type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) Issue(userID, role string) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := jwt.MapClaims{
		ClaimUserID: userID,
		ClaimRole:   role,
		"iat":       issuedAt.Unix(),
		"exp":       expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims. Errors are
// autherrors values ready for the response.
func (i *Issuer) Parse(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, autherrors.ErrTokenExpired
		}
		return Claims{}, autherrors.ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, autherrors.ErrInvalidToken
	}

	userID, _ := mc[ClaimUserID].(string)
	if userID == "" {
		return Claims{}, autherrors.ErrInvalidToken
	}
	role, _ := mc[ClaimRole].(string)

	var expiresAt time.Time
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return Claims{UserID: userID, Role: role, ExpiresAt: expiresAt}, nil
}
