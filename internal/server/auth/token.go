// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer mints and verifies HS256 session tokens. It holds no state besides
// the secret, so tokens cannot be revoked before they expire.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewIssuer(secret string, validity time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), validity: validity, now: time.Now}
}

// WithClock replaces the time source for both issuing and verifying.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) Validity() time.Duration { return i.validity }

func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry(now.Add(i.validity))),
		},
		UserID: userID,
	})
	return token.SignedString(i.secret)
}

// expiry rounds t up to the claim precision. NumericDate truncates, which
// would otherwise end the session up to a second early.
func expiry(t time.Time) time.Time {
	if r := t.Truncate(jwt.TimePrecision); r.Before(t) {
		return r.Add(jwt.TimePrecision)
	}
	return t
}

// Verify returns the user id carried by a valid token. Failures are
// *common.TokenError with kind TokenExpired for a past expiry and
// TokenMalformed for everything else.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &common.TokenError{Kind: common.TokenExpired, Err: err}
		}
		return "", &common.TokenError{Kind: common.TokenMalformed, Err: err}
	}

	if claims.UserID == "" {
		return "", &common.TokenError{Kind: common.TokenMalformed, Err: errors.New("missing userId claim")}
	}

	return claims.UserID, nil
}
