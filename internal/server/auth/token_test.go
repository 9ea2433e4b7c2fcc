package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newIssuer(secret string, w time.Duration) (*Issuer, *clock) {
	c := &clock{t: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)}
	return NewIssuer(secret, w).WithClock(c.now), c
}

func requireTokenKind(t *testing.T, err error, kind common.TokenErrorKind) {
	t.Helper()
	var te *common.TokenError
	require.True(t, errors.As(err, &te), "want *common.TokenError, got %v", err)
	assert.Equal(t, kind, te.Kind)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestIssueAndVerify(t *testing.T) {
	iss, _ := newIssuer("super-secret", 7*24*time.Hour)

	tok, err := iss.Issue("user-123")
	require.NoError(t, err)

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestVerify_ExpiryWindow(t *testing.T) {
	const w = 7 * 24 * time.Hour
	const eps = time.Second

	iss, c := newIssuer("secret", w)
	issued := c.t

	tok, err := iss.Issue("u1")
	require.NoError(t, err)

	c.t = issued.Add(w - eps)
	_, err = iss.Verify(tok)
	require.NoError(t, err)

	c.t = issued.Add(w)
	_, err = iss.Verify(tok)
	requireTokenKind(t, err, common.TokenExpired)

	c.t = issued.Add(w + eps)
	_, err = iss.Verify(tok)
	requireTokenKind(t, err, common.TokenExpired)
}

func TestVerify_ExpiryWindowSubSecondIssue(t *testing.T) {
	const w = 7 * 24 * time.Hour

	iss, c := newIssuer("secret", w)
	c.t = time.Date(2026, 5, 1, 9, 30, 0, 900_000_000, time.UTC)
	issued := c.t

	tok, err := iss.Issue("u1")
	require.NoError(t, err)

	for _, eps := range []time.Duration{500 * time.Millisecond, time.Millisecond, time.Nanosecond} {
		c.t = issued.Add(w - eps)
		_, err = iss.Verify(tok)
		require.NoError(t, err, "issued+W-%v", eps)
	}

	c.t = issued.Add(w + time.Second)
	_, err = iss.Verify(tok)
	requireTokenKind(t, err, common.TokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	iss, c := newIssuer("right-secret", time.Hour)

	good, err := iss.Issue("u2")
	require.NoError(t, err)

	other, _ := newIssuer("wrong-secret", time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour))},
		UserID:           "u2",
	})
	noneTok, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour))},
		UserID:           "u2",
	})
	hs512Tok, err := hs512.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u2"})
	noExpTok, err := noExp.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour))},
	})
	noUserTok, err := noUser.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		issuer *Issuer
	}{
		{"garbage", "not.a.jwt", iss},
		{"empty", "", iss},
		{"tampered payload", good[:len(good)-2] + "xx", iss},
		{"wrong secret", good, other.WithClock(c.now)},
		{"alg none", noneTok, iss},
		{"wrong hmac alg", hs512Tok, iss},
		{"missing exp", noExpTok, iss},
		{"missing user id", noUserTok, iss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.Verify(tt.token)
			requireTokenKind(t, err, common.TokenMalformed)
		})
	}
}

func TestClaimsJSONName(t *testing.T) {
	iss, _ := newIssuer("k", time.Hour)
	tok, err := iss.Issue("abc")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "abc", claims["userId"])
	assert.NotNil(t, claims["iat"])
	assert.NotNil(t, claims["exp"])
}
