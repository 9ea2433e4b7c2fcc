package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceID = "0b7c6a2e-4f55-4c55-9a53-3f0f7f4b8f10"

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T) (*Authenticator, *auth.Issuer, *clock, *fakeUsers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := &clock{t: time.Now()}
	issuer := auth.NewIssuer("test-secret", time.Hour).WithClock(c.now)
	users := &fakeUsers{users: map[string]*models.User{
		aliceID: {ID: aliceID, UserName: "alice"},
	}}
	return NewAuthenticator(issuer, users, logging.Nop()), issuer, c, users
}

func request(header string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		r.Header.Set(common.AuthorizationHeader, header)
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	a, issuer, _, _ := setup(t)
	good, err := issuer.Issue(aliceID)
	require.NoError(t, err)
	ghost, err := issuer.Issue("5e0e1f59-0f63-4b0a-8d7a-b7b0c6f2a111")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid", "Bearer " + good, false},
		{"lower-case scheme", "bearer " + good, false},
		{"no header", "", true},
		{"no scheme", good, true},
		{"basic scheme", "Basic " + good, true},
		{"empty token", "Bearer ", true},
		{"garbage token", "Bearer abc.def.ghi", true},
		{"deleted user", "Bearer " + ghost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.Authenticate(request(tt.header))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnauthenticated)
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, aliceID, id.UserID)
			assert.Equal(t, "alice", id.User.UserName)
		})
	}
}

func TestAuthenticate_ExpiredTokenKeepsReason(t *testing.T) {
	a, issuer, c, _ := setup(t)
	token, err := issuer.Issue(aliceID)
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour + time.Second)
	_, err = a.Authenticate(request("Bearer " + token))

	var te *common.TokenError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, common.TokenExpired, te.Kind)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		ctxID, ctxOK := IdentityFrom(c.Request.Context())
		if ok != ctxOK || (ok && id != ctxID) {
			c.String(http.StatusTeapot, "context mismatch")
			return
		}
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.UserID)
	})
	return r
}

func TestRequire(t *testing.T) {
	a, issuer, c, _ := setup(t)
	token, err := issuer.Issue(aliceID)
	require.NoError(t, err)
	r := newEngine(a.Require())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, request("Bearer "+token))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, aliceID, w.Body.String())

	for _, header := range []string{"", "Bearer nope", "Token " + token} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, request(header))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
	}

	c.t = c.t.Add(2 * time.Hour)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, request("Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}

func TestRequire_StoreFailureIs500(t *testing.T) {
	a, issuer, _, users := setup(t)
	token, err := issuer.Issue(aliceID)
	require.NoError(t, err)
	users.err = errors.New("db error: timeout")

	w := httptest.NewRecorder()
	newEngine(a.Require()).ServeHTTP(w, request("Bearer "+token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOptional(t *testing.T) {
	a, issuer, _, _ := setup(t)
	token, err := issuer.Issue(aliceID)
	require.NoError(t, err)
	r := newEngine(a.Optional())

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"with token", "Bearer " + token, aliceID},
		{"without token", "", "anonymous"},
		{"bad token", "Bearer junk", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, request(tt.header))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
