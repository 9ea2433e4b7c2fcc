// Package middleware holds the gin middleware of the API: the auth gateway,
// request ids, access logging, CORS, rate limiting and request deadlines.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/gin-gonic/gin"
)

// TokenVerifier returns the user id carried by a valid session token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserFinder resolves a user id to a live account.
type UserFinder interface {
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string
	User   *models.User
}

type identityKey struct{}

const ginIdentityKey = "identity"

// IdentityFrom returns the identity stored by Require or Optional.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// CurrentIdentity is IdentityFrom for gin handlers.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(ginIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

type Authenticator struct {
	tokens TokenVerifier
	users  UserFinder
	logger logging.Logger
}

func NewAuthenticator(tokens TokenVerifier, users UserFinder, logger logging.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger.With("module", "auth")}
}

// Authenticate reads "Authorization: Bearer <token>", verifies the token and
// loads the user. All failures match common.ErrUnauthenticated; a token
// failure also carries its *common.TokenError.
func (a *Authenticator) Authenticate(r *http.Request) (*Identity, error) {
	token, ok := bearerToken(r.Header.Get(common.AuthorizationHeader))
	if !ok {
		return nil, common.ErrUnauthenticated
	}

	userID, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, err
	}

	return &Identity{UserID: user.ID, User: user}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Require rejects unauthenticated requests with 401 {"error":"unauthenticated"}.
func (a *Authenticator) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Authenticate(c.Request)
		if err != nil {
			if !errors.Is(err, common.ErrUnauthenticated) {
				respond.Error(c, a.logger, err)
				return
			}
			a.logFailure(c, err)
			respond.Abort(c, http.StatusUnauthorized, respond.MsgUnauthenticated)
			return
		}
		attach(c, id)
		c.Next()
	}
}

// Optional attaches the identity when the request carries a valid token and
// lets every request through.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Authenticate(c.Request)
		if err == nil {
			attach(c, id)
		} else if !errors.Is(err, common.ErrUnauthenticated) {
			a.logger.Warn(c.Request.Context(), "optional authentication failed", "error", err)
		}
		c.Next()
	}
}

func (a *Authenticator) logFailure(c *gin.Context, err error) {
	reason := "missing"
	var te *common.TokenError
	switch {
	case errors.As(err, &te):
		reason = te.Kind.String()
	case c.GetHeader(common.AuthorizationHeader) != "":
		reason = "unknown user"
	}
	a.logger.Debug(c.Request.Context(), "authentication rejected", "reason", reason, "path", c.FullPath())
}

func attach(c *gin.Context, id *Identity) {
	c.Set(ginIdentityKey, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityKey{}, id))
}
