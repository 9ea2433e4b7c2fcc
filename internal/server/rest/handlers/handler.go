// Package handlers implements the JSON endpoints under /api.
package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/server/rest/middleware"
	"github.com/gin-gonic/gin"
)

// userID of the caller. Only valid behind Authenticator.Require.
func userID(c *gin.Context) string {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return ""
	}
	return id.UserID
}
