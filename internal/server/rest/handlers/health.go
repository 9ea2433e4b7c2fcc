package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/server/rest/middleware"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/gin-gonic/gin"
)

// Health reports liveness. Behind Authenticator.Optional it also tells the
// client whether its token is still accepted.
func Health(c *gin.Context) {
	_, ok := middleware.CurrentIdentity(c)
	respond.OK(c, gin.H{"status": "ok", "authenticated": ok})
}
