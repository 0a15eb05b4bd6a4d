package handler

import (
	"net/http"

	"github.com/cyberes/diagnostico-relay/middleware"
	"github.com/gin-gonic/gin"
)

// CurrentUser returns the identity of the authenticated caller.
func CurrentUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		logAndReturnError(c, http.StatusUnauthorized, "unauthenticated", "CurrentUser reached without claims")
		return
	}
	c.JSON(http.StatusOK, claims.User())
}
