package handler

import (
	"github.com/cyberes/diagnostico-relay/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func requestLog(c *gin.Context) *logrus.Entry {
	return log.WithField("request_id", c.GetString(middleware.RequestIDKey))
}

func logAndReturnError(c *gin.Context, code int, httpResponseStr string, consoleStr ...string) {
	// consoleStr is optional.
	if len(consoleStr) > 0 {
		requestLog(c).Errorln(consoleStr[0])
	} else {
		requestLog(c).Errorln(httpResponseStr)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": httpResponseStr})
}
