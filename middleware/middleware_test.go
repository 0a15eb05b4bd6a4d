package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyberes/diagnostico-relay/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/", func(c *gin.Context) {
		if claims, ok := ClaimsFrom(c); ok {
			c.JSON(http.StatusOK, claims.User())
			return
		}
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(RequestID()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDReused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newEngine(RequestID()).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggerWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	w := httptest.NewRecorder()
	newEngine(RequestID(), Logger(log)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "GET -- /")
	assert.Contains(t, buf.String(), "status=200")
}

func TestAuth(t *testing.T) {
	token, err := auth.GenerateToken("secret", auth.User{ID: "7", Name: "Luis", Email: "luis@taller.mx"}, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		secret string
		status int
	}{
		{"missing header", "", "secret", http.StatusUnauthorized},
		{"not bearer", "Basic abc", "secret", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "secret", http.StatusUnauthorized},
		{"no secret configured", "Bearer " + token, "", http.StatusUnauthorized},
		{"valid", "Bearer " + token, "secret", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newEngine(Auth(tc.secret)).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"id":"7","name":"Luis","email":"luis@taller.mx"}`, w.Body.String())
			}
		})
	}
}
