package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/server/auth"
)

const (
	ctxEmailKey    = "current_user_email"
	ctxUsernameKey = "current_user_name"
)

// identityMiddleware resolves the caller's identity from the auth cookie on
// every request. An absent or invalid token leaves the request anonymous;
// protected routes decide whether that is an error.
func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.AuthCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			// expired or tampered cookie, fall back to anonymous
			c.Next()
			return
		}

		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxUsernameKey, claims.Username)
		c.Next()
	}
}

// requireAuth guards protected routes; anonymous requests get 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentEmail(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && origin == s.corsOrigin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Disposition")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
