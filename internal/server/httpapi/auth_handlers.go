package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/researchhub/backend/internal/common"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setAuthCookie(c, token, s.cookieMaxAge)
	c.JSON(http.StatusOK, user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.setAuthCookie(c, token, s.cookieMaxAge)
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	s.setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) me(c *gin.Context) {
	email, _ := currentEmail(c)

	user, err := s.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// setAuthCookie writes (or expires) the session cookie. HttpOnly keeps the
// token away from scripts; SameSite=Lax plus the CORS allow-list covers the
// browser flows we support.
func (s *Server) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AuthCookieName, token, maxAge, "/", "", false, true)
}
