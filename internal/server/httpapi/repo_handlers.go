package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createRepoRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) createRepo(c *gin.Context) {
	var req createRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	email, _ := currentEmail(c)

	repo, err := s.repos.Create(c.Request.Context(), email, req.Name, req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

func (s *Server) myRepos(c *gin.Context) {
	email, _ := currentEmail(c)

	list, err := s.repos.ListMine(c.Request.Context(), email)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) globalRepos(c *gin.Context) {
	list, err := s.repos.ListAll(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteRepo(c *gin.Context) {
	email, _ := currentEmail(c)

	if err := s.repos.Delete(c.Request.Context(), email, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Repository deleted", "repoId": c.Param("id")})
}
