package httpapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/researchhub/backend/internal/server/papers"
)

func (s *Server) uploadPaper(c *gin.Context) {
	email, _ := currentEmail(c)

	repoID := c.PostForm("repoId")
	title := c.PostForm("title")

	upload, file, err := s.formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File is required"})
		return
	}
	defer file.Close()

	paper, err := s.papers.Create(c.Request.Context(), email, repoID, title, upload)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

func (s *Server) updatePaper(c *gin.Context) {
	email, _ := currentEmail(c)

	upload, file, err := s.formUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File is required"})
		return
	}
	defer file.Close()

	paper, err := s.papers.AddVersion(c.Request.Context(), email, c.Param("id"), upload)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

func (s *Server) myPapers(c *gin.Context) {
	email, _ := currentEmail(c)

	list, err := s.papers.ListMine(c.Request.Context(), email)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) papersByRepo(c *gin.Context) {
	list, err := s.papers.ListByRepo(c.Request.Context(), c.Param("repoId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) repoActivity(c *gin.Context) {
	events, err := s.papers.Activity(c.Request.Context(), c.Param("repoId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) paperVersions(c *gin.Context) {
	paper, err := s.papers.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper.Versions)
}

func (s *Server) downloadLatest(c *gin.Context) {
	s.serveDownload(c, 0)
}

func (s *Server) downloadVersion(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("versionNumber"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid version number"})
		return
	}
	s.serveDownload(c, n)
}

func (s *Server) deletePaper(c *gin.Context) {
	email, _ := currentEmail(c)

	if err := s.papers.Delete(c.Request.Context(), email, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Paper deleted", "paperId": c.Param("id")})
}

// formUpload extracts the multipart file field into a papers.Upload. The
// request body is capped before parsing so oversized uploads fail early.
func (s *Server) formUpload(c *gin.Context) (papers.Upload, multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		return papers.Upload{}, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return papers.Upload{}, nil, err
	}

	return papers.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

// serveDownload streams a stored version back to the client. versionNumber 0
// means the latest version. ?inline=true renders in the browser instead of
// forcing a save dialog.
func (s *Server) serveDownload(c *gin.Context, versionNumber int) {
	res, err := s.papers.Download(c.Request.Context(), c.Param("id"), versionNumber)
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		s.respondError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("inline") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, res.FileName))
	c.Data(http.StatusOK, res.FileType, data)
}
