// Package httpapi exposes the public HTTP surface: cookie-based auth,
// repository CRUD, paper upload/versioning/download and the activity feed.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/researchhub/backend/internal/logging"
	"github.com/researchhub/backend/internal/server/config"
	"github.com/researchhub/backend/internal/server/papers"
	"github.com/researchhub/backend/internal/server/repos"
	"github.com/researchhub/backend/internal/server/users"
)

type Server struct {
	address       string
	logger        logging.Logger
	users         *users.Service
	repos         *repos.Service
	papers        *papers.Service
	jwtSecret     []byte
	cookieMaxAge  int
	corsOrigin    string
	maxUploadSize int64

	engine *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger, us *users.Service, rs *repos.Service, ps *papers.Service) *Server {
	s := &Server{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		users:         us,
		repos:         rs,
		papers:        ps,
		jwtSecret:     []byte(cfg.SecretKey),
		cookieMaxAge:  int(cfg.TokenValidityDuration / time.Second),
		corsOrigin:    cfg.CORSAllowOrigin,
		maxUploadSize: cfg.MaxUploadBytes,
	}
	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.identityMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/me", s.requireAuth(), s.me)
	}

	reposGroup := r.Group("/repos")
	{
		reposGroup.POST("", s.requireAuth(), s.createRepo)
		reposGroup.GET("/my", s.requireAuth(), s.myRepos)
		reposGroup.GET("/global", s.globalRepos)
		reposGroup.DELETE("/:id", s.requireAuth(), s.deleteRepo)
	}

	papersGroup := r.Group("/papers")
	{
		papersGroup.POST("/upload", s.requireAuth(), s.uploadPaper)
		papersGroup.GET("/my", s.requireAuth(), s.myPapers)
		papersGroup.GET("/by-repo/:repoId", s.papersByRepo)
		papersGroup.GET("/activity/:repoId", s.repoActivity)
		papersGroup.GET("/:id/versions", s.paperVersions)
		papersGroup.GET("/:id/download", s.downloadLatest)
		papersGroup.GET("/:id/download/:versionNumber", s.downloadVersion)
		papersGroup.POST("/:id/update", s.requireAuth(), s.updatePaper)
		papersGroup.DELETE("/:id", s.requireAuth(), s.deletePaper)
	}

	return r
}

// Handler exposes the routing tree, used by tests via httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
