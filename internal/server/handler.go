package server

import (
	"errors"
	"net/http"
	"strings"

	"storyviewer/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Repo       repository.RunRepository
	OutputsDir string
}

func NewHandler(repo repository.RunRepository, outputsDir string) *Handler {
	return &Handler{Repo: repo, OutputsDir: outputsDir}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/viewer/")
	})

	api := r.Group("/api")
	api.GET("/runs", h.listRuns)
	api.GET("/book", h.getBook)

	// run assets and the static viewer page
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(h.OutputsDir))))
}

func (h *Handler) listRuns(c *gin.Context) {
	runs, err := h.Repo.ListRuns(c.Request.Context())
	if err != nil {
		log.Errorf("❌ Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *Handler) getBook(c *gin.Context) {
	runID := strings.TrimSpace(c.Query("run"))
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'run' is required"})
		return
	}

	book, err := h.Repo.GetBook(c.Request.Context(), runID)
	switch {
	case errors.Is(err, repository.ErrRunNotFound), errors.Is(err, repository.ErrInvalidRunID):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Errorf("❌ Failed to build book for %s: %v", runID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, book)
}
