package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storyviewer/internal/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(cfg config.ServerConfig, handler *Handler) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	handler.RegisterRoutes(router)

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("✅ Serving viewer at http://%s/viewer/", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("🔄 Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("request")
	}
}
