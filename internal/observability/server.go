package observability

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugServer serves /metrics and /healthz on a local listener so the TUI
// process can still be inspected while it owns the terminal.
type DebugServer struct {
	srv *http.Server
}

// StartDebugServer starts the listener, or returns nil when addr is empty.
func StartDebugServer(addr string) *DebugServer {
	if addr == "" {
		return nil
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("debug server error: %v", err)
		}
	}()
	log.Printf("debug server listening on %s", addr)
	return &DebugServer{srv: srv}
}

// Close shuts the listener down.
func (s *DebugServer) Close() error {
	if s == nil || s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
