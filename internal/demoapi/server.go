// Package demoapi serves canned market-analytics JSON so the dashboard can
// run without a real backend. It computes nothing and persists nothing; the
// fixtures are deterministic replays.
package demoapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantdeck/quantdeck/internal/model"
)

// Server is the fixture HTTP API.
type Server struct {
	addr      string
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a demo API server bound to addr.
func NewServer(addr string) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler builds the gin handler. Exposed for httptest use.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(model.EndpointHealth, s.handleHealth)
	r.GET(model.EndpointMarkets, s.handleMarkets)
	r.GET(model.EndpointMovers, s.handleMovers)
	r.GET(model.EndpointVolIndex, s.handleVolIndex)
	r.GET(model.EndpointBreadth, s.handleBreadth)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleMarkets(c *gin.Context) {
	limit, ok := intParam(c, model.ParamLimit, 500)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, marketRows(limit))
}

func (s *Server) handleMovers(c *gin.Context) {
	limit, ok := intParam(c, model.ParamLimit, 10)
	if !ok {
		return
	}
	metric := c.DefaultQuery(model.ParamMetric, model.FieldVolume)
	if !validMoverMetric(metric) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported metric: " + metric})
		return
	}
	minPrev, ok := floatParam(c, model.ParamMinPrevValue, 0)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, moverRows(limit, metric, minPrev))
}

func (s *Server) handleVolIndex(c *gin.Context) {
	points, ok := intParam(c, model.ParamPoints, 60)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, volIndexRows(points, time.Now().UTC()))
}

func (s *Server) handleBreadth(c *gin.Context) {
	hours, ok := intParam(c, model.ParamHours, 24)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, breadthRows(hours, time.Now().UTC()))
}
