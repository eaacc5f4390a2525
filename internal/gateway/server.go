package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/schoolchat/internal/logging"
	"github.com/dmitrijs2005/schoolchat/internal/observability"
)

// Server serves the record API consumed by client instances.
type Server struct {
	store Store
	log   logging.Logger
}

func NewServer(store Store, log logging.Logger) *Server {
	return &Server{store: store, log: log}
}

type recordPayload struct {
	Value  string `json:"value"`
	Shared bool   `json:"shared"`
}

// Router builds the gin engine with the record routes, health check and
// metrics endpoint.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.HTTPMetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/v1/records/:key", s.getRecord)
	r.PUT("/v1/records/:key", s.putRecord)
	return r
}

func (s *Server) getRecord(c *gin.Context) {
	key := c.Param("key")

	rec, found, err := s.store.Get(c.Request.Context(), key)
	if err != nil {
		s.log.Error(c.Request.Context(), "record read failed", "key", key, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, recordPayload{Value: rec.Value, Shared: rec.Shared})
}

func (s *Server) putRecord(c *gin.Context) {
	key := c.Param("key")

	var p recordPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record payload"})
		return
	}

	if err := s.store.Put(c.Request.Context(), key, p.Value, p.Shared); err != nil {
		s.log.Error(c.Request.Context(), "record write failed", "key", key, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
