package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/observability"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// AgentUsecase is the pipeline the handlers delegate to.
type AgentUsecase interface {
	Handle(ctx context.Context, req domain.AgentRequest) (domain.AgentReply, error)
	GetCatalogItem(ctx context.Context, reference string) (*domain.CatalogItem, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	agent AgentUsecase
	log   zerolog.Logger
}

// NewHandler creates a new HTTP handler. A nil agent makes the API endpoints
// answer 503.
func NewHandler(agent AgentUsecase, log zerolog.Logger) *Handler {
	return &Handler{
		agent: agent,
		log:   observability.Component(log, "http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": Version,
	})
}

// Ask answers one customer query.
// Input errors are the only non-200 outcome; dependency failures are absorbed
// by the pipeline and still produce a reply.
func (h *Handler) Ask(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent not configured"})
		return
	}

	var req domain.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.agent.Handle(c.Request.Context(), req)
	if err != nil {
		if domain.IsInputError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log := observability.FromContext(c.Request.Context(), h.log)
		log.Error().Err(err).Msg("agent request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// GetCatalogItem returns a single catalog item by reference.
func (h *Handler) GetCatalogItem(c *gin.Context) {
	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "agent not configured"})
		return
	}

	item, err := h.agent.GetCatalogItem(c.Request.Context(), c.Param("reference"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, item)
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	default:
		log := observability.FromContext(c.Request.Context(), h.log)
		log.Warn().Err(err).Str("reference", c.Param("reference")).Msg("catalog lookup failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	}
}
