package api

import (
	"net/http"
	"net/netip"

	"peerperm/internal/application/access"
	"peerperm/internal/domain/netperm"
	"peerperm/internal/netaddr"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the permission API
type Handler struct {
	service *access.Service
	hub     *EventHub
}

// NewHandler creates a new API handler
func NewHandler(service *access.Service) *Handler {
	return &Handler{
		service: service,
		hub:     NewEventHub(),
	}
}

// Hub exposes the WebSocket event hub so it can be wired as the service
// notifier.
func (h *Handler) Hub() *EventHub {
	return h.hub
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.GET("/permissions/doc", h.PermissionsDoc)
		api.GET("/evaluate", h.Evaluate)
		api.GET("/ws", h.HandleWebSocket)

		binds := api.Group("/binds", authMiddleware)
		{
			binds.POST("", h.CreateBind)
			binds.GET("", h.ListBinds)
			binds.DELETE("/:entryId", h.DeleteBind)
		}

		whitelist := api.Group("/whitelist", authMiddleware)
		{
			whitelist.POST("", h.CreateWhitelist)
			whitelist.GET("", h.ListWhitelist)
			whitelist.DELETE("/:entryId", h.DeleteWhitelist)
		}
	}
}

// Health godoc
//
//	@Summary	Health check
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// PermissionsDoc godoc
//
//	@Summary		Describe grantable permissions
//	@Description	Lists every permission label with a short description
//	@Produce		json
//	@Success		200	{object}	map[string][]string
//	@Router			/permissions/doc [get]
func (h *Handler) PermissionsDoc(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"permissions": netperm.Doc})
}

// Evaluate godoc
//
//	@Summary		Evaluate effective permissions for a peer address
//	@Description	Returns the union of whitelist permissions matching the address and direction
//	@Produce		json
//	@Param			addr		query		string	true	"Peer IP address"
//	@Param			direction	query		string	false	"Connection direction (in, out or both)"	default(in)
//	@Success		200			{object}	map[string]any
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/evaluate [get]
func (h *Handler) Evaluate(c *gin.Context) {
	addr, err := netip.ParseAddr(c.Query("addr"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid addr: " + err.Error()})
		return
	}

	dir := netaddr.DirectionIn
	if raw := c.Query("direction"); raw != "" {
		dir, err = netaddr.ParseDirection(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	flags, err := h.service.Evaluate(c.Request.Context(), addr, dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addr":        addr.String(),
		"direction":   dir.String(),
		"flags":       flags,
		"permissions": flags.Strings(),
	})
}
