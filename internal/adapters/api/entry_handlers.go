package api

import (
	"errors"
	"net/http"

	"peerperm/internal/domain/netperm"

	"github.com/gin-gonic/gin"
)

// CreateBind godoc
//
//	@Summary		Add an address-bound permission entry
//	@Description	Parse and store a "perm[,perm...]@host:port" spec
//	@Accept			json
//	@Produce		json
//	@Param			entry	body		netperm.BindCreateRequest	true	"Bind spec"
//	@Success		201		{object}	netperm.BindEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/binds [post]
//	@Security		BearerAuth
func (h *Handler) CreateBind(c *gin.Context) {
	var req netperm.BindCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.AddBind(c.Request.Context(), &req)
	if err != nil {
		c.JSON(entryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListBinds godoc
//
//	@Summary	List address-bound permission entries
//	@Produce	json
//	@Success	200	{array}	netperm.BindEntry
//	@Router		/binds [get]
//	@Security	BearerAuth
func (h *Handler) ListBinds(c *gin.Context) {
	entries, err := h.service.ListBinds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteBind godoc
//
//	@Summary	Delete an address-bound permission entry
//	@Produce	json
//	@Param		entryId	path	string	true	"Entry ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/binds/{entryId} [delete]
//	@Security	BearerAuth
func (h *Handler) DeleteBind(c *gin.Context) {
	if err := h.service.DeleteBind(c.Request.Context(), c.Param("entryId")); err != nil {
		c.JSON(entryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateWhitelist godoc
//
//	@Summary		Add a subnet-bound permission entry
//	@Description	Parse and store a "perm[,perm...]@subnet" spec with an optional in:/out: direction marker
//	@Accept			json
//	@Produce		json
//	@Param			entry	body		netperm.WhitelistCreateRequest	true	"Whitelist spec"
//	@Success		201		{object}	netperm.WhitelistEntry
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/whitelist [post]
//	@Security		BearerAuth
func (h *Handler) CreateWhitelist(c *gin.Context) {
	var req netperm.WhitelistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.AddWhitelist(c.Request.Context(), &req)
	if err != nil {
		c.JSON(entryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListWhitelist godoc
//
//	@Summary	List subnet-bound permission entries
//	@Produce	json
//	@Success	200	{array}	netperm.WhitelistEntry
//	@Router		/whitelist [get]
//	@Security	BearerAuth
func (h *Handler) ListWhitelist(c *gin.Context) {
	entries, err := h.service.ListWhitelist(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteWhitelist godoc
//
//	@Summary	Delete a subnet-bound permission entry
//	@Produce	json
//	@Param		entryId	path	string	true	"Entry ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/whitelist/{entryId} [delete]
//	@Security	BearerAuth
func (h *Handler) DeleteWhitelist(c *gin.Context) {
	if err := h.service.DeleteWhitelist(c.Request.Context(), c.Param("entryId")); err != nil {
		c.JSON(entryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// entryErrorStatus maps service errors to HTTP status codes. Parse failures
// are client errors; duplicates conflict; anything unexpected is a 500.
func entryErrorStatus(err error) int {
	var unknownErr *netperm.UnknownLabelError
	var targetErr *netperm.InvalidTargetError

	switch {
	case errors.Is(err, netperm.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, netperm.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.As(err, &unknownErr), errors.As(err, &targetErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
