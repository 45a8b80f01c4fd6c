package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gutvbooker/internal/logger"
	"gutvbooker/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers read-only catalog routes under /api/equipment.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/types", h.ListTypes)
	rg.GET("/types/:id", h.GetType)
	rg.GET("/types/:id/items", h.ListItems)
}

// ListTypes returns equipment types, optionally filtered by ?category=.
// @Summary	List equipment types
// @Tags		Equipment
// @Security	BearerAuth
// @Param		category	query	string	false	"Camera, Lens, Card, Battery, Charger, Sound, Stand, Light or Other"
// @Success	200	{object}	map[string]interface{}
// @Router		/equipment/types [GET]
func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"types": types})
}

// @Summary	Get an equipment type
// @Tags		Equipment
// @Security	BearerAuth
// @Param		id	path	int	true	"Type ID"
// @Success	200	{object}	map[string]interface{}
// @Failure	404	{object}	map[string]interface{}
// @Router		/equipment/types/{id} [GET]
func (h *Handler) GetType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid type id")
		return
	}

	t, err := h.service.GetType(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"type": t})
}

// @Summary	List items of an equipment type
// @Tags		Equipment
// @Security	BearerAuth
// @Param		id	path	int	true	"Type ID"
// @Success	200	{object}	map[string]interface{}
// @Router		/equipment/types/{id}/items [GET]
func (h *Handler) ListItems(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid type id")
		return
	}

	items, err := h.service.ListItemsByType(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment type not found")
	default:
		logger.ErrorContext(c.Request.Context(), "catalog request failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
