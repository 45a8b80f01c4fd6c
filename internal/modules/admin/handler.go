package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gutvbooker/internal/logger"
	"gutvbooker/internal/middleware"
	"gutvbooker/internal/pkg/response"
	"gutvbooker/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	// user directory
	rg.POST("/users", h.CreateUser)
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/search", h.SearchUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.DELETE("/users/:id", h.DeleteUser)

	// moderation
	rg.PATCH("/users/:id/ban", h.BanUser)
	rg.PATCH("/users/:id/unban", h.UnbanUser)
	rg.PATCH("/users/:id/role", h.SetRole)

	// tiers
	rg.PATCH("/users/:id/ronin", h.SetRonin)
	rg.POST("/osnova/promote", h.PromoteOsnova)
}

// CreateUser registers a new account.
// @Summary	Create a user
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		request	body	CreateUserRequest	true	"Login, password (8+ chars), name, optional join date"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{}	"Login already taken"
// @Router		/admin/users [POST]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// ListUsers returns every user ordered by id.
// @Summary	List users
// @Tags		Admin - Users
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/users [GET]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// SearchUsers finds users by a part of their name.
// @Summary	Search users by name
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		name	query	string	true	"Part of the name, case-insensitive"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/users/search [GET]
func (h *Handler) SearchUsers(c *gin.Context) {
	users, err := h.service.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// @Summary	Get a user
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success	200	{object}	map[string]interface{}
// @Failure	404	{object}	map[string]interface{}
// @Router		/admin/users/{id} [GET]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// DeleteUser removes a user and their bookings. Admins cannot delete themselves.
// @Summary	Delete a user
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success	200	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}	"Self action"
// @Failure	404	{object}	map[string]interface{}
// @Router		/admin/users/{id} [DELETE]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// BanUser / UnbanUser toggle the ban flag.
// @Summary	Ban or unban a user
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/users/{id}/ban [PATCH]
// @Router		/admin/users/{id}/unban [PATCH]
func (h *Handler) BanUser(c *gin.Context)   { h.setBanned(c, true) }
func (h *Handler) UnbanUser(c *gin.Context) { h.setBanned(c, false) }

func (h *Handler) setBanned(c *gin.Context, banned bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	u, err := h.service.SetBanned(c.Request.Context(), middleware.CurrentUserID(c), id, banned)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// SetRole makes a user an admin or a regular user.
// @Summary	Change user role
// @Tags		Admin - Users
// @Security	BearerAuth
// @Param		id		path	int			true	"User ID"
// @Param		request	body	roleRequest	true	"role: user | admin"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/users/{id}/role [PATCH]
func (h *Handler) SetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "role is required")
		return
	}

	u, err := h.service.SetRole(c.Request.Context(), middleware.CurrentUserID(c), id, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// SetRonin grants or revokes the Ronin tier.
// @Summary	Grant or revoke Ronin
// @Tags		Admin - Tiers
// @Security	BearerAuth
// @Param		id		path	int				true	"User ID"
// @Param		request	body	roninRequest	true	"granted flag"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/users/{id}/ronin [PATCH]
func (h *Handler) SetRonin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req roninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "granted is required")
		return
	}

	u, err := h.service.SetRonin(c.Request.Context(), middleware.CurrentUserID(c), id, *req.Granted)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// @Summary	Run Osnova promotion now
// @Tags		Admin - Tiers
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}	"Number of promoted users"
// @Router		/admin/osnova/promote [POST]
func (h *Handler) PromoteOsnova(c *gin.Context) {
	n, err := h.service.PromoteOsnova(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"promoted": n})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrSelfAction):
		response.Error(c, http.StatusBadRequest, "SELF_ACTION", err.Error())
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrLoginTaken):
		response.Error(c, http.StatusConflict, "LOGIN_TAKEN", err.Error())
	default:
		logger.ErrorContext(c.Request.Context(), "admin request failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}
