package auth

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetMe)
}

// Login exchanges login and password for an access token.
// @Summary	Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success	200	{object}	LoginResponse
// @Failure	401	{object}	map[string]interface{}	"Invalid credentials"
// @Failure	403	{object}	map[string]interface{}	"User is banned"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid login or password")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, "USER_BANNED", "User is banned")
		default:
			logger.ErrorContext(c.Request.Context(), "login failed", "error", err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// @Summary	Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success	200	{object}	UserResponse
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
			return
		}
		logger.ErrorContext(c.Request.Context(), "get me failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
