package booking

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

// RegisterRoutes expects rg to be behind JWTAuth. Base path is /api/booking.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.AdminOnly()

	rg.POST("/create_booking", h.CreateBooking)
	rg.GET("/user/me", h.ListMine)
	rg.DELETE("/cancel/:id", h.CancelBooking)

	rg.GET("/:id", admin, h.GetBooking)
	rg.GET("/user/:userId", admin, h.ListByUser)
	rg.GET("/equipment/:equipmentItemId", admin, h.ListByEquipmentItem)
	rg.GET("/status/:status", admin, h.ListByStatus)
	rg.GET("/invnumber/:invNumber", admin, h.ListByInventoryNumber)
	rg.PATCH("/approve/:id", admin, h.ApproveBooking)
	rg.PATCH("/complete/:id", admin, h.CompleteBooking)
	rg.PATCH("/:id/items/:itemId/return", admin, h.MarkItemReturned)
}

// CreateBooking reserves one free item per requested equipment type.
// @Summary	Create a booking
// @Description	Allocates items for [start, end) and stores a Pending booking. Warnings are advisory.
// @Tags		Booking
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"Interval and equipment type ids"
// @Success	200	{object}	BookingResponse
// @Failure	400	{object}	map[string]interface{}	"Validation, no free item, tier denied or conflict"
// @Failure	403	{object}	map[string]interface{}	"User is banned"
// @Router		/booking/create_booking [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	resp, err := h.service.CreateBooking(c.Request.Context(), req, middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// @Summary	Get a booking
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success	200	{object}	BookingResponse
// @Failure	404	{object}	map[string]interface{}
// @Router		/booking/{id} [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// @Summary	List bookings of a user
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		userId	path	int	true	"User ID"
// @Success	200	{array}	BookingResponse
// @Router		/booking/user/{userId} [GET]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	list, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListMine returns the caller's own bookings, newest first.
// @Summary	List my bookings
// @Tags		Booking
// @Security	BearerAuth
// @Success	200	{array}	BookingResponse
// @Router		/booking/user/me [GET]
func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListByEquipmentItem shows only the lines for that item in each booking.
// @Summary	List bookings of an equipment item
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		equipmentItemId	path	int	true	"Equipment item ID"
// @Success	200	{array}	BookingResponse
// @Router		/booking/equipment/{equipmentItemId} [GET]
func (h *Handler) ListByEquipmentItem(c *gin.Context) {
	itemID, ok := pathID(c, "equipmentItemId")
	if !ok {
		return
	}
	list, err := h.service.ListByEquipmentItem(c.Request.Context(), itemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Summary	List bookings by status
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		status	path	string	true	"Pending, Approved, Cancelled or Completed (any case)"
// @Success	200	{array}	BookingResponse
// @Failure	400	{object}	map[string]interface{}	"Unknown status"
// @Router		/booking/status/{status} [GET]
func (h *Handler) ListByStatus(c *gin.Context) {
	list, err := h.service.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Summary	List bookings by inventory number
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		invNumber	path	string	true	"Inventory number, case-insensitive"
// @Success	200	{array}	BookingResponse
// @Router		/booking/invnumber/{invNumber} [GET]
func (h *Handler) ListByInventoryNumber(c *gin.Context) {
	list, err := h.service.ListByInventoryNumber(c.Request.Context(), c.Param("invNumber"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ApproveBooking moves a Pending booking to Approved.
// @Summary	Approve a booking
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success	200	{object}	BookingResponse
// @Failure	400	{object}	map[string]interface{}	"Booking is not Pending"
// @Failure	404	{object}	map[string]interface{}
// @Router		/booking/approve/{id} [PATCH]
func (h *Handler) ApproveBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.ApproveBooking(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CompleteBooking moves an Approved booking to Completed.
// @Summary	Complete a booking
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success	200	{object}	BookingResponse
// @Failure	400	{object}	map[string]interface{}	"Booking is not Approved"
// @Failure	404	{object}	map[string]interface{}
// @Router		/booking/complete/{id} [PATCH]
func (h *Handler) CompleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.CompleteBooking(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CancelBooking deletes a Pending or Approved booking. Owners may cancel
// their own bookings, admins any.
// @Summary	Cancel a booking
// @Tags		Booking
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success	200	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}	"Booking already completed"
// @Failure	403	{object}	map[string]interface{}	"Not the owner"
// @Failure	404	{object}	map[string]interface{}
// @Router		/booking/cancel/{id} [DELETE]
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := h.service.CancelBooking(c.Request.Context(), id, middleware.CurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "cancelled": true})
}

// @Summary	Mark a booked item as returned
// @Tags		Booking - Admin
// @Security	BearerAuth
// @Param		id		path	int	true	"Booking ID"
// @Param		itemId	path	int	true	"Booking item ID"
// @Success	200	{object}	BookingResponse
// @Failure	404	{object}	map[string]interface{}
// @Router		/booking/{id}/items/{itemId}/return [PATCH]
func (h *Handler) MarkItemReturned(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.service.MarkItemReturned(c.Request.Context(), id, itemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		verr  *ValidationError
		noItm *NoAvailableItemError
		tier  *TierDeniedError
	)

	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request", verr.Fields)
	case errors.As(err, &noItm):
		response.ErrorWithDetails(c, http.StatusBadRequest, "NO_AVAILABLE_ITEM", err.Error(), gin.H{"equipmentTypeId": noItm.TypeID})
	case errors.As(err, &tier):
		response.ErrorWithDetails(c, http.StatusBadRequest, "TIER_DENIED", err.Error(), gin.H{"equipmentTypeId": tier.TypeID})
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusBadRequest, "BOOKING_CONFLICT", "Equipment was booked concurrently, please retry")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only cancel your own bookings")
	case errors.Is(err, ErrBanned):
		response.Error(c, http.StatusForbidden, "USER_BANNED", "User is banned")
	default:
		logger.ErrorContext(c.Request.Context(), "booking request failed", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return id, true
}
