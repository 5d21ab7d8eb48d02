package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grandresort/internal/domain"
	"grandresort/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/room", h.CreateRoomBooking)
	rg.POST("/bookings/table", h.CreateTableBooking)
	rg.POST("/bookings/garden", h.CreateGardenBooking)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.Get)
	rg.GET("/booking-lookup/:number", h.GetByNumber)
	rg.PUT("/bookings/:id", h.Update)
	rg.PUT("/bookings/:id/cancel", h.Cancel)
	rg.POST("/bookings/:id/review", h.AddReview)
}

// RegisterStaffRoutes mounts check-in/check-out and status management,
// guarded by the staff role middleware in main.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PUT("/bookings/:id/checkin", h.CheckIn)
	rg.PUT("/bookings/:id/checkout", h.CheckOut)
	rg.PUT("/bookings/:id/status", h.UpdateStatus)
	rg.GET("/bookings", h.ListAll)
}

func (h *Handler) CreateRoomBooking(c *gin.Context) {
	var req CreateRoomBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateRoomBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) CreateTableBooking(c *gin.Context) {
	var req CreateTableBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateTableBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) CreateGardenBooking(c *gin.Context) {
	var req CreateGardenBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateGardenBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"),
		c.Query("type"), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, bookings, gin.H{"count": len(bookings)})
}

func (h *Handler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	bookings, total, err := h.service.ListAll(c.Request.Context(),
		c.Query("type"), c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, bookings, gin.H{
		"count": len(bookings),
		"total": total,
		"page":  page,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetByNumber(c *gin.Context) {
	b, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"),
		c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	b, err := h.service.CheckOut(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.TransitionStatus(c.Request.Context(), id,
		domain.BookingStatus(req.Status), c.GetInt64("user_id"), c.GetString("role"), req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) AddReview(c *gin.Context) {
	id, err := h.bookingID(c)
	if err != nil {
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.AddReview(c.Request.Context(), id, c.GetInt64("user_id"), req.Rating, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) bookingID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this booking")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "The requested resource is not available")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "Status change not allowed from the current status")
	case errors.Is(err, ErrNotEditable):
		response.Error(c, http.StatusBadRequest, "NOT_EDITABLE", "Booking cannot be updated in its current status")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusBadRequest, "ALREADY_REVIEWED", "Booking already has a review")
	case errors.Is(err, ErrNotEligible):
		response.Error(c, http.StatusBadRequest, "NOT_ELIGIBLE", "Booking cannot be reviewed yet")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
