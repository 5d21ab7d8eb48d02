package order

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/orders", h.Create)
	rg.GET("/orders", h.ListMine)
	rg.GET("/orders/:id", h.Get)
	rg.PUT("/orders/:id/cancel", h.Cancel)
	rg.POST("/orders/:id/review", h.AddReview)
}

// RegisterPublicRoutes mounts tracking by order number, usable without a
// token so guests can follow an order from a shared reference.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/order-tracking/:number", h.Track)
}

// RegisterStaffRoutes mounts the kitchen queue and status management,
// guarded by the staff role middleware in main.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.ListAll)
	rg.GET("/kitchen/orders", h.KitchenQueue)
	rg.PUT("/orders/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Track(c *gin.Context) {
	o, err := h.service.Track(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"order_number":   o.OrderNumber,
		"status":         o.Status,
		"estimated_time": o.EstimatedTime,
		"status_history": o.StatusHistory,
	})
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"),
		c.Query("type"), c.Query("status"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var day *time.Time
	if v := c.Query("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		day = &d
	}

	orders, total, err := h.service.ListAll(c.Request.Context(),
		c.Query("type"), c.Query("status"), day, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) KitchenQueue(c *gin.Context) {
	orders, err := h.service.KitchenQueue(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.TransitionStatus(c.Request.Context(), id, domain.OrderStatus(req.Status),
		c.GetInt64("user_id"), c.GetString("role"), req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	o, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

func (h *Handler) AddReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.AddReview(c.Request.Context(), id, c.GetInt64("user_id"), req.Rating, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrItemUnavailable):
		response.Error(c, http.StatusConflict, "ITEM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", err.Error())
	case errors.Is(err, ErrNotEligible):
		response.Error(c, http.StatusConflict, "NOT_ELIGIBLE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
