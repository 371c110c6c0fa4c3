package booking

import (
	"net/http"
	"strconv"

	"ofiz/internal/domain"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/:id", h.Get)
	rg.GET("/bookings/my", h.ListMine)
	rg.GET("/bookings/master", h.ListForMaster)
	rg.PATCH("/bookings/:id/status", h.SetStatus)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.POST("/bookings/:id/confirm", h.ConfirmCompletion)
}

// Create godoc
// @Summary      Book a service listing
// @Tags         Bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateRequest true "Booking payload"
// @Success      201 {object} domain.Booking
// @Failure      400 {object} map[string]string
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	b, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.service.ListForClient(c.Request.Context(), c.GetInt64("user_id"), q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListForMaster(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.service.ListForMaster(c.Request.Context(), c.GetInt64("user_id"), q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// SetStatus godoc
// @Summary      Advance a booking through its lifecycle (master only)
// @Tags         Bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        body body StatusRequest true "Target status"
// @Success      200 {object} domain.Booking
// @Failure      400 {object} map[string]string
// @Router       /bookings/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), c.GetInt64("user_id"), id, domain.BookingStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ConfirmCompletion godoc
// @Summary      Client sign-off on a completed booking
// @Tags         Bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Router       /bookings/{id}/confirm [post]
func (h *Handler) ConfirmCompletion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	if err := h.service.ConfirmCompletion(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
