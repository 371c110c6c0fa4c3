package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects the group to already carry auth + admin role
// middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/masters/pending", h.ListPendingMasters)
	rg.POST("/admin/masters/:id/verify", h.VerifyMaster)
	rg.POST("/admin/masters/:id/reject", h.RejectMaster)
	rg.GET("/admin/payments", h.ListPayments)
}

// ListPendingMasters godoc
// @Summary      Masters awaiting verification
// @Tags         Admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} domain.User
// @Router       /admin/masters/pending [get]
func (h *Handler) ListPendingMasters(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.service.ListPendingMasters(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) VerifyMaster(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid master id"})
		return
	}
	if err := h.service.VerifyMaster(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

func (h *Handler) RejectMaster(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid master id"})
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.RejectMaster(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ListPayments godoc
// @Summary      Payments overview with optional status filter
// @Tags         Admin
// @Security     BearerAuth
// @Produce      json
// @Param        status query string false "pending|approved|released|rejected|failed"
// @Success      200 {array} domain.Payment
// @Router       /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	var q PaymentsQuery
	_ = c.ShouldBindQuery(&q)
	out, err := h.service.ListPayments(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
