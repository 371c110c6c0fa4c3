package subscription

import (
	"context"
	"errors"
	"net/http"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions/plans", h.ListPlans)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions/me", h.Current)
	rg.POST("/subscriptions/master/pay", h.PayMaster)
	rg.POST("/subscriptions/business/pay", h.PayBusiness)
}

// ListPlans godoc
// @Summary      List active subscription plans
// @Tags         Subscriptions
// @Produce      json
// @Param        audience query string false "master or business"
// @Success      200 {array} domain.Plan
// @Router       /subscriptions/plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context(), domain.PlanAudience(c.Query("audience")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Current godoc
// @Summary      Current subscription and usage for the caller
// @Tags         Subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} CurrentResponse
// @Router       /subscriptions/me [get]
func (h *Handler) Current(c *gin.Context) {
	resp, err := h.service.Current(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PayMaster godoc
// @Summary      Charge a card for a master plan
// @Tags         Subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body PayRequest true "Plan and card token"
// @Success      200 {object} PayResponse
// @Failure      400 {object} map[string]string
// @Router       /subscriptions/master/pay [post]
func (h *Handler) PayMaster(c *gin.Context) {
	h.pay(c, h.service.PayMaster)
}

// PayBusiness godoc
// @Summary      Charge a card for a business plan
// @Tags         Subscriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body PayRequest true "Plan and card token"
// @Success      200 {object} PayResponse
// @Failure      400 {object} map[string]string
// @Router       /subscriptions/business/pay [post]
func (h *Handler) PayBusiness(c *gin.Context) {
	h.pay(c, h.service.PayBusiness)
}

func (h *Handler) pay(c *gin.Context, fn func(ctx context.Context, userID int64, req PayRequest) (*PayResponse, error)) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := fn(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		var gwErr *mercadopago.GatewayError
		if errors.As(err, &gwErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gwErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
