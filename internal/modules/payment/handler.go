package payment

import (
	"errors"
	"net/http"

	"ofiz/internal/gateway/mercadopago"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/quote", h.Quote)
	rg.POST("/payments/preference", h.CreatePreference)
	rg.POST("/payments/release", h.ReleaseEscrow)
	rg.POST("/payments/verify", h.VerifyStatus)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// Quote godoc
// @Summary      Price breakdown for a booking before paying
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body QuoteRequest true "Quote payload"
// @Success      200 {object} pricing.Breakdown
// @Failure      400 {object} map[string]string
// @Router       /payments/quote [post]
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Quote(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePreference godoc
// @Summary      Create a MercadoPago checkout preference for a booking
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreatePreferenceRequest true "Preference payload"
// @Success      200 {object} CreatePreferenceResponse
// @Failure      400 {object} map[string]string
// @Router       /payments/preference [post]
func (h *Handler) CreatePreference(c *gin.Context) {
	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.CreatePreference(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.loggerf("level=error msg=create preference failed booking_id=%d err=%v", req.BookingID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": gatewayAware(err)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReleaseEscrow godoc
// @Summary      Release escrowed funds to the professional
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body ReleaseRequest true "Release payload"
// @Success      200 {object} ReleaseResponse
// @Failure      400 {object} map[string]string
// @Router       /payments/release [post]
func (h *Handler) ReleaseEscrow(c *gin.Context) {
	var req ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.ReleaseEscrow(c.Request.Context(), c.GetInt64("user_id"), req.BookingID)
	if err != nil {
		h.loggerf("level=error msg=escrow release failed booking_id=%d user_id=%d err=%v", req.BookingID, c.GetInt64("user_id"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyStatus godoc
// @Summary      Reconcile a payment against MercadoPago
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body VerifyRequest true "Verify payload"
// @Success      200 {object} VerifyResponse
// @Failure      400 {object} map[string]string
// @Router       /payments/verify [post]
func (h *Handler) VerifyStatus(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.VerifyStatus(c.Request.Context(), c.GetInt64("user_id"), req.PaymentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gatewayAware(err)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook receives MercadoPago payment notifications.
func (h *Handler) Webhook(c *gin.Context) {
	var n WebhookNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), n); err != nil {
		h.loggerf("level=error msg=webhook handling failed type=%s data_id=%s err=%v", n.Type, n.Data.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// gatewayAware keeps the gateway's status and body visible in the error
// message surfaced to the caller.
func gatewayAware(err error) string {
	var gwErr *mercadopago.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Error()
	}
	return err.Error()
}
