package referral

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/referrals/credits", h.ListCredits)
	rg.GET("/referrals/balance", h.Balance)
}

// ListCredits godoc
// @Summary      Unused referral credits for the caller
// @Tags         Referrals
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} domain.ReferralCredit
// @Router       /referrals/credits [get]
func (h *Handler) ListCredits(c *gin.Context) {
	out, err := h.service.ListAvailable(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Balance godoc
// @Summary      Total unused referral credit
// @Tags         Referrals
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]float64
// @Router       /referrals/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	total, err := h.service.Balance(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": total})
}
