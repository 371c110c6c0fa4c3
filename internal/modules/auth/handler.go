package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register/client", h.RegisterClient)
	rg.POST("/auth/register/master", h.RegisterMaster)
	rg.POST("/auth/register/business", h.RegisterBusiness)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

// RegisterClient godoc
// @Summary      Register a client account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Registration payload"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /auth/register/client [post]
func (h *Handler) RegisterClient(c *gin.Context) {
	h.registerWith(c, h.service.RegisterClient)
}

// RegisterMaster godoc
// @Summary      Register a professional account (pending verification)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Registration payload"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /auth/register/master [post]
func (h *Handler) RegisterMaster(c *gin.Context) {
	h.registerWith(c, h.service.RegisterMaster)
}

// RegisterBusiness godoc
// @Summary      Register a business account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "Registration payload"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /auth/register/business [post]
func (h *Handler) RegisterBusiness(c *gin.Context) {
	h.registerWith(c, h.service.RegisterBusiness)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary      Current account
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} domain.User
// @Router       /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) registerWith(c *gin.Context, fn func(ctx context.Context, req RegisterRequest) (*AuthResponse, error)) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := fn(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
