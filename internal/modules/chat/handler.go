package chat

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
	rg.POST("/chat/conversations", h.OpenConversation)
	rg.GET("/chat/conversations", h.ListConversations)
	rg.GET("/chat/conversations/:id/messages", h.ListMessages)
	rg.POST("/chat/conversations/:id/messages", h.SendMessage)
	rg.POST("/chat/conversations/:id/read", h.MarkRead)
	rg.POST("/chat/conversations/:id/typing", h.Typing)
	rg.GET("/chat/conversations/:id/typing", h.OtherTyping)
}

// OpenConversation godoc
// @Summary      Open (or fetch) the conversation with another user
// @Tags         Chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body OpenConversationRequest true "Counterpart"
// @Success      200 {object} domain.Conversation
// @Failure      400 {object} map[string]string
// @Router       /chat/conversations [post]
func (h *Handler) OpenConversation(c *gin.Context) {
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.UserRole(c.GetString("role"))
	conv, err := h.service.OpenConversation(c.Request.Context(), c.GetInt64("user_id"), role, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *Handler) ListConversations(c *gin.Context) {
	out, err := h.service.ListConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListMessages(c *gin.Context) {
	id, err := convID(c)
	if err != nil {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.service.ListMessages(c.Request.Context(), c.GetInt64("user_id"), id, limit, offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, err := convID(c)
	if err != nil {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), id, req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := convID(c)
	if err != nil {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Typing(c *gin.Context) {
	id, err := convID(c)
	if err != nil {
		return
	}
	if err := h.service.Typing(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) OtherTyping(c *gin.Context) {
	id, err := convID(c)
	if err != nil {
		return
	}
	typing, err := h.service.OtherTyping(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"typing": typing})
}

func convID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
	}
	return id, err
}
