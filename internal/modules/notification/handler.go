package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmarket/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/notifications", h.List)
	protected.POST("/notifications/:id/read", h.MarkRead)
}

func (h *Handler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	items, err := h.svc.List(c.Request.Context(), c.GetInt64("user_id"), unreadOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	ok, err := h.svc.MarkRead(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	if !ok {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}
