package message

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
	protected.POST("/messages", h.Send)
	protected.GET("/messages/unread", h.Unread)
	protected.GET("/messages/conversations/:user_id", h.Conversation)
	protected.POST("/messages/:id/read", h.MarkRead)
}

func (h *Handler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	m, err := h.svc.Send(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrReceiverNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Receiver not found")
		case ErrBookingNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case ErrNotBookingParty:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this booking")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) Conversation(c *gin.Context) {
	otherID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var bookingID *int64
	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
			return
		}
		bookingID = &id
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.svc.Conversation(c.Request.Context(), c.GetInt64("user_id"), otherID, bookingID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Unread(c *gin.Context) {
	items, err := h.svc.Unread(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}
