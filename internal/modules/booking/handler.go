package booking

import (
	"context"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/active", h.ListActive)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/in-progress", h.MarkInProgress)
	rg.POST("/bookings/:id/complete", h.Complete)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.POST("/bookings/:id/pay", h.MarkPaid)
}

// RegisterAdminRoutes mounts the admin-only transitions.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/dispute", h.Dispute)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.svc.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.svc.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) ListActive(c *gin.Context) {
	bookings, err := h.svc.ListActiveForTasker(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) MarkInProgress(c *gin.Context) {
	h.transition(c, h.svc.MarkInProgress)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.svc.Cancel)
}

func (h *Handler) Dispute(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.svc.Dispute(c.Request.Context(), id, c.GetString("role"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := h.svc.MarkPaid(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// the three party-driven transitions share one handler shape
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id, actorID int64, actorRole string) (*BookingDetails, error)) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := fn(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func respondBookingError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this booking")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking cannot move to that status")
	case ErrInvalidPaymentStatus:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Payment status cannot move that way")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
