package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmarket/internal/domain"
	"taskmarket/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.Create)
	rg.GET("/payments", h.ListMine)
	rg.GET("/payments/methods", h.Methods)
	rg.GET("/payments/currencies", h.CurrenciesList)
	rg.GET("/payments/:id", h.Get)
	rg.POST("/payments/:id/complete", h.MarkCompleted)
	rg.POST("/payments/:id/fail", h.MarkFailed)
	rg.POST("/payments/:id/refund", h.Refund)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListMine(c *gin.Context) {
	var status *domain.PaymentStatus
	if v := c.Query("status"); v != "" {
		st := domain.PaymentStatus(v)
		status = &st
	}

	payments, err := h.svc.ListMine(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), status)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) MarkCompleted(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	var req CompletePaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
			return
		}
	}

	p, err := h.svc.MarkCompleted(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) MarkFailed(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	p, err := h.svc.MarkFailed(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Refund(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	p, err := h.svc.Refund(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Methods(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.PaymentMethods())
}

func (h *Handler) CurrenciesList(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.Currencies())
}

func respondPaymentError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this payment")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Payment cannot move to that status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
