package bid

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
	rg.POST("/bids", h.Create)
	rg.GET("/bids/mine", h.ListMine)
	rg.GET("/tasks/:id/bids", h.ListForTask)
	rg.POST("/bids/:id/accept", h.Accept)
	rg.POST("/bids/:id/reject", h.Reject)
	rg.POST("/bids/:id/withdraw", h.Withdraw)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if c.GetString("role") != "tasker" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only taskers can bid")
		return
	}

	b, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Accept(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	// body is optional; an empty accept books without a schedule
	var req AcceptBidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
			return
		}
	}

	res, err := h.svc.Accept(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	b, err := h.svc.Reject(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Withdraw(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bid ID")
		return
	}

	b, err := h.svc.Withdraw(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListForTask(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	bids, err := h.svc.ListForTask(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bids)
}

func (h *Handler) ListMine(c *gin.Context) {
	var status *domain.BidStatus
	if v := c.Query("status"); v != "" {
		st := domain.BidStatus(v)
		status = &st
	}

	bids, err := h.svc.ListMine(c.Request.Context(), c.GetInt64("user_id"), status)
	if err != nil {
		respondBidError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bids)
}

func respondBidError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bid not found")
	case ErrTaskNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this bid")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Bid is no longer pending")
	case ErrTaskNotOpen:
		response.Error(c, http.StatusConflict, "TASK_NOT_OPEN", "Task is not open for bidding")
	case ErrTaskAlreadyAssigned:
		response.Error(c, http.StatusConflict, "ALREADY_ASSIGNED", "Another bid was already accepted for this task")
	case ErrDuplicateBid:
		response.Error(c, http.StatusConflict, "CONFLICT", "You already placed a bid on this task")
	case ErrOwnTask:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot bid on your own task")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
