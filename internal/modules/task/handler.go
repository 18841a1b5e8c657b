package task

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tasks", h.Create)
	rg.GET("/tasks", h.ListOpen)
	rg.GET("/tasks/mine", h.ListMine)
	rg.GET("/tasks/:id", h.Get)
	rg.POST("/tasks/:id/cancel", h.Cancel)
	rg.DELETE("/tasks/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if c.GetString("role") != "client" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only clients can post tasks")
		return
	}

	t, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, t)
}

func (h *Handler) ListOpen(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tasks, err := h.svc.ListOpen(c.Request.Context(), limit, offset)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tasks)
}

func (h *Handler) ListMine(c *gin.Context) {
	tasks, err := h.svc.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tasks)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	t, err := h.svc.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your task")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Task cannot move to that status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func paramID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
