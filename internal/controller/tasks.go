package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"task-list/internal/models"
	"task-list/internal/session"
	"task-list/internal/slot"
	"task-list/pkg/logger"

	"github.com/gin-gonic/gin"
)

// source labels intents arriving over HTTP.
const source = "http"

// Handler maps HTTP requests onto session intents.
type Handler struct {
	session *session.Session
	slot    slot.Slot
}

func New(s *session.Session, sl slot.Slot) *Handler {
	return &Handler{session: s, slot: sl}
}

// taskBody is the editable part of a task as submitted by a form.
type taskBody struct {
	Title       string          `json:"title" binding:"max=20"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string          `json:"dueDate"`
	Completed   bool            `json:"completed"`
}

func (b taskBody) fields() models.TaskFields {
	return models.TaskFields{
		Title:       b.Title,
		Description: b.Description,
		Priority:    b.Priority,
		DueDate:     b.DueDate,
		Completed:   b.Completed,
	}
}

// Health returns 200 if the process is alive.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the slot backend is reachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if p, ok := h.slot.(slot.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			logger.Warn(ctx, "Readiness ping failed", "slot", h.slot.Name(), "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable"})
			return
		}
	}
	c.String(http.StatusOK, "OK")
}

// ListTasks returns the full collection in insertion order.
func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Tasks())
}

// ViewTasks returns the projection for ?q=, or for the session query when q is absent.
func (h *Handler) ViewTasks(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok {
		query = h.session.Query()
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "tasks": h.session.ProjectionFor(query)})
}

func (h *Handler) GetQuery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"query": h.session.Query()})
}

func (h *Handler) SetQuery(c *gin.Context) {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if _, err := h.session.Dispatch(c.Request.Context(), source, models.QueryIntent{Query: body.Query}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set query"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": body.Query, "tasks": h.session.Projection()})
}

// CreateTask validates the body and creates a task. Returns 201 with the task.
func (h *Handler) CreateTask(c *gin.Context) {
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	res, err := h.session.Dispatch(c.Request.Context(), source, models.CreateIntent{Fields: body.fields()})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, res.Task)
}

// UpdateTask replaces the editable fields of the task in the path.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var body taskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	f := body.fields()
	task := models.Task{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		Completed:   f.Completed,
	}
	res, err := h.session.Dispatch(c.Request.Context(), source, models.EditIntent{Task: task})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	if !res.Applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, res.Task)
}

// DeleteTask removes the task in the path. Returns 204.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	res, err := h.session.Dispatch(c.Request.Context(), source, models.DeleteIntent{ID: id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	if !res.Applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return 0, false
	}
	return id, true
}
