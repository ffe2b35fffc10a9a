package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secops/internal/domain"
)

type taskView struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskView(t domain.Task) taskView {
	return taskView{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type createTaskRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	limit, offset := pagination(c)
	filter := domain.TaskFilter{
		ProjectID: c.Query("project_id"),
		Status:    c.Query("status"),
		Query:     c.Query("q"),
	}
	items, total, err := s.tasks.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	views := make([]taskView, 0, len(items))
	for _, t := range items {
		views = append(views, toTaskView(t))
	}
	c.JSON(http.StatusOK, ListResponse{Items: views, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	created, err := s.tasks.Create(c.Request.Context(), req.ProjectID, req.Title, req.Description, req.Status)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskView(created))
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskView(task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	updated, err := s.tasks.Update(c.Request.Context(), c.Param("id"), req.Title, req.Description, req.Status)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskView(updated))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	if err := s.tasks.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
