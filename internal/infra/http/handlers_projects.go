package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secops/internal/domain"
)

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectView(p domain.Project) projectView {
	return projectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleListProjects(c *gin.Context) {
	limit, offset := pagination(c)
	filter := domain.ProjectFilter{Query: c.Query("q")}
	items, total, err := s.projects.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	views := make([]projectView, 0, len(items))
	for _, p := range items {
		views = append(views, toProjectView(p))
	}
	c.JSON(http.StatusOK, ListResponse{Items: views, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	p, _ := PrincipalFrom(c)
	created, err := s.projects.Create(c.Request.Context(), p, req.Name, req.Description)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectView(created))
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectView(project))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	p, _ := PrincipalFrom(c)
	updated, err := s.projects.Update(c.Request.Context(), p, c.Param("id"), req.Name, req.Description)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectView(updated))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	if err := s.projects.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
