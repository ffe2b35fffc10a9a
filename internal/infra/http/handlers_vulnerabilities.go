package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secops/internal/domain"
)

type vulnerabilityView struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toVulnerabilityView(v domain.Vulnerability) vulnerabilityView {
	return vulnerabilityView{
		ID:          v.ID,
		ProjectID:   v.ProjectID,
		Title:       v.Title,
		Description: v.Description,
		Severity:    v.Severity,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type createVulnerabilityRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
}

type updateVulnerabilityRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	Status      *string `json:"status"`
}

func (s *Server) handleListVulnerabilities(c *gin.Context) {
	limit, offset := pagination(c)
	filter := domain.VulnerabilityFilter{
		ProjectID: c.Query("project_id"),
		Severity:  c.Query("severity"),
		Status:    c.Query("status"),
		Query:     c.Query("q"),
	}
	items, total, err := s.vulnerabilities.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	views := make([]vulnerabilityView, 0, len(items))
	for _, v := range items {
		views = append(views, toVulnerabilityView(v))
	}
	c.JSON(http.StatusOK, ListResponse{Items: views, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleCreateVulnerability(c *gin.Context) {
	var req createVulnerabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	created, err := s.vulnerabilities.Create(c.Request.Context(), req.ProjectID, req.Title, req.Description, req.Severity, req.Status)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVulnerabilityView(created))
}

func (s *Server) handleGetVulnerability(c *gin.Context) {
	vuln, err := s.vulnerabilities.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVulnerabilityView(vuln))
}

func (s *Server) handleUpdateVulnerability(c *gin.Context) {
	var req updateVulnerabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	updated, err := s.vulnerabilities.Update(c.Request.Context(), c.Param("id"), req.Title, req.Description, req.Severity, req.Status)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVulnerabilityView(updated))
}

func (s *Server) handleDeleteVulnerability(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	if err := s.vulnerabilities.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
