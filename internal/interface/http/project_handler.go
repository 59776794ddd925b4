package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alfozan-insights/internal/application/projects"
	"alfozan-insights/internal/domain/project"
)

func (s *Server) handleListProjects(c *gin.Context) {
	list, err := s.projects.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list projects failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list, "total": len(list)})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var body project.Project
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}
	created, err := s.projects.Create(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := s.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body projects.UpdateInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}
	updated, err := s.projects.Update(c.Request.Context(), id, body)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.projects.Delete(c.Request.Context(), id); err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondProjectError(c *gin.Context, err error) {
	if errors.Is(err, project.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "project not found", "error_code": errCodeNotFound})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
}

// pathID 解析路徑中的數字 id，失敗時已寫出錯誤回應。
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id", "error_code": errCodeBadRequest})
		return 0, false
	}
	return id, true
}
