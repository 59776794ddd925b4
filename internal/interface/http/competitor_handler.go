package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alfozan-insights/internal/application/competitors"
	"alfozan-insights/internal/domain/competitor"
)

func (s *Server) handleListCompetitors(c *gin.Context) {
	list, err := s.competitors.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list competitors failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list, "total": len(list)})
}

func (s *Server) handleCreateCompetitor(c *gin.Context) {
	var body competitor.Competitor
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}
	created, err := s.competitors.Create(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (s *Server) handleGetCompetitor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comp, err := s.competitors.Get(c.Request.Context(), id)
	if err != nil {
		respondCompetitorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comp})
}

func (s *Server) handleUpdateCompetitor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body competitors.UpdateInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}
	updated, err := s.competitors.Update(c.Request.Context(), id, body)
	if err != nil {
		respondCompetitorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (s *Server) handleDeleteCompetitor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.competitors.Delete(c.Request.Context(), id); err != nil {
		respondCompetitorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondCompetitorError(c *gin.Context, err error) {
	if errors.Is(err, competitor.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "competitor not found", "error_code": errCodeNotFound})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
}
