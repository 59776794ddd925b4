package httpapi

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	reportsDomain "alfozan-insights/internal/domain/reports"
)

func (s *Server) handleExport(c *gin.Context) {
	var body struct {
		ReportType string `json:"report_type"`
		Format     string `json:"format"`
		DateRange  string `json:"date_range"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	typ, err := reportsDomain.ParseType(body.ReportType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}
	format, err := reportsDomain.ParseFormat(body.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "error_code": errCodeBadRequest})
		return
	}

	name, err := s.reports.Generate(c.Request.Context(), typ, format, body.DateRange)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "report generation failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"filename":     name,
		"download_url": "/api/download/" + name,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	// filepath.Base 阻擋路徑跳脫
	name := filepath.Base(c.Param("filename"))
	path := s.reports.ArtifactPath(name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "report not found", "error_code": errCodeNotFound})
		return
	}
	c.FileAttachment(path, name)
}
