package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alfozan-insights/internal/application/pipeline"
	analyticsDomain "alfozan-insights/internal/domain/analytics"
)

func (s *Server) handleListMetrics(c *gin.Context) {
	metricType := analyticsDomain.MetricType(c.Query("metric_type"))
	switch metricType {
	case "", analyticsDomain.MetricRevenue, analyticsDomain.MetricUnitsSold, analyticsDomain.MetricMarketShare:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unsupported metric_type", "error_code": errCodeBadRequest})
		return
	}

	rows, err := s.snapshot.ListMetrics(c.Request.Context(), metricType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "list metrics failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows, "total": len(rows)})
}

func (s *Server) handleDashboard(c *gin.Context) {
	d, err := s.reports.BuildDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "dashboard failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": d})
}

// handleProcess 觸發一次確定性全量重算，同一時間僅允許一輪。
func (s *Server) handleProcess(c *gin.Context) {
	summary, err := s.pipeline.RecomputeNow(c.Request.Context(), time.Now())
	if err != nil {
		if errors.Is(err, pipeline.ErrCycleInFlight) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "recalculation already running", "error_code": errCodeConflict})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "recalculation failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
