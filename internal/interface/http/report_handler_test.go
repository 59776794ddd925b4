package httpapi

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"
)

func TestExportAndDownload(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "POST", "/api/export", token, map[string]string{
		"report_type": "full",
		"format":      "csv",
		"date_range":  "month",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Filename    string `json:"filename"`
		DownloadURL string `json:"download_url"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !regexp.MustCompile(`^alfozan_full_month_\d{8}_\d{6}\.csv$`).MatchString(resp.Filename) {
		t.Fatalf("unexpected filename: %s", resp.Filename)
	}

	w = doJSON(t, handler, "GET", resp.DownloadURL, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "# PROJECTS DATA") {
		t.Error("downloaded CSV missing projects block")
	}
}

func TestExport_BadInput(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "POST", "/api/export", token, map[string]string{
		"report_type": "quarterly",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad report type, got %d", w.Code)
	}

	w = doJSON(t, handler, "POST", "/api/export", token, map[string]string{
		"format": "docx",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad format, got %d", w.Code)
	}
}

func TestDownload_NotFoundAndTraversal(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "GET", "/api/download/absent.pdf", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	// 路徑跳脫會被 Base 截斷成單一檔名
	w = doJSON(t, handler, "GET", "/api/download/..%2F..%2Fetc%2Fpasswd", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for traversal attempt, got %d", w.Code)
	}
}

func TestProcessEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "POST", "/api/data/process", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("process: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			MetricsUpdated int `json:"metrics_updated"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Data.MetricsUpdated == 0 {
		t.Errorf("unexpected process response: %s", w.Body.String())
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	// 先跑一輪重算產生指標
	if w := doJSON(t, handler, "POST", "/api/data/process", token, nil); w.Code != http.StatusOK {
		t.Fatalf("process: %d", w.Code)
	}

	w := doJSON(t, handler, "GET", "/api/analytics?metric_type=revenue", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: %d", w.Code)
	}
	var resp struct {
		Total int `json:"total"`
		Data  []struct {
			MetricType string  `json:"metric_type"`
			Value      float64 `json:"metric_value"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Data[0].MetricType != "revenue" {
		t.Errorf("unexpected analytics response: %s", w.Body.String())
	}

	w = doJSON(t, handler, "GET", "/api/analytics?metric_type=bogus", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bogus type, got %d", w.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "GET", "/api/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Summary struct {
				TotalProjects int `json:"total_projects"`
			} `json:"summary"`
			TopCompetitors []struct {
				Name string `json:"name"`
			} `json:"top_competitors"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Summary.TotalProjects != 5 {
		t.Errorf("expected 5 projects in summary, got %d", resp.Data.Summary.TotalProjects)
	}
	if len(resp.Data.TopCompetitors) != 5 {
		t.Errorf("expected 5 top competitors, got %d", len(resp.Data.TopCompetitors))
	}
}
