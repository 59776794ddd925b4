package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestProjectCRUD_HTTP(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	// List seeded projects
	w := doJSON(t, handler, "GET", "/api/projects", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var listResp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.Total != 5 {
		t.Fatalf("expected 5 seeded projects, got %d", listResp.Total)
	}

	// Create
	w = doJSON(t, handler, "POST", "/api/projects", token, map[string]interface{}{
		"name":     "Madinah Gardens",
		"type":     "Residential",
		"location": "Madinah",
		"budget":   120_000_000,
		"units":    80,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var createResp struct {
		Data struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &createResp)
	if createResp.Data.ID == 0 || createResp.Data.Status != "Planning" {
		t.Fatalf("unexpected create response: %s", w.Body.String())
	}

	// Partial update
	w = doJSON(t, handler, "PUT", "/api/projects/6", token, map[string]interface{}{
		"progress": 25,
		"status":   "In Progress",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var updResp struct {
		Data struct {
			Progress int    `json:"progress"`
			Name     string `json:"name"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &updResp)
	if updResp.Data.Progress != 25 || updResp.Data.Name != "Madinah Gardens" {
		t.Fatalf("unexpected update response: %s", w.Body.String())
	}

	// Validation error
	w = doJSON(t, handler, "POST", "/api/projects", token, map[string]interface{}{
		"name": "Broken", "type": "Residential", "location": "Riyadh", "budget": -1, "units": 10,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid budget, got %d", w.Code)
	}

	// Delete then 404
	w = doJSON(t, handler, "DELETE", "/api/projects/6", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w = doJSON(t, handler, "GET", "/api/projects/6", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestProject_BadID(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "GET", "/api/projects/abc", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestCompetitorCRUD_HTTP(t *testing.T) {
	handler, _ := newTestServer(t)
	token := loginToken(t, handler)

	w := doJSON(t, handler, "GET", "/api/competitors", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var listResp struct {
		Total int `json:"total"`
		Data  []struct {
			Name        string  `json:"name"`
			MarketShare float64 `json:"market_share"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.Total != 5 {
		t.Fatalf("expected 5 seeded competitors, got %d", listResp.Total)
	}
	// 以市占率排序，第一名為 Emaar
	if listResp.Data[0].Name != "Emaar Middle East" {
		t.Errorf("unexpected leader: %+v", listResp.Data[0])
	}

	w = doJSON(t, handler, "POST", "/api/competitors", token, map[string]interface{}{
		"name":             "ROSHN",
		"market_share":     7.5,
		"digital_presence": 80,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, "PUT", "/api/competitors/999", token, map[string]interface{}{
		"market_share": 9.0,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
