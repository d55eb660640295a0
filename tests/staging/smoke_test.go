//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHealthCheck(t *testing.T) {
	resp, _ := makeRequest(t, "GET", "/healthz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestReadyCheck(t *testing.T) {
	resp, _ := makeRequest(t, "GET", "/readyz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestVersion(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var version struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
	}
	if err := json.Unmarshal(body, &version); err != nil {
		t.Fatalf("Failed to parse version response: %v", err)
	}
	if version.GoVersion == "" {
		t.Error("Expected go_version to be set")
	}
}

func TestListTables(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/tables", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var tables []struct {
		Name     string `json:"name"`
		DrawCost int    `json:"draw_cost"`
	}
	if err := json.Unmarshal(body, &tables); err != nil {
		t.Fatalf("Failed to parse tables response: %v", err)
	}
}

// TestPlayerLifecycle runs a register → grant → draw → sell round trip
// against a staging deployment.
func TestPlayerLifecycle(t *testing.T) {
	playerName := fmt.Sprintf("smoke-%d", time.Now().UnixNano())

	resp, body := makeRequest(t, "POST", "/api/v1/player/register", map[string]interface{}{
		"player":            playerName,
		"starting_currency": 0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register: expected status 201, got %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "POST", "/api/v1/admin/currency/grant", map[string]interface{}{
		"player": playerName,
		"amount": 500,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Grant: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/tables", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Tables: expected status 200, got %d", resp.StatusCode)
	}
	var tables []struct {
		Name     string `json:"name"`
		DrawCost int    `json:"draw_cost"`
	}
	if err := json.Unmarshal(body, &tables); err != nil {
		t.Fatalf("Failed to parse tables: %v", err)
	}
	if len(tables) == 0 {
		t.Skip("No loot tables configured on staging")
	}

	resp, body = makeRequest(t, "POST", "/api/v1/draw", map[string]interface{}{
		"player": playerName,
		"table":  tables[0].Name,
		"count":  1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Draw: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var draw struct {
		Items []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		Balance int `json:"balance"`
	}
	if err := json.Unmarshal(body, &draw); err != nil {
		t.Fatalf("Failed to parse draw response: %v", err)
	}
	if len(draw.Items) == 0 {
		t.Fatal("Draw returned no items")
	}

	resp, body = makeRequest(t, "POST", "/api/v1/sell", map[string]interface{}{
		"player": playerName,
		"item":   draw.Items[0].Name,
		"all":    true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Sell: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	// Cleanup
	resp, _ = makeRequest(t, "POST", "/api/v1/player/remove", map[string]interface{}{
		"player": playerName,
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Remove: expected status 200, got %d", resp.StatusCode)
	}
}
