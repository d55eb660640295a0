package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lootledger/engine/internal/crafting"
	"github.com/lootledger/engine/internal/economy"
	"github.com/lootledger/engine/internal/loot"
	"github.com/lootledger/engine/internal/player"
)

// APIClient handles communication with the loot ledger engine API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// apiError is the engine's error payload shape.
type apiError struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decode reads a JSON success payload, or extracts the API error text.
func decode(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			if len(apiErr.Details) > 0 {
				parts := make([]string, 0, len(apiErr.Details))
				for k, v := range apiErr.Details {
					parts = append(parts, fmt.Sprintf("%s: %s", k, v))
				}
				return fmt.Errorf("API error: %s (%s)", apiErr.Error, strings.Join(parts, ", "))
			}
			return fmt.Errorf("API error: %s", apiErr.Error)
		}
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RegisterPlayer creates the player if they don't exist yet. An
// already-registered player is not an error.
func (c *APIClient) RegisterPlayer(name string) error {
	req := map[string]interface{}{"player": name}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/player/register", req)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		resp.Body.Close()
		return nil
	}
	return decode(resp, nil)
}

// Draw performs count draws from a table and formats the result.
func (c *APIClient) Draw(playerName, table string, count int) (string, error) {
	req := map[string]interface{}{"player": playerName, "table": table, "count": count}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/draw", req)
	if err != nil {
		return "", err
	}

	var result loot.DrawResult
	if err := decode(resp, &result); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, item := range result.Items {
		fmt.Fprintf(&sb, "**%s** x%d\n", item.Name, item.Quantity)
	}
	fmt.Fprintf(&sb, "\nSpent **%d**, balance **%d**", result.Cost, result.Balance)
	for _, w := range result.Warnings {
		fmt.Fprintf(&sb, "\n⚠️ %s", w)
	}
	return sb.String(), nil
}

// GetTables lists the loot tables.
func (c *APIClient) GetTables() (string, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/tables", nil)
	if err != nil {
		return "", err
	}

	var tables []loot.TableSummary
	if err := decode(resp, &tables); err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "No loot tables exist yet.", nil
	}

	var sb strings.Builder
	for _, t := range tables {
		fmt.Fprintf(&sb, "**%s** — cost %d, %d entries\n", t.Name, t.DrawCost, t.Entries)
	}
	return sb.String(), nil
}

// SellItem sells count units of an item, or everything when all is set.
func (c *APIClient) SellItem(playerName, item string, count int, all bool) (string, error) {
	req := map[string]interface{}{"player": playerName, "item": item, "count": count, "all": all}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/sell", req)
	if err != nil {
		return "", err
	}

	var result economy.SellResult
	if err := decode(resp, &result); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sold **%s** x%d for **%d**.\nBalance: **%d**",
		result.Item, result.Quantity, result.Credited, result.Balance), nil
}

// BuyItem purchases quantity units of a shop item.
func (c *APIClient) BuyItem(playerName, item string, quantity int) (string, error) {
	req := map[string]interface{}{"player": playerName, "item": item, "quantity": quantity}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/shop/buy", req)
	if err != nil {
		return "", err
	}

	var result economy.BuyResult
	if err := decode(resp, &result); err != nil {
		return "", err
	}
	return fmt.Sprintf("Bought **%s** x%d for **%d**.\nBalance: **%d**",
		result.Item, result.Quantity, result.Cost, result.Balance), nil
}

// GetShop lists purchasable items.
func (c *APIClient) GetShop() (string, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/shop", nil)
	if err != nil {
		return "", err
	}

	var entries []economy.ShopEntry
	if err := decode(resp, &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "The shop is empty.", nil
	}

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "**%s** (%s) — %d\n", e.Name, e.Kind, e.Price)
	}
	return sb.String(), nil
}

// Craft crafts an item, paying for effectRolls functional effect rolls.
func (c *APIClient) Craft(playerName, item string, effectRolls int) (string, error) {
	req := map[string]interface{}{"player": playerName, "item": item, "effect_rolls": effectRolls}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/craft", req)
	if err != nil {
		return "", err
	}

	var result crafting.CraftResult
	if err := decode(resp, &result); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Crafted **%s**", result.Item.Name)
	if result.Item.Rarity != "" {
		fmt.Fprintf(&sb, " (%s)", result.Item.Rarity)
	}
	sb.WriteString("\n")
	for name, qty := range result.Consumed {
		fmt.Fprintf(&sb, "Used %s x%d\n", name, qty)
	}
	for _, effect := range result.EffectsRolled {
		fmt.Fprintf(&sb, "✨ Rolled effect: %s\n", effect)
	}
	fmt.Fprintf(&sb, "Balance: **%d**", result.Balance)
	return sb.String(), nil
}

// GetRecipes lists recipes with the player's ingredient progress.
func (c *APIClient) GetRecipes(playerName string) (string, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/recipes?player="+playerName, nil)
	if err != nil {
		return "", err
	}

	var recipes []crafting.RecipeInfo
	if err := decode(resp, &recipes); err != nil {
		return "", err
	}
	if len(recipes) == 0 {
		return "No recipes exist yet.", nil
	}

	var sb strings.Builder
	for _, r := range recipes {
		marker := "🔒"
		if r.Craftable {
			marker = "✅"
		}
		fmt.Fprintf(&sb, "%s **%s**: ", marker, r.Item)
		parts := make([]string, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			parts = append(parts, fmt.Sprintf("%s %d/%d", ing.Name, ing.Have, ing.Need))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// UseItem uses one unit of a consumable.
func (c *APIClient) UseItem(playerName, item string) (string, error) {
	req := map[string]interface{}{"player": playerName, "item": item}

	resp, err := c.doRequest(http.MethodPost, "/api/v1/player/use", req)
	if err != nil {
		return "", err
	}

	var result player.UseResult
	if err := decode(resp, &result); err != nil {
		return "", err
	}
	return fmt.Sprintf("Used **%s** — queued **%s** (%d pending)",
		result.Item, result.Effect.Kind, result.Queued), nil
}

// GetProfile fetches a player's currency and inventory.
func (c *APIClient) GetProfile(playerName string) (string, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/player?player="+playerName, nil)
	if err != nil {
		return "", err
	}

	var info player.Info
	if err := decode(resp, &info); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "💰 Currency: **%d**\n", info.Currency)
	if len(info.Inventory) == 0 {
		sb.WriteString("🎒 Inventory is empty.\n")
	} else {
		sb.WriteString("🎒 Inventory:\n")
		for _, item := range info.Inventory {
			fmt.Fprintf(&sb, "  %s x%d (worth %d)\n", item.Name, item.Quantity, item.Value)
		}
	}
	if len(info.Equipped) > 0 {
		sb.WriteString("🛡️ Equipped:\n")
		for _, item := range info.Equipped {
			fmt.Fprintf(&sb, "  %s\n", item.Name)
		}
	}
	if len(info.Upgrades) > 0 {
		sb.WriteString("📈 Upgrades:\n")
		for _, item := range info.Upgrades {
			fmt.Fprintf(&sb, "  %s\n", item.Name)
		}
	}
	return sb.String(), nil
}
