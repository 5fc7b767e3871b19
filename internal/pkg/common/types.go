package common

import "strings"

// CanonicalTagPrefix 已正規化庫存記錄的標籤前綴，例如 "canonical:milk"
const CanonicalTagPrefix = "canonical:"

// InventoryRecord 庫存記錄（一筆實際存放的食材）
type InventoryRecord struct {
	ProductName     string   `json:"product_name"`
	Tags            []string `json:"tags"`
	DaysUntilExpiry int      `json:"days_until_expiry"`
}

// CanonicalTag 取得第一個非空的 canonical:<name> 標籤值，找不到時回傳 false
func (r InventoryRecord) CanonicalTag() (string, bool) {
	for _, tag := range r.Tags {
		if !strings.HasPrefix(tag, CanonicalTagPrefix) {
			continue
		}
		if name := strings.TrimSpace(strings.TrimPrefix(tag, CanonicalTagPrefix)); name != "" {
			return name, true
		}
	}
	return "", false
}

// Ingredient 食譜中的食材
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

// RecipeSuggestion 推薦的食譜
type RecipeSuggestion struct {
	ID                     string       `json:"id"`
	Title                  string       `json:"title"`
	Image                  string       `json:"image,omitempty"`
	Cuisine                string       `json:"cuisine,omitempty"`
	Diet                   string       `json:"diet,omitempty"`
	TotalTime              int          `json:"totalTime"`
	Ingredients            []Ingredient `json:"ingredients"`
	UsedIngredients        []string     `json:"usedIngredients"`
	MissingIngredients     []string     `json:"missingIngredients"`
	ExpiringUsed           []string     `json:"expiringUsed"`
	Instructions           []string     `json:"instructions,omitempty"`
	Score                  int          `json:"score"`
	MatchedIngredientCount int          `json:"matchedIngredientCount"`
	TotalIngredientCount   int          `json:"totalIngredientCount"`
}

// CleanName 統一名稱格式：轉小寫並去除前後空白
func CleanName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
