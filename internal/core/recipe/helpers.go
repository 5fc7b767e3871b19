package recipe

import (
	"strings"

	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 分數規則
const (
	expiringPoints  = 3
	availablePoints = 1
)

// pickOne 依食材庫插入順序取第一個屬於分類的食材，找不到回傳空字串
func pickOne(p *pantry.Pantry, c category, exclude ...string) string {
	if picked := pickMany(p, c, 1, exclude...); len(picked) > 0 {
		return picked[0]
	}
	return ""
}

// pickMany 依插入順序最多取 limit 個屬於分類的食材
func pickMany(p *pantry.Pantry, c category, limit int, exclude ...string) []string {
	var out []string
	for _, name := range p.Available.Items() {
		if len(out) >= limit {
			break
		}
		if !c.has(name) || contains(exclude, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// score +3 即將過期，+1 僅為現有
func score(p *pantry.Pantry, used []string) int {
	total := 0
	for _, name := range used {
		switch {
		case p.Expiring.Has(name):
			total += expiringPoints
		case p.Available.Has(name):
			total += availablePoints
		}
	}
	return total
}

// dish 模板填好的內容，由 build 組成 RecipeSuggestion
type dish struct {
	prefix       string
	title        string
	cuisine      string
	diet         string
	totalTime    int
	used         []string
	amounts      map[string]string
	staples      []string
	instructions []string
}

func build(p *pantry.Pantry, d dish) *common.RecipeSuggestion {
	used := compact(d.used)

	ingredients := make([]common.Ingredient, 0, len(used)+len(d.staples))
	for _, name := range used {
		ingredients = append(ingredients, common.Ingredient{Name: name, Amount: d.amounts[name]})
	}

	missing := []string{}
	for _, name := range d.staples {
		if contains(used, name) {
			continue
		}
		ingredients = append(ingredients, common.Ingredient{Name: name, Amount: "to taste"})
		if !p.Available.Has(name) {
			missing = append(missing, name)
		}
	}

	expiring := []string{}
	for _, name := range used {
		if p.Expiring.Has(name) {
			expiring = append(expiring, name)
		}
	}

	return &common.RecipeSuggestion{
		ID:                     suggestionID(d.prefix, used),
		Title:                  d.title,
		Cuisine:                d.cuisine,
		Diet:                   d.diet,
		TotalTime:              d.totalTime,
		Ingredients:            ingredients,
		UsedIngredients:        used,
		MissingIngredients:     missing,
		ExpiringUsed:           expiring,
		Instructions:           d.instructions,
		Score:                  score(p, used),
		MatchedIngredientCount: len(used),
		TotalIngredientCount:   len(ingredients),
	}
}

// suggestionID 例如 "curry-onion-bell_pepper"
func suggestionID(prefix string, used []string) string {
	parts := make([]string, 0, len(used)+1)
	parts = append(parts, prefix)
	for _, name := range used {
		parts = append(parts, strings.ReplaceAll(name, " ", "_"))
	}
	return strings.Join(parts, "-")
}

// dietFor 依使用的蛋白質判斷飲食標籤
func dietFor(used []string) string {
	hasEgg := false
	for _, name := range used {
		if meats.has(name) {
			return ""
		}
		if name == "egg" {
			hasEgg = true
		}
	}
	if hasEgg {
		return "eggetarian"
	}
	return "vegetarian"
}

// compact 去掉空字串與重複項目，保持順序
func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// title Caser 有狀態，不能跨 goroutine 共用
func title(name string) string {
	return cases.Title(language.English).String(name)
}

// listPhrase "a"、"a and b"、"a, b and c"
func listPhrase(names []string) string {
	names = compact(names)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func one(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}
