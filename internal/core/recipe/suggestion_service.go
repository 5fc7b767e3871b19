package recipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// PantryBuilder 由庫存記錄建立食材庫
type PantryBuilder interface {
	BuildWith(ctx context.Context, records []common.InventoryRecord, prefer normalizer.Preference) (*pantry.Pantry, error)
}

// SuggestionService 食譜推薦服務
type SuggestionService struct {
	builder   PantryBuilder
	templates []Template
	limit     int
	metrics   *metrics.Collector
}

// NewSuggestionService 創建新的食譜推薦服務，limit 超出 1..5 時使用 5
func NewSuggestionService(builder PantryBuilder, limit int, collector *metrics.Collector) *SuggestionService {
	if limit <= 0 || limit > config.MaxSuggestions {
		limit = config.MaxSuggestions
	}
	return &SuggestionService{
		builder:   builder,
		templates: Catalog(),
		limit:     limit,
		metrics:   collector,
	}
}

// Suggest 建立食材庫並回傳排序後的推薦，最多 limit 筆。
// 沒有模板命中時回傳空切片；正規化失敗時整個請求失敗。
func (s *SuggestionService) Suggest(ctx context.Context, records []common.InventoryRecord, prefer normalizer.Preference) ([]common.RecipeSuggestion, error) {
	start := time.Now()

	p, err := s.builder.BuildWith(ctx, records, prefer)
	if err != nil {
		s.metrics.ObserveSuggestions("error", 0)
		return nil, err
	}

	suggestions := s.Generate(p)
	s.metrics.ObserveSuggestions("ok", len(suggestions))

	common.LogInfo("食譜推薦完成",
		zap.Int("records", len(records)),
		zap.Int("available", p.Available.Len()),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("duration", time.Since(start)),
	)
	return suggestions, nil
}

// Generate 對同一個食材庫執行所有模板並排序
func (s *SuggestionService) Generate(p *pantry.Pantry) []common.RecipeSuggestion {
	results := make([]*common.RecipeSuggestion, len(s.templates))

	// 模板彼此獨立且不修改食材庫，可以並行
	var wg sync.WaitGroup
	for i, t := range s.templates {
		wg.Add(1)
		go func(i int, t Template) {
			defer wg.Done()
			if r, ok := t.TrySuggest(p); ok {
				results[i] = r
			}
		}(i, t)
	}
	wg.Wait()

	candidates := make([]*common.RecipeSuggestion, 0, len(results))
	for i, r := range results {
		if r == nil {
			continue
		}
		s.metrics.TemplateMatched(s.templates[i].Name)
		candidates = append(candidates, r)
	}

	common.LogDebug("模板比對結果", zap.Int("templates", len(s.templates)), zap.Int("matched", len(candidates)))
	return Rank(candidates, s.limit)
}

// Rank 依命中食材數、分數由高到低，再依總時間由短到長排序，取前 limit 筆
func Rank(candidates []*common.RecipeSuggestion, limit int) []common.RecipeSuggestion {
	sorted := make([]*common.RecipeSuggestion, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.MatchedIngredientCount != b.MatchedIngredientCount {
			return a.MatchedIngredientCount > b.MatchedIngredientCount
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.TotalTime < b.TotalTime
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]common.RecipeSuggestion, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, *r)
	}
	return out
}
