// Package normalizer 將使用者或 OCR 輸入的商品名稱轉為標準食材名稱。
package normalizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"noshnurture/internal/core/cache"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// Preference 正規化策略
type Preference string

const (
	PreferFuzzy    Preference = "fuzzy"
	PreferSemantic Preference = "semantic"
)

// ParsePreference 解析策略字串，空字串回傳預設值
func ParsePreference(s string, fallback Preference) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return fallback, nil
	case PreferFuzzy:
		return PreferFuzzy, nil
	case PreferSemantic:
		return PreferSemantic, nil
	default:
		return "", common.NewValidationError(fmt.Sprintf("unknown normalizer preference %q", s))
	}
}

// Options 正規化選項
type Options struct {
	Prefer Preference
}

// Normalizer 正規化介面
type Normalizer interface {
	Normalize(ctx context.Context, raw string, opts Options) (string, error)
}

// Service 依策略分派到詞彙表或語意模型，並以緩存記住結果
type Service struct {
	dictionary *Dictionary
	semantic   Normalizer
	store      cache.Store
	metrics    *metrics.Collector
}

// NewService 創建正規化服務；semantic、store、collector 皆可為 nil
func NewService(dictionary *Dictionary, semantic Normalizer, store cache.Store, collector *metrics.Collector) *Service {
	return &Service{
		dictionary: dictionary,
		semantic:   semantic,
		store:      store,
		metrics:    collector,
	}
}

// Normalize 回傳小寫、去空白的標準名稱；無法辨識時可能為空字串
func (s *Service) Normalize(ctx context.Context, raw string, opts Options) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	prefer := opts.Prefer
	if prefer == "" || (prefer == PreferSemantic && s.semantic == nil) {
		prefer = PreferFuzzy
	}

	key := string(prefer) + ":" + foldText(raw)
	if s.store != nil {
		val, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			s.metrics.NormalizerCall("cache", "hit")
			return val, nil
		case !errors.Is(err, cache.ErrMiss):
			common.LogWarn("正規化快取讀取失敗", zap.Error(err))
		}
	}

	var (
		name   string
		err    error
		source string
	)
	if prefer == PreferSemantic {
		source = "openrouter"
		name, err = s.semantic.Normalize(ctx, raw, opts)
	} else {
		source = "dictionary"
		name, err = s.dictionary.Normalize(ctx, raw, opts)
	}
	if err != nil {
		s.metrics.NormalizerCall(source, "error")
		return "", fmt.Errorf("normalize %q via %s: %w", raw, source, err)
	}
	s.metrics.NormalizerCall(source, "ok")

	name = common.CleanName(name)

	if s.store != nil {
		if err := s.store.Set(ctx, key, name); err != nil {
			common.LogWarn("正規化快取寫入失敗", zap.Error(err))
		}
	}

	return name, nil
}
