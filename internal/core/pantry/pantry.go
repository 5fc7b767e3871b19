// Package pantry 將庫存記錄轉成可用於食譜比對的食材集合。
package pantry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultExpiringDays 即將過期的天數上限（含）
const DefaultExpiringDays = 7

// Pantry 食材庫：available 為現有食材，expiring 為其中即將過期的部分
type Pantry struct {
	Available *OrderedSet `json:"available"`
	Expiring  *OrderedSet `json:"expiring"`
}

// New 創建食材庫，expiring 中的名稱會一併加入 available
func New(available []string, expiring []string) *Pantry {
	p := &Pantry{
		Available: NewOrderedSet(available...),
		Expiring:  NewOrderedSet(),
	}
	for _, name := range expiring {
		p.Available.Add(name)
		p.Expiring.Add(name)
	}
	return p
}

// NormalizationError 外部正規化失敗，整個請求應中止
type NormalizationError struct {
	Raw string
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %q: %v", e.Raw, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Builder 食材庫建構器
type Builder struct {
	normalizer   normalizer.Normalizer
	prefer       normalizer.Preference
	workers      int
	expiringDays int
	metrics      *metrics.Collector
}

// Option 建構器選項
type Option func(*Builder)

// WithWorkers 設定並行正規化的數量
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithExpiringDays 設定即將過期的天數上限
func WithExpiringDays(days int) Option {
	return func(b *Builder) {
		if days >= 0 {
			b.expiringDays = days
		}
	}
}

// WithPreference 設定預設的正規化策略
func WithPreference(p normalizer.Preference) Option {
	return func(b *Builder) {
		if p != "" {
			b.prefer = p
		}
	}
}

// WithMetrics 設定指標收集器
func WithMetrics(c *metrics.Collector) Option {
	return func(b *Builder) {
		b.metrics = c
	}
}

// NewBuilder 創建食材庫建構器
func NewBuilder(n normalizer.Normalizer, opts ...Option) *Builder {
	b := &Builder{
		normalizer:   n,
		prefer:       normalizer.PreferFuzzy,
		workers:      1,
		expiringDays: DefaultExpiringDays,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 以 Builder 的預設策略建立食材庫
func (b *Builder) Build(ctx context.Context, records []common.InventoryRecord) (*Pantry, error) {
	return b.BuildWith(ctx, records, b.prefer)
}

// BuildWith 建立食材庫。
// 有 canonical: 標籤的記錄直接使用標籤值，其餘呼叫正規化器；
// 相同的原始名稱在同一請求內只正規化一次。名稱為空的記錄會被略過。
func (b *Builder) BuildWith(ctx context.Context, records []common.InventoryRecord, prefer normalizer.Preference) (*Pantry, error) {
	start := time.Now()
	defer func() { b.metrics.ObservePantryBuild(time.Since(start)) }()

	if prefer == "" {
		prefer = b.prefer
	}

	names := make([]string, len(records))
	pending := make(map[string][]int)
	var order []string
	for i, rec := range records {
		if tag, ok := rec.CanonicalTag(); ok {
			names[i] = common.CleanName(tag)
			continue
		}
		if _, seen := pending[rec.ProductName]; !seen {
			order = append(order, rec.ProductName)
		}
		pending[rec.ProductName] = append(pending[rec.ProductName], i)
	}

	resolved, err := b.resolve(ctx, order, prefer)
	if err != nil {
		return nil, err
	}
	for raw, idxs := range pending {
		for _, i := range idxs {
			names[i] = resolved[raw]
		}
	}

	p := New(nil, nil)
	skipped := 0
	for i, rec := range records {
		name := names[i]
		if name == "" {
			skipped++
			continue
		}
		p.Available.Add(name)
		if rec.DaysUntilExpiry >= 0 && rec.DaysUntilExpiry <= b.expiringDays {
			p.Expiring.Add(name)
		}
	}

	common.LogDebug("食材庫建立完成",
		zap.Int("records", len(records)),
		zap.Int("normalized", len(order)),
		zap.Int("skipped", skipped),
		zap.Int("available", p.Available.Len()),
		zap.Int("expiring", p.Expiring.Len()),
	)

	return p, nil
}

// resolve 以固定數量的 worker 並行正規化，結果依原始名稱索引
func (b *Builder) resolve(ctx context.Context, raws []string, prefer normalizer.Preference) (map[string]string, error) {
	results := make(map[string]string, len(raws))
	if len(raws) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		raw  string
		name string
		err  error
	}

	jobs := make(chan string)
	out := make(chan result, len(raws))

	var wg sync.WaitGroup
	for w := 0; w < min(b.workers, len(raws)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range jobs {
				name, err := b.normalizer.Normalize(ctx, raw, normalizer.Options{Prefer: prefer})
				out <- result{raw: raw, name: common.CleanName(name), err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, raw := range raws {
			select {
			case jobs <- raw:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	var firstErr error
	for r := range out {
		if r.err != nil {
			if firstErr == nil {
				firstErr = &NormalizationError{Raw: r.raw, Err: r.err}
				cancel()
			}
			continue
		}
		results[r.raw] = r.name
	}

	if firstErr != nil {
		common.LogError("食材正規化失敗", zap.Error(firstErr))
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(results) != len(raws) {
		return nil, fmt.Errorf("normalization incomplete: %d of %d names resolved", len(results), len(raws))
	}
	return results, nil
}
