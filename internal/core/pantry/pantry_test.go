package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowerNormalizer 只做小寫處理並記錄呼叫次數
type lowerNormalizer struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

func newLowerNormalizer() *lowerNormalizer {
	return &lowerNormalizer{calls: map[string]int{}, fail: map[string]error{}}
}

func (n *lowerNormalizer) Normalize(ctx context.Context, raw string, _ normalizer.Options) (string, error) {
	n.mu.Lock()
	n.calls[raw]++
	err := n.fail[raw]
	n.mu.Unlock()
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}

func (n *lowerNormalizer) total() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	sum := 0
	for _, c := range n.calls {
		sum += c
	}
	return sum
}

func rec(name string, days int, tags ...string) common.InventoryRecord {
	return common.InventoryRecord{ProductName: name, DaysUntilExpiry: days, Tags: tags}
}

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet("tomato", "onion", "tomato")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("onion"))
	assert.False(t, s.Has("garlic"))
	assert.False(t, s.Add("onion"))
	assert.True(t, s.Add("garlic"))
	assert.Equal(t, []string{"tomato", "onion", "garlic"}, s.Items())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["tomato","onion","garlic"]`, string(data))

	var nilSet *OrderedSet
	assert.Zero(t, nilSet.Len())
	assert.False(t, nilSet.Has("x"))
	assert.Empty(t, nilSet.Items())
}

func TestBuild_ExpiringWindow(t *testing.T) {
	b := NewBuilder(newLowerNormalizer())

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("Tomato", 0),
		rec("Onion", 7),
		rec("Rice", 8),
		rec("Milk", -1),
		rec("Yogurt", 3),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tomato", "onion", "rice", "milk", "yogurt"}, p.Available.Items())
	assert.Equal(t, []string{"tomato", "onion", "yogurt"}, p.Expiring.Items())
}

func TestBuild_ExpiringIsSubsetOfAvailable(t *testing.T) {
	b := NewBuilder(newLowerNormalizer(), WithWorkers(3))

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("Garlic", 2), rec("Carrot", 20), rec("garlic", 30), rec("Paneer", 1),
	})
	require.NoError(t, err)

	for _, name := range p.Expiring.Items() {
		assert.True(t, p.Available.Has(name), name)
	}
	// 同名食材只要有一筆即將過期就算
	assert.True(t, p.Expiring.Has("garlic"))
	assert.Equal(t, []string{"garlic", "carrot", "paneer"}, p.Available.Items())
}

func TestBuild_CanonicalTagSkipsNormalizer(t *testing.T) {
	n := newLowerNormalizer()
	b := NewBuilder(n)

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("Amul Taaza Toned Milk 500ml", 2, "dairy", "canonical:Milk"),
		rec("Onion", 10),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"milk", "onion"}, p.Available.Items())
	assert.Equal(t, []string{"milk"}, p.Expiring.Items())
	assert.Zero(t, n.calls["Amul Taaza Toned Milk 500ml"])
}

func TestBuild_EmptyCanonicalTagFallsBackToProductName(t *testing.T) {
	n := newLowerNormalizer()
	b := NewBuilder(n)

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("Tomato", 2, "canonical:"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tomato"}, p.Available.Items())
	assert.Equal(t, []string{"tomato"}, p.Expiring.Items())
	assert.Equal(t, 1, n.calls["Tomato"])
}

func TestBuild_SkipsEmptyNames(t *testing.T) {
	b := NewBuilder(newLowerNormalizer())

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("   ", 1), rec("Egg", 1), rec("", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"egg"}, p.Available.Items())
}

func TestBuild_DeduplicatesRawNames(t *testing.T) {
	n := newLowerNormalizer()
	b := NewBuilder(n, WithWorkers(4))

	records := []common.InventoryRecord{
		rec("Tomato", 1), rec("Tomato", 5), rec("Onion", 2), rec("Tomato", 9), rec("Onion", 3),
	}
	p, err := b.Build(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 2, n.total())
	assert.Equal(t, []string{"tomato", "onion"}, p.Available.Items())
}

func TestBuild_OrderIsStableUnderConcurrency(t *testing.T) {
	var records []common.InventoryRecord
	var want []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		records = append(records, rec(strings.ToUpper(name), 1))
		want = append(want, name)
	}

	for i := 0; i < 20; i++ {
		p, err := NewBuilder(newLowerNormalizer(), WithWorkers(8)).Build(context.Background(), records)
		require.NoError(t, err)
		assert.Equal(t, want, p.Available.Items())
	}
}

func TestBuild_NormalizerErrorAbortsBuild(t *testing.T) {
	boom := errors.New("upstream down")
	n := newLowerNormalizer()
	n.fail["Mystery Box"] = boom

	p, err := NewBuilder(n, WithWorkers(2)).Build(context.Background(), []common.InventoryRecord{
		rec("Tomato", 1), rec("Mystery Box", 1), rec("Onion", 1),
	})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, boom)

	var nerr *NormalizationError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "Mystery Box", nerr.Raw)
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder(normalizer.NewDictionary(2)).Build(ctx, []common.InventoryRecord{rec("Tomato", 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_EmptyInventory(t *testing.T) {
	p, err := NewBuilder(newLowerNormalizer()).Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, p.Available.Len())
	assert.Zero(t, p.Expiring.Len())
}

func TestBuild_WithDictionary(t *testing.T) {
	b := NewBuilder(normalizer.NewDictionary(2), WithExpiringDays(3))

	p, err := b.Build(context.Background(), []common.InventoryRecord{
		rec("Amul Fresh Milk 1L", 2),
		rec("Tomatoes", 5),
		rec("Capsicum (Green)", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "tomato", "bell pepper"}, p.Available.Items())
	assert.Equal(t, []string{"milk", "bell pepper"}, p.Expiring.Items())
}

func TestNew(t *testing.T) {
	p := New([]string{"rice"}, []string{"tomato"})
	assert.Equal(t, []string{"rice", "tomato"}, p.Available.Items())
	assert.Equal(t, []string{"tomato"}, p.Expiring.Items())
}
