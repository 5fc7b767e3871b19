package pantry

import "encoding/json"

// OrderedSet 依插入順序迭代的字串集合
type OrderedSet struct {
	items []string
	index map[string]struct{}
}

// NewOrderedSet 創建集合並依序加入元素
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add 加入元素，重複的元素保留第一次出現的位置
func (s *OrderedSet) Add(item string) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Has 判斷元素是否存在
func (s *OrderedSet) Has(item string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[item]
	return ok
}

// Len 元素數量
func (s *OrderedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items 依插入順序返回元素的副本
func (s *OrderedSet) Items() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// MarshalJSON 序列化為陣列
func (s *OrderedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}
