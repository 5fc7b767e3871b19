package normalizer

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// quantityPattern 數量與單位黏在一起的寫法，例如 1l、500g、2x
var quantityPattern = regexp.MustCompile(`^\d+([.,]\d+)?[a-z]*$`)

// Dictionary 以詞彙表與模糊比對進行正規化，不需要外部服務
type Dictionary struct {
	canonical map[string]string
	terms     []string
	threshold int
}

// NewDictionary 創建詞彙表正規化器，threshold 為模糊比對允許的最大編輯距離
func NewDictionary(threshold int) *Dictionary {
	d := &Dictionary{
		canonical: make(map[string]string, len(vocabulary)+len(aliases)),
		threshold: threshold,
	}
	for _, name := range vocabulary {
		d.canonical[name] = name
	}
	for alias, name := range aliases {
		d.canonical[alias] = name
	}
	for term := range d.canonical {
		d.terms = append(d.terms, term)
	}
	return d
}

// Normalize 將原始商品名稱轉為標準食材名稱；無法比對時回傳清理後的原文
func (d *Dictionary) Normalize(ctx context.Context, raw string, _ Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.normalize(raw), nil
}

func (d *Dictionary) normalize(raw string) string {
	folded := foldText(raw)
	if folded == "" {
		return ""
	}
	if name, ok := d.lookup(folded); ok {
		return name
	}

	tokens := meaningfulTokens(folded)
	if len(tokens) == 0 {
		return ""
	}
	phrase := strings.Join(tokens, " ")
	if name, ok := d.lookup(phrase); ok {
		return name
	}

	// 由右至左找雙字詞、單字詞，商品名稱的主名詞通常在最後
	for size := 2; size >= 1; size-- {
		for i := len(tokens) - size; i >= 0; i-- {
			if name, ok := d.lookup(strings.Join(tokens[i:i+size], " ")); ok {
				return name
			}
		}
	}

	if name, ok := d.fuzzy(phrase, tokens); ok {
		return name
	}

	return phrase
}

// lookup 精確比對，含簡單的複數還原
func (d *Dictionary) lookup(term string) (string, bool) {
	if name, ok := d.canonical[term]; ok {
		return name, true
	}
	if single := singularize(term); single != term {
		if name, ok := d.canonical[single]; ok {
			return name, true
		}
	}
	return "", false
}

// fuzzy 以編輯距離找最接近的詞
func (d *Dictionary) fuzzy(phrase string, tokens []string) (string, bool) {
	candidates := append([]string{phrase}, tokens...)

	bestName := ""
	bestDist := -1
	for _, cand := range candidates {
		allowed := d.allowedDistance(cand)
		if allowed == 0 {
			continue
		}
		short := utf8.RuneCountInString(cand) < longTermRunes
		first, _ := utf8.DecodeRuneInString(cand)
		for _, term := range d.terms {
			// 短字只比對同字首的詞，"beer" 不能變成 "beef"
			if short {
				if r, _ := utf8.DecodeRuneInString(term); r != first {
					continue
				}
			}
			dist := levenshtein(cand, term)
			if dist > allowed {
				continue
			}
			if bestDist == -1 || dist < bestDist || (dist == bestDist && d.canonical[term] < bestName) {
				bestName = d.canonical[term]
				bestDist = dist
			}
		}
	}
	return bestName, bestDist != -1
}

// 模糊比對的字長門檻
const (
	minFuzzyRunes = 5
	longTermRunes = 7
)

// allowedDistance 四個字以下不做模糊比對，避免 "pear" 變成 "peas"
func (d *Dictionary) allowedDistance(term string) int {
	n := utf8.RuneCountInString(term)
	switch {
	case n < minFuzzyRunes:
		return 0
	case n < longTermRunes:
		return min(1, d.threshold)
	default:
		return d.threshold
	}
}

// foldText NFKC 正規化、轉小寫並把標點換成空白
func foldText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '’':
			return -1
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			return r
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// meaningfulTokens 移除數量、單位與品牌雜訊
func meaningfulTokens(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if quantityPattern.MatchString(f) {
			continue
		}
		if _, ok := units[f]; ok {
			continue
		}
		if _, ok := noiseWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// singularize 簡易複數還原，只處理最後一個字
func singularize(term string) string {
	head, last := "", term
	if i := strings.LastIndex(term, " "); i >= 0 {
		head, last = term[:i+1], term[i+1:]
	}
	switch {
	case len(last) > 4 && strings.HasSuffix(last, "ies"):
		last = strings.TrimSuffix(last, "ies") + "y"
	case len(last) > 4 && strings.HasSuffix(last, "oes"):
		last = strings.TrimSuffix(last, "es")
	case len(last) > 3 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss"):
		last = strings.TrimSuffix(last, "s")
	}
	return head + last
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}
