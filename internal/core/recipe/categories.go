package recipe

// category 一組可互相替代的標準食材名稱，只讀
type category map[string]struct{}

func newCategory(names ...string) category {
	c := make(category, len(names))
	for _, n := range names {
		c[n] = struct{}{}
	}
	return c
}

func (c category) has(name string) bool {
	_, ok := c[name]
	return ok
}

// union 合併多個分類
func union(cs ...category) category {
	out := category{}
	for _, c := range cs {
		for n := range c {
			out[n] = struct{}{}
		}
	}
	return out
}

// without 移除指定名稱
func (c category) without(names ...string) category {
	out := make(category, len(c))
	for n := range c {
		out[n] = struct{}{}
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

var (
	aromatics = newCategory("onion", "garlic", "ginger", "green chili", "shallot", "spring onion")

	vegetables = newCategory(
		"tomato", "potato", "sweet potato", "carrot", "bell pepper", "spinach", "cauliflower",
		"cabbage", "peas", "green beans", "broccoli", "mushroom", "zucchini", "eggplant",
		"corn", "cucumber", "lettuce", "kale", "beetroot", "pumpkin",
	)

	proteins = newCategory(
		"chicken", "paneer", "tofu", "egg", "fish", "prawn", "mutton", "beef", "pork", "turkey",
		"chickpeas", "lentils", "kidney beans", "sausage", "ham", "tuna",
	)

	herbs = newCategory("coriander", "basil", "mint", "parsley", "curry leaves", "dill")

	fruits = newCategory(
		"banana", "apple", "mango", "strawberry", "blueberry", "orange", "pineapple", "papaya",
		"avocado", "grapes", "kiwi",
	)

	// 有肉或海鮮的蛋白質，用於判斷 diet 標籤
	meats = newCategory(
		"chicken", "fish", "prawn", "mutton", "beef", "pork", "turkey", "sausage", "ham", "tuna",
	)

	tomatoOnly   = newCategory("tomato")
	pastaOnly    = newCategory("pasta")
	riceOnly     = newCategory("rice")
	eggOnly      = newCategory("egg")
	cheeseOnly   = newCategory("cheese")
	breads       = newCategory("tortilla", "pita", "bread")
	noodleCarbs  = newCategory("noodles", "rice")
	smoothieBase = newCategory("yogurt", "milk")
	smoothieAdds = newCategory("peanut butter", "oats")

	saladVegetables = newCategory(
		"lettuce", "cucumber", "tomato", "onion", "carrot", "bell pepper", "spinach", "corn",
		"kale", "beetroot",
	)

	roastables = newCategory(
		"potato", "sweet potato", "carrot", "bell pepper", "onion", "tomato", "zucchini",
		"eggplant", "cauliflower", "broccoli", "mushroom", "pumpkin", "beetroot",
	)
)
