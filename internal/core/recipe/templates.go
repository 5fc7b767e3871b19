package recipe

import (
	"fmt"

	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"
)

// Template 固定的食譜模板：食材足夠時產生一份推薦，否則放棄
type Template struct {
	Name    string
	suggest func(p *pantry.Pantry) *common.RecipeSuggestion
}

// TrySuggest 以食材庫嘗試產生推薦，食材不足時回傳 false
func (t Template) TrySuggest(p *pantry.Pantry) (*common.RecipeSuggestion, bool) {
	s := t.suggest(p)
	return s, s != nil
}

// Catalog 返回固定的模板清單，順序也是排序時最後的平手依據
func Catalog() []Template {
	return []Template{
		{Name: "curry", suggest: curry},
		{Name: "stir-fry", suggest: stirFry},
		{Name: "pasta", suggest: pasta},
		{Name: "omelet", suggest: omelet},
		{Name: "fried-rice", suggest: friedRice},
		{Name: "salad", suggest: salad},
		{Name: "soup", suggest: soup},
		{Name: "wrap", suggest: wrapOrSandwich},
		{Name: "traybake", suggest: traybake},
		{Name: "smoothie", suggest: smoothie},
	}
}

// curry 至少需要番茄、一種蔬菜或一種蛋白質
func curry(p *pantry.Pantry) *common.RecipeSuggestion {
	tomato := pickOne(p, tomatoOnly)
	veg := pickMany(p, vegetables, 2, "tomato")
	protein := pickOne(p, proteins)
	if tomato == "" && len(veg) == 0 && protein == "" {
		return nil
	}
	aroma := pickMany(p, aromatics, 2)
	herb := pickOne(p, newCategory("coriander", "curry leaves"))

	name := "Tomato Curry"
	switch {
	case protein != "":
		name = title(protein) + " Curry"
	case len(veg) > 0:
		name = "Mixed Vegetable Curry"
		if len(veg) == 1 {
			name = title(veg[0]) + " Curry"
		}
	}

	used := concat(aroma, one(tomato), veg, one(protein), one(herb))
	base := listPhrase(concat(aroma, one(tomato)))
	if base == "" {
		base = "the spices"
	}

	return build(p, dish{
		prefix:    "curry",
		title:     name,
		cuisine:   "Indian",
		diet:      dietFor(used),
		totalTime: 35,
		used:      used,
		amounts:   map[string]string{"onion": "1, finely chopped", "tomato": "2, pureed", "garlic": "3 cloves", "ginger": "1 inch"},
		staples:   []string{"oil", "salt", "turmeric", "garam masala", "chili powder"},
		instructions: []string{
			fmt.Sprintf("Heat oil and sauté %s until soft.", base),
			"Add turmeric, chili powder and salt; cook until the oil separates.",
			fmt.Sprintf("Add %s with a cup of water and simmer for 20 minutes.", orDefault(listPhrase(concat(veg, one(protein))), "the masala")),
			fmt.Sprintf("Finish with garam masala%s.", garnish(herb)),
		},
	})
}

// stirFry 至少需要兩種蔬菜或蛋白質
func stirFry(p *pantry.Pantry) *common.RecipeSuggestion {
	main := pickMany(p, union(vegetables, proteins).without("potato", "sweet potato", "lentils", "chickpeas", "kidney beans"), 4)
	if len(main) < 2 {
		return nil
	}
	aroma := pickMany(p, newCategory("garlic", "ginger", "spring onion", "green chili"), 2)
	carb := pickOne(p, noodleCarbs)

	name := title(main[0]) + " Stir-Fry"
	if carb == "noodles" {
		name = title(main[0]) + " Stir-Fried Noodles"
	}

	used := concat(main, aroma, one(carb))
	serve := "Serve hot."
	if carb != "" {
		serve = fmt.Sprintf("Toss with cooked %s and serve hot.", carb)
	}

	return build(p, dish{
		prefix:    "stirfry",
		title:     name,
		cuisine:   "Asian",
		diet:      dietFor(used),
		totalTime: 20,
		used:      used,
		staples:   []string{"oil", "soy sauce", "salt"},
		instructions: []string{
			fmt.Sprintf("Slice %s into bite-sized pieces.", listPhrase(main)),
			fmt.Sprintf("Heat oil on high and stir-fry %s for 30 seconds.", orDefault(listPhrase(aroma), "the pan")),
			"Add everything else and cook for 5 to 7 minutes, keeping the vegetables crisp.",
			"Season with soy sauce and salt. " + serve,
		},
	})
}

// pasta 必須有義大利麵
func pasta(p *pantry.Pantry) *common.RecipeSuggestion {
	noodle := pickOne(p, pastaOnly)
	if noodle == "" {
		return nil
	}
	tomato := pickOne(p, tomatoOnly)
	aroma := pickMany(p, newCategory("garlic", "onion", "shallot"), 2)
	veg := pickMany(p, vegetables.without("potato", "sweet potato", "cucumber", "lettuce"), 2, "tomato")
	protein := pickOne(p, newCategory("chicken", "prawn", "sausage", "tuna", "ham"))
	herb := pickOne(p, newCategory("basil", "parsley"))
	cheese := pickOne(p, cheeseOnly)

	var name string
	switch {
	case tomato != "":
		name = "Simple Tomato Pasta"
	case cheese != "":
		name = "Cheesy Pasta"
	case len(veg) > 0:
		name = "Pasta with " + title(veg[0])
	default:
		name = "Garlic Olive Oil Pasta"
	}

	used := concat(one(noodle), one(tomato), aroma, veg, one(protein), one(herb), one(cheese))
	sauce := listPhrase(concat(aroma, one(tomato), veg, one(protein)))

	return build(p, dish{
		prefix:    "pasta",
		title:     name,
		cuisine:   "Italian",
		diet:      dietFor(used),
		totalTime: 25,
		used:      used,
		amounts:   map[string]string{"pasta": "200 g", "tomato": "3, chopped", "garlic": "2 cloves, sliced"},
		staples:   []string{"olive oil", "salt", "black pepper"},
		instructions: []string{
			"Boil the pasta in salted water until al dente; keep a cup of the water.",
			fmt.Sprintf("Warm olive oil and cook %s until saucy.", orDefault(sauce, "a little black pepper")),
			"Toss the pasta in the pan, loosening with pasta water.",
			fmt.Sprintf("Serve%s.", garnish(concat(one(herb), one(cheese))...)),
		},
	})
}

// omelet 必須有蛋
func omelet(p *pantry.Pantry) *common.RecipeSuggestion {
	egg := pickOne(p, eggOnly)
	if egg == "" {
		return nil
	}
	fill := pickMany(p, newCategory("onion", "tomato", "spinach", "bell pepper", "mushroom", "green chili", "spring onion"), 3)
	cheese := pickOne(p, cheeseOnly)
	herb := pickOne(p, newCategory("coriander", "parsley", "dill"))

	name := "Classic Omelet"
	switch {
	case contains(fill, "green chili") || (contains(fill, "onion") && contains(fill, "tomato")):
		name = "Masala Omelet"
	case cheese != "":
		name = "Cheese Omelet"
	case len(fill) > 0:
		name = title(fill[0]) + " Omelet"
	}

	used := concat(one(egg), fill, one(cheese), one(herb))

	return build(p, dish{
		prefix:    "omelet",
		title:     name,
		cuisine:   "Continental",
		diet:      dietFor(used),
		totalTime: 10,
		used:      used,
		amounts:   map[string]string{"egg": "2, beaten"},
		staples:   []string{"oil", "salt", "black pepper"},
		instructions: []string{
			"Beat the eggs with salt and black pepper.",
			fmt.Sprintf("Cook %s in a little oil for 2 minutes.", orDefault(listPhrase(fill), "nothing else, just heat the oil")),
			"Pour in the eggs and cook on low until just set.",
			fmt.Sprintf("Fold and serve%s.", garnish(concat(one(cheese), one(herb))...)),
		},
	})
}

// friedRice 必須有米飯
func friedRice(p *pantry.Pantry) *common.RecipeSuggestion {
	rice := pickOne(p, riceOnly)
	if rice == "" {
		return nil
	}
	veg := pickMany(p, newCategory("carrot", "peas", "bell pepper", "corn", "green beans", "cabbage", "spring onion", "onion", "mushroom"), 3)
	protein := pickOne(p, newCategory("egg", "chicken", "prawn", "tofu", "paneer", "ham"))
	aroma := pickMany(p, newCategory("garlic", "ginger"), 2)

	name := "Vegetable Fried Rice"
	switch {
	case protein != "":
		name = title(protein) + " Fried Rice"
	case len(veg) == 0:
		name = "Garlic Fried Rice"
	}

	used := concat(one(rice), veg, one(protein), aroma)

	return build(p, dish{
		prefix:    "friedrice",
		title:     name,
		cuisine:   "Indo-Chinese",
		diet:      dietFor(used),
		totalTime: 20,
		used:      used,
		amounts:   map[string]string{"rice": "2 cups, cooked and cooled"},
		staples:   []string{"oil", "soy sauce", "salt"},
		instructions: []string{
			fmt.Sprintf("Heat oil on high and fry %s briefly.", orDefault(listPhrase(aroma), "a pinch of salt")),
			fmt.Sprintf("Add %s and stir-fry for 3 minutes.", orDefault(listPhrase(concat(veg, one(protein))), "the rice")),
			"Add the cold rice and toss until every grain is hot.",
			"Season with soy sauce and salt.",
		},
	})
}

// salad 至少需要兩種沙拉蔬菜
func salad(p *pantry.Pantry) *common.RecipeSuggestion {
	veg := pickMany(p, saladVegetables, 4)
	if len(veg) < 2 {
		return nil
	}
	protein := pickOne(p, newCategory("chickpeas", "paneer", "egg", "chicken", "tofu", "tuna", "kidney beans"))
	herb := pickOne(p, newCategory("mint", "coriander", "parsley", "basil", "dill"))
	extra := pickOne(p, newCategory("cheese", "avocado"))

	name := "Garden Salad"
	if protein != "" {
		name = title(protein) + " Salad"
	}

	used := concat(veg, one(protein), one(extra), one(herb))

	return build(p, dish{
		prefix:    "salad",
		title:     name,
		cuisine:   "Mediterranean",
		diet:      dietFor(used),
		totalTime: 10,
		used:      used,
		staples:   []string{"olive oil", "lemon", "salt", "black pepper"},
		instructions: []string{
			fmt.Sprintf("Chop %s.", listPhrase(veg)),
			fmt.Sprintf("Add %s.", orDefault(listPhrase(concat(one(protein), one(extra))), "a handful of anything crunchy")),
			"Dress with olive oil, lemon juice, salt and black pepper.",
			fmt.Sprintf("Toss and serve%s.", garnish(herb)),
		},
	})
}

// soup 需要至少一種蔬菜，且蔬菜加辛香料至少兩種
func soup(p *pantry.Pantry) *common.RecipeSuggestion {
	veg := pickMany(p, vegetables.without("lettuce", "cucumber"), 3)
	aroma := pickMany(p, newCategory("onion", "garlic", "ginger", "shallot"), 2)
	if len(veg) == 0 || len(veg)+len(aroma) < 2 {
		return nil
	}
	protein := pickOne(p, newCategory("lentils", "chicken", "chickpeas", "kidney beans"))
	dairy := pickOne(p, newCategory("cream", "butter"))

	name := title(veg[0]) + " Soup"
	if len(veg) > 1 {
		name = "Mixed Vegetable Soup"
	}
	if protein != "" {
		name = title(protein) + " & Vegetable Soup"
	}

	used := concat(veg, aroma, one(protein), one(dairy))

	return build(p, dish{
		prefix:    "soup",
		title:     name,
		cuisine:   "Continental",
		diet:      dietFor(used),
		totalTime: 30,
		used:      used,
		staples:   []string{"oil", "salt", "black pepper"},
		instructions: []string{
			fmt.Sprintf("Sweat %s in oil until translucent.", orDefault(listPhrase(aroma), listPhrase(veg[:1]))),
			fmt.Sprintf("Add %s and 4 cups of water.", listPhrase(concat(veg, one(protein)))),
			"Simmer for 20 minutes, then blend until smooth or leave chunky.",
			fmt.Sprintf("Season with salt and black pepper%s.", stirIn(dairy)),
		},
	})
}

// wrapOrSandwich 需要麵包或餅皮加上至少一種餡料
func wrapOrSandwich(p *pantry.Pantry) *common.RecipeSuggestion {
	base := pickOne(p, breads)
	if base == "" {
		return nil
	}
	protein := pickOne(p, proteins.without("lentils", "kidney beans"))
	veg := pickMany(p, newCategory("lettuce", "tomato", "cucumber", "onion", "bell pepper", "spinach"), 3)
	cheese := pickOne(p, cheeseOnly)
	if protein == "" && len(veg) == 0 && cheese == "" {
		return nil
	}

	filling := "Veggie"
	switch {
	case protein != "":
		filling = title(protein)
	case cheese != "":
		filling = "Cheese"
	}
	kind, prefix := "Sandwich", "sandwich"
	if base != "bread" {
		kind, prefix = "Wrap", "wrap"
	}

	used := concat(one(base), one(protein), veg, one(cheese))

	return build(p, dish{
		prefix:    prefix,
		title:     filling + " " + kind,
		cuisine:   "Continental",
		diet:      dietFor(used),
		totalTime: 15,
		used:      used,
		staples:   []string{"mayonnaise", "salt", "black pepper"},
		instructions: []string{
			fmt.Sprintf("Warm the %s on a dry pan.", base),
			fmt.Sprintf("Spread with mayonnaise and layer %s.", listPhrase(concat(one(protein), veg, one(cheese)))),
			"Season with salt and black pepper.",
			"Roll or close it up, cut in half and serve.",
		},
	})
}

// traybake 兩種可烤蔬菜，或一種可烤蔬菜加一種蛋白質
func traybake(p *pantry.Pantry) *common.RecipeSuggestion {
	roast := pickMany(p, roastables, 4)
	protein := pickOne(p, newCategory("chicken", "paneer", "tofu", "fish", "chickpeas", "sausage"))
	if len(roast) < 2 && (len(roast) == 0 || protein == "") {
		return nil
	}
	garlic := pickOne(p, newCategory("garlic"))
	herb := pickOne(p, newCategory("parsley", "basil", "dill"))

	name := "Roasted Vegetable Traybake"
	if protein != "" {
		name = title(protein) + " & Vegetable Traybake"
	}

	used := concat(roast, one(protein), one(garlic), one(herb))

	return build(p, dish{
		prefix:    "traybake",
		title:     name,
		cuisine:   "Continental",
		diet:      dietFor(used),
		totalTime: 45,
		used:      used,
		staples:   []string{"olive oil", "salt", "black pepper"},
		instructions: []string{
			"Heat the oven to 200°C.",
			fmt.Sprintf("Cut %s into even chunks.", listPhrase(concat(roast, one(protein)))),
			fmt.Sprintf("Toss with olive oil, salt, black pepper%s on a tray.", and(garlic)),
			fmt.Sprintf("Roast for 35 to 40 minutes, turning once%s.", garnish(herb)),
		},
	})
}

// smoothie 至少需要一種水果
func smoothie(p *pantry.Pantry) *common.RecipeSuggestion {
	fruit := pickMany(p, fruits, 2)
	if len(fruit) == 0 {
		return nil
	}
	base := pickOne(p, smoothieBase)
	extra := pickOne(p, smoothieAdds)

	name := title(fruit[0]) + " Smoothie"
	if len(fruit) > 1 {
		name = title(fruit[0]) + " " + title(fruit[1]) + " Smoothie"
	}

	used := concat(fruit, one(base), one(extra))

	return build(p, dish{
		prefix:    "smoothie",
		title:     name,
		cuisine:   "Global",
		diet:      dietFor(used),
		totalTime: 5,
		used:      used,
		amounts:   map[string]string{"milk": "1 cup", "yogurt": "1 cup"},
		staples:   []string{"honey"},
		instructions: []string{
			fmt.Sprintf("Peel and chop %s.", listPhrase(fruit)),
			fmt.Sprintf("Blend with %s and a spoon of honey.", orDefault(listPhrase(concat(one(base), one(extra))), "a cup of cold water")),
			"Serve immediately.",
		},
	})
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func garnish(names ...string) string {
	if s := listPhrase(names); s != "" {
		return ", topped with " + s
	}
	return ""
}

func stirIn(name string) string {
	if name == "" {
		return ""
	}
	return ", then stir in the " + name
}

func and(name string) string {
	if name == "" {
		return ""
	}
	return " and " + name
}
