package normalizer

// vocabulary 已知的標準食材名稱
var vocabulary = []string{
	// 辛香料
	"onion", "garlic", "ginger", "green chili", "shallot", "spring onion",
	// 蔬菜
	"tomato", "potato", "sweet potato", "carrot", "bell pepper", "spinach", "cauliflower",
	"cabbage", "peas", "green beans", "broccoli", "mushroom", "zucchini", "eggplant", "corn",
	"cucumber", "lettuce", "kale", "beetroot", "pumpkin",
	// 蛋白質
	"chicken", "paneer", "tofu", "egg", "fish", "prawn", "mutton", "beef", "pork", "turkey",
	"chickpeas", "lentils", "kidney beans", "sausage", "ham", "tuna",
	// 主食
	"rice", "pasta", "bread", "tortilla", "noodles", "oats", "pita",
	// 香草
	"coriander", "basil", "mint", "parsley", "curry leaves", "dill",
	// 乳製品
	"milk", "yogurt", "cheese", "butter", "cream", "ghee",
	// 水果
	"banana", "apple", "mango", "strawberry", "blueberry", "orange", "pineapple", "papaya",
	"lemon", "avocado", "grapes", "kiwi",
	// 常備調味
	"oil", "olive oil", "salt", "black pepper", "cumin", "turmeric", "garam masala",
	"chili powder", "soy sauce", "ketchup", "flour", "sugar", "vinegar", "honey",
	"peanut butter", "mayonnaise", "mustard",
}

// aliases 別名與地方用語對應到標準名稱
var aliases = map[string]string{
	"capsicum":          "bell pepper",
	"red pepper":        "bell pepper",
	"green pepper":      "bell pepper",
	"yellow pepper":     "bell pepper",
	"shimla mirch":      "bell pepper",
	"brinjal":           "eggplant",
	"aubergine":         "eggplant",
	"baingan":           "eggplant",
	"courgette":         "zucchini",
	"scallion":          "spring onion",
	"green onion":       "spring onion",
	"cilantro":          "coriander",
	"dhania":            "coriander",
	"curd":              "yogurt",
	"dahi":              "yogurt",
	"yoghurt":           "yogurt",
	"greek yogurt":      "yogurt",
	"eggs":              "egg",
	"anda":              "egg",
	"chicken breast":    "chicken",
	"chicken thigh":     "chicken",
	"chicken drumstick": "chicken",
	"shrimp":            "prawn",
	"spaghetti":         "pasta",
	"penne":             "pasta",
	"macaroni":          "pasta",
	"fusilli":           "pasta",
	"linguine":          "pasta",
	"basmati":           "rice",
	"basmati rice":      "rice",
	"brown rice":        "rice",
	"chawal":            "rice",
	"atta":              "flour",
	"maida":             "flour",
	"dal":               "lentils",
	"daal":              "lentils",
	"masoor":            "lentils",
	"chana":             "chickpeas",
	"garbanzo":          "chickpeas",
	"kabuli chana":      "chickpeas",
	"rajma":             "kidney beans",
	"aloo":              "potato",
	"pyaz":              "onion",
	"tamatar":           "tomato",
	"gobi":              "cauliflower",
	"phool gobi":        "cauliflower",
	"patta gobi":        "cabbage",
	"palak":             "spinach",
	"matar":             "peas",
	"green peas":        "peas",
	"tomato ketchup":    "ketchup",
	"chilli":            "green chili",
	"chili":             "green chili",
	"green chilli":      "green chili",
	"mirchi":            "green chili",
	"red chilli powder": "chili powder",
	"chilli powder":     "chili powder",
	"haldi":             "turmeric",
	"jeera":             "cumin",
	"wrap":              "tortilla",
	"wraps":             "tortilla",
	"pita bread":        "pita",
	"cheddar":           "cheese",
	"mozzarella":        "cheese",
	"parmesan":          "cheese",
	"cottage cheese":    "paneer",
	"mayo":              "mayonnaise",
	"pepper":            "black pepper",
	"kali mirch":        "black pepper",
	"sunflower oil":     "oil",
	"vegetable oil":     "oil",
	"mustard oil":       "oil",
	"lime":              "lemon",
	"nimbu":             "lemon",
	"kela":              "banana",
	"aam":               "mango",
	"keema":             "mutton",
	"lamb":              "mutton",
	"goat":              "mutton",
	"minced meat":       "mutton",
	"bacon":             "pork",
}

// noiseWords 品牌與包裝用語，比對前移除
var noiseWords = map[string]struct{}{
	"fresh": {}, "organic": {}, "premium": {}, "natural": {}, "pure": {}, "farm": {},
	"pack": {}, "packet": {}, "pouch": {}, "bottle": {}, "box": {}, "tin": {}, "jar": {},
	"can": {}, "canned": {}, "frozen": {}, "whole": {}, "raw": {}, "large": {}, "small": {},
	"medium": {}, "big": {}, "pc": {}, "pcs": {}, "piece": {}, "pieces": {}, "of": {},
	"the": {}, "and": {}, "with": {}, "new": {}, "family": {}, "value": {}, "classic": {},
	"amul": {}, "nestle": {}, "tata": {}, "britannia": {}, "mother": {}, "heritage": {},
	"nandini": {}, "fortune": {}, "aashirvaad": {}, "kissan": {}, "maggi": {}, "everest": {},
	"mdh": {}, "saffola": {}, "kirkland": {}, "barilla": {}, "kelloggs": {},
	"toned": {}, "double": {}, "full": {}, "homogenised": {}, "pasteurised": {},
}

// units 單獨出現的數量單位
var units = map[string]struct{}{
	"g": {}, "gm": {}, "gms": {}, "gram": {}, "grams": {}, "kg": {}, "kgs": {},
	"ml": {}, "l": {}, "ltr": {}, "litre": {}, "liter": {}, "oz": {}, "lb": {}, "lbs": {},
	"dozen": {}, "x": {},
}
