package main

import "wardrobe/pkg/model"

func ptr[T any](v T) *T { return &v }

var sampleCostumes = []model.CostumeCreate{
	{
		Name:        "Victorian Era Gown",
		Description: "Elegant Victorian-era gown with intricate lace details and corset bodice. Perfect for period dramas and historical performances.",
		Category:    "Period",
		Sizes:       []string{"S", "M", "L"},
		Images:      []string{"https://images.unsplash.com/photo-1660862903579-d48ab8cf7803"},
		PricePerDay: ptr(150.0),
	},
	{
		Name:        "Ballet Tutu - Swan Lake",
		Description: "Professional ballet tutu with layered tulle and embellished bodice. Ideal for classical ballet performances.",
		Category:    "Classical",
		Sizes:       []string{"XS", "S", "M"},
		Images:      []string{"https://images.unsplash.com/photo-1745282794652-b30c49cf35b8"},
		PricePerDay: ptr(120.0),
	},
	{
		Name:        "Renaissance Nobleman Attire",
		Description: "Luxurious Renaissance costume with velvet doublet, breeches, and cape. Authentic details for historical accuracy.",
		Category:    "Period",
		Sizes:       []string{"M", "L", "XL"},
		Images:      []string{"https://images.unsplash.com/photo-1715019450175-ce526f39f133"},
		PricePerDay: ptr(180.0),
	},
	{
		Name:        "Modern Dramatic Ensemble",
		Description: "Contemporary theatrical costume with dramatic silhouette. Perfect for modern performances and avant-garde productions.",
		Category:    "Modern",
		Sizes:       []string{"S", "M", "L"},
		Images:      []string{"https://images.unsplash.com/photo-1647187835067-a58451e3edf6"},
		PricePerDay: ptr(100.0),
	},
	{
		Name:        "Shakespearean Hamlet Costume",
		Description: "Classic Shakespearean costume inspired by Hamlet productions. Includes tunic, cape, and period-appropriate accessories.",
		Category:    "Classical",
		Sizes:       []string{"M", "L"},
		Images:      []string{"https://images.unsplash.com/photo-1707547707885-f8e23fc58192"},
		PricePerDay: ptr(140.0),
	},
	{
		Name:        "Fantasy Enchanted Forest",
		Description: "Ethereal fantasy costume with flowing fabrics and mystical elements. Ideal for fairy tale and fantasy productions.",
		Category:    "Fantasy",
		Sizes:       []string{"S", "M", "L"},
		Images:      []string{"https://images.unsplash.com/photo-1660862903579-d48ab8cf7803"},
		PricePerDay: ptr(110.0),
		Available:   ptr(false),
	},
}
