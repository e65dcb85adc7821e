package catalog

import "github.com/Iphycodes/odg/pkg/enums"

func intPtr(n int) *int { return &n }

// Seed returns the stock storefront inventory.
func Seed() []Item {
	return []Item{
		{
			ID:          "1",
			Name:        "Dell Latitude 7440",
			Description: "Intel Core i5, 8GB RAM, 256GB SSD, 14-inch display.",
			Category:    "dell",
			Condition:   enums.ItemConditionUKUsed,
			SellerName:  "Odogwu Laptops",
			ImageURL:    "/images/dell-latitude-7440.jpg",
			UnitPrice:   14500000,
			Negotiable:  true,
			Tags:        []string{"dell", "latitude", "business"},
		},
		{
			ID:            "2",
			Name:          "Hp 840 g3",
			Description:   "Intel Core i5 6th gen, 8GB RAM, 256GB SSD, touchscreen.",
			Category:      "hp",
			Condition:     enums.ItemConditionUKUsed,
			SellerName:    "Odogwu Laptops",
			ImageURL:      "/images/hp-840-g3.jpg",
			UnitPrice:     22000000,
			Negotiable:    true,
			StockQuantity: intPtr(5),
			Tags:          []string{"hp", "elitebook"},
		},
		{
			ID:            "3",
			Name:          "Dell XPS 15",
			Description:   "Intel Core i7, 16GB RAM, 512GB SSD, 15.6-inch 4K display.",
			Category:      "dell",
			Condition:     enums.ItemConditionUKUsed,
			SellerName:    "Odogwu Laptops",
			ImageURL:      "/images/dell-xps-15.jpg",
			UnitPrice:     54000000,
			Negotiable:    true,
			StockQuantity: intPtr(2),
			Tags:          []string{"dell", "xps", "creator"},
		},
		{
			ID:          "4",
			Name:        "Hp 840 g5",
			Description: "Intel Core i5 8th gen, 16GB RAM, 512GB SSD, backlit keyboard.",
			Category:    "hp",
			Condition:   enums.ItemConditionUKUsed,
			SellerName:  "Odogwu Laptops",
			ImageURL:    "/images/hp-840-g5.jpg",
			UnitPrice:   40000000,
			Negotiable:  true,
			Tags:        []string{"hp", "elitebook"},
		},
	}
}
