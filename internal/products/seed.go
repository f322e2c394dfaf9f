package product

import "github.com/shopspring/decimal"

// DefaultCatalog is the dev catalog loaded when BAKERY_SEED_CATALOG is set.
func DefaultCatalog() []ProductDTO {
	return []ProductDTO{
		{
			ID:          "country-sourdough",
			Name:        "Country Sourdough",
			Description: "Naturally leavened loaf with a crackling crust.",
			Price:       decimal.RequireFromString("9.00"),
			Allergens:   []string{"wheat"},
			Quantity:    12,
			Tags:        []string{"bread", "vegan"},
			Enabled:     true,
			Featured:    true,
			Image:       "https://keepersathome.com/images/country-sourdough.jpg",
		},
		{
			ID:          "butter-croissant",
			Name:        "Butter Croissant",
			Description: "Laminated by hand over three days.",
			Price:       decimal.RequireFromString("4.25"),
			Allergens:   []string{"wheat", "dairy", "eggs"},
			Quantity:    4,
			Tags:        []string{"pastry"},
			Enabled:     true,
			Featured:    true,
			Image:       "https://keepersathome.com/images/butter-croissant.jpg",
		},
		{
			ID:          "blueberry-muffin",
			Name:        "Blueberry Muffin",
			Description: "Wild blueberries and a brown sugar crumb.",
			Price:       decimal.RequireFromString("3.50"),
			Allergens:   []string{"wheat", "dairy", "eggs"},
			Quantity:    18,
			Tags:        []string{"pastry", "breakfast"},
			Enabled:     true,
			Image:       "https://keepersathome.com/images/blueberry-muffin.jpg",
		},
		{
			ID:          "almond-biscotti",
			Name:        "Almond Biscotti",
			Description: "Twice baked, sold by the half dozen.",
			Price:       decimal.RequireFromString("7.50"),
			Allergens:   []string{"wheat", "eggs", "tree nuts"},
			Quantity:    9,
			Tags:        []string{"cookies"},
			Enabled:     true,
			Image:       "https://keepersathome.com/images/almond-biscotti.jpg",
		},
		{
			ID:          "pumpkin-loaf",
			Name:        "Pumpkin Loaf",
			Description: "Seasonal quick bread with warm spices.",
			Price:       decimal.RequireFromString("11.00"),
			Allergens:   []string{"wheat", "eggs"},
			Quantity:    0,
			Tags:        []string{"seasonal"},
			Enabled:     false,
			Image:       "https://keepersathome.com/images/pumpkin-loaf.jpg",
		},
	}
}
