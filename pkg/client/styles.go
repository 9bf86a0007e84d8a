package client

// Product categories a gift box draws from. Mirrors the server catalog.
const (
	CategoryPackaging     = "packaging"
	CategoryBeverages     = "beverages"
	CategoryFood          = "food"
	CategoryKitchenware   = "kitchenware"
	CategoryHomeDecor     = "home decor"
	CategoryFaceAndBody   = "face & body"
	CategoryClothing      = "clothing"
	CategoryCustomization = "customization"
	CategoryOthers        = "others"
)

// styleCategories maps each preset style to the content categories its gift
// box is filled from.
var styleCategories = map[string][]string{
	"Modern Romantic":  {CategoryPackaging, CategoryBeverages, CategoryFood},
	"Classic Elegance": {CategoryPackaging, CategoryKitchenware, CategoryHomeDecor},
	"Cozy Comfort":     {CategoryPackaging, CategoryClothing, CategoryBeverages},
	"Spa Retreat":      {CategoryPackaging, CategoryFaceAndBody, CategoryBeverages},
	"Gourmet Delight":  {CategoryPackaging, CategoryFood, CategoryKitchenware},
}

// legacySKUAliases maps historical product display names to catalog SKUs.
// Entries are consulted only when the live catalog has no match for a name.
var legacySKUAliases = map[string]string{
	"Birthday Card":         "BC123",
	"Classic Wine Bottle":   "WB201",
	"Artisan Chocolate Box": "CH310",
	"Scented Candle":        "SC405",
	"Ceramic Mug":           "MG550",
	"Knitted Blanket":       "KB720",
	"Lavender Soap Bar":     "LS815",
	"Gift Wrap Ribbon":      "GR901",
}

// StyleCategories returns the content categories for a preset style, or nil
// when the style is unknown.
func StyleCategories(style string) []string {

	categories, ok := styleCategories[style]
	if !ok {
		return nil
	}

	out := make([]string, len(categories))
	copy(out, categories)

	return out
}

// Styles lists the preset style names.
func Styles() []string {

	names := make([]string, 0, len(styleCategories))
	for name := range styleCategories {
		names = append(names, name)
	}

	return names
}

// LegacySKU resolves a historical product name to its SKU.
func LegacySKU(name string) (string, bool) {
	sku, ok := legacySKUAliases[name]
	return sku, ok
}
