package domain

import "strings"

// categoryMap folds feed category names into the storefront's categories
var categoryMap = map[string]string{
	"electronics":      "electronics",
	"men's clothing":   "fashion",
	"women's clothing": "fashion",
	"jewelery":         "fashion",
	"books":            "books",
	"gaming":           "gaming",
	"beauty":           "beauty",
	"furniture":        "furniture",
	"grocery":          "grocery",
}

// NormalizeCategory maps a category through the fixed table. Unmapped names pass through lower-cased.
func NormalizeCategory(category string) string {
	lower := strings.ToLower(strings.TrimSpace(category))
	if mapped, ok := categoryMap[lower]; ok {
		return mapped
	}
	return lower
}
