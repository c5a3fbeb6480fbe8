package catalog

import (
	"errors"
	"fmt"

	"github.com/raushankrgupta/nyakazi-storefront/models"
)

var ErrUnknownCategory = errors.New("unknown category")

// CategoryInfo describes a category shown in the shop filter panel
type CategoryInfo struct {
	ID    models.Category `json:"id"`
	Name  string          `json:"name"`
	Count int             `json:"count"`
}

// categoryNames lists the closed set of categories in display order
var categoryNames = []struct {
	id   models.Category
	name string
}{
	{models.CategoryAll, "All Products"},
	{models.CategoryLeafyGreens, "Leafy Greens"},
	{models.CategoryPowders, "Vegetable Powders"},
	{models.CategoryMushrooms, "Mushrooms"},
}

// IsCategory reports whether c is one of the product categories (not "all")
func IsCategory(c models.Category) bool {
	return c != models.CategoryAll && categoryName(c) != ""
}

// ParseCategory maps a request value onto the closed category set.
// An empty value means "all".
func ParseCategory(s string) (models.Category, error) {
	if s == "" {
		return models.CategoryAll, nil
	}
	c := models.Category(s)
	if categoryName(c) == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
	return c, nil
}

func categoryName(c models.Category) string {
	for _, cn := range categoryNames {
		if cn.id == c {
			return cn.name
		}
	}
	return ""
}

// CategoryName returns the display name for a category
func CategoryName(c models.Category) string {
	return categoryName(c)
}

// Categories counts products per category, "all" first
func Categories(products []models.Product) []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryNames))
	for _, cn := range categoryNames {
		count := 0
		for _, p := range products {
			if matchesCategory(p, cn.id) {
				count++
			}
		}
		out = append(out, CategoryInfo{ID: cn.id, Name: cn.name, Count: count})
	}
	return out
}

func matchesCategory(p models.Product, c models.Category) bool {
	return c == models.CategoryAll || p.Category == c
}
