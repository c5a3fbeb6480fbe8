package models

import "fmt"

// WeightTier is one of the two purchase sizes a product is sold in
type WeightTier string

const (
	Weight50g  WeightTier = "50g"
	Weight100g WeightTier = "100g"
)

// ParseWeightTier validates a weight tier coming from a request
func ParseWeightTier(s string) (WeightTier, error) {
	switch WeightTier(s) {
	case Weight50g, Weight100g:
		return WeightTier(s), nil
	}
	return "", fmt.Errorf("unknown weight tier %q", s)
}

// Category groups products for filtering and related-product lookup
type Category string

const (
	CategoryAll         Category = "all"
	CategoryLeafyGreens Category = "leafy-greens"
	CategoryPowders     Category = "powders"
	CategoryMushrooms   Category = "mushrooms"
)

// LowStockThreshold is the stock level below which a product is flagged
const LowStockThreshold = 10

// Product represents a catalog entry
type Product struct {
	ID              int            `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	LocalName       string         `json:"localName" yaml:"localName"`
	Image           string         `json:"image" yaml:"image"`
	Price50         int            `json:"price50" yaml:"price50"`   // Ksh per 50g pack
	Price100        int            `json:"price100" yaml:"price100"` // Ksh per 100g pack
	Description     string         `json:"description" yaml:"description"`
	HealthBenefits  []string       `json:"healthBenefits" yaml:"healthBenefits"`
	NutritionalInfo NutritionFacts `json:"nutritionalInfo" yaml:"nutritionalInfo"`
	Origin          string         `json:"origin" yaml:"origin"`
	InStock         int            `json:"inStock" yaml:"inStock"`
	Rating          float64        `json:"rating" yaml:"rating"`
	Reviews         int            `json:"reviews" yaml:"reviews"`
	Category        Category       `json:"category,omitempty" yaml:"category"`
}

// PriceFor returns the unit price for the given weight tier
func (p Product) PriceFor(w WeightTier) int {
	if w == Weight100g {
		return p.Price100
	}
	return p.Price50
}

// Available reports whether the product can be added to a cart
func (p Product) Available() bool {
	return p.InStock > 0
}

// LowStock reports whether only a handful of packs are left
func (p Product) LowStock() bool {
	return p.InStock > 0 && p.InStock < LowStockThreshold
}
