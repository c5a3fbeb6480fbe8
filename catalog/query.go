package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/raushankrgupta/nyakazi-storefront/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownPriceRange = errors.New("unknown price range")
	ErrUnknownSortKey    = errors.New("unknown sort key")
)

// PriceRange buckets products by their 50g price
type PriceRange string

const (
	PriceAll      PriceRange = "all"
	PriceUpTo200  PriceRange = "0-200"
	Price200To400 PriceRange = "200-400"
	PriceOver400  PriceRange = "400+"
)

// SortKey selects the ordering of a query result
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

const (
	FeaturedMinRating = 4.7
	FeaturedLimit     = 3
)

// Query holds the shop page filter and sort criteria
type Query struct {
	Search     string
	Category   models.Category
	PriceRange PriceRange
	Sort       SortKey
}

// Active reports whether any filter narrows the catalog
func (q Query) Active() bool {
	return q.Search != "" ||
		(q.Category != "" && q.Category != models.CategoryAll) ||
		(q.PriceRange != "" && q.PriceRange != PriceAll)
}

// ParsePriceRange validates a price bucket; empty means "all"
func ParsePriceRange(s string) (PriceRange, error) {
	switch PriceRange(s) {
	case "":
		return PriceAll, nil
	case PriceAll, PriceUpTo200, Price200To400, PriceOver400:
		return PriceRange(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPriceRange, s)
}

// ParseSortKey validates a sort key; empty means "featured"
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortName:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSortKey, s)
}

// Run filters and sorts products into a new slice. The input is left untouched.
func Run(products []models.Product, q Query) []models.Product {
	term := ""
	if q.Search != "" {
		term = cases.Fold().String(q.Search)
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, term) {
			continue
		}
		if q.Category != "" && !matchesCategory(p, q.Category) {
			continue
		}
		if !q.PriceRange.matches(p.Price50) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return out
}

func matchesSearch(p models.Product, foldedTerm string) bool {
	if foldedTerm == "" {
		return true
	}
	fold := cases.Fold()
	for _, field := range []string{p.Name, p.LocalName, p.Description} {
		if strings.Contains(fold.String(field), foldedTerm) {
			return true
		}
	}
	return false
}

func (r PriceRange) matches(price int) bool {
	switch r {
	case PriceUpTo200:
		return price <= 200
	case Price200To400:
		return price > 200 && price <= 400
	case PriceOver400:
		return price > 400
	}
	return true
}

func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(a.Price50, b.Price50)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Price50, a.Price50)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortName:
		// Collator keeps internal buffers, so one per sort.
		col := collate.New(language.English)
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}

// Featured returns the top-rated products in catalog order, ignoring any filters
func Featured(products []models.Product, minRating float64, limit int) []models.Product {
	if limit < 0 {
		limit = 0
	}
	out := make([]models.Product, 0, limit)
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if p.Rating >= minRating {
			out = append(out, p)
		}
	}
	return out
}
