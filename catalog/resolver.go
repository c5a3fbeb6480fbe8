package catalog

import (
	"errors"

	"github.com/raushankrgupta/nyakazi-storefront/models"
)

var ErrProductNotFound = errors.New("product not found")

// RelatedLimit is how many related products the detail page shows
const RelatedLimit = 3

// Resolve finds a product by id
func Resolve(products []models.Product, id int) (models.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Related picks up to limit other products, in catalog order.
// A categorised product only relates to its own category; an
// uncategorised one relates to anything else in the catalog.
func Related(products []models.Product, product models.Product, limit int) []models.Product {
	if limit < 0 {
		limit = 0
	}
	related := make([]models.Product, 0, limit)
	for _, p := range products {
		if len(related) >= limit {
			break
		}
		if p.ID == product.ID {
			continue
		}
		if product.Category != "" && p.Category != product.Category {
			continue
		}
		related = append(related, p)
	}
	return related
}
