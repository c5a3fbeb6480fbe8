package catalog

import (
	"embed"
	"fmt"

	"github.com/raushankrgupta/nyakazi-storefront/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is the read-only product and bundle list served by the store
type Catalog struct {
	products []models.Product
	bundles  []models.Bundle
}

// Load decodes the embedded catalog data
func Load() (*Catalog, error) {
	var products []models.Product
	if err := decodeFile("data/products.yaml", &products); err != nil {
		return nil, err
	}

	var bundles []models.Bundle
	if err := decodeFile("data/bundles.yaml", &bundles); err != nil {
		return nil, err
	}

	return New(products, bundles)
}

// New builds a catalog from in-memory records after validating them
func New(products []models.Product, bundles []models.Bundle) (*Catalog, error) {
	if err := validate(products, bundles); err != nil {
		return nil, err
	}
	return &Catalog{products: products, bundles: bundles}, nil
}

func decodeFile(name string, out interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func validate(products []models.Product, bundles []models.Bundle) error {
	ids := make(map[int]bool)
	for _, p := range products {
		if ids[p.ID] {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		ids[p.ID] = true

		if p.Name == "" {
			return fmt.Errorf("product %d has no name", p.ID)
		}
		if p.Price50 < 0 || p.Price100 < 0 {
			return fmt.Errorf("product %d has a negative price", p.ID)
		}
		if p.InStock < 0 || p.Reviews < 0 {
			return fmt.Errorf("product %d has a negative stock or review count", p.ID)
		}
		if p.Rating < 0 || p.Rating > 5 {
			return fmt.Errorf("product %d rating %.1f is outside 0-5", p.ID, p.Rating)
		}
		if p.Category != "" && !IsCategory(p.Category) {
			return fmt.Errorf("product %d: %w: %s", p.ID, ErrUnknownCategory, p.Category)
		}
	}

	bundleIDs := make(map[string]bool)
	for _, b := range bundles {
		if b.ID == "" {
			return fmt.Errorf("bundle %q has no id", b.Name)
		}
		if bundleIDs[b.ID] {
			return fmt.Errorf("duplicate bundle id %s", b.ID)
		}
		bundleIDs[b.ID] = true
		if b.Price < 0 {
			return fmt.Errorf("bundle %s has a negative price", b.ID)
		}
	}
	return nil
}

// Products returns a copy of the catalog in its declared order
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Bundles returns a copy of the bundle list
func (c *Catalog) Bundles() []models.Bundle {
	out := make([]models.Bundle, len(c.bundles))
	copy(out, c.bundles)
	return out
}

// Bundle looks up a bundle by id
func (c *Catalog) Bundle(id string) (models.Bundle, bool) {
	for _, b := range c.bundles {
		if b.ID == id {
			return b, true
		}
	}
	return models.Bundle{}, false
}

// Len is the number of products in the catalog
func (c *Catalog) Len() int {
	return len(c.products)
}
