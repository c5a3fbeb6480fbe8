package cart

import (
	"sync"

	"github.com/raushankrgupta/nyakazi-storefront/models"
)

// Manager defines the operations on a shopper's cart.
// Every operation is total: missing keys are ignored, never reported.
type Manager interface {
	// AddItem merges quantity into the (product, weight) line or appends a new one
	AddItem(product models.Product, weight models.WeightTier, quantity int)
	// AddBundle merges quantity into the bundle line or appends a new one
	AddBundle(item models.BundleLineItem)
	RemoveItem(productID int, weight models.WeightTier)
	RemoveBundle(bundleID string)
	// UpdateQuantity replaces the quantity of an existing line, clamped to 1..MaxQuantity
	UpdateQuantity(productID int, weight models.WeightTier, quantity int)
	UpdateBundleQuantity(bundleID string, quantity int)
	Clear()

	Items() []models.CartLineItem
	Bundles() []models.BundleLineItem
	TotalItems() int
	TotalPrice() int
}

// MemoryCart keeps a cart in process memory for the life of a session
type MemoryCart struct {
	mu      sync.Mutex
	items   []models.CartLineItem
	bundles []models.BundleLineItem
}

// NewMemoryCart creates an empty cart
func NewMemoryCart() *MemoryCart {
	return &MemoryCart{}
}

// MaxQuantity is the most packs a single cart line can hold
const MaxQuantity = 999

// clampQuantity keeps a line quantity within 1..MaxQuantity
func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuantity:
		return MaxQuantity
	}
	return q
}

// mergeQuantity adds to an existing line, saturating at MaxQuantity
func mergeQuantity(current, add int) int {
	add = clampQuantity(add)
	if current > MaxQuantity-add {
		return MaxQuantity
	}
	return current + add
}

func (c *MemoryCart) itemIndex(productID int, weight models.WeightTier) int {
	for i, it := range c.items {
		if it.ProductID == productID && it.Weight == weight {
			return i
		}
	}
	return -1
}

func (c *MemoryCart) bundleIndex(id string) int {
	for i, b := range c.bundles {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (c *MemoryCart) AddItem(product models.Product, weight models.WeightTier, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	quantity = clampQuantity(quantity)
	if i := c.itemIndex(product.ID, weight); i >= 0 {
		c.items[i].Quantity = mergeQuantity(c.items[i].Quantity, quantity)
		return
	}

	c.items = append(c.items, models.CartLineItem{
		ProductID: product.ID,
		Name:      product.Name,
		LocalName: product.LocalName,
		Image:     product.Image,
		Price:     product.PriceFor(weight),
		Quantity:  quantity,
		Weight:    weight,
	})
}

func (c *MemoryCart) AddBundle(item models.BundleLineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item.Quantity = clampQuantity(item.Quantity)
	if i := c.bundleIndex(item.ID); i >= 0 {
		c.bundles[i].Quantity = mergeQuantity(c.bundles[i].Quantity, item.Quantity)
		return
	}
	c.bundles = append(c.bundles, item)
}

func (c *MemoryCart) RemoveItem(productID int, weight models.WeightTier) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.itemIndex(productID, weight); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *MemoryCart) RemoveBundle(bundleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.bundleIndex(bundleID); i >= 0 {
		c.bundles = append(c.bundles[:i], c.bundles[i+1:]...)
	}
}

func (c *MemoryCart) UpdateQuantity(productID int, weight models.WeightTier, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.itemIndex(productID, weight); i >= 0 {
		c.items[i].Quantity = clampQuantity(quantity)
	}
}

func (c *MemoryCart) UpdateBundleQuantity(bundleID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.bundleIndex(bundleID); i >= 0 {
		c.bundles[i].Quantity = clampQuantity(quantity)
	}
}

func (c *MemoryCart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.bundles = nil
}

// Items returns a copy of the product lines in the order they were added
func (c *MemoryCart) Items() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Bundles returns a copy of the bundle lines in the order they were added
func (c *MemoryCart) Bundles() []models.BundleLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.BundleLineItem, len(c.bundles))
	copy(out, c.bundles)
	return out
}

func (c *MemoryCart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	for _, b := range c.bundles {
		total += b.Quantity
	}
	return total
}

func (c *MemoryCart) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, it := range c.items {
		total += it.Subtotal()
	}
	for _, b := range c.bundles {
		total += b.Subtotal()
	}
	return total
}
