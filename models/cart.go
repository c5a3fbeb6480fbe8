package models

// CartLineItem is one product/weight pair in a shopper's cart.
// Name, image and price are copied from the catalog when the item is added.
type CartLineItem struct {
	ProductID int        `json:"id"`
	Name      string     `json:"name"`
	LocalName string     `json:"localName"`
	Image     string     `json:"image"`
	Price     int        `json:"price"`
	Quantity  int        `json:"quantity"`
	Weight    WeightTier `json:"selectedWeight"`
}

// Subtotal returns price x quantity
func (i CartLineItem) Subtotal() int {
	return i.Price * i.Quantity
}

// Bundle is a fixed-price grouping of several products
type Bundle struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Products      []string `json:"products" yaml:"products"`
	Price         int      `json:"price" yaml:"price"`
	OriginalPrice int      `json:"originalPrice" yaml:"originalPrice"`
	Savings       int      `json:"savings" yaml:"savings"`
	Image         string   `json:"image" yaml:"image"`
}

// BundleLineItem is a bundle sitting in a shopper's cart
type BundleLineItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image"`
	Products []string `json:"products"`
	Savings  int      `json:"savings"`
}

// Subtotal returns price x quantity
func (b BundleLineItem) Subtotal() int {
	return b.Price * b.Quantity
}

// LineItem builds a cart entry for the bundle
func (b Bundle) LineItem(quantity int) BundleLineItem {
	products := make([]string, len(b.Products))
	copy(products, b.Products)
	return BundleLineItem{
		ID:       b.ID,
		Name:     b.Name,
		Price:    b.Price,
		Quantity: quantity,
		Image:    b.Image,
		Products: products,
		Savings:  b.Savings,
	}
}
