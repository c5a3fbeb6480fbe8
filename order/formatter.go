package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/raushankrgupta/nyakazi-storefront/models"
)

const handoffEndpoint = "https://wa.me/"

// Formatter turns a cart into the WhatsApp message a shopper sends to the store
type Formatter struct {
	StoreName string
	Phone     string // any format; non-digits are dropped when building the link
}

// Format lists every cart line with its subtotal, followed by the grand total
func (f Formatter) Format(items []models.CartLineItem, bundles []models.BundleLineItem) string {
	var b strings.Builder
	total := 0

	fmt.Fprintf(&b, "💚 Hello %s!\n", f.StoreName)
	b.WriteString("I would like to order the following items:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "🛒 %s (%s) x %d = Ksh %d\n", it.Name, it.Weight, it.Quantity, it.Subtotal())
		total += it.Subtotal()
	}
	for _, bl := range bundles {
		fmt.Fprintf(&b, "📦 %s (bundle) x %d = Ksh %d\n", bl.Name, bl.Quantity, bl.Subtotal())
		total += bl.Subtotal()
	}
	fmt.Fprintf(&b, "✅ Total: Ksh %d\n", total)
	b.WriteString("Please confirm availability and I will provide delivery info. Thank you!")

	return b.String()
}

// HandoffURL builds the wa.me link carrying message as pre-filled text
func (f Formatter) HandoffURL(message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return handoffEndpoint + digits(f.Phone) + "?text=" + text
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
