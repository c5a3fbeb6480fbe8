package api

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/order"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
)

// Options wires the storefront handlers to their collaborators
type Options struct {
	Catalog       *catalog.Catalog
	Sessions      *cart.Registry
	Orders        order.Formatter
	SessionSecret []byte
	SessionTTL    time.Duration
	ImageDir      string // local directory served under /images/, empty to disable

	// Notify delivers contact messages; defaults to utils.NotifyContact
	Notify func(models.ContactMessage) error
	// ResolveImage maps catalog image paths to URLs; defaults to utils.ResolveImageURL
	ResolveImage func(ctx context.Context, image string) string
}

// Handler serves the storefront pages and JSON API
type Handler struct {
	catalog       *catalog.Catalog
	sessions      *cart.Registry
	orders        order.Formatter
	sessionSecret []byte
	sessionTTL    time.Duration
	imageDir      string
	notify        func(models.ContactMessage) error
	resolveImage  func(ctx context.Context, image string) string
	pages         *template.Template
}

// NewHandler validates the options and parses the page templates
func NewHandler(opts Options) (*Handler, error) {
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session registry is required")
	}
	if len(opts.SessionSecret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = cart.DefaultTTL
	}
	if opts.Notify == nil {
		opts.Notify = utils.NotifyContact
	}
	if opts.ResolveImage == nil {
		opts.ResolveImage = utils.ResolveImageURL
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Handler{
		catalog:       opts.Catalog,
		sessions:      opts.Sessions,
		orders:        opts.Orders,
		sessionSecret: opts.SessionSecret,
		sessionTTL:    opts.SessionTTL,
		imageDir:      opts.ImageDir,
		notify:        opts.Notify,
		resolveImage:  opts.ResolveImage,
		pages:         pages,
	}, nil
}

// Routes registers every storefront route on a new mux
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// JSON API
	mux.HandleFunc("GET /api/products", h.ProductsHandler)
	mux.HandleFunc("GET /api/products/featured", h.FeaturedHandler)
	mux.HandleFunc("GET /api/products/{id}", h.ProductDetailHandler)
	mux.HandleFunc("GET /api/categories", h.CategoriesHandler)
	mux.HandleFunc("GET /api/bundles", h.BundlesHandler)

	mux.HandleFunc("GET /api/cart", h.GetCartHandler)
	mux.HandleFunc("DELETE /api/cart", h.ClearCartHandler)
	mux.HandleFunc("POST /api/cart/items", h.AddItemHandler)
	mux.HandleFunc("PUT /api/cart/items", h.UpdateItemHandler)
	mux.HandleFunc("DELETE /api/cart/items", h.RemoveItemHandler)
	mux.HandleFunc("POST /api/cart/bundles", h.AddBundleHandler)
	mux.HandleFunc("PUT /api/cart/bundles", h.UpdateBundleHandler)
	mux.HandleFunc("DELETE /api/cart/bundles", h.RemoveBundleHandler)
	mux.HandleFunc("GET /api/cart/checkout", h.CheckoutHandler)

	mux.HandleFunc("POST /api/contact", h.ContactHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Pages
	mux.HandleFunc("GET /{$}", h.HomePage)
	mux.HandleFunc("GET /about", h.AboutPage)
	mux.HandleFunc("GET /contact", h.ContactPage)
	mux.HandleFunc("POST /contact", h.ContactFormHandler)
	mux.HandleFunc("GET /shop", h.ShopPage)
	mux.HandleFunc("GET /shop/{id}", h.ProductPage)
	mux.HandleFunc("GET /cart", h.CartPage)
	mux.HandleFunc("POST /cart/add", h.AddToCartForm)
	mux.HandleFunc("POST /cart/update", h.UpdateCartForm)
	mux.HandleFunc("POST /cart/remove", h.RemoveFromCartForm)
	mux.HandleFunc("POST /cart/clear", h.ClearCartForm)
	mux.HandleFunc("GET /checkout", h.CheckoutRedirect)

	// Serve static files for images
	if h.imageDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(h.imageDir))))
	}

	return utils.LatencyMiddleware(utils.CORSMiddleware(mux))
}
