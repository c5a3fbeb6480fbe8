package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// priceRangeLabels lists the shop price filter options in display order
var priceRangeLabels = []struct {
	ID    catalog.PriceRange
	Label string
}{
	{catalog.PriceAll, "All Prices"},
	{catalog.PriceUpTo200, "Under Ksh 200"},
	{catalog.Price200To400, "Ksh 200 - Ksh 400"},
	{catalog.PriceOver400, "Above Ksh 400"},
}

var sortLabels = []struct {
	ID    catalog.SortKey
	Label string
}{
	{catalog.SortFeatured, "Featured"},
	{catalog.SortPriceLow, "Price: Low to High"},
	{catalog.SortPriceHigh, "Price: High to Low"},
	{catalog.SortRating, "Highest Rated"},
	{catalog.SortName, "Name A-Z"},
}

// pageData is what every page template receives
type pageData struct {
	Title     string
	StoreName string
	Phone     string
	CartCount int

	Featured   []models.Product
	Products   []models.Product
	Total      int
	Categories []catalog.CategoryInfo
	Bundles    []models.Bundle
	Query      catalog.Query
	QueryError string

	Product models.Product
	Related []models.Product

	Cart CartResponse

	ContactSent  bool
	ContactError string
	Contact      ContactRequest
}

func parsePages() (*template.Template, error) {
	funcs := template.FuncMap{
		"categoryName": func(c models.Category) string { return catalog.CategoryName(c) },
		"priceRanges":  func() interface{} { return priceRangeLabels },
		"sortKeys":     func() interface{} { return sortLabels },
		"subtotal":     func(price, qty int) int { return price * qty },
	}
	pages, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return pages, nil
}

func (h *Handler) newPage(r *http.Request, title string) pageData {
	return pageData{
		Title:     title,
		StoreName: h.orders.StoreName,
		Phone:     h.orders.Phone,
		CartCount: h.cartCount(r),
	}
}

// render executes a page into a buffer first so template errors become a clean 500
func (h *Handler) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		utils.Logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// HomePage shows the hero, featured products and bundles
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()
	data := h.newPage(r, "Home")
	data.Featured = h.withImages(r.Context(), catalog.Featured(products, catalog.FeaturedMinRating, catalog.FeaturedLimit))
	data.Bundles = h.catalog.Bundles()
	h.render(w, http.StatusOK, "home.html", data)
}

func (h *Handler) AboutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about.html", h.newPage(r, "About Us"))
}

func (h *Handler) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact.html", h.newPage(r, "Contact Us"))
}

// ContactFormHandler handles the contact page form post
func (h *Handler) ContactFormHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Contact Form]")

	data := h.newPage(r, "Contact Us")
	if err := r.ParseForm(); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error parsing form data: %v", err))
		data.ContactError = "Error parsing form data"
		h.render(w, http.StatusBadRequest, "contact.html", data)
		return
	}

	req := ContactRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}
	_, status, err := h.submitContact(&logMessageBuilder, req)
	if err != nil {
		data.ContactError = err.Error()
		data.Contact = req
		h.render(w, status, "contact.html", data)
		return
	}

	data.ContactSent = true
	h.render(w, http.StatusOK, "contact.html", data)
}

// ShopPage lists products with the filter panel, the empty state and bundles
func (h *Handler) ShopPage(w http.ResponseWriter, r *http.Request) {
	all := h.catalog.Products()
	data := h.newPage(r, "Shop")
	data.Total = len(all)
	data.Categories = catalog.Categories(all)
	data.Bundles = h.catalog.Bundles()
	data.Featured = h.withImages(r.Context(), catalog.Featured(all, catalog.FeaturedMinRating, catalog.FeaturedLimit))

	status := http.StatusOK
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		data.QueryError = err.Error()
		status = http.StatusBadRequest
		q = catalog.Query{Category: models.CategoryAll, PriceRange: catalog.PriceAll, Sort: catalog.SortFeatured}
	}
	data.Query = q
	data.Products = h.withImages(r.Context(), catalog.Run(all, q))

	h.render(w, status, "shop.html", data)
}

// ProductPage shows a product with its related products, or the not-found page
func (h *Handler) ProductPage(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()

	id, err := parseProductID(r.PathValue("id"))
	if err == nil {
		var product models.Product
		product, err = catalog.Resolve(products, id)
		if err == nil {
			data := h.newPage(r, product.Name)
			data.Product = h.withImages(r.Context(), []models.Product{product})[0]
			data.Related = h.withImages(r.Context(), catalog.Related(products, product, catalog.RelatedLimit))
			h.render(w, http.StatusOK, "product.html", data)
			return
		}
	}

	if !errors.Is(err, catalog.ErrProductNotFound) {
		utils.Logger.Debug("bad product id", zap.String("id", r.PathValue("id")))
	}
	h.render(w, http.StatusNotFound, "notfound.html", h.newPage(r, "Product Not Found"))
}

// CartPage shows the cart with quantity controls and the WhatsApp checkout button
func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(r, "Your Cart")
	if m, ok := h.peekCart(r); ok {
		data.Cart = h.cartResponse(r, m)
	}
	h.render(w, http.StatusOK, "cart.html", data)
}

func formInt(r *http.Request, key string, fallback int) int {
	if v, err := strconv.Atoi(r.FormValue(key)); err == nil {
		return v
	}
	return fallback
}

// AddToCartForm handles the "Add to Cart" form on product and shop pages
func (h *Handler) AddToCartForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	quantity := formInt(r, "quantity", 1)
	if err := checkQuantity(quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	if bundleID := r.FormValue("bundle_id"); bundleID != "" {
		if bundle, ok := h.catalog.Bundle(bundleID); ok {
			m.AddBundle(bundle.LineItem(quantity))
			utils.CartOperations.WithLabelValues("add_bundle").Inc()
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	productID, err := parseProductID(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	weight, err := weightOrDefault(r.FormValue("weight"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.addProduct(m, productID, weight, quantity); err != nil {
		http.Redirect(w, r, "/shop/"+strconv.Itoa(productID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// UpdateCartForm handles the +/- buttons on the cart page
func (h *Handler) UpdateCartForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	quantity := formInt(r, "quantity", 1)
	if err := checkQuantity(quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	if bundleID := r.FormValue("bundle_id"); bundleID != "" {
		m.UpdateBundleQuantity(bundleID, quantity)
		utils.CartOperations.WithLabelValues("update_bundle").Inc()
	} else if productID, err := parseProductID(r.FormValue("product_id")); err == nil {
		if weight, err := models.ParseWeightTier(r.FormValue("weight")); err == nil {
			m.UpdateQuantity(productID, weight, quantity)
			utils.CartOperations.WithLabelValues("update_item").Inc()
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveFromCartForm handles the trash button on the cart page
func (h *Handler) RemoveFromCartForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	if bundleID := r.FormValue("bundle_id"); bundleID != "" {
		m.RemoveBundle(bundleID)
		utils.CartOperations.WithLabelValues("remove_bundle").Inc()
	} else if productID, err := parseProductID(r.FormValue("product_id")); err == nil {
		if weight, err := models.ParseWeightTier(r.FormValue("weight")); err == nil {
			m.RemoveItem(productID, weight)
			utils.CartOperations.WithLabelValues("remove_item").Inc()
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) ClearCartForm(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	utils.CartOperations.WithLabelValues("clear").Inc()
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
