package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
)

// ProductListResponse is the shop listing with the criteria that produced it
type ProductListResponse struct {
	Products []models.Product   `json:"products"`
	Count    int                `json:"count"`
	Total    int                `json:"total"`
	Search   string             `json:"search,omitempty"`
	Category models.Category    `json:"category"`
	Price    catalog.PriceRange `json:"price"`
	Sort     catalog.SortKey    `json:"sort"`
}

// ProductDetailResponse is a single product and its related products
type ProductDetailResponse struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// parseQuery reads the shop filter criteria from query parameters
func parseQuery(values url.Values) (catalog.Query, error) {
	category, err := catalog.ParseCategory(values.Get("category"))
	if err != nil {
		return catalog.Query{}, err
	}
	price, err := catalog.ParsePriceRange(values.Get("price"))
	if err != nil {
		return catalog.Query{}, err
	}
	sortKey, err := catalog.ParseSortKey(values.Get("sort"))
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{
		Search:     strings.TrimSpace(values.Get("search")),
		Category:   category,
		PriceRange: price,
		Sort:       sortKey,
	}, nil
}

func parseProductID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

// withImages copies products with their image paths resolved to URLs
func (h *Handler) withImages(ctx context.Context, products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Image = h.resolveImage(ctx, p.Image)
		out[i] = p
	}
	return out
}

// ProductsHandler lists products filtered and sorted by query parameters
func (h *Handler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Products API]")

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	all := h.catalog.Products()
	products := catalog.Run(all, q)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Matched %d of %d products", len(products), len(all)))

	utils.RespondJSON(w, http.StatusOK, ProductListResponse{
		Products: h.withImages(r.Context(), products),
		Count:    len(products),
		Total:    len(all),
		Search:   q.Search,
		Category: q.Category,
		Price:    q.PriceRange,
		Sort:     q.Sort,
	})
}

// FeaturedHandler lists the top-rated products
func (h *Handler) FeaturedHandler(w http.ResponseWriter, r *http.Request) {
	featured := catalog.Featured(h.catalog.Products(), catalog.FeaturedMinRating, catalog.FeaturedLimit)
	utils.RespondJSON(w, http.StatusOK, h.withImages(r.Context(), featured))
}

// ProductDetailHandler returns one product and up to three related products
func (h *Handler) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Product Detail API]")

	id, err := parseProductID(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	products := h.catalog.Products()
	product, err := catalog.Resolve(products, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Product %d not found", id), http.StatusNotFound)
		return
	}

	related := catalog.Related(products, product, catalog.RelatedLimit)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Product %d with %d related", id, len(related)))

	resolved := h.withImages(r.Context(), []models.Product{product})
	utils.RespondJSON(w, http.StatusOK, ProductDetailResponse{
		Product: resolved[0],
		Related: h.withImages(r.Context(), related),
	})
}

// CategoriesHandler lists the shop categories with product counts
func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalog.Categories(h.catalog.Products()))
}

// BundlesHandler lists the bundle offers
func (h *Handler) BundlesHandler(w http.ResponseWriter, r *http.Request) {
	bundles := h.catalog.Bundles()
	for i := range bundles {
		bundles[i].Image = h.resolveImage(r.Context(), bundles[i].Image)
	}
	utils.RespondJSON(w, http.StatusOK, bundles)
}
