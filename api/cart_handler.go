package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
)

// CartItemRequest represents the payload for adding or updating a product line
type CartItemRequest struct {
	ProductID int    `json:"product_id"`
	Weight    string `json:"weight"`
	Quantity  int    `json:"quantity"`
}

// CartBundleRequest represents the payload for adding or updating a bundle line
type CartBundleRequest struct {
	BundleID string `json:"bundle_id"`
	Quantity int    `json:"quantity"`
}

// CartResponse is the cart contents with derived totals
type CartResponse struct {
	Items      []models.CartLineItem   `json:"items"`
	Bundles    []models.BundleLineItem `json:"bundles"`
	TotalItems int                     `json:"total_items"`
	TotalPrice int                     `json:"total_price"`
}

func (h *Handler) cartResponse(r *http.Request, m cart.Manager) CartResponse {
	items := m.Items()
	for i := range items {
		items[i].Image = h.resolveImage(r.Context(), items[i].Image)
	}
	bundles := m.Bundles()
	for i := range bundles {
		bundles[i].Image = h.resolveImage(r.Context(), bundles[i].Image)
	}
	return CartResponse{
		Items:      items,
		Bundles:    bundles,
		TotalItems: m.TotalItems(),
		TotalPrice: m.TotalPrice(),
	}
}

// weightOrDefault treats a missing weight as the 50g pack
func weightOrDefault(s string) (models.WeightTier, error) {
	if s == "" {
		return models.Weight50g, nil
	}
	return models.ParseWeightTier(s)
}

// checkQuantity rejects quantities no cart line can hold
func checkQuantity(q int) error {
	if q > cart.MaxQuantity {
		return fmt.Errorf("quantity %d exceeds the maximum of %d", q, cart.MaxQuantity)
	}
	return nil
}

// errOutOfStock is returned when a shopper tries to add a sold-out product
var errOutOfStock = errors.New("out of stock")

// addProduct resolves the product and merges it into the cart
func (h *Handler) addProduct(m cart.Manager, productID int, weight models.WeightTier, quantity int) (models.Product, error) {
	product, err := catalog.Resolve(h.catalog.Products(), productID)
	if err != nil {
		return product, err
	}
	if !product.Available() {
		return product, fmt.Errorf("%s is %w", product.Name, errOutOfStock)
	}
	m.AddItem(product, weight, quantity)
	utils.CartOperations.WithLabelValues("add_item").Inc()
	return product, nil
}

// GetCartHandler returns the shopper's cart
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	m := h.cartFor(w, r)
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// ClearCartHandler empties the cart by ending its session
func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	utils.CartOperations.WithLabelValues("clear").Inc()
	utils.RespondJSON(w, http.StatusOK, CartResponse{
		Items:   []models.CartLineItem{},
		Bundles: []models.BundleLineItem{},
	})
}

// AddItemHandler adds a product/weight to the cart, merging with an existing line
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add To Cart API]")

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	weight, err := weightOrDefault(req.Weight)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if err := checkQuantity(req.Quantity); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	m := h.cartFor(w, r)
	product, err := h.addProduct(m, req.ProductID, weight, req.Quantity)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Product %d not found", req.ProductID), http.StatusNotFound)
		return
	case errors.Is(err, errOutOfStock):
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusConflict)
		return
	case err != nil:
		utils.RespondError(w, &logMessageBuilder, "Error adding to cart", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added %s (%s) x %d", product.Name, weight, req.Quantity))
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// UpdateItemHandler replaces the quantity of an existing line; unknown lines are ignored
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Cart API]")

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	weight, err := weightOrDefault(req.Weight)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	if err := checkQuantity(req.Quantity); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	m.UpdateQuantity(req.ProductID, weight, req.Quantity)
	utils.CartOperations.WithLabelValues("update_item").Inc()
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// RemoveItemHandler deletes a product line identified by query parameters
func (h *Handler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Remove From Cart API]")

	productID, err := parseProductID(r.URL.Query().Get("product_id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	weight, err := weightOrDefault(r.URL.Query().Get("weight"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	m.RemoveItem(productID, weight)
	utils.CartOperations.WithLabelValues("remove_item").Inc()
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// AddBundleHandler adds a bundle offer to the cart
func (h *Handler) AddBundleHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Bundle API]")

	var req CartBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	bundle, ok := h.catalog.Bundle(req.BundleID)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Bundle %q not found", req.BundleID), http.StatusNotFound)
		return
	}
	if err := checkQuantity(req.Quantity); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	m := h.cartFor(w, r)
	m.AddBundle(bundle.LineItem(req.Quantity))
	utils.CartOperations.WithLabelValues("add_bundle").Inc()
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added bundle %s x %d", bundle.ID, req.Quantity))
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// UpdateBundleHandler replaces the quantity of a bundle line; unknown bundles are ignored
func (h *Handler) UpdateBundleHandler(w http.ResponseWriter, r *http.Request) {
	var req CartBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, nil, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := checkQuantity(req.Quantity); err != nil {
		utils.RespondError(w, nil, err.Error(), http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	m.UpdateBundleQuantity(req.BundleID, req.Quantity)
	utils.CartOperations.WithLabelValues("update_bundle").Inc()
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}

// RemoveBundleHandler deletes a bundle line
func (h *Handler) RemoveBundleHandler(w http.ResponseWriter, r *http.Request) {
	bundleID := r.URL.Query().Get("bundle_id")
	if bundleID == "" {
		utils.RespondError(w, nil, "bundle_id is required", http.StatusBadRequest)
		return
	}

	m := h.cartFor(w, r)
	m.RemoveBundle(bundleID)
	utils.CartOperations.WithLabelValues("remove_bundle").Inc()
	utils.RespondJSON(w, http.StatusOK, h.cartResponse(r, m))
}
