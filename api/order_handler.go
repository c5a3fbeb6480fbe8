package api

import (
	"net/http"

	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
)

// CheckoutResponse carries the order message and the link that sends it
type CheckoutResponse struct {
	Message    string `json:"message"`
	URL        string `json:"url"`
	TotalPrice int    `json:"total_price"`
}

func (h *Handler) checkout(m cart.Manager) CheckoutResponse {
	message := h.orders.Format(m.Items(), m.Bundles())
	return CheckoutResponse{
		Message:    message,
		URL:        h.orders.HandoffURL(message),
		TotalPrice: m.TotalPrice(),
	}
}

// CheckoutHandler returns the WhatsApp order message for the current cart
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	m := h.cartFor(w, r)
	if m.TotalItems() == 0 {
		utils.RespondError(w, nil, "Cart is empty", http.StatusBadRequest)
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.checkout(m))
}

// CheckoutRedirect sends the shopper to WhatsApp with the order pre-filled
func (h *Handler) CheckoutRedirect(w http.ResponseWriter, r *http.Request) {
	m, ok := h.peekCart(r)
	if !ok || m.TotalItems() == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	utils.OrderHandoffs.Inc()
	http.Redirect(w, r, h.checkout(m).URL, http.StatusSeeOther)
}
