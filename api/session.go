package api

import (
	"net/http"

	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/utils"
	"go.uber.org/zap"
)

const sessionCookieName = "nyakazi_cart"

// cartFor returns the shopper's cart, starting a session when the request
// carries no valid cookie. The cookie is re-issued so active sessions stay alive.
func (h *Handler) cartFor(w http.ResponseWriter, r *http.Request) cart.Manager {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := utils.ParseSessionToken(h.sessionSecret, c.Value); err == nil {
			h.setSessionCookie(w, id)
			return h.sessions.Attach(id)
		}
	}

	id, m := h.sessions.Create()
	h.setSessionCookie(w, id)
	return m
}

// peekCart returns the cart for a valid session without creating one
func (h *Handler) peekCart(r *http.Request) (cart.Manager, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	id, err := utils.ParseSessionToken(h.sessionSecret, c.Value)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(id)
}

// endSession drops the shopper's cart session and expires the cookie
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := utils.ParseSessionToken(h.sessionSecret, c.Value); err == nil {
			h.sessions.Delete(id)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	token, err := utils.GenerateSessionToken(h.sessionSecret, sessionID, h.sessionTTL)
	if err != nil {
		utils.Logger.Error("failed to sign session token", zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// cartCount is the nav badge value; pages don't start sessions just to show it
func (h *Handler) cartCount(r *http.Request) int {
	if m, ok := h.peekCart(r); ok {
		return m.TotalItems()
	}
	return 0
}
