package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/nyakazi-storefront/cart"
	"github.com/raushankrgupta/nyakazi-storefront/catalog"
	"github.com/raushankrgupta/nyakazi-storefront/models"
	"github.com/raushankrgupta/nyakazi-storefront/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

type notifier struct {
	mu   sync.Mutex
	sent []models.ContactMessage
	err  error
}

func (n *notifier) notify(msg models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

type testStore struct {
	server   *httptest.Server
	sessions *cart.Registry
	notifier *notifier
}

func newTestStore(t *testing.T, c *catalog.Catalog) *testStore {
	t.Helper()
	if c == nil {
		var err error
		c, err = catalog.Load()
		require.NoError(t, err)
	}

	ts := &testStore{sessions: cart.NewRegistry(time.Hour), notifier: &notifier{}}
	h, err := NewHandler(Options{
		Catalog:       c,
		Sessions:      ts.sessions,
		Orders:        order.Formatter{StoreName: "Nyakazi Organics", Phone: "+254712345678"},
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		Notify:        ts.notifier.notify,
		ResolveImage:  func(ctx context.Context, image string) string { return image },
	})
	require.NoError(t, err)

	ts.server = httptest.NewServer(h.Routes())
	t.Cleanup(ts.server.Close)
	return ts
}

// client returns a browser-like client with its own cookie jar that does not follow redirects
func (ts *testStore) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (ts *testStore) do(t *testing.T, c *http.Client, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testStore) postForm(t *testing.T, c *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.PostForm(ts.server.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testStore) page(t *testing.T, c *http.Client, path string) (*http.Response, *goquery.Document) {
	t.Helper()
	resp := ts.do(t, c, http.MethodGet, path, nil)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func productIDs(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestNewHandler_RequiresCollaborators(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	_, err = NewHandler(Options{Sessions: cart.NewRegistry(0), SessionSecret: testSecret})
	assert.Error(t, err)
	_, err = NewHandler(Options{Catalog: c, SessionSecret: testSecret})
	assert.Error(t, err)
	_, err = NewHandler(Options{Catalog: c, Sessions: cart.NewRegistry(0)})
	assert.Error(t, err)
}

func TestProductsHandler(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	t.Run("filter and sort", func(t *testing.T) {
		resp := ts.do(t, c, http.MethodGet, "/api/products?category=leafy-greens&sort=rating", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decode[ProductListResponse](t, resp)
		assert.Equal(t, []int{3, 1, 2}, productIDs(list.Products))
		assert.Equal(t, 3, list.Count)
		assert.Equal(t, 5, list.Total)
		assert.Equal(t, models.CategoryLeafyGreens, list.Category)
	})

	t.Run("defaults", func(t *testing.T) {
		list := decode[ProductListResponse](t, ts.do(t, c, http.MethodGet, "/api/products", nil))
		assert.Equal(t, []int{1, 2, 3, 4, 5}, productIDs(list.Products))
		assert.Equal(t, catalog.SortFeatured, list.Sort)
		assert.Equal(t, catalog.PriceAll, list.Price)
	})

	t.Run("search with no match", func(t *testing.T) {
		list := decode[ProductListResponse](t, ts.do(t, c, http.MethodGet, "/api/products?search=quinoa", nil))
		assert.Empty(t, list.Products)
		assert.Equal(t, 0, list.Count)
	})

	t.Run("unknown filter values", func(t *testing.T) {
		for _, q := range []string{"price=cheap", "sort=newest", "category=fruit"} {
			resp := ts.do(t, c, http.MethodGet, "/api/products?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		}
	})
}

func TestProductDetailHandler(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp := ts.do(t, c, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[ProductDetailResponse](t, resp)
	assert.Equal(t, "Dried Managu", detail.Product.Name)
	assert.Equal(t, []int{2, 3}, productIDs(detail.Related))

	resp = ts.do(t, c, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]string{"error": "Product 999 not found"}, decode[map[string]string](t, resp))

	resp = ts.do(t, c, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeaturedAndCategoriesHandlers(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	featured := decode[[]models.Product](t, ts.do(t, c, http.MethodGet, "/api/products/featured", nil))
	assert.Equal(t, []int{1, 2, 3}, productIDs(featured))

	categories := decode[[]catalog.CategoryInfo](t, ts.do(t, c, http.MethodGet, "/api/categories", nil))
	require.Len(t, categories, 4)
	assert.Equal(t, 5, categories[0].Count)

	bundles := decode[[]models.Bundle](t, ts.do(t, c, http.MethodGet, "/api/bundles", nil))
	assert.Len(t, bundles, 3)
}

func TestCartAPI_Flow(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp := ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "50g", Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "50g", Quantity: 1})
	got := decode[CartResponse](t, resp)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, 600, got.TotalPrice)

	ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 3, Weight: "100g", Quantity: 1})
	ts.do(t, c, http.MethodPost, "/api/cart/bundles", CartBundleRequest{BundleID: "starter-pack", Quantity: 1})

	got = decode[CartResponse](t, ts.do(t, c, http.MethodGet, "/api/cart", nil))
	assert.Len(t, got.Items, 2)
	assert.Len(t, got.Bundles, 1)
	assert.Equal(t, 5, got.TotalItems)
	assert.Equal(t, 600+400+350, got.TotalPrice)

	got = decode[CartResponse](t, ts.do(t, c, http.MethodPut, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "50g", Quantity: 0}))
	assert.Equal(t, 1, got.Items[0].Quantity, "update clamps to one")

	got = decode[CartResponse](t, ts.do(t, c, http.MethodDelete, "/api/cart/items?product_id=3&weight=100g", nil))
	assert.Len(t, got.Items, 1)

	got = decode[CartResponse](t, ts.do(t, c, http.MethodPut, "/api/cart/bundles", CartBundleRequest{BundleID: "starter-pack", Quantity: 3}))
	assert.Equal(t, 3, got.Bundles[0].Quantity)

	got = decode[CartResponse](t, ts.do(t, c, http.MethodDelete, "/api/cart/bundles?bundle_id=starter-pack", nil))
	assert.Empty(t, got.Bundles)

	checkout := decode[CheckoutResponse](t, ts.do(t, c, http.MethodGet, "/api/cart/checkout", nil))
	assert.Contains(t, checkout.Message, "🛒 Dried Managu (50g) x 1 = Ksh 200")
	assert.Contains(t, checkout.Message, "✅ Total: Ksh 200")
	assert.True(t, strings.HasPrefix(checkout.URL, "https://wa.me/254712345678?text="))
	assert.Equal(t, 200, checkout.TotalPrice)

	got = decode[CartResponse](t, ts.do(t, c, http.MethodDelete, "/api/cart", nil))
	assert.Equal(t, 0, got.TotalItems)
	assert.NotNil(t, got.Items)
	assert.Equal(t, 0, ts.sessions.Len(), "clearing ends the session")

	got = decode[CartResponse](t, ts.do(t, c, http.MethodGet, "/api/cart", nil))
	assert.Equal(t, 0, got.TotalItems)
	assert.Equal(t, 1, ts.sessions.Len())
}

func TestCartAPI_SessionsAreIsolated(t *testing.T) {
	ts := newTestStore(t, nil)
	alice, bob := ts.client(t), ts.client(t)

	ts.do(t, alice, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 2, Quantity: 4})

	assert.Equal(t, 4, decode[CartResponse](t, ts.do(t, alice, http.MethodGet, "/api/cart", nil)).TotalItems)
	assert.Equal(t, 0, decode[CartResponse](t, ts.do(t, bob, http.MethodGet, "/api/cart", nil)).TotalItems)
	assert.Equal(t, 2, ts.sessions.Len())
}

func TestCartAPI_Errors(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Dried Managu", Price50: 200, Price100: 400, InStock: 15, Category: models.CategoryLeafyGreens},
		{ID: 2, Name: "Dried Saaga", Price50: 200, Price100: 400, InStock: 0, Category: models.CategoryLeafyGreens},
	}
	c, err := catalog.New(products, nil)
	require.NoError(t, err)
	ts := newTestStore(t, c)
	client := ts.client(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown product", http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 999}, http.StatusNotFound},
		{"out of stock", http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 2}, http.StatusConflict},
		{"bad weight", http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "1kg"}, http.StatusBadRequest},
		{"quantity too large", http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Quantity: math.MaxInt}, http.StatusBadRequest},
		{"update quantity too large", http.MethodPut, "/api/cart/items", CartItemRequest{ProductID: 1, Quantity: cart.MaxQuantity + 1}, http.StatusBadRequest},
		{"bundle quantity too large", http.MethodPost, "/api/cart/bundles", CartBundleRequest{BundleID: "starter-pack", Quantity: math.MaxInt}, http.StatusBadRequest},
		{"update bundle quantity too large", http.MethodPut, "/api/cart/bundles", CartBundleRequest{BundleID: "starter-pack", Quantity: cart.MaxQuantity + 1}, http.StatusBadRequest},
		{"unknown bundle", http.MethodPost, "/api/cart/bundles", CartBundleRequest{BundleID: "nope"}, http.StatusNotFound},
		{"remove without id", http.MethodDelete, "/api/cart/items", nil, http.StatusBadRequest},
		{"remove bundle without id", http.MethodDelete, "/api/cart/bundles", nil, http.StatusBadRequest},
		{"empty checkout", http.MethodGet, "/api/cart/checkout", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(t, client, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	assert.Equal(t, 0, decode[CartResponse](t, ts.do(t, client, http.MethodGet, "/api/cart", nil)).TotalItems)
}

func TestCartAPI_TamperedCookieStartsNewSession(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)
	ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Quantity: 2})

	u, err := url.Parse(ts.server.URL)
	require.NoError(t, err)
	c.Jar.SetCookies(u, []*http.Cookie{{Name: sessionCookieName, Value: "forged", Path: "/"}})

	got := decode[CartResponse](t, ts.do(t, c, http.MethodGet, "/api/cart", nil))
	assert.Equal(t, 0, got.TotalItems)
}

func TestShopPage(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	t.Run("all products", func(t *testing.T) {
		resp, doc := ts.page(t, c, "/shop")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 5, doc.Find(".product-grid .product-card").Length())
		assert.Equal(t, "Showing 5 of 5 products", strings.TrimSpace(doc.Find(".results-count").Text()))
		assert.Equal(t, 0, doc.Find(".active-filters").Length())
		assert.Equal(t, 3, doc.Find(".featured-item").Length())
		assert.Equal(t, 3, doc.Find("#bundles .bundle-card").Length())
	})

	t.Run("category filter", func(t *testing.T) {
		_, doc := ts.page(t, c, "/shop?category=mushrooms")
		cards := doc.Find(".product-grid .product-card")
		require.Equal(t, 1, cards.Length())
		id, _ := cards.Attr("data-id")
		assert.Equal(t, "4", id)
		assert.Equal(t, "Showing 1 of 5 products", strings.TrimSpace(doc.Find(".results-count").Text()))
		assert.Equal(t, 1, doc.Find(".active-filters a.clear-filters").Length())
		assert.Contains(t, doc.Find(".low-stock").Text(), "Only 5 left!")
	})

	t.Run("sorted by name", func(t *testing.T) {
		_, doc := ts.page(t, c, "/shop?sort=name")
		var got []string
		doc.Find(".product-grid .product-card").Each(func(_ int, s *goquery.Selection) {
			id, _ := s.Attr("data-id")
			got = append(got, id)
		})
		assert.Equal(t, []string{"3", "1", "4", "2", "5"}, got)
	})

	t.Run("empty state", func(t *testing.T) {
		_, doc := ts.page(t, c, "/shop?search=quinoa")
		assert.Equal(t, 1, doc.Find(".empty-state").Length())
		assert.Equal(t, 0, doc.Find(".product-grid").Length())
	})

	t.Run("unknown price range", func(t *testing.T) {
		resp, doc := ts.page(t, c, "/shop?price=cheap")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, 1, doc.Find(".query-error").Length())
		assert.Equal(t, 5, doc.Find(".product-grid .product-card").Length())
	})
}

func TestProductPage(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp, doc := ts.page(t, c, "/shop/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dried Managu", doc.Find(".product-detail h1").Text())
	assert.Equal(t, 2, doc.Find(".related-item").Length())
	assert.Equal(t, 6, doc.Find(".nutrition tr").Length())
	assert.Equal(t, "protein", doc.Find(".nutrition th").First().Text())

	for _, path := range []string{"/shop/999", "/shop/abc"} {
		resp, doc := ts.page(t, c, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Product Not Found", doc.Find(".not-found h1").Text(), path)
	}
}

func TestProductPage_OutOfStockDisablesButton(t *testing.T) {
	products := []models.Product{{ID: 7, Name: "Dried Terere", Price50: 200, Price100: 400, InStock: 0}}
	c, err := catalog.New(products, nil)
	require.NoError(t, err)
	ts := newTestStore(t, c)

	_, doc := ts.page(t, ts.client(t), "/shop/7")
	button := doc.Find(".product-detail button.add-to-cart")
	_, disabled := button.Attr("disabled")
	assert.True(t, disabled)
	assert.Equal(t, "Out of Stock", button.Text())
}

func TestShopPage_BundlePriceStrikethrough(t *testing.T) {
	bundles := []models.Bundle{
		{ID: "starter-pack", Name: "Starter Pack", Products: []string{"Managu", "Saaga"}, Price: 350, OriginalPrice: 400, Savings: 50},
		{ID: "trial-pack", Name: "Trial Pack", Products: []string{"Managu"}, Price: 200, OriginalPrice: 200},
		{ID: "unpriced-pack", Name: "Unpriced Pack", Products: []string{"Saaga"}, Price: 300},
	}
	c, err := catalog.New(nil, bundles)
	require.NoError(t, err)
	ts := newTestStore(t, c)

	_, doc := ts.page(t, ts.client(t), "/shop")

	starter := doc.Find(`#bundles .bundle-card[data-id="starter-pack"]`)
	require.Equal(t, 1, starter.Length())
	assert.Equal(t, "Ksh 400", starter.Find(".price s").Text())
	assert.Equal(t, "Save Ksh 50", starter.Find(".savings").Text())

	for _, id := range []string{"trial-pack", "unpriced-pack"} {
		card := doc.Find(`#bundles .bundle-card[data-id="` + id + `"]`)
		require.Equal(t, 1, card.Length(), id)
		assert.Equal(t, 0, card.Find(".price s").Length(), id)
		assert.Equal(t, 0, card.Find(".savings").Length(), id)
	}
}

func TestCartPages_FormFlow(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp := ts.postForm(t, c, "/cart/add", url.Values{"product_id": {"1"}, "weight": {"100g"}, "quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))

	ts.postForm(t, c, "/cart/add", url.Values{"bundle_id": {"family-pack"}})

	_, doc := ts.page(t, c, "/cart")
	assert.Equal(t, 1, doc.Find(".cart-item").Length())
	assert.Equal(t, 1, doc.Find(".cart-bundle").Length())
	assert.Equal(t, "Total: Ksh 1350", doc.Find(".cart-total").Text())
	assert.Equal(t, "3", doc.Find(".cart-count").Text())

	ts.postForm(t, c, "/cart/update", url.Values{"product_id": {"1"}, "weight": {"100g"}, "quantity": {"1"}})
	ts.postForm(t, c, "/cart/remove", url.Values{"bundle_id": {"family-pack"}})

	_, doc = ts.page(t, c, "/cart")
	assert.Equal(t, "Total: Ksh 400", doc.Find(".cart-total").Text())

	resp = ts.do(t, c, http.MethodGet, "/checkout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	link := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/254712345678?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "🛒 Dried Managu (100g) x 1 = Ksh 400\n✅ Total: Ksh 400")

	ts.postForm(t, c, "/cart/clear", nil)
	assert.Equal(t, 0, ts.sessions.Len())
	_, doc = ts.page(t, c, "/cart")
	assert.Equal(t, 1, doc.Find(".empty-cart").Length())
}

func TestCheckoutRedirect_EmptyCart(t *testing.T) {
	ts := newTestStore(t, nil)

	resp := ts.do(t, ts.client(t), http.MethodGet, "/checkout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/cart", resp.Header.Get("Location"))
}

func TestHomePage(t *testing.T) {
	ts := newTestStore(t, nil)

	resp, doc := ts.page(t, ts.client(t), "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, doc.Find(".product-card").Length())
	assert.Equal(t, "0", doc.Find(".cart-count").Text())
	assert.Equal(t, 0, ts.sessions.Len(), "browsing does not start a cart session")

	resp = ts.do(t, ts.client(t), http.MethodGet, "/no-such-page", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactHandler(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp := ts.do(t, c, http.MethodPost, "/api/contact", ContactRequest{Name: "Wanjiku", Email: "w@example.com", Message: "Do you deliver to Nakuru?"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.NotEmpty(t, body["id"])
	require.Len(t, ts.notifier.sent, 1)
	assert.Equal(t, "Wanjiku", ts.notifier.sent[0].Name)

	resp = ts.do(t, c, http.MethodPost, "/api/contact", ContactRequest{Name: "Wanjiku"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "email")

	ts.notifier.err = errors.New("sendgrid down")
	resp = ts.do(t, c, http.MethodPost, "/api/contact", ContactRequest{Name: "Wanjiku", Email: "w@example.com", Message: "Hello"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestContactForm(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	resp := ts.postForm(t, c, "/contact", url.Values{"name": {"Otieno"}, "email": {"o@example.com"}, "message": {"Bulk order?"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".contact-success").Length())

	resp = ts.postForm(t, c, "/contact", url.Values{"name": {"Otieno"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	doc, err = goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find(".contact-error").Text(), "message")
}

func TestCartAPI_QuantitySaturatesAtMaximum(t *testing.T) {
	ts := newTestStore(t, nil)
	c := ts.client(t)

	ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "50g", Quantity: cart.MaxQuantity})
	got := decode[CartResponse](t, ts.do(t, c, http.MethodPost, "/api/cart/items", CartItemRequest{ProductID: 1, Weight: "50g", Quantity: 2}))

	require.Len(t, got.Items, 1)
	assert.Equal(t, cart.MaxQuantity, got.Items[0].Quantity)
	assert.Equal(t, cart.MaxQuantity, got.TotalItems)
	assert.Equal(t, cart.MaxQuantity*200, got.TotalPrice)

	checkout := decode[CheckoutResponse](t, ts.do(t, c, http.MethodGet, "/api/cart/checkout", nil))
	assert.Contains(t, checkout.Message, "x 999 = Ksh 199800")

	resp := ts.postForm(t, c, "/cart/add", url.Values{"product_id": {"2"}, "quantity": {"1000"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ts.postForm(t, c, "/cart/update", url.Values{"product_id": {"1"}, "weight": {"50g"}, "quantity": {"9223372036854775807"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
