package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
)

// Walks a running storefront through browse, cart and checkout.
// Usage: go run ./cmd/test_storefront [base-url]
func main() {
	base := "http://localhost:8080"
	if len(os.Args) > 1 {
		base = os.Args[1]
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	steps := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/products?category=leafy-greens&sort=price-low", nil},
		{http.MethodGet, "/api/products/featured", nil},
		{http.MethodGet, "/api/products/1", nil},
		{http.MethodGet, "/api/products/999", nil},
		{http.MethodPost, "/api/cart/items", map[string]interface{}{"product_id": 1, "weight": "50g", "quantity": 2}},
		{http.MethodPost, "/api/cart/items", map[string]interface{}{"product_id": 1, "weight": "50g", "quantity": 1}},
		{http.MethodPost, "/api/cart/bundles", map[string]interface{}{"bundle_id": "starter-pack", "quantity": 1}},
		{http.MethodGet, "/api/cart", nil},
		{http.MethodGet, "/api/cart/checkout", nil},
	}

	for _, s := range steps {
		fmt.Printf("Testing: %s %s\n", s.method, s.path)

		var body io.Reader
		if s.body != nil {
			b, _ := json.Marshal(s.body)
			body = bytes.NewReader(b)
		}
		req, err := http.NewRequest(s.method, base+s.path, body)
		if err != nil {
			log.Printf("Failed to build request: %v\n", err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Request failed: %v\n", err)
			continue
		}
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			pretty.Write(raw)
		}
		fmt.Printf("Status: %d\n", resp.StatusCode)
		fmt.Printf("Response: %s\n", pretty.String())
		fmt.Println("--------------------------------------------------")
	}
}
