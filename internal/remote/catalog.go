package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

const productServiceName = "product-service"

// ProductDetails is the pricing view the product service serves for the order
// workflow.
type ProductDetails struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Img      string  `json:"img"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CatalogClient calls the product service for live stock and pricing.
type CatalogClient struct {
	resolver Resolver
	client   *http.Client
}

func NewCatalogClient(resolver Resolver) *CatalogClient {
	return &CatalogClient{
		resolver: resolver,
		client:   defaultHTTPClient(),
	}
}

// DetailsForOrder fetches name, category, image, live quantity, and price.
func (p *CatalogClient) DetailsForOrder(ctx context.Context, productID string) (ProductDetails, error) {
	var details ProductDetails
	path := fmt.Sprintf("/products/products/%s/detailsForOrder", productID)
	if err := p.get(ctx, path, "Invalid product id", &details); err != nil {
		return ProductDetails{}, err
	}
	return details, nil
}

// Quantity fetches the live stock level for the cart's incremental check.
func (p *CatalogClient) Quantity(ctx context.Context, productID string) (int, error) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	path := fmt.Sprintf("/products/products/%s/quantity", productID)
	if err := p.get(ctx, path, "Invalid Product Id", &body); err != nil {
		return 0, err
	}
	return body.Quantity, nil
}

// UpdateQuantity sets the absolute stock level after an order decrements it.
// The product service takes the quantity as a string.
func (p *CatalogClient) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	base, err := p.resolver.Resolve(productServiceName)
	if err != nil {
		return errUnavailable()
	}

	payload, err := json.Marshal(map[string]string{"quantity": strconv.Itoa(quantity)})
	if err != nil {
		return fmt.Errorf("encoding quantity update: %w", err)
	}

	url := fmt.Sprintf("%s/products/products/%s/updateQuantity", base, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building product service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return errUnavailable()
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return errUnavailable()
	case resp.StatusCode >= 400:
		return apperr.New(apperr.InvalidInput, "Invalid product id")
	}
	return nil
}

func (p *CatalogClient) get(ctx context.Context, path string, badIDMessage string, out any) error {
	base, err := p.resolver.Resolve(productServiceName)
	if err != nil {
		return errUnavailable()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return fmt.Errorf("building product service request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errUnavailable()
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return errUnavailable()
	case resp.StatusCode >= 400:
		return apperr.New(apperr.InvalidInput, badIDMessage)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding product service response: %w", err)
	}
	return nil
}
