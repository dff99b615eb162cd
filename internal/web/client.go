package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"minishop/internal/models"
)

// APIClient is a thin JSON client over the API service. The gateway holds
// no business data of its own; everything is fetched per request.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client for the API service at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthResponse is the API's envelope for register and login calls.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// CartItem is a cart row as returned by the API's cart listing.
type CartItem struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// postJSON posts a JSON body and decodes the API's auth envelope. The
// envelope is returned for both success and failure statuses so callers
// can surface the API's message inline; only transport or decode problems
// yield an error.
func (c *APIClient) postJSON(path string, payload interface{}) (*AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	var out AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode api response from %s: %w", path, err)
	}
	return &out, nil
}

// getJSON fetches a path and decodes the response into out.
func (c *APIClient) getJSON(path string, out interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("api request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api request %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode api response from %s: %w", path, err)
	}
	return nil
}

// Login forwards credentials unchanged to the API's login operation.
func (c *APIClient) Login(username, password string) (*AuthResponse, error) {
	return c.postJSON("/api/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// Register forwards registration fields unchanged to the API.
func (c *APIClient) Register(username, email, password string) (*AuthResponse, error) {
	return c.postJSON("/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Products fetches the full catalog.
func (c *APIClient) Products() ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON("/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CartItems fetches the user's cart rows.
func (c *APIClient) CartItems(userID uint) ([]CartItem, error) {
	var items []CartItem
	if err := c.getJSON(fmt.Sprintf("/api/cart?user_id=%d", userID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Orders fetches the user's orders, each with its product embedded.
func (c *APIClient) Orders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := c.getJSON(fmt.Sprintf("/api/order?user_id=%d", userID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
