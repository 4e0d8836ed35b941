// Package catalog is the order service's client for the restaurant
// service's read-only query interface.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotFound means the restaurant service authoritatively reports
	// no such entity.
	ErrNotFound = errors.New("catalog: not found")
	// ErrUnavailable means the restaurant service could not be reached
	// or answered with a server-side error; the caller cannot resolve
	// this now.
	ErrUnavailable = errors.New("catalog: restaurant service unavailable")
)

type Restaurant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	IsAvailable  bool   `json:"is_available"`
	Category     string `json:"category"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetRestaurant(ctx context.Context, id int) (*Restaurant, error) {
	var rest Restaurant
	if err := c.get(ctx, fmt.Sprintf("%s/api/restaurants/%d", c.baseURL, id), &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id int) (*MenuItem, error) {
	var item MenuItem
	if err := c.get(ctx, fmt.Sprintf("%s/api/menu-items/%d", c.baseURL, id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Timeouts and transport failures land here.
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
