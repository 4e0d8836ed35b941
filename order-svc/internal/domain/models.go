package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCanceled   OrderStatus = "canceled"
)

// ParseStatus rejects unknown status tokens at the request boundary.
// Any known status is a legal transition target from any current state.
func ParseStatus(raw string) (OrderStatus, error) {
	switch status := OrderStatus(raw); status {
	case StatusPending, StatusPreparing, StatusDelivering, StatusDelivered, StatusCanceled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

type Order struct {
	ID              int         `json:"id"`
	CustomerName    string      `json:"customer_name,omitempty"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	RestaurantID    int         `json:"restaurant_id"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
}

// OrderItem carries the menu item's name and price as they were at
// order time. Later menu edits never touch these rows.
type OrderItem struct {
	ID           int    `json:"-"`
	OrderID      int    `json:"-"`
	MenuItemID   int    `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Price        int    `json:"price"`
	Quantity     int    `json:"quantity"`
}

type RequestedItem struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	RestaurantID    int             `json:"restaurant_id"`
	Items           []RequestedItem `json:"items"`
}

type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      int       `json:"order_id"`
	RestaurantID int       `json:"restaurant_id"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}
