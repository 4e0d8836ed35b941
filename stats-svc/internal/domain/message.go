package domain

import "time"

type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      int       `json:"order_id"`
	RestaurantID int       `json:"restaurant_id"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}
