package domain

type Restaurant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// MenuItem prices are integers in minor currency units.
type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int    `json:"price"`
	IsAvailable  bool   `json:"is_available"`
	Category     string `json:"category"`
}
