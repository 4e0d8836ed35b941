package service

import (
	"context"

	"quickbite/restaurant-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
}

type MenuItemRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) (int64, error)
}

// MenuItemCache is a best-effort read cache; a nil cache disables caching.
type MenuItemCache interface {
	Get(ctx context.Context, id int) (*domain.MenuItem, bool)
	Set(ctx context.Context, item *domain.MenuItem) error
	Invalidate(ctx context.Context, id int) error
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	GetByName(ctx context.Context, name string) (*domain.Restaurant, error)
	Update(ctx context.Context, rest *domain.Restaurant) error
	Delete(ctx context.Context, id int) (int64, error)
}

type MenuServiceInterface interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int) (int64, error)
}
