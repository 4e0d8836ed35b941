package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickbite/restaurant-svc/internal/domain"
)

type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	args := m.Called(ctx, rest)
	return args.Error(0)
}

func (m *RestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	args := m.Called(ctx, rest)
	return args.Error(0)
}

func (m *RestaurantRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MenuItemRepository struct {
	mock.Mock
}

func (m *MenuItemRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MenuItemRepository) ListMenuItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MenuItemRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MenuItemRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MenuItemRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MenuItemCache struct {
	mock.Mock
}

func (m *MenuItemCache) Get(ctx context.Context, id int) (*domain.MenuItem, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Bool(1)
}

func (m *MenuItemCache) Set(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MenuItemCache) Invalidate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
