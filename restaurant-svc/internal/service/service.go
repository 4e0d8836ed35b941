package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickbite/restaurant-svc/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	return s.repo.CreateRestaurant(ctx, rest)
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

func (s *RestaurantService) GetByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurantByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	err := s.repo.UpdateRestaurant(ctx, rest)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRestaurantNotFound
	}
	return err
}

func (s *RestaurantService) Delete(ctx context.Context, id int) (int64, error) {
	return s.repo.DeleteRestaurant(ctx, id)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)

type MenuService struct {
	repo        MenuItemRepository
	restaurants RestaurantRepository
	cache       MenuItemCache
}

func NewMenuService(repo MenuItemRepository, restaurants RestaurantRepository, cache MenuItemCache) *MenuService {
	return &MenuService{repo: repo, restaurants: restaurants, cache: cache}
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if _, err := s.restaurants.GetRestaurant(ctx, item.RestaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("failed to check restaurant: %w", err)
	}
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *MenuService) List(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return s.repo.ListMenuItems(ctx, restaurantID, onlyAvailable)
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	if s.cache != nil {
		if item, ok := s.cache.Get(ctx, id); ok {
			return item, nil
		}
	}

	item, err := s.repo.GetMenuItem(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, item)
	}
	return item, nil
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	err := s.repo.UpdateMenuItem(ctx, item)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMenuItemNotFound
	}
	if err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, item.ID)
	}
	return nil
}

func (s *MenuService) Delete(ctx context.Context, id int) (int64, error) {
	rows, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return 0, err
	}
	if rows > 0 && s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
	return rows, nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
