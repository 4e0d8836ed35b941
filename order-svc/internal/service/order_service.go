package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quickbite/order-svc/internal/catalog"
	"quickbite/order-svc/internal/domain"
)

var (
	ErrInvalidOrder        = errors.New("invalid order payload")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available for order")
	ErrCatalogUnavailable  = errors.New("restaurant service unavailable")
	ErrOrderNotFound       = errors.New("order not found")
)

type OrderService struct {
	repo      OrderRepository
	catalog   MenuQuery
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, menu MenuQuery, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		repo:      repo,
		catalog:   menu,
		publisher: publisher,
		qrEncoder: qr,
	}
}

// validatePayload checks request shape before any remote call is made.
func validatePayload(req *domain.PlaceOrderRequest) error {
	switch {
	case req.CustomerPhone == "" || len(req.CustomerPhone) > 100:
		return fmt.Errorf("%w: customer_phone is required (max 100 chars)", ErrInvalidOrder)
	case req.DeliveryAddress == "" || len(req.DeliveryAddress) > 255:
		return fmt.Errorf("%w: delivery_address is required (max 255 chars)", ErrInvalidOrder)
	case len(req.CustomerName) > 100:
		return fmt.Errorf("%w: customer_name too long (max 100 chars)", ErrInvalidOrder)
	case req.RestaurantID <= 0:
		return fmt.Errorf("%w: restaurant_id is required", ErrInvalidOrder)
	case len(req.Items) == 0:
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for _, line := range req.Items {
		if line.MenuItemID <= 0 || line.Quantity < 1 {
			return fmt.Errorf("%w: each item needs a menu_item_id and quantity >= 1", ErrInvalidOrder)
		}
	}
	return nil
}

// Place validates the requested order against the restaurant service
// and persists it. Validation is sequential and fail-fast: the first
// failing line aborts the remaining lookups and nothing is written.
// Each accepted line snapshots the item's current name and price, so
// later menu edits never alter this order.
func (s *OrderService) Place(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := validatePayload(req); err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetRestaurant(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItem, err := s.catalog.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("menu item %d: %w", line.MenuItemID, ErrMenuItemNotFound)
			}
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("menu item %d: %w", line.MenuItemID, ErrMenuItemUnavailable)
		}
		items = append(items, domain.OrderItem{
			MenuItemID:   line.MenuItemID,
			MenuItemName: menuItem.Name,
			Price:        menuItem.Price,
			Quantity:     line.Quantity,
		})
	}

	order := &domain.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		RestaurantID:    req.RestaurantID,
		Status:          domain.StatusPending,
		Items:           items,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.repo.SaveQRCode(ctx, order.ID, qr)
		}
	}

	s.publish(ctx, "order_placed", order)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) ChangeStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "status_changed", order)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

// publish is best-effort: a broker outage never fails the request.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		Timestamp:    time.Now(),
	})
}

var _ OrderServiceInterface = (*OrderService)(nil)
