package service

import (
	"context"

	"quickbite/order-svc/internal/catalog"
	"quickbite/order-svc/internal/domain"
)

// MenuQuery is the restaurant service's read-only query interface as
// the order workflow consumes it. Both calls are idempotent reads.
type MenuQuery interface {
	GetRestaurant(ctx context.Context, id int) (*catalog.Restaurant, error)
	GetMenuItem(ctx context.Context, id int) (*catalog.MenuItem, error)
}

type OrderRepository interface {
	// CreateOrder persists the header and all items in one transaction
	// and fills in the generated ids.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int) (int64, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, msg domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Place(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ChangeStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}
