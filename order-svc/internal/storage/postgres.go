package storage

import (
	"context"
	"database/sql"
	"fmt"

	"quickbite/order-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// EnsureSchema expects the restaurant service's tables to exist already;
// both services share one database.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_name VARCHAR(100),
			customer_phone VARCHAR(100) NOT NULL,
			delivery_address VARCHAR(255) NOT NULL,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			qr_code BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INTEGER NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			menu_item_name VARCHAR(255) NOT NULL,
			price INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
			quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// CreateOrder writes the header and every item inside one transaction:
// either the whole order commits or nothing is observable. An order
// with zero items must never be visible, even briefly.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, customer_phone, delivery_address, restaurant_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, order.CustomerName, order.CustomerPhone, order.DeliveryAddress,
		order.RestaurantID, order.Status).Scan(&order.ID); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, menu_item_name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, item.OrderID, item.MenuItemID, item.MenuItemName, item.Price, item.Quantity).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := r.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(customer_name, ''), customer_phone, delivery_address, restaurant_id, status
		FROM orders WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerName, &order.CustomerPhone,
		&order.DeliveryAddress, &order.RestaurantID, &order.Status); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, menu_item_name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.MenuItemName, &item.Price, &item.Quantity); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(customer_name, ''), customer_phone, delivery_address, restaurant_id, status
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerPhone,
			&order.DeliveryAddress, &order.RestaurantID, &order.Status); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE orders SET status=$1 WHERE id=$2", status, id)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetOrder(ctx, id)
}

// DeleteOrder cascades to the order's items through the foreign key.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}
