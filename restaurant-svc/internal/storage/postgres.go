package storage

import (
	"context"
	"database/sql"
	"fmt"

	"quickbite/restaurant-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description VARCHAR(500),
			address VARCHAR(255)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_name ON restaurants (name)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description VARCHAR(500),
			price INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			category VARCHAR(255) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items (restaurant_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO restaurants (name, description, address) VALUES ($1, $2, $3) RETURNING id",
		rest.Name, rest.Description, rest.Address,
	).Scan(&rest.ID)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(address, '')
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Address); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(address, '')
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Address)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) GetRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(address, '')
		FROM restaurants
		WHERE name = $1`, name).
		Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Address)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		`UPDATE restaurants SET name=$1, description=$2, address=$3 WHERE id=$4
		 RETURNING id, name, COALESCE(description, ''), COALESCE(address, '')`,
		rest.Name, rest.Description, rest.Address, rest.ID).
		Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Address)
}

// DeleteRestaurant cascades to the restaurant's menu items and orders
// through the foreign keys.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO menu_items (restaurant_id, name, description, price, is_available, category)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.RestaurantID, item.Name, item.Description, item.Price, item.IsAvailable, item.Category).
		Scan(&item.ID)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, is_available, category
		FROM menu_items
		WHERE restaurant_id = $1`
	if onlyAvailable {
		query += " AND is_available"
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.Category); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, is_available, category
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.Category)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx,
		`UPDATE menu_items SET name=$1, description=$2, price=$3, is_available=$4, category=$5
		 WHERE id=$6
		 RETURNING id, restaurant_id, name, COALESCE(description, ''), price, is_available, category`,
		item.Name, item.Description, item.Price, item.IsAvailable, item.Category, item.ID).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.IsAvailable, &item.Category)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
