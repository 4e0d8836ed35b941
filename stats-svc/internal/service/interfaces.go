package service

import (
	"context"
	"time"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, restaurantID int, at time.Time) error
}
