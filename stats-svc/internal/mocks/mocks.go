package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

func (m *Store) RecordOrder(ctx context.Context, restaurantID int, at time.Time) error {
	args := m.Called(ctx, restaurantID, at)
	return args.Error(0)
}
