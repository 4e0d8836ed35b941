package tests

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickbite/order-svc/internal/catalog"
	"quickbite/order-svc/internal/domain"
	"quickbite/order-svc/internal/mocks"
	"quickbite/order-svc/internal/service"
)

func placeRequest() *domain.PlaceOrderRequest {
	return &domain.PlaceOrderRequest{
		CustomerName:    "Alice",
		CustomerPhone:   "+1-555-0100",
		DeliveryAddress: "1 Main St",
		RestaurantID:    1,
		Items: []domain.RequestedItem{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	}
}

func TestOrderService_PlaceRejectsBadPayloadBeforeAnyRemoteCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.PlaceOrderRequest)
	}{
		{
			name:   "missing phone",
			mutate: func(req *domain.PlaceOrderRequest) { req.CustomerPhone = "" },
		},
		{
			name:   "missing address",
			mutate: func(req *domain.PlaceOrderRequest) { req.DeliveryAddress = "" },
		},
		{
			name:   "no restaurant id",
			mutate: func(req *domain.PlaceOrderRequest) { req.RestaurantID = 0 },
		},
		{
			name:   "no items",
			mutate: func(req *domain.PlaceOrderRequest) { req.Items = nil },
		},
		{
			name:   "zero quantity",
			mutate: func(req *domain.PlaceOrderRequest) { req.Items[0].Quantity = 0 },
		},
		{
			name:   "negative quantity",
			mutate: func(req *domain.PlaceOrderRequest) { req.Items[1].Quantity = -1 },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			mockCatalog := new(mocks.MenuQuery)
			svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

			req := placeRequest()
			testCase.mutate(req)

			order, err := svc.Place(context.Background(), req)

			assert.ErrorIs(t, err, service.ErrInvalidOrder)
			assert.Nil(t, order)
			mockCatalog.AssertNotCalled(t, "GetRestaurant", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_PlaceRestaurantNotFound(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

	mockCatalog.On("GetRestaurant", mock.Anything, 1).Return(nil, catalog.ErrNotFound).Once()

	order, err := svc.Place(context.Background(), placeRequest())

	assert.ErrorIs(t, err, service.ErrRestaurantNotFound)
	assert.Nil(t, order)
	mockCatalog.AssertNotCalled(t, "GetMenuItem", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceFailFastStopsAtFirstBadItem(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

	req := placeRequest()
	req.Items = []domain.RequestedItem{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 2, Quantity: 1},
		{MenuItemID: 3, Quantity: 1},
	}

	mockCatalog.On("GetRestaurant", mock.Anything, 1).
		Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 1).
		Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 2).
		Return(&catalog.MenuItem{ID: 2, Name: "Calzone", Price: 700, IsAvailable: false}, nil).Once()

	order, err := svc.Place(context.Background(), req)

	assert.ErrorIs(t, err, service.ErrMenuItemUnavailable)
	assert.Contains(t, err.Error(), "menu item 2")
	assert.Nil(t, order)
	// The third line is never queried once the second fails.
	mockCatalog.AssertNotCalled(t, "GetMenuItem", mock.Anything, 3)
	mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	mockCatalog.AssertExpectations(t)
}

func TestOrderService_PlaceMenuItemNotFound(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

	mockCatalog.On("GetRestaurant", mock.Anything, 1).
		Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 1).Return(nil, catalog.ErrNotFound).Once()

	order, err := svc.Place(context.Background(), placeRequest())

	assert.ErrorIs(t, err, service.ErrMenuItemNotFound)
	assert.Contains(t, err.Error(), "menu item 1")
	assert.Nil(t, order)
	mockCatalog.AssertNotCalled(t, "GetMenuItem", mock.Anything, 2)
	mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceCatalogUnavailableLeavesNothingPersisted(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *mocks.MenuQuery)
	}{
		{
			name: "restaurant lookup fails",
			setupMock: func(m *mocks.MenuQuery) {
				m.On("GetRestaurant", mock.Anything, 1).Return(nil, catalog.ErrUnavailable).Once()
			},
		},
		{
			name: "menu item lookup fails",
			setupMock: func(m *mocks.MenuQuery) {
				m.On("GetRestaurant", mock.Anything, 1).
					Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
				m.On("GetMenuItem", mock.Anything, 1).Return(nil, catalog.ErrUnavailable).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			mockCatalog := new(mocks.MenuQuery)
			svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

			testCase.setupMock(mockCatalog)

			order, err := svc.Place(context.Background(), placeRequest())

			assert.ErrorIs(t, err, service.ErrCatalogUnavailable)
			assert.Nil(t, order)
			mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_PlaceSnapshotsNameAndPriceInRequestOrder(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	mockPublisher := new(mocks.OrderPublisher)
	mockQR := new(mocks.QRGenerator)
	svc := service.NewOrderService(mockRepo, mockCatalog, mockPublisher, mockQR)

	mockCatalog.On("GetRestaurant", mock.Anything, 1).
		Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 1).
		Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 2).
		Return(&catalog.MenuItem{ID: 2, Name: "Tiramisu", Price: 300, IsAvailable: true}, nil).Once()

	mockRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 42
		}).Return(nil).Once()
	mockQR.On("Generate", 42).Return([]byte("qr"), nil).Once()
	mockRepo.On("SaveQRCode", mock.Anything, 42, []byte("qr")).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).
		Return(nil).Once()

	order, err := svc.Place(context.Background(), placeRequest())

	assert.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, []domain.OrderItem{
		{OrderID: 42, MenuItemID: 1, MenuItemName: "Margherita", Price: 500, Quantity: 2},
		{OrderID: 42, MenuItemID: 2, MenuItemName: "Tiramisu", Price: 300, Quantity: 1},
	}, order.Items)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_PlacePublishFailureDoesNotFailOrder(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	mockPublisher := new(mocks.OrderPublisher)
	svc := service.NewOrderService(mockRepo, mockCatalog, mockPublisher, nil)

	mockCatalog.On("GetRestaurant", mock.Anything, 1).
		Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 1).
		Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 2).
		Return(&catalog.MenuItem{ID: 2, Name: "Tiramisu", Price: 300, IsAvailable: true}, nil).Once()
	mockRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).
		Return(assert.AnError).Once()

	order, err := svc.Place(context.Background(), placeRequest())

	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestOrderService_PlaceStorageError(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockCatalog := new(mocks.MenuQuery)
	svc := service.NewOrderService(mockRepo, mockCatalog, nil, nil)

	mockCatalog.On("GetRestaurant", mock.Anything, 1).
		Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 1).
		Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
	mockCatalog.On("GetMenuItem", mock.Anything, 2).
		Return(&catalog.MenuItem{ID: 2, Name: "Tiramisu", Price: 300, IsAvailable: true}, nil).Once()
	mockRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(assert.AnError).Once()

	order, err := svc.Place(context.Background(), placeRequest())

	assert.Error(t, err)
	assert.Nil(t, order)
	mockRepo.AssertNotCalled(t, "SaveQRCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_ChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.OrderStatus
		mockOrder *domain.Order
		mockError error
		wantErr   error
	}{
		{
			name:      "pending to preparing",
			status:    domain.StatusPreparing,
			mockOrder: &domain.Order{ID: 7, RestaurantID: 1, Status: domain.StatusPreparing},
		},
		{
			// No transition table is enforced; terminal states may be left.
			name:      "delivered back to pending",
			status:    domain.StatusPending,
			mockOrder: &domain.Order{ID: 7, RestaurantID: 1, Status: domain.StatusPending},
		},
		{
			name:      "order missing",
			status:    domain.StatusCanceled,
			mockError: sql.ErrNoRows,
			wantErr:   service.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			mockPublisher := new(mocks.OrderPublisher)
			svc := service.NewOrderService(mockRepo, new(mocks.MenuQuery), mockPublisher, nil)

			if testCase.mockError != nil {
				mockRepo.On("UpdateStatus", mock.Anything, 7, testCase.status).
					Return(nil, testCase.mockError).Once()
			} else {
				mockRepo.On("UpdateStatus", mock.Anything, 7, testCase.status).
					Return(testCase.mockOrder, nil).Once()
				mockPublisher.On("PublishOrderEvent", mock.Anything, mock.AnythingOfType("domain.OrderEvent")).
					Return(nil).Once()
			}

			order, err := svc.ChangeStatus(context.Background(), 7, testCase.status)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.status, order.Status)
			}
			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetMapsMissingToNotFound(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, new(mocks.MenuQuery), nil, nil)

	mockRepo.On("GetOrder", mock.Anything, 99).Return(nil, sql.ErrNoRows).Once()

	order, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Nil(t, order)
}

func TestOrderService_Delete(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	svc := service.NewOrderService(mockRepo, new(mocks.MenuQuery), nil, nil)

	mockRepo.On("DeleteOrder", mock.Anything, 7).Return(int64(1), nil).Once()
	mockRepo.On("DeleteOrder", mock.Anything, 99).Return(int64(0), nil).Once()

	assert.NoError(t, svc.Delete(context.Background(), 7))
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), service.ErrOrderNotFound)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "preparing", "delivering", "delivered", "canceled"} {
		status, err := domain.ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatus(valid), status)
	}

	_, err := domain.ParseStatus("shipped")
	assert.Error(t, err)
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := &service.DefaultQRGenerator{BaseURL: "http://localhost"}
	qr, err := gen.Generate(123)

	assert.NoError(t, err)
	assert.NotEmpty(t, qr)
}
