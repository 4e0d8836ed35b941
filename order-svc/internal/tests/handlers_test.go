package tests

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "quickbite/order-svc/internal/api/http"
	"quickbite/order-svc/internal/catalog"
	"quickbite/order-svc/internal/domain"
	"quickbite/order-svc/internal/mocks"
	"quickbite/order-svc/internal/service"
)

func newOrderRouter(repo *mocks.OrderRepository, menu *mocks.MenuQuery) *mux.Router {
	svc := service.NewOrderService(repo, menu, nil, nil)
	handler := httpapi.NewHandler(svc)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestCreateOrderHandler(t *testing.T) {
	validBody := `{
		"customer_name": "Alice",
		"customer_phone": "+1-555-0100",
		"delivery_address": "1 Main St",
		"restaurant_id": 1,
		"items": [{"menu_item_id": 1, "quantity": 2}]
	}`

	tests := []struct {
		name      string
		body      string
		setupMock func(repo *mocks.OrderRepository, menu *mocks.MenuQuery)
		wantCode  int
	}{
		{
			name: "placed",
			body: validBody,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {
				menu.On("GetRestaurant", mock.Anything, 1).
					Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
				menu.On("GetMenuItem", mock.Anything, 1).
					Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing phone",
			body:      `{"delivery_address": "1 Main St", "restaurant_id": 1, "items": [{"menu_item_id": 1, "quantity": 1}]}`,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "restaurant not found",
			body: validBody,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {
				menu.On("GetRestaurant", mock.Anything, 1).Return(nil, catalog.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "menu item unavailable",
			body: validBody,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {
				menu.On("GetRestaurant", mock.Anything, 1).
					Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
				menu.On("GetMenuItem", mock.Anything, 1).
					Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: false}, nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "restaurant service down",
			body: validBody,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {
				menu.On("GetRestaurant", mock.Anything, 1).Return(nil, catalog.ErrUnavailable).Once()
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "storage failure",
			body: validBody,
			setupMock: func(repo *mocks.OrderRepository, menu *mocks.MenuQuery) {
				menu.On("GetRestaurant", mock.Anything, 1).
					Return(&catalog.Restaurant{ID: 1, Name: "Trattoria"}, nil).Once()
				menu.On("GetMenuItem", mock.Anything, 1).
					Return(&catalog.MenuItem{ID: 1, Name: "Margherita", Price: 500, IsAvailable: true}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			mockMenu := new(mocks.MenuQuery)
			testCase.setupMock(mockRepo, mockMenu)

			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newOrderRouter(mockRepo, mockMenu).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			mockRepo.AssertExpectations(t)
			mockMenu.AssertExpectations(t)
		})
	}
}

func TestGetOrderHandler(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		mockOrder *domain.Order
		mockError error
		wantCode  int
	}{
		{
			name: "found",
			id:   "7",
			mockOrder: &domain.Order{
				ID:     7,
				Status: domain.StatusPending,
				Items: []domain.OrderItem{
					{MenuItemID: 1, MenuItemName: "Margherita", Price: 500, Quantity: 2},
				},
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "not found",
			id:        "99",
			mockError: sql.ErrNoRows,
			wantCode:  http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			if testCase.mockError != nil {
				mockRepo.On("GetOrder", mock.Anything, mock.Anything).Return(nil, testCase.mockError).Once()
			} else {
				mockRepo.On("GetOrder", mock.Anything, mock.Anything).Return(testCase.mockOrder, nil).Once()
			}

			req := httptest.NewRequest("GET", "/api/orders/"+testCase.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": testCase.id})
			w := httptest.NewRecorder()

			newOrderRouter(mockRepo, new(mocks.MenuQuery)).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"menu_item_name":"Margherita"`)
				assert.Contains(t, w.Body.String(), `"status":"pending"`)
			}
		})
	}
}

func TestChangeStatusHandler(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		body      string
		setupMock func(repo *mocks.OrderRepository)
		wantCode  int
	}{
		{
			name: "query param",
			url:  "/api/orders/7/change-status?status=preparing",
			setupMock: func(repo *mocks.OrderRepository) {
				repo.On("UpdateStatus", mock.Anything, 7, domain.StatusPreparing).
					Return(&domain.Order{ID: 7, Status: domain.StatusPreparing}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "json body",
			url:  "/api/orders/7/change-status",
			body: `{"status":"canceled"}`,
			setupMock: func(repo *mocks.OrderRepository) {
				repo.On("UpdateStatus", mock.Anything, 7, domain.StatusCanceled).
					Return(&domain.Order{ID: 7, Status: domain.StatusCanceled}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "unknown status",
			url:       "/api/orders/7/change-status?status=shipped",
			setupMock: func(repo *mocks.OrderRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "order missing",
			url:  "/api/orders/99/change-status?status=canceled",
			setupMock: func(repo *mocks.OrderRepository) {
				repo.On("UpdateStatus", mock.Anything, 99, domain.StatusCanceled).
					Return(nil, sql.ErrNoRows).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.OrderRepository)
			testCase.setupMock(mockRepo)

			req := httptest.NewRequest("POST", testCase.url, bytes.NewBufferString(testCase.body))
			w := httptest.NewRecorder()

			newOrderRouter(mockRepo, new(mocks.MenuQuery)).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDeleteOrderHandler(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockRepo.On("DeleteOrder", mock.Anything, 7).Return(int64(1), nil).Once()
	mockRepo.On("DeleteOrder", mock.Anything, 99).Return(int64(0), nil).Once()

	router := newOrderRouter(mockRepo, new(mocks.MenuQuery))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/orders/7", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/orders/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
