package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sales-service/internal/dberr"
	"sales-service/internal/domain"
)

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerService) Get(ctx context.Context, id uint64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerService) Update(ctx context.Context, id uint64, patch domain.CustomerPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockCustomerService) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func customerRouter(cs *mockCustomerService) *gin.Engine {
	return setupRouterWithCustomers(cs, new(mockQuoteService), new(mockOrderService))
}

func savedCustomer(id uint64) *domain.Customer {
	return &domain.Customer{
		ID: id,
		Contact: domain.Contact{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	}
}

func TestCreateCustomer(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		setupMock  func(*mockCustomerService)
		wantStatus int
		wantField  string
	}{
		{
			name: "success without address",
			body: map[string]any{"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com"},
			setupMock: func(m *mockCustomerService) {
				m.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
					return c.Email == "jane@example.com" && c.Address == ""
				})).Return(savedCustomer(3), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid email",
			body:       map[string]any{"first_name": "Jane", "last_name": "Doe", "email": "nope"},
			setupMock:  func(m *mockCustomerService) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name: "duplicate email",
			body: map[string]any{"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com"},
			setupMock: func(m *mockCustomerService) {
				m.On("Save", mock.Anything, mock.Anything).Return(nil, &dberr.Error{
					Kind:    dberr.KindConflict,
					Entity:  "customer",
					Field:   "email",
					Message: "The email has already been taken.",
				})
			},
			wantStatus: http.StatusConflict,
			wantField:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := new(mockCustomerService)
			tt.setupMock(cs)

			w, env := doRequest(customerRouter(cs), http.MethodPost, "/api/customer", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField != "" {
				require.NotEmpty(t, env.Error)
				assert.Equal(t, tt.wantField, env.Error[0].Field)
			}
			cs.AssertExpectations(t)
		})
	}
}

func TestListCustomers(t *testing.T) {
	cs := new(mockCustomerService)
	cs.On("List", mock.Anything).Return([]domain.Customer{*savedCustomer(1), *savedCustomer(2)}, nil)

	w, env := doRequest(customerRouter(cs), http.MethodGet, "/api/customer", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.Customer
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestGetCustomerNotFound(t *testing.T) {
	cs := new(mockCustomerService)
	cs.On("Get", mock.Anything, uint64(9)).Return(nil, dberr.NotFound("customer"))

	w, env := doRequest(customerRouter(cs), http.MethodGet, "/api/customer/9", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Code)
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("returns the reloaded customer", func(t *testing.T) {
		cs := new(mockCustomerService)
		cs.On("Update", mock.Anything, uint64(3), mock.MatchedBy(func(p domain.CustomerPatch) bool {
			return p.Contact.LastName != nil && *p.Contact.LastName == "Smith"
		})).Return(nil)
		updated := savedCustomer(3)
		updated.LastName = "Smith"
		cs.On("Get", mock.Anything, uint64(3)).Return(updated, nil)

		w, env := doRequest(customerRouter(cs), http.MethodPatch, "/api/customer/3", map[string]any{"last_name": "Smith"})

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.Customer
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Smith", got.LastName)
		cs.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		cs := new(mockCustomerService)

		w, env := doRequest(customerRouter(cs), http.MethodPatch, "/api/customer/3", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, env.Error)
		assert.Equal(t, "body", env.Error[0].Field)
		cs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCustomerWithOrders(t *testing.T) {
	cs := new(mockCustomerService)
	cs.On("Delete", mock.Anything, uint64(1)).Return(dberr.Conflict("customer", "The customer still has orders."))

	w, env := doRequest(customerRouter(cs), http.MethodDelete, "/api/customer/1", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "The customer still has orders.", env.Message)
}
