package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/service"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Quote(ctx context.Context, req service.RentalRequest) (*domain.RentalQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalQuote), args.Error(1)
}
func (m *MockRentalService) Create(ctx context.Context, req service.RentalRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Get(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, businessID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalService) ChangeStatus(ctx context.Context, id string, status domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Availability(ctx context.Context, equipmentID, startDate, endDate string) (*domain.Availability, error) {
	args := m.Called(ctx, equipmentID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}

func newTestRouter(rentals service.RentalService) *httptest.Server {
	h := NewHandler(nil, nil, nil, rentals, nil, nil, nil, nil, nil, nil)
	return httptest.NewServer(NewRouter(h))
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return env
}

func TestCreateRental(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	req := service.RentalRequest{
		BusinessID:  "biz-1",
		EquipmentID: "eq-1",
		CustomerID:  "cust-1",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-04",
	}
	rentals.On("Create", mock.Anything, req).Return(&domain.Rental{
		ID:         "r-1",
		Status:     domain.RentalStatusReserved,
		TotalCents: 32400,
	}, nil)

	body, _ := json.Marshal(req)
	resp, err := http.Post(server.URL+"/api/v1/rentals", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "r-1", data["id"])
	assert.Equal(t, "reserved", data["status"])
}

func TestCreateRental_Conflict(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	rentals.On("Create", mock.Anything, mock.AnythingOfType("service.RentalRequest")).
		Return(nil, fmt.Errorf("%w: equipment is already booked for those dates", service.ErrConflict))

	resp, err := http.Post(server.URL+"/api/v1/rentals", "application/json",
		bytes.NewReader([]byte(`{"equipment_id":"eq-1"}`)))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already booked")
}

func TestCreateRental_MalformedBody(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/rentals", "application/json",
		bytes.NewReader([]byte(`{"equipment_id":`)))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	rentals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetRental_NotFound(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	rentals.On("Get", mock.Anything, "missing").Return(nil, service.ErrNotFound)

	resp, err := http.Get(server.URL + "/api/v1/rentals/missing")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestQuoteRental(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	rentals.On("Quote", mock.Anything, service.RentalRequest{
		EquipmentID:      "eq-1",
		StartDate:        "2024-06-01",
		EndDate:          "2024-06-04",
		DeliveryFeeCents: 2500,
	}).Return(&domain.RentalQuote{
		EquipmentID:      "eq-1",
		TotalDays:        3,
		SubtotalCents:    30000,
		TaxCents:         2400,
		DeliveryFeeCents: 2500,
		TotalCents:       34900,
	}, nil)

	resp, err := http.Get(server.URL + "/api/v1/rentals/quote?equipment_id=eq-1&start_date=2024-06-01&end_date=2024-06-04&delivery_fee_cents=2500")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(34900), data["total_cents"])
}

func TestListRentals(t *testing.T) {
	rentals := new(MockRentalService)
	server := newTestRouter(rentals)
	defer server.Close()

	rentals.On("List", mock.Anything, "biz-1", "active", int32(2), int32(10)).
		Return([]domain.Rental{{ID: "r-1"}, {ID: "r-2"}}, int32(12), nil)

	resp, err := http.Get(server.URL + "/api/v1/rentals?business_id=biz-1&status=active&page=2&page_size=10")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(12), data["total"])
	assert.Len(t, data["items"], 2)
}

func TestHealthCheck(t *testing.T) {
	server := newTestRouter(new(MockRentalService))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
}
