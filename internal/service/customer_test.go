package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
)

func customerFixtures() (*MockCustomerRepo, *MockBusinessRepo, *MockRentalRepo, CustomerService) {
	customerRepo := new(MockCustomerRepo)
	businessRepo := new(MockBusinessRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewCustomerService(customerRepo, businessRepo, rentalRepo)
	return customerRepo, businessRepo, rentalRepo, svc
}

func TestCustomerService_Create(t *testing.T) {
	customerRepo, businessRepo, _, svc := customerFixtures()
	ctx := context.Background()

	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1"}, nil)
	customerRepo.On("GetByEmail", ctx, "biz-1", "jane@example.com").Return(nil, sql.ErrNoRows)
	customerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := svc.Create(ctx, &domain.Customer{
		BusinessID: "biz-1",
		Name:       "Jane Doe",
		Email:      "Jane@Example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", c.Email)
	customerRepo.AssertExpectations(t)
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	customerRepo, businessRepo, _, svc := customerFixtures()
	ctx := context.Background()

	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1"}, nil)
	customerRepo.On("GetByEmail", ctx, "biz-1", "jane@example.com").Return(&domain.Customer{ID: "existing"}, nil)

	_, err := svc.Create(ctx, &domain.Customer{
		BusinessID: "biz-1",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
	})
	assert.ErrorIs(t, err, ErrConflict)
	customerRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestCustomerService_Create_InvalidEmail(t *testing.T) {
	_, _, _, svc := customerFixtures()

	_, err := svc.Create(context.Background(), &domain.Customer{
		BusinessID: "biz-1",
		Name:       "Jane Doe",
		Email:      "not-an-email",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerService_Delete_OpenRentals(t *testing.T) {
	customerRepo, _, rentalRepo, svc := customerFixtures()
	ctx := context.Background()

	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
	rentalRepo.On("CountOpenByCustomer", ctx, "cust-1").Return(int32(2), nil)

	err := svc.Delete(ctx, "cust-1")
	assert.ErrorIs(t, err, ErrConflict)
	customerRepo.AssertNotCalled(t, "Delete", ctx, "cust-1")
}

func TestCustomerService_Delete(t *testing.T) {
	customerRepo, _, rentalRepo, svc := customerFixtures()
	ctx := context.Background()

	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
	rentalRepo.On("CountOpenByCustomer", ctx, "cust-1").Return(int32(0), nil)
	customerRepo.On("Delete", ctx, "cust-1").Return(nil)

	err := svc.Delete(ctx, "cust-1")
	assert.NoError(t, err)
	customerRepo.AssertExpectations(t)
}

func TestCustomerService_Update_EmailTakenByOther(t *testing.T) {
	customerRepo, _, _, svc := customerFixtures()
	ctx := context.Background()

	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{
		ID:         "cust-1",
		BusinessID: "biz-1",
		Name:       "Jane",
		Email:      "jane@example.com",
	}, nil)
	customerRepo.On("GetByEmail", ctx, "biz-1", "taken@example.com").Return(&domain.Customer{ID: "cust-2"}, nil)

	email := "taken@example.com"
	_, err := svc.Update(ctx, "cust-1", CustomerPatch{Email: &email})
	assert.ErrorIs(t, err, ErrConflict)
}
