package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

func rentalFixtures() (*MockRentalRepo, *MockEquipmentRepo, *MockCustomerRepo, *MockBusinessRepo, RentalService) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	customerRepo := new(MockCustomerRepo)
	businessRepo := new(MockBusinessRepo)
	svc := NewRentalService(rentalRepo, equipmentRepo, customerRepo, businessRepo)
	return rentalRepo, equipmentRepo, customerRepo, businessRepo, svc
}

func TestRentalService_Quote(t *testing.T) {
	_, equipmentRepo, _, businessRepo, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		BusinessID:     "biz-1",
		Name:           "Excavator",
		DailyRateCents: 10000,
		Status:         domain.EquipmentStatusAvailable,
	}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{
		ID:         "biz-1",
		TaxRateBps: 800,
	}, nil)

	quote, err := svc.Quote(ctx, RentalRequest{
		EquipmentID: "eq-1",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-04",
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(3), quote.TotalDays)
	assert.Equal(t, int64(30000), quote.SubtotalCents)
	assert.Equal(t, int64(2400), quote.TaxCents)
	assert.Equal(t, int64(32400), quote.TotalCents)
}

func TestRentalService_Quote_WeeklyTier(t *testing.T) {
	_, equipmentRepo, _, businessRepo, svc := rentalFixtures()
	ctx := context.Background()

	// 10 days = 1 week + 3 days
	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:              "eq-1",
		BusinessID:      "biz-1",
		DailyRateCents:  10000,
		WeeklyRateCents: 50000,
	}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", TaxRateBps: 0}, nil)

	quote, err := svc.Quote(ctx, RentalRequest{
		EquipmentID: "eq-1",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-11",
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), quote.Weeks)
	assert.Equal(t, int32(3), quote.Days)
	assert.Equal(t, int64(80000), quote.SubtotalCents)
	assert.Equal(t, int64(0), quote.TaxCents)
}

func TestRentalService_Quote_InvalidDates(t *testing.T) {
	_, _, _, _, svc := rentalFixtures()

	_, err := svc.Quote(context.Background(), RentalRequest{
		EquipmentID: "eq-1",
		StartDate:   "2024-06-04",
		EndDate:     "2024-06-01",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRentalService_Create(t *testing.T) {
	rentalRepo, equipmentRepo, customerRepo, businessRepo, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		BusinessID:     "biz-1",
		DailyRateCents: 10000,
	}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", TaxRateBps: 800}, nil)
	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1", BusinessID: "biz-1"}, nil)
	rentalRepo.On("CreateReserved", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

	rental, err := svc.Create(ctx, RentalRequest{
		EquipmentID:      "eq-1",
		CustomerID:       "cust-1",
		StartDate:        "2024-06-01",
		EndDate:          "2024-06-04",
		DeliveryFeeCents: 2500,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusReserved, rental.Status)
	assert.Equal(t, int64(10000), rental.DailyRateCents)
	assert.Equal(t, int64(30000), rental.SubtotalCents)
	assert.Equal(t, int64(2400), rental.TaxCents)
	assert.Equal(t, int64(34900), rental.TotalCents)
	rentalRepo.AssertExpectations(t)
}

func TestRentalService_Create_DateConflict(t *testing.T) {
	rentalRepo, equipmentRepo, customerRepo, businessRepo, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		BusinessID:     "biz-1",
		DailyRateCents: 10000,
	}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", TaxRateBps: 800}, nil)
	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1", BusinessID: "biz-1"}, nil)
	rentalRepo.On("CreateReserved", ctx, mock.AnythingOfType("*domain.Rental")).Return(repository.ErrDateConflict)

	_, err := svc.Create(ctx, RentalRequest{
		EquipmentID: "eq-1",
		CustomerID:  "cust-1",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-04",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRentalService_Create_WrongBusinessCustomer(t *testing.T) {
	_, equipmentRepo, customerRepo, businessRepo, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		BusinessID:     "biz-1",
		DailyRateCents: 10000,
	}, nil)
	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1"}, nil)
	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1", BusinessID: "biz-other"}, nil)

	_, err := svc.Create(ctx, RentalRequest{
		EquipmentID: "eq-1",
		CustomerID:  "cust-1",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-04",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRentalService_ChangeStatus_CompleteReleasesEquipment(t *testing.T) {
	rentalRepo, equipmentRepo, _, _, svc := rentalFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:          "r-1",
		EquipmentID: "eq-1",
		Status:      domain.RentalStatusActive,
	}, nil)
	rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:     "eq-1",
		Status: domain.EquipmentStatusRented,
	}, nil)
	rentalRepo.On("CountOpenByEquipment", ctx, "eq-1").Return(int32(0), nil)
	equipmentRepo.On("UpdateStatus", ctx, "eq-1", domain.EquipmentStatusAvailable).Return(nil)

	rental, err := svc.ChangeStatus(ctx, "r-1", domain.RentalStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
	equipmentRepo.AssertCalled(t, "UpdateStatus", ctx, "eq-1", domain.EquipmentStatusAvailable)
}

func TestRentalService_ChangeStatus_KeepsEquipmentWhenStillBooked(t *testing.T) {
	rentalRepo, equipmentRepo, _, _, svc := rentalFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:          "r-1",
		EquipmentID: "eq-1",
		Status:      domain.RentalStatusReserved,
	}, nil)
	rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:     "eq-1",
		Status: domain.EquipmentStatusRented,
	}, nil)
	rentalRepo.On("CountOpenByEquipment", ctx, "eq-1").Return(int32(1), nil)

	_, err := svc.ChangeStatus(ctx, "r-1", domain.RentalStatusCancelled)
	assert.NoError(t, err)
	equipmentRepo.AssertNotCalled(t, "UpdateStatus", ctx, "eq-1", domain.EquipmentStatusAvailable)
}

func TestRentalService_ChangeStatus_InvalidTransition(t *testing.T) {
	rentalRepo, _, _, _, svc := rentalFixtures()
	ctx := context.Background()

	rentalRepo.On("GetByID", ctx, "r-1").Return(&domain.Rental{
		ID:     "r-1",
		Status: domain.RentalStatusCompleted,
	}, nil)

	_, err := svc.ChangeStatus(ctx, "r-1", domain.RentalStatusActive)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRentalService_Availability(t *testing.T) {
	rentalRepo, equipmentRepo, _, _, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:     "eq-1",
		Status: domain.EquipmentStatusAvailable,
	}, nil)
	rentalRepo.On("ListOverlapping", ctx, "eq-1", "2024-06-01", "2024-06-04").Return([]domain.Rental{}, nil)

	availability, err := svc.Availability(ctx, "eq-1", "2024-06-01", "2024-06-04")
	assert.NoError(t, err)
	assert.True(t, availability.Available)
}

func TestRentalService_Availability_Maintenance(t *testing.T) {
	_, equipmentRepo, _, _, svc := rentalFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:     "eq-1",
		Status: domain.EquipmentStatusMaintenance,
	}, nil)

	availability, err := svc.Availability(ctx, "eq-1", "2024-06-01", "2024-06-04")
	assert.NoError(t, err)
	assert.False(t, availability.Available)
}
