package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
)

func equipmentFixtures() (*MockEquipmentRepo, *MockBusinessRepo, *MockRentalRepo, *MockMaintenanceRepo, EquipmentService) {
	equipmentRepo := new(MockEquipmentRepo)
	businessRepo := new(MockBusinessRepo)
	rentalRepo := new(MockRentalRepo)
	maintenanceRepo := new(MockMaintenanceRepo)
	svc := NewEquipmentService(equipmentRepo, businessRepo, rentalRepo, maintenanceRepo)
	return equipmentRepo, businessRepo, rentalRepo, maintenanceRepo, svc
}

func TestEquipmentService_Add(t *testing.T) {
	equipmentRepo, businessRepo, _, _, svc := equipmentFixtures()
	ctx := context.Background()

	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1"}, nil)
	equipmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).Return(nil)

	e, err := svc.Add(ctx, &domain.Equipment{
		BusinessID:     "biz-1",
		Name:           "Excavator",
		DailyRateCents: 10000,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.EquipmentStatusAvailable, e.Status)
	assert.Equal(t, domain.EquipmentConditionGood, e.Condition)
}

func TestEquipmentService_Add_MissingRate(t *testing.T) {
	_, _, _, _, svc := equipmentFixtures()

	_, err := svc.Add(context.Background(), &domain.Equipment{
		BusinessID: "biz-1",
		Name:       "Excavator",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEquipmentService_Delete_OpenRentals(t *testing.T) {
	equipmentRepo, _, rentalRepo, _, svc := equipmentFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{ID: "eq-1"}, nil)
	rentalRepo.On("CountOpenByEquipment", ctx, "eq-1").Return(int32(1), nil)

	err := svc.Delete(ctx, "eq-1")
	assert.ErrorIs(t, err, ErrConflict)
	equipmentRepo.AssertNotCalled(t, "Delete", ctx, "eq-1")
}

func TestEquipmentService_OpenMaintenance(t *testing.T) {
	equipmentRepo, _, _, maintenanceRepo, svc := equipmentFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:         "eq-1",
		BusinessID: "biz-1",
		Status:     domain.EquipmentStatusAvailable,
	}, nil)
	maintenanceRepo.On("Create", ctx, mock.AnythingOfType("*domain.MaintenanceRecord")).Return(nil)
	equipmentRepo.On("UpdateStatus", ctx, "eq-1", domain.EquipmentStatusMaintenance).Return(nil)

	m, err := svc.OpenMaintenance(ctx, &domain.MaintenanceRecord{
		EquipmentID: "eq-1",
		Description: "hydraulic leak",
	})
	assert.NoError(t, err)
	assert.Equal(t, "biz-1", m.BusinessID)
	assert.NotEmpty(t, m.StartedOn)
	equipmentRepo.AssertCalled(t, "UpdateStatus", ctx, "eq-1", domain.EquipmentStatusMaintenance)
}

func TestEquipmentService_OpenMaintenance_Rented(t *testing.T) {
	equipmentRepo, _, _, _, svc := equipmentFixtures()
	ctx := context.Background()

	equipmentRepo.On("GetByID", ctx, "eq-1").Return(&domain.Equipment{
		ID:     "eq-1",
		Status: domain.EquipmentStatusRented,
	}, nil)

	_, err := svc.OpenMaintenance(ctx, &domain.MaintenanceRecord{
		EquipmentID: "eq-1",
		Description: "hydraulic leak",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEquipmentService_CloseMaintenance(t *testing.T) {
	equipmentRepo, _, _, maintenanceRepo, svc := equipmentFixtures()
	ctx := context.Background()

	maintenanceRepo.On("GetByID", ctx, "m-1").Return(&domain.MaintenanceRecord{
		ID:          "m-1",
		EquipmentID: "eq-1",
	}, nil)
	maintenanceRepo.On("Close", ctx, "m-1", mock.AnythingOfType("time.Time")).Return(nil)
	equipmentRepo.On("UpdateStatus", ctx, "eq-1", domain.EquipmentStatusAvailable).Return(nil)

	m, err := svc.CloseMaintenance(ctx, "m-1")
	assert.NoError(t, err)
	assert.NotNil(t, m.ClosedOn)
	equipmentRepo.AssertCalled(t, "UpdateStatus", ctx, "eq-1", domain.EquipmentStatusAvailable)
}
