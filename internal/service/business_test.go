package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalops-backend/internal/domain"
)

func TestBusinessService_Create_Defaults(t *testing.T) {
	businessRepo := new(MockBusinessRepo)
	svc := NewBusinessService(businessRepo, new(MockRentalRepo), nil, 800)
	ctx := context.Background()

	businessRepo.On("Create", ctx, mock.AnythingOfType("*domain.Business")).Return(nil)

	b, err := svc.Create(ctx, &domain.Business{Name: "Acme Rentals"})
	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessStatusSetup, b.Status)
	assert.Equal(t, domain.BusinessTypeEquipment, b.Type)
	assert.Equal(t, int32(800), b.TaxRateBps)
}

func TestBusinessService_Create_MissingName(t *testing.T) {
	svc := NewBusinessService(new(MockBusinessRepo), new(MockRentalRepo), nil, 800)

	_, err := svc.Create(context.Background(), &domain.Business{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBusinessService_Update_Patch(t *testing.T) {
	businessRepo := new(MockBusinessRepo)
	svc := NewBusinessService(businessRepo, new(MockRentalRepo), nil, 800)
	ctx := context.Background()

	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{
		ID:         "biz-1",
		Name:       "Acme Rentals",
		Phone:      "555-0100",
		TaxRateBps: 800,
		Status:     domain.BusinessStatusSetup,
	}, nil)
	businessRepo.On("Update", ctx, mock.AnythingOfType("*domain.Business")).Return(nil)

	status := domain.BusinessStatusActive
	taxRate := int32(550)
	b, err := svc.Update(ctx, "biz-1", BusinessPatch{Status: &status, TaxRateBps: &taxRate})
	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessStatusActive, b.Status)
	assert.Equal(t, int32(550), b.TaxRateBps)
	// Untouched fields survive the patch
	assert.Equal(t, "555-0100", b.Phone)
}

func TestBusinessService_Update_BadTaxRate(t *testing.T) {
	businessRepo := new(MockBusinessRepo)
	svc := NewBusinessService(businessRepo, new(MockRentalRepo), nil, 800)
	ctx := context.Background()

	businessRepo.On("GetByID", ctx, "biz-1").Return(&domain.Business{ID: "biz-1", Name: "Acme"}, nil)

	taxRate := int32(20000)
	_, err := svc.Update(ctx, "biz-1", BusinessPatch{TaxRateBps: &taxRate})
	assert.ErrorIs(t, err, ErrValidation)
}
