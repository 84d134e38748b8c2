package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/pricing"
	"rentalops-backend/internal/repository"
)

type rentalService struct {
	rentals    repository.RentalRepository
	equipment  repository.EquipmentRepository
	customers  repository.CustomerRepository
	businesses repository.BusinessRepository
}

func NewRentalService(rentals repository.RentalRepository, equipment repository.EquipmentRepository, customers repository.CustomerRepository, businesses repository.BusinessRepository) RentalService {
	return &rentalService{
		rentals:    rentals,
		equipment:  equipment,
		customers:  customers,
		businesses: businesses,
	}
}

func (s *rentalService) Quote(ctx context.Context, req RentalRequest) (*domain.RentalQuote, error) {
	equipment, business, days, err := s.priceInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Quote(days, pricing.Rate{
		DailyCents:   equipment.DailyRateCents,
		WeeklyCents:  equipment.WeeklyRateCents,
		MonthlyCents: equipment.MonthlyRateCents,
	})
	tax := pricing.Tax(breakdown.SubtotalCents, business.TaxRateBps)

	return &domain.RentalQuote{
		EquipmentID:      equipment.ID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TotalDays:        int32(breakdown.TotalDays),
		Months:           int32(breakdown.Months),
		Weeks:            int32(breakdown.Weeks),
		Days:             int32(breakdown.Days),
		SubtotalCents:    breakdown.SubtotalCents,
		TaxCents:         tax,
		DeliveryFeeCents: req.DeliveryFeeCents,
		PickupFeeCents:   req.PickupFeeCents,
		TotalCents:       pricing.Total(breakdown.SubtotalCents, tax, req.DeliveryFeeCents, req.PickupFeeCents),
	}, nil
}

func (s *rentalService) Create(ctx context.Context, req RentalRequest) (*domain.Rental, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	equipment, business, days, err := s.priceInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
		}
		return nil, err
	}
	if customer.BusinessID != business.ID {
		return nil, fmt.Errorf("%w: customer belongs to a different business", ErrValidation)
	}

	breakdown := pricing.Quote(days, pricing.Rate{
		DailyCents:   equipment.DailyRateCents,
		WeeklyCents:  equipment.WeeklyRateCents,
		MonthlyCents: equipment.MonthlyRateCents,
	})
	tax := pricing.Tax(breakdown.SubtotalCents, business.TaxRateBps)

	rental := &domain.Rental{
		BusinessID:       business.ID,
		EquipmentID:      equipment.ID,
		CustomerID:       customer.ID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TotalDays:        int32(days),
		DailyRateCents:   equipment.DailyRateCents,
		WeeklyRateCents:  equipment.WeeklyRateCents,
		MonthlyRateCents: equipment.MonthlyRateCents,
		SubtotalCents:    breakdown.SubtotalCents,
		TaxCents:         tax,
		DeliveryFeeCents: req.DeliveryFeeCents,
		PickupFeeCents:   req.PickupFeeCents,
		TotalCents:       pricing.Total(breakdown.SubtotalCents, tax, req.DeliveryFeeCents, req.PickupFeeCents),
		Status:           domain.RentalStatusReserved,
		Notes:            req.Notes,
	}

	if err := s.rentals.CreateReserved(ctx, rental); err != nil {
		if errors.Is(err, repository.ErrDateConflict) || errors.Is(err, repository.ErrEquipmentUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}
	logger.Info("Rental reserved",
		"rental_id", rental.ID, "business_id", rental.BusinessID,
		"equipment_id", rental.EquipmentID, "start_date", rental.StartDate,
		"end_date", rental.EndDate, "total_cents", rental.TotalCents)
	return rental, nil
}

// priceInputs validates the shared quote/booking inputs and loads the
// equipment, its business, and the billable day count.
func (s *rentalService) priceInputs(ctx context.Context, req RentalRequest) (*domain.Equipment, *domain.Business, int, error) {
	if req.EquipmentID == "" {
		return nil, nil, 0, fmt.Errorf("%w: equipment_id is required", ErrValidation)
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, nil, 0, fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if req.DeliveryFeeCents < 0 || req.PickupFeeCents < 0 {
		return nil, nil, 0, fmt.Errorf("%w: fees must not be negative", ErrValidation)
	}

	start, err := pricing.ParseDate(req.StartDate)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := pricing.ParseDate(req.EndDate)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	days, err := pricing.Days(start, end)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	equipment, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, 0, fmt.Errorf("%w: equipment %s", ErrNotFound, req.EquipmentID)
		}
		return nil, nil, 0, err
	}
	if req.BusinessID != "" && equipment.BusinessID != req.BusinessID {
		return nil, nil, 0, fmt.Errorf("%w: equipment belongs to a different business", ErrValidation)
	}

	business, err := s.businesses.GetByID(ctx, equipment.BusinessID)
	if err != nil {
		return nil, nil, 0, err
	}
	return equipment, business, days, nil
}

func (s *rentalService) Get(ctx context.Context, id string) (*domain.Rental, error) {
	r, err := s.rentals.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, id)
	}
	return r, err
}

func (s *rentalService) List(ctx context.Context, businessID, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	if businessID == "" {
		return nil, 0, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.rentals.ListByBusiness(ctx, businessID, status, normalizePage(page), normalizePageSize(pageSize))
}

// validTransitions lists the allowed status moves. Completed and cancelled
// are terminal.
var validTransitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusReserved: {domain.RentalStatusActive, domain.RentalStatusCancelled},
	domain.RentalStatusActive:   {domain.RentalStatusCompleted, domain.RentalStatusCancelled},
}

func (s *rentalService) ChangeStatus(ctx context.Context, id string, status domain.RentalStatus) (*domain.Rental, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validTransitions[r.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move rental from %s to %s", ErrConflict, r.Status, status)
	}

	r.Status = status
	if err := s.rentals.Update(ctx, r); err != nil {
		return nil, err
	}

	// A terminal transition hands the equipment back, unless another open
	// rental or a maintenance hold still has it.
	if !status.IsOpen() {
		if err := s.releaseEquipment(ctx, r.EquipmentID); err != nil {
			return nil, err
		}
	}

	logger.Info("Rental status changed", "rental_id", r.ID, "status", r.Status)
	return r, nil
}

func (s *rentalService) releaseEquipment(ctx context.Context, equipmentID string) error {
	e, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if e.Status != domain.EquipmentStatusRented {
		return nil
	}
	open, err := s.rentals.CountOpenByEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	if open > 0 {
		return nil
	}
	return s.equipment.UpdateStatus(ctx, equipmentID, domain.EquipmentStatusAvailable)
}

func (s *rentalService) Availability(ctx context.Context, equipmentID, startDate, endDate string) (*domain.Availability, error) {
	if equipmentID == "" {
		return nil, fmt.Errorf("%w: equipment_id is required", ErrValidation)
	}
	start, err := pricing.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := pricing.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrValidation)
	}

	equipment, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: equipment %s", ErrNotFound, equipmentID)
		}
		return nil, err
	}

	availability := &domain.Availability{
		EquipmentID: equipmentID,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if equipment.Status == domain.EquipmentStatusMaintenance || equipment.Status == domain.EquipmentStatusInactive {
		return availability, nil
	}

	conflicts, err := s.rentals.ListOverlapping(ctx, equipmentID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	availability.Available = len(conflicts) == 0
	availability.Conflicts = conflicts
	return availability, nil
}
