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

type deliveryService struct {
	deliveries repository.DeliveryRepository
	rentals    repository.RentalRepository
}

func NewDeliveryService(deliveries repository.DeliveryRepository, rentals repository.RentalRepository) DeliveryService {
	return &deliveryService{deliveries: deliveries, rentals: rentals}
}

func (s *deliveryService) Schedule(ctx context.Context, d *domain.DeliverySchedule) (*domain.DeliverySchedule, error) {
	if d.RentalID == "" {
		return nil, fmt.Errorf("%w: rental_id is required", ErrValidation)
	}
	if d.Kind != domain.DeliveryKindDelivery && d.Kind != domain.DeliveryKindPickup {
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrValidation, domain.DeliveryKindDelivery, domain.DeliveryKindPickup)
	}
	if d.ScheduledDate == "" {
		return nil, fmt.Errorf("%w: scheduled_date is required", ErrValidation)
	}
	if _, err := pricing.ParseDate(d.ScheduledDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.Address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}

	rental, err := s.rentals.GetByID(ctx, d.RentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: rental %s", ErrNotFound, d.RentalID)
		}
		return nil, err
	}
	if !rental.Status.IsOpen() {
		return nil, fmt.Errorf("%w: rental is %s", ErrConflict, rental.Status)
	}

	d.BusinessID = rental.BusinessID
	d.Status = domain.DeliveryStatusScheduled

	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	logger.Info("Delivery scheduled", "delivery_id", d.ID, "rental_id", d.RentalID, "kind", d.Kind, "date", d.ScheduledDate)
	return d, nil
}

func (s *deliveryService) Get(ctx context.Context, id string) (*domain.DeliverySchedule, error) {
	d, err := s.deliveries.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: delivery %s", ErrNotFound, id)
	}
	return d, err
}

func (s *deliveryService) Update(ctx context.Context, id string, patch DeliveryPatch) (*domain.DeliverySchedule, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ScheduledDate != nil {
		if _, err := pricing.ParseDate(*patch.ScheduledDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		d.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Address != nil {
		if *patch.Address == "" {
			return nil, fmt.Errorf("%w: address must not be empty", ErrValidation)
		}
		d.Address = *patch.Address
	}
	if patch.DriverName != nil {
		d.DriverName = *patch.DriverName
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.DeliveryStatusScheduled, domain.DeliveryStatusInTransit, domain.DeliveryStatusCompleted:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
		if d.Status == domain.DeliveryStatusCompleted && *patch.Status != domain.DeliveryStatusCompleted {
			return nil, fmt.Errorf("%w: a completed delivery cannot be reopened", ErrConflict)
		}
		d.Status = *patch.Status
	}
	if patch.Proof != nil {
		d.Proof = *patch.Proof
	}

	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) ListByRental(ctx context.Context, rentalID string) ([]domain.DeliverySchedule, error) {
	if rentalID == "" {
		return nil, fmt.Errorf("%w: rental_id is required", ErrValidation)
	}
	return s.deliveries.ListByRental(ctx, rentalID)
}

func (s *deliveryService) ListByBusiness(ctx context.Context, businessID, date string) ([]domain.DeliverySchedule, error) {
	if businessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	if date != "" {
		if _, err := pricing.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return s.deliveries.ListByBusiness(ctx, businessID, date)
}
