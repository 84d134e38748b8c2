package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/pricing"
	"rentalops-backend/internal/repository"
)

type equipmentService struct {
	equipment   repository.EquipmentRepository
	businesses  repository.BusinessRepository
	rentals     repository.RentalRepository
	maintenance repository.MaintenanceRepository
}

func NewEquipmentService(equipment repository.EquipmentRepository, businesses repository.BusinessRepository, rentals repository.RentalRepository, maintenance repository.MaintenanceRepository) EquipmentService {
	return &equipmentService{
		equipment:   equipment,
		businesses:  businesses,
		rentals:     rentals,
		maintenance: maintenance,
	}
}

func (s *equipmentService) Add(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	if e.BusinessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	if e.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if e.DailyRateCents <= 0 {
		return nil, fmt.Errorf("%w: daily rate must be positive", ErrValidation)
	}
	if e.WeeklyRateCents < 0 || e.MonthlyRateCents < 0 {
		return nil, fmt.Errorf("%w: rates must not be negative", ErrValidation)
	}
	if _, err := s.businesses.GetByID(ctx, e.BusinessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: business %s", ErrNotFound, e.BusinessID)
		}
		return nil, err
	}

	if e.Status == "" {
		e.Status = domain.EquipmentStatusAvailable
	}
	if e.Condition == "" {
		e.Condition = domain.EquipmentConditionGood
	}

	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.Info("Equipment added", "equipment_id", e.ID, "business_id", e.BusinessID, "name", e.Name)
	return e, nil
}

func (s *equipmentService) Get(ctx context.Context, id string) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: equipment %s", ErrNotFound, id)
	}
	return e, err
}

func (s *equipmentService) Update(ctx context.Context, id string, patch EquipmentPatch) (*domain.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		e.Name = *patch.Name
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.DailyRateCents != nil {
		if *patch.DailyRateCents <= 0 {
			return nil, fmt.Errorf("%w: daily rate must be positive", ErrValidation)
		}
		e.DailyRateCents = *patch.DailyRateCents
	}
	if patch.WeeklyRateCents != nil {
		if *patch.WeeklyRateCents < 0 {
			return nil, fmt.Errorf("%w: weekly rate must not be negative", ErrValidation)
		}
		e.WeeklyRateCents = *patch.WeeklyRateCents
	}
	if patch.MonthlyRateCents != nil {
		if *patch.MonthlyRateCents < 0 {
			return nil, fmt.Errorf("%w: monthly rate must not be negative", ErrValidation)
		}
		e.MonthlyRateCents = *patch.MonthlyRateCents
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.EquipmentStatusAvailable, domain.EquipmentStatusRented, domain.EquipmentStatusMaintenance, domain.EquipmentStatusInactive:
			e.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
	}
	if patch.Condition != nil {
		switch *patch.Condition {
		case domain.EquipmentConditionExcellent, domain.EquipmentConditionGood, domain.EquipmentConditionFair, domain.EquipmentConditionPoor:
			e.Condition = *patch.Condition
		default:
			return nil, fmt.Errorf("%w: unknown condition %q", ErrValidation, *patch.Condition)
		}
	}
	if patch.Specifications != nil {
		e.Specifications = *patch.Specifications
	}

	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *equipmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	open, err := s.rentals.CountOpenByEquipment(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return fmt.Errorf("%w: equipment has %d open rental(s)", ErrConflict, open)
	}
	if err := s.equipment.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Equipment deleted", "equipment_id", id)
	return nil
}

func (s *equipmentService) List(ctx context.Context, businessID, category, status string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	if businessID == "" {
		return nil, 0, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.equipment.ListByBusiness(ctx, businessID, category, status, normalizePage(page), normalizePageSize(pageSize))
}

// OpenMaintenance records a service event and takes the equipment out of
// the rentable pool for its duration.
func (s *equipmentService) OpenMaintenance(ctx context.Context, m *domain.MaintenanceRecord) (*domain.MaintenanceRecord, error) {
	if m.EquipmentID == "" {
		return nil, fmt.Errorf("%w: equipment_id is required", ErrValidation)
	}
	if m.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	e, err := s.Get(ctx, m.EquipmentID)
	if err != nil {
		return nil, err
	}
	if e.Status == domain.EquipmentStatusRented {
		return nil, fmt.Errorf("%w: equipment is currently rented", ErrConflict)
	}

	m.BusinessID = e.BusinessID
	if m.StartedOn == "" {
		m.StartedOn = time.Now().UTC().Format(pricing.DateLayout)
	} else if _, err := pricing.ParseDate(m.StartedOn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.maintenance.Create(ctx, m); err != nil {
		return nil, err
	}
	if err := s.equipment.UpdateStatus(ctx, m.EquipmentID, domain.EquipmentStatusMaintenance); err != nil {
		return nil, err
	}
	logger.Info("Maintenance opened", "maintenance_id", m.ID, "equipment_id", m.EquipmentID)
	return m, nil
}

// CloseMaintenance closes the record and returns the equipment to the
// available pool.
func (s *equipmentService) CloseMaintenance(ctx context.Context, recordID string) (*domain.MaintenanceRecord, error) {
	m, err := s.maintenance.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: maintenance record %s", ErrNotFound, recordID)
		}
		return nil, err
	}
	if m.ClosedOn != nil {
		return nil, fmt.Errorf("%w: maintenance record is already closed", ErrConflict)
	}

	closedOn := time.Now().UTC()
	if err := s.maintenance.Close(ctx, recordID, closedOn); err != nil {
		return nil, err
	}
	if err := s.equipment.UpdateStatus(ctx, m.EquipmentID, domain.EquipmentStatusAvailable); err != nil {
		return nil, err
	}
	logger.Info("Maintenance closed", "maintenance_id", recordID, "equipment_id", m.EquipmentID)

	m.ClosedOn = &closedOn
	return m, nil
}

func (s *equipmentService) ListMaintenance(ctx context.Context, equipmentID string) ([]domain.MaintenanceRecord, error) {
	if equipmentID == "" {
		return nil, fmt.Errorf("%w: equipment_id is required", ErrValidation)
	}
	return s.maintenance.ListByEquipment(ctx, equipmentID)
}

func normalizePage(page int32) int32 {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int32) int32 {
	if pageSize < 1 {
		return 20
	}
	if pageSize > 100 {
		return 100
	}
	return pageSize
}
