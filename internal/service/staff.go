package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type staffService struct {
	staff      repository.StaffRepository
	businesses repository.BusinessRepository
}

func NewStaffService(staff repository.StaffRepository, businesses repository.BusinessRepository) StaffService {
	return &staffService{staff: staff, businesses: businesses}
}

func (s *staffService) Add(ctx context.Context, m *domain.Staff) (*domain.Staff, error) {
	if m.BusinessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	m.Email = strings.TrimSpace(strings.ToLower(m.Email))
	switch m.Role {
	case domain.StaffRoleAdmin, domain.StaffRoleManager, domain.StaffRoleDriver:
	case "":
		m.Role = domain.StaffRoleManager
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, m.Role)
	}
	if _, err := s.businesses.GetByID(ctx, m.BusinessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: business %s", ErrNotFound, m.BusinessID)
		}
		return nil, err
	}

	if err := s.staff.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *staffService) Get(ctx context.Context, id string) (*domain.Staff, error) {
	m, err := s.staff.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: staff member %s", ErrNotFound, id)
	}
	return m, err
}

func (s *staffService) Remove(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.staff.Delete(ctx, id)
}

func (s *staffService) List(ctx context.Context, businessID string) ([]domain.Staff, error) {
	if businessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.staff.ListByBusiness(ctx, businessID)
}
