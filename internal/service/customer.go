package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type customerService struct {
	customers  repository.CustomerRepository
	businesses repository.BusinessRepository
	rentals    repository.RentalRepository
}

func NewCustomerService(customers repository.CustomerRepository, businesses repository.BusinessRepository, rentals repository.RentalRepository) CustomerService {
	return &customerService{
		customers:  customers,
		businesses: businesses,
		rentals:    rentals,
	}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.BusinessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if _, err := s.businesses.GetByID(ctx, c.BusinessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: business %s", ErrNotFound, c.BusinessID)
		}
		return nil, err
	}

	// Email is unique per business, not per platform; the same person can
	// be a customer of several tenants.
	existing, err := s.customers.GetByEmail(ctx, c.BusinessID, c.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a customer with email %s already exists", ErrConflict, c.Email)
	}

	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Customer created", "customer_id", c.ID, "business_id", c.BusinessID)
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	return c, err
}

func (s *customerService) Update(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
		}
		if email != c.Email {
			existing, err := s.customers.GetByEmail(ctx, c.BusinessID, email)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: a customer with email %s already exists", ErrConflict, email)
			}
		}
		c.Email = email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.CreditLimitCents != nil {
		if *patch.CreditLimitCents < 0 {
			return nil, fmt.Errorf("%w: credit limit must not be negative", ErrValidation)
		}
		c.CreditLimitCents = *patch.CreditLimitCents
	}
	if patch.PaymentTerms != nil {
		c.PaymentTerms = *patch.PaymentTerms
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	open, err := s.rentals.CountOpenByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return fmt.Errorf("%w: customer has %d open rental(s)", ErrConflict, open)
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Customer deleted", "customer_id", id)
	return nil
}

func (s *customerService) List(ctx context.Context, businessID string, page, pageSize int32) ([]domain.Customer, int32, error) {
	if businessID == "" {
		return nil, 0, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	return s.customers.ListByBusiness(ctx, businessID, normalizePage(page), normalizePageSize(pageSize))
}
