package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/intel"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository"
)

type businessService struct {
	businesses    repository.BusinessRepository
	rentals       repository.RentalRepository
	analyzer      *intel.Analyzer
	defaultTaxBps int32
}

func NewBusinessService(businesses repository.BusinessRepository, rentals repository.RentalRepository, analyzer *intel.Analyzer, defaultTaxBps int32) BusinessService {
	return &businessService{
		businesses:    businesses,
		rentals:       rentals,
		analyzer:      analyzer,
		defaultTaxBps: defaultTaxBps,
	}
}

func (s *businessService) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	switch b.Type {
	case domain.BusinessTypeEquipment, domain.BusinessTypeParty, domain.BusinessTypeTool, domain.BusinessTypeVehicle:
	case "":
		b.Type = domain.BusinessTypeEquipment
	default:
		return nil, fmt.Errorf("%w: unknown business type %q", ErrValidation, b.Type)
	}
	if b.Status == "" {
		b.Status = domain.BusinessStatusSetup
	}
	if b.TaxRateBps == 0 {
		b.TaxRateBps = s.defaultTaxBps
	}
	if b.TaxRateBps < 0 || b.TaxRateBps > 10000 {
		return nil, fmt.Errorf("%w: tax rate must be between 0 and 10000 basis points", ErrValidation)
	}

	if err := s.businesses.Create(ctx, b); err != nil {
		return nil, err
	}
	logger.Info("Business created", "business_id", b.ID, "name", b.Name, "type", b.Type)
	return b, nil
}

func (s *businessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: business %s", ErrNotFound, id)
	}
	return b, err
}

func (s *businessService) List(ctx context.Context, status string) ([]domain.Business, error) {
	return s.businesses.List(ctx, status)
}

func (s *businessService) Update(ctx context.Context, id string, patch BusinessPatch) (*domain.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		b.Name = *patch.Name
	}
	if patch.Type != nil {
		switch *patch.Type {
		case domain.BusinessTypeEquipment, domain.BusinessTypeParty, domain.BusinessTypeTool, domain.BusinessTypeVehicle:
			b.Type = *patch.Type
		default:
			return nil, fmt.Errorf("%w: unknown business type %q", ErrValidation, *patch.Type)
		}
	}
	if patch.Email != nil {
		b.Email = *patch.Email
	}
	if patch.Phone != nil {
		b.Phone = *patch.Phone
	}
	if patch.Website != nil {
		b.Website = *patch.Website
	}
	if patch.Address != nil {
		b.Address = *patch.Address
	}
	if patch.Branding != nil {
		b.Branding = *patch.Branding
	}
	if patch.TaxRateBps != nil {
		if *patch.TaxRateBps < 0 || *patch.TaxRateBps > 10000 {
			return nil, fmt.Errorf("%w: tax rate must be between 0 and 10000 basis points", ErrValidation)
		}
		b.TaxRateBps = *patch.TaxRateBps
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.BusinessStatusActive, domain.BusinessStatusSetup, domain.BusinessStatusInactive:
			b.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
	}

	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *businessService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.businesses.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Business deleted", "business_id", id)
	return nil
}

// Analyze gathers web intelligence for the business, recomputes its
// reputation score, and persists both. It never fails on adapter errors;
// missing signals fall back to a deterministic neutral score.
func (s *businessService) Analyze(ctx context.Context, id string) (*domain.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := s.analyzer.Analyze(ctx, b)
	score := intel.FallbackScore(b.ID)
	if intel.HasSignals(snapshot) {
		score = intel.Score(snapshot)
	}

	if err := s.businesses.UpdateIntelligence(ctx, id, snapshot, score); err != nil {
		return nil, err
	}
	logger.Info("Business analyzed", "business_id", id, "reputation_score", score)

	b.Intelligence = snapshot
	b.ReputationScore = score
	return b, nil
}
