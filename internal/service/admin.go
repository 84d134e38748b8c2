package service

import (
	"context"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

type adminService struct {
	businesses repository.BusinessRepository
}

func NewAdminService(businesses repository.BusinessRepository) AdminService {
	return &adminService{businesses: businesses}
}

func (s *adminService) ListBusinessStats(ctx context.Context) ([]domain.BusinessStats, error) {
	return s.businesses.ListStats(ctx)
}

func (s *adminService) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	return s.businesses.PlatformStats(ctx)
}
