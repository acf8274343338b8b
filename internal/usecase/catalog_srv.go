package usecase

import (
	"context"
	"fmt"

	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListServices(ctx context.Context) ([]response.ServiceResponse, error)
	ListBarbers(ctx context.Context) ([]response.BarberResponse, error)
	ListChairs(ctx context.Context) ([]response.ChairResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	out := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		out[i] = response.ServiceToResponse(svc)
	}
	return out, nil
}

func (s *catalogService) ListBarbers(ctx context.Context) ([]response.BarberResponse, error) {
	barbers, err := s.repo.Barber.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}

	out := make([]response.BarberResponse, len(barbers))
	for i, b := range barbers {
		out[i] = response.BarberToResponse(b)
	}
	return out, nil
}

func (s *catalogService) ListChairs(ctx context.Context) ([]response.ChairResponse, error) {
	chairs, err := s.repo.Chair.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chairs: %w", err)
	}

	out := make([]response.ChairResponse, len(chairs))
	for i, c := range chairs {
		out[i] = response.ChairToResponse(c)
	}
	return out, nil
}
