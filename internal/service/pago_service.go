package service

import (
	"context"

	"github.com/Neith21/AutoRent-Leon/internal/dto"
	"github.com/Neith21/AutoRent-Leon/internal/repository"
)

// PagoService exposes the global payment ledger, across rentals.
type PagoService interface {
	Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error)
}

type pagoService struct {
	repo repository.PagoRepository
}

func NewPagoService(repo repository.PagoRepository) PagoService {
	return &pagoService{repo: repo}
}

func (s *pagoService) Listar(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error) {
	pagos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PagoListResponse{
		Data:  make([]dto.PagoResponse, 0, len(pagos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range pagos {
		resp.Data = append(resp.Data, *pagoToResponse(&pagos[i]))
	}
	return resp, nil
}
