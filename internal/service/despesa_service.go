package service

import (
	"context"
	"errors"

	"postogestor/internal/dto"
	"postogestor/internal/model"
	"postogestor/internal/repository"

	"github.com/google/uuid"
)

type DespesaService interface {
	Criar(ctx context.Context, req dto.DespesaRequest) (*dto.DespesaResponse, error)
	Listar(ctx context.Context, competencia string) ([]dto.DespesaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.DespesaRequest) (*dto.DespesaResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
}

type despesaService struct {
	repo repository.DespesaRepository
}

func NewDespesaService(repo repository.DespesaRepository) DespesaService {
	return &despesaService{repo: repo}
}

func (s *despesaService) Criar(ctx context.Context, req dto.DespesaRequest) (*dto.DespesaResponse, error) {
	d := &model.DespesaMensal{
		Competencia: req.Competencia,
		Descricao:   req.Descricao,
		Categoria:   req.Categoria,
		Valor:       req.Valor,
	}
	if d.Categoria == "" {
		d.Categoria = "geral"
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	resp := despesaResponse(d)
	return &resp, nil
}

func (s *despesaService) Listar(ctx context.Context, competencia string) ([]dto.DespesaResponse, error) {
	ds, err := s.repo.ListCompetencia(ctx, competencia)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DespesaResponse, len(ds))
	for i := range ds {
		resp[i] = despesaResponse(&ds[i])
	}
	return resp, nil
}

func (s *despesaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.DespesaRequest) (*dto.DespesaResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("despesa não encontrada")
	}
	d.Competencia = req.Competencia
	d.Descricao = req.Descricao
	if req.Categoria != "" {
		d.Categoria = req.Categoria
	}
	d.Valor = req.Valor
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	resp := despesaResponse(d)
	return &resp, nil
}

func (s *despesaService) Remover(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func despesaResponse(d *model.DespesaMensal) dto.DespesaResponse {
	return dto.DespesaResponse{
		ID:          d.ID.String(),
		Competencia: d.Competencia,
		Descricao:   d.Descricao,
		Categoria:   d.Categoria,
		Valor:       d.Valor,
	}
}
