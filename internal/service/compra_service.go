package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postogestor/internal/calculo"
	"postogestor/internal/dto"
	"postogestor/internal/model"
	"postogestor/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompraService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Listar(ctx context.Context, de, ate time.Time) ([]dto.CompraResponse, error)
	// Margens consolida a planilha de margem de uma competência ("2026-08").
	Margens(ctx context.Context, competencia string) (*dto.MargensResponse, error)
}

type compraService struct {
	repo         repository.CompraRepository
	combustiveis repository.CombustivelRepository
	despesas     repository.DespesaRepository
	fechamentos  FechamentoService
}

func NewCompraService(
	repo repository.CompraRepository,
	combustiveis repository.CombustivelRepository,
	despesas repository.DespesaRepository,
	fechamentos FechamentoService,
) CompraService {
	return &compraService{repo: repo, combustiveis: combustiveis, despesas: despesas, fechamentos: fechamentos}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Grava a compra e repondera o custo médio do combustível na mesma transação.
// O custo antes/depois fica congelado na linha da compra.

func (s *compraService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	if !req.Litros.IsPositive() {
		return nil, errors.New("litros da compra devem ser maiores que zero")
	}
	if !req.ValorTotal.IsPositive() {
		return nil, errors.New("valor total da compra deve ser maior que zero")
	}
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}

	combustivel, err := s.combustiveis.FindByID(ctx, req.CombustivelID)
	if err != nil {
		return nil, errors.New("combustível não encontrado")
	}

	custoCompra := req.ValorTotal.Div(req.Litros)
	custoAntes := combustivel.PrecoCusto
	custoDepois := decimal.NewFromFloat(calculo.AtualizarCustoMedio(
		combustivel.EstoqueLitros.InexactFloat64(),
		custoAntes.InexactFloat64(),
		req.Litros.InexactFloat64(),
		custoCompra.InexactFloat64(),
	)).Round(3)

	combustivel.PrecoCusto = custoDepois
	combustivel.EstoqueLitros = combustivel.EstoqueLitros.Add(req.Litros)

	compra := &model.CompraCombustivel{
		CombustivelID:      combustivel.ID,
		Data:               data,
		Litros:             req.Litros,
		ValorTotal:         req.ValorTotal,
		NotaFiscal:         req.NotaFiscal,
		Fornecedor:         req.Fornecedor,
		CustoMedioAntes:    custoAntes,
		CustoMedioDepois:   custoDepois,
		CriadoPorUsuarioID: usuarioID,
	}
	historico := &model.HistoricoPrecoCombustivel{
		CombustivelID: combustivel.ID,
		CustoAntes:    custoAntes,
		CustoDepois:   custoDepois,
		VendaAntes:    combustivel.PrecoVenda,
		VendaDepois:   combustivel.PrecoVenda,
		Motivo:        "compra",
	}
	if err := s.repo.RegistrarCompra(ctx, compra, combustivel, historico); err != nil {
		return nil, err
	}

	resp := s.compraResponse(compra, combustivel.Nome)
	return &resp, nil
}

func (s *compraService) Listar(ctx context.Context, de, ate time.Time) ([]dto.CompraResponse, error) {
	compras, err := s.repo.List(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CompraResponse, len(compras))
	for i := range compras {
		nome := ""
		if compras[i].Combustivel != nil {
			nome = compras[i].Combustivel.Nome
		}
		resp[i] = s.compraResponse(&compras[i], nome)
	}
	return resp, nil
}

// ── Margens ───────────────────────────────────────────────────────────────────
// Reconstrói a planilha de margem da competência: vendas dos fechamentos
// fechados, compras do período, despesas do mês rateadas por litro.

func (s *compraService) Margens(ctx context.Context, competencia string) (*dto.MargensResponse, error) {
	de, err := time.Parse("2006-01", competencia)
	if err != nil {
		return nil, fmt.Errorf("competência inválida: %w", err)
	}
	ate := de.AddDate(0, 1, -1)

	vendas, err := s.fechamentos.VendasPorCombustivel(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	combustiveis, err := s.combustiveis.List(ctx)
	if err != nil {
		return nil, err
	}
	totalDespesas, err := s.despesas.SumCompetencia(ctx, competencia)
	if err != nil {
		return nil, err
	}

	registros := make([]calculo.RegistroCombustivel, 0, len(combustiveis))
	for _, c := range combustiveis {
		compras, err := s.repo.ListByCombustivel(ctx, c.ID, de, ate)
		if err != nil {
			return nil, err
		}
		var compraLitros, compraValor decimal.Decimal
		for _, cp := range compras {
			compraLitros = compraLitros.Add(cp.Litros)
			compraValor = compraValor.Add(cp.ValorTotal)
		}

		venda := vendas[c.Codigo]
		// Estoque no início do período reconstruído a partir do contábil
		// atual: atual + vendidos - comprados.
		estoqueAnterior := c.EstoqueLitros.InexactFloat64() + venda.Litros - compraLitros.InexactFloat64()

		registros = append(registros, calculo.RegistroCombustivel{
			Codigo:             c.Codigo,
			Nome:               c.Nome,
			Inicial:            "0",
			Fechamento:         calculo.FormatarBR(venda.Litros, 3),
			PrecoVendaAtual:    calculo.FormatarBR(c.PrecoVenda.InexactFloat64(), 3),
			PrecoCustoCadastro: c.PrecoCusto.InexactFloat64(),
			CompraLitros:       calculo.FormatarBR(compraLitros.InexactFloat64(), 3),
			CompraValor:        calculo.FormatarBR(compraValor.InexactFloat64(), 2),
			EstoqueAnterior:    calculo.FormatarBR(estoqueAnterior, 3),
		})
	}

	despesasMes := calculo.FormatarBR(totalDespesas.InexactFloat64(), 2)
	despesaLt := calculo.DespesaPorLitro(registros, despesasMes)
	totais := calculo.CalcularTotaisRegistro(registros, despesasMes)

	linhas := make([]dto.MargemCombustivelResponse, len(registros))
	for i, r := range registros {
		linhas[i] = dto.MargemCombustivelResponse{
			Codigo:           r.Codigo,
			Nome:             r.Nome,
			LitrosVendidos:   decimal.NewFromFloat(calculo.LitrosVendidos(r)).Round(3),
			ValorVendido:     decimal.NewFromFloat(calculo.ValorBico(r)).Round(2),
			LitrosComprados:  decimal.NewFromFloat(calculo.AnalisarValor(r.CompraLitros)).Round(3),
			ValorComprado:    decimal.NewFromFloat(calculo.AnalisarValor(r.CompraValor)).Round(2),
			CustoMedio:       decimal.NewFromFloat(calculo.CustoMedioCompra(r)).Round(3),
			DespesaPorLitro:  decimal.NewFromFloat(despesaLt).Round(4),
			PrecoEquilibrio:  decimal.NewFromFloat(calculo.PrecoEquilibrio(r, despesaLt)).Round(3),
			LucroPorLitro:    decimal.NewFromFloat(calculo.LucroPorLitro(r, despesaLt)).Round(3),
			LucroTotal:       decimal.NewFromFloat(calculo.LucroBico(r, despesaLt)).Round(2),
			MargemPct:        decimal.NewFromFloat(calculo.MargemPct(r, despesaLt)).Round(2),
			ParticipacaoPct:  decimal.NewFromFloat(calculo.ParticipacaoPct(r, registros)).Round(2),
			EstoqueLitros:    decimal.NewFromFloat(calculo.EstoqueHoje(r)).Round(3),
			PercaSobraLitros: decimal.NewFromFloat(calculo.PercaSobra(r)).Round(3),
		}
	}

	return &dto.MargensResponse{
		Competencia:    competencia,
		Combustiveis:   linhas,
		TotalLitros:    decimal.NewFromFloat(totais.TotalLitros).Round(3),
		TotalVendido:   decimal.NewFromFloat(totais.TotalValorBico).Round(2),
		TotalLucro:     decimal.NewFromFloat(totais.TotalLucroBico).Round(2),
		TotalDespesas:  totalDespesas,
		MargemMediaPct: decimal.NewFromFloat(totais.MargemMedia).Round(2),
	}, nil
}

func (s *compraService) compraResponse(c *model.CompraCombustivel, nomeCombustivel string) dto.CompraResponse {
	precoLitro := decimal.Zero
	if c.Litros.IsPositive() {
		precoLitro = c.ValorTotal.Div(c.Litros).Round(3)
	}
	return dto.CompraResponse{
		ID:               c.ID.String(),
		CombustivelID:    c.CombustivelID,
		Combustivel:      nomeCombustivel,
		Data:             c.Data.Format("2006-01-02"),
		Litros:           c.Litros,
		ValorTotal:       c.ValorTotal,
		PrecoLitro:       precoLitro,
		NotaFiscal:       c.NotaFiscal,
		Fornecedor:       c.Fornecedor,
		CustoMedioAntes:  c.CustoMedioAntes,
		CustoMedioDepois: c.CustoMedioDepois,
	}
}
