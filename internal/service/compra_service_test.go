package service

import (
	"context"
	"testing"
	"time"

	"postogestor/internal/dto"
	"postogestor/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeCompraRepo struct {
	compras      []model.CompraCombustivel
	combustiveis *fakeCombustivelRepo
	historicos   []model.HistoricoPrecoCombustivel
}

func (r *fakeCompraRepo) Create(_ context.Context, c *model.CompraCombustivel) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.compras = append(r.compras, *c)
	return nil
}

func (r *fakeCompraRepo) RegistrarCompra(ctx context.Context, compra *model.CompraCombustivel, combustivel *model.Combustivel, historico *model.HistoricoPrecoCombustivel) error {
	if compra.ID == uuid.Nil {
		compra.ID = uuid.New()
	}
	compra.Combustivel = combustivel
	r.compras = append(r.compras, *compra)
	r.historicos = append(r.historicos, *historico)
	return r.combustiveis.Update(ctx, combustivel)
}

func (r *fakeCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CompraCombustivel, error) {
	for i := range r.compras {
		if r.compras[i].ID == id {
			return &r.compras[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCompraRepo) List(_ context.Context, de, ate time.Time) ([]model.CompraCombustivel, error) {
	var out []model.CompraCombustivel
	for _, c := range r.compras {
		if !c.Data.Before(de) && !c.Data.After(ate) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompraRepo) ListByCombustivel(_ context.Context, combustivelID uint, de, ate time.Time) ([]model.CompraCombustivel, error) {
	var out []model.CompraCombustivel
	for _, c := range r.compras {
		if c.CombustivelID == combustivelID && !c.Data.Before(de) && !c.Data.After(ate) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeDespesaRepo struct{ total decimal.Decimal }

func (r *fakeDespesaRepo) Create(context.Context, *model.DespesaMensal) error { return nil }
func (r *fakeDespesaRepo) FindByID(context.Context, uuid.UUID) (*model.DespesaMensal, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeDespesaRepo) ListCompetencia(context.Context, string) ([]model.DespesaMensal, error) {
	return nil, nil
}
func (r *fakeDespesaRepo) SumCompetencia(context.Context, string) (decimal.Decimal, error) {
	return r.total, nil
}
func (r *fakeDespesaRepo) Update(context.Context, *model.DespesaMensal) error { return nil }
func (r *fakeDespesaRepo) Delete(context.Context, uuid.UUID) error            { return nil }

func novoAmbienteCompras(t *testing.T, despesas decimal.Decimal) (*ambiente, *fakeCompraRepo, CompraService) {
	t.Helper()
	amb := novoAmbiente(t)
	compraRepo := &fakeCompraRepo{combustiveis: amb.combustiveis}
	svc := NewCompraService(compraRepo, amb.combustiveis, &fakeDespesaRepo{total: despesas}, amb.svc)
	return amb, compraRepo, svc
}

// ─── Registrar ───────────────────────────────────────────────────────────────

func TestRegistrarCompraReponderaCustoMedio(t *testing.T) {
	amb, compraRepo, svc := novoAmbienteCompras(t, decimal.Zero)

	// 1.000 L em estoque a R$ 5,00 + 1.000 L comprados a R$ 5,50.
	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		CombustivelID: 1,
		Data:          "2026-08-10",
		Litros:        decimal.NewFromInt(1000),
		ValorTotal:    decimal.NewFromInt(5500),
	})
	require.NoError(t, err)

	assertDecimal(t, 5.5, resp.PrecoLitro)
	assertDecimal(t, 5.0, resp.CustoMedioAntes)
	assertDecimal(t, 5.25, resp.CustoMedioDepois)
	assert.Equal(t, "Gasolina Comum", resp.Combustivel)

	gc := amb.combustiveis.porCodigo["GC"]
	assert.True(t, gc.PrecoCusto.Equal(decimal.NewFromFloat(5.25)))
	assert.True(t, gc.EstoqueLitros.Equal(decimal.NewFromInt(2000)))

	// O reajuste de custo entra no histórico de preços com motivo "compra".
	require.Len(t, compraRepo.historicos, 1)
	h := compraRepo.historicos[0]
	assert.Equal(t, "compra", h.Motivo)
	assert.True(t, h.CustoAntes.Equal(decimal.NewFromInt(5)))
	assert.True(t, h.CustoDepois.Equal(decimal.NewFromFloat(5.25)))
	assert.True(t, h.VendaAntes.Equal(h.VendaDepois), "compra não mexe no preço de venda")
}

func TestRegistrarCompraValidaEntrada(t *testing.T) {
	_, _, svc := novoAmbienteCompras(t, decimal.Zero)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		CombustivelID: 1, Data: "2026-08-10",
		Litros: decimal.Zero, ValorTotal: decimal.NewFromInt(5500),
	})
	assert.ErrorContains(t, err, "litros")

	_, err = svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		CombustivelID: 1, Data: "2026-08-10",
		Litros: decimal.NewFromInt(1000), ValorTotal: decimal.NewFromInt(-5),
	})
	assert.ErrorContains(t, err, "valor total")

	_, err = svc.Registrar(context.Background(), uuid.New(), dto.RegistrarCompraRequest{
		CombustivelID: 9, Data: "2026-08-10",
		Litros: decimal.NewFromInt(1000), ValorTotal: decimal.NewFromInt(5500),
	})
	assert.ErrorContains(t, err, "combustível não encontrado")
}

// ─── Margens ─────────────────────────────────────────────────────────────────

func TestMargensConsolidaCompetencia(t *testing.T) {
	amb, _, svc := novoAmbienteCompras(t, decimal.NewFromInt(30))
	usuario := uuid.New()

	// Compra do mês: 1.000 L por R$ 5.500 (custo 5,50/L).
	_, err := svc.Registrar(context.Background(), usuario, dto.RegistrarCompraRequest{
		CombustivelID: 1,
		Data:          "2026-08-10",
		Litros:        decimal.NewFromInt(1000),
		ValorTotal:    decimal.NewFromInt(5500),
	})
	require.NoError(t, err)

	// Venda do mês: um fechamento fechado com 100 L a R$ 6,00.
	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("600,00"))
	require.NoError(t, err)
	_, err = amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo.FechamentoID))
	require.NoError(t, err)

	resp, err := svc.Margens(context.Background(), "2026-08")
	require.NoError(t, err)

	assert.Equal(t, "2026-08", resp.Competencia)
	require.Len(t, resp.Combustiveis, 1)
	linha := resp.Combustiveis[0]

	assert.Equal(t, "GC", linha.Codigo)
	assertDecimal(t, 100, linha.LitrosVendidos)
	assertDecimal(t, 600, linha.ValorVendido)
	assertDecimal(t, 1000, linha.LitrosComprados)
	assertDecimal(t, 5500, linha.ValorComprado)
	assertDecimal(t, 5.5, linha.CustoMedio)
	// R$ 30 de despesa rateados sobre 100 L vendidos.
	assertDecimal(t, 0.3, linha.DespesaPorLitro)
	assertDecimal(t, 5.8, linha.PrecoEquilibrio)
	assertDecimal(t, 0.2, linha.LucroPorLitro)
	assertDecimal(t, 20, linha.LucroTotal)
	assertDecimal(t, 3.33, linha.MargemPct)
	assertDecimal(t, 100, linha.ParticipacaoPct)
	// Estoque contábil: 1.000 iniciais + 1.000 comprados - 100 vendidos.
	assertDecimal(t, 1900, linha.EstoqueLitros)

	assertDecimal(t, 100, resp.TotalLitros)
	assertDecimal(t, 600, resp.TotalVendido)
	assertDecimal(t, 20, resp.TotalLucro)
	assertDecimal(t, 30, resp.TotalDespesas)
	assertDecimal(t, 3.33, resp.MargemMediaPct)
}

func TestMargensCompetenciaInvalida(t *testing.T) {
	_, _, svc := novoAmbienteCompras(t, decimal.Zero)
	_, err := svc.Margens(context.Background(), "agosto/2026")
	assert.ErrorContains(t, err, "competência inválida")
}

func TestListarComprasDoPeriodo(t *testing.T) {
	_, _, svc := novoAmbienteCompras(t, decimal.Zero)
	usuario := uuid.New()

	nota := "NF-1234"
	_, err := svc.Registrar(context.Background(), usuario, dto.RegistrarCompraRequest{
		CombustivelID: 1,
		Data:          "2026-08-10",
		Litros:        decimal.NewFromInt(500),
		ValorTotal:    decimal.NewFromInt(2750),
		NotaFiscal:    &nota,
	})
	require.NoError(t, err)

	de, _ := time.Parse("2006-01-02", "2026-08-01")
	ate, _ := time.Parse("2006-01-02", "2026-08-31")
	compras, err := svc.Listar(context.Background(), de, ate)
	require.NoError(t, err)
	require.Len(t, compras, 1)
	assert.Equal(t, "Gasolina Comum", compras[0].Combustivel)
	require.NotNil(t, compras[0].NotaFiscal)
	assert.Equal(t, "NF-1234", *compras[0].NotaFiscal)

	fora, err := svc.Listar(context.Background(), de.AddDate(0, 1, 0), ate.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Empty(t, fora)
}
