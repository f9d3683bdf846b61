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

// ─── Fakes em memória ────────────────────────────────────────────────────────

type fakeAlertas struct {
	notificacoes []interface{}
	relatorios   []interface{}
}

func (f *fakeAlertas) EnqueueNotificacao(_ context.Context, p interface{}) error {
	f.notificacoes = append(f.notificacoes, p)
	return nil
}

func (f *fakeAlertas) EnqueueRelatorio(_ context.Context, p interface{}) error {
	f.relatorios = append(f.relatorios, p)
	return nil
}

// fakeFechamentoRepo guarda fechamentos em memória e imita os preloads do
// repositório real resolvendo os ponteiros filhos a partir dos cadastros.
type fakeFechamentoRepo struct {
	porID        map[uuid.UUID]*model.Fechamento
	bicos        map[uint]*model.Bico
	frentistas   map[uint]*model.Frentista
	formas       map[uint]*model.FormaPagamento
	turnos       map[uint]*model.Turno
	replaceCalls int
}

func (r *fakeFechamentoRepo) hidratar(f *model.Fechamento) {
	f.Turno = r.turnos[f.TurnoID]
	for i := range f.Leituras {
		f.Leituras[i].Bico = r.bicos[f.Leituras[i].BicoID]
	}
	for i := range f.Sessoes {
		f.Sessoes[i].Frentista = r.frentistas[f.Sessoes[i].FrentistaID]
	}
	for i := range f.Recebidos {
		f.Recebidos[i].FormaPagamento = r.formas[f.Recebidos[i].FormaPagamentoID]
	}
}

func (r *fakeFechamentoRepo) Create(_ context.Context, f *model.Fechamento) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.porID[f.ID] = f
	return nil
}

func (r *fakeFechamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Fechamento, error) {
	f, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.hidratar(f)
	return f, nil
}

func (r *fakeFechamentoRepo) FindByDataTurno(_ context.Context, data time.Time, turnoID uint) (*model.Fechamento, error) {
	for _, f := range r.porID {
		if f.Data.Equal(data) && f.TurnoID == turnoID && f.Status != model.FechamentoCancelado {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFechamentoRepo) List(_ context.Context, de, ate time.Time) ([]model.Fechamento, error) {
	var fs []model.Fechamento
	for _, f := range r.porID {
		if !f.Data.Before(de) && !f.Data.After(ate) {
			r.hidratar(f)
			fs = append(fs, *f)
		}
	}
	return fs, nil
}

func (r *fakeFechamentoRepo) ListFechadosPeriodo(_ context.Context, de, ate time.Time) ([]model.Fechamento, error) {
	var fs []model.Fechamento
	for _, f := range r.porID {
		if f.Status == model.FechamentoFechado && !f.Data.Before(de) && !f.Data.After(ate) {
			r.hidratar(f)
			fs = append(fs, *f)
		}
	}
	return fs, nil
}

func (r *fakeFechamentoRepo) Update(_ context.Context, f *model.Fechamento) error {
	r.porID[f.ID] = f
	return nil
}

func (r *fakeFechamentoRepo) ReplaceFilhos(_ context.Context, f *model.Fechamento) error {
	r.replaceCalls++
	r.porID[f.ID] = f
	return nil
}

type fakeBombaRepo struct{ bicos []model.Bico }

func (r *fakeBombaRepo) Create(context.Context, *model.Bomba) error              { return nil }
func (r *fakeBombaRepo) FindByID(context.Context, uint) (*model.Bomba, error)    { return nil, gorm.ErrRecordNotFound }
func (r *fakeBombaRepo) List(context.Context) ([]model.Bomba, error)             { return nil, nil }
func (r *fakeBombaRepo) Update(context.Context, *model.Bomba) error              { return nil }
func (r *fakeBombaRepo) SoftDelete(context.Context, uint) error                  { return nil }
func (r *fakeBombaRepo) ListBicosAtivos(context.Context) ([]model.Bico, error)   { return r.bicos, nil }
func (r *fakeBombaRepo) FindBicoByID(context.Context, uint) (*model.Bico, error) { return nil, gorm.ErrRecordNotFound }
func (r *fakeBombaRepo) ReplaceBicos(context.Context, uint, []model.Bico) error  { return nil }

type fakeTurnoRepo struct{ turnos map[uint]*model.Turno }

func (r *fakeTurnoRepo) Create(context.Context, *model.Turno) error { return nil }
func (r *fakeTurnoRepo) FindByID(_ context.Context, id uint) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}
func (r *fakeTurnoRepo) List(context.Context) ([]model.Turno, error) { return nil, nil }
func (r *fakeTurnoRepo) Update(context.Context, *model.Turno) error  { return nil }
func (r *fakeTurnoRepo) SoftDelete(context.Context, uint) error      { return nil }
func (r *fakeTurnoRepo) SeedPadrao(context.Context) error            { return nil }

type fakeFormaRepo struct{ formas map[uint]*model.FormaPagamento }

func (r *fakeFormaRepo) Create(context.Context, *model.FormaPagamento) error { return nil }
func (r *fakeFormaRepo) FindByID(_ context.Context, id uint) (*model.FormaPagamento, error) {
	fp, ok := r.formas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return fp, nil
}
func (r *fakeFormaRepo) List(context.Context) ([]model.FormaPagamento, error) { return nil, nil }
func (r *fakeFormaRepo) Update(context.Context, *model.FormaPagamento) error  { return nil }
func (r *fakeFormaRepo) SoftDelete(context.Context, uint) error               { return nil }

type fakeCombustivelRepo struct {
	porID     map[uint]*model.Combustivel
	porCodigo map[string]*model.Combustivel
}

func (r *fakeCombustivelRepo) Create(context.Context, *model.Combustivel) error { return nil }
func (r *fakeCombustivelRepo) FindByID(_ context.Context, id uint) (*model.Combustivel, error) {
	c, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *fakeCombustivelRepo) FindByCodigo(_ context.Context, codigo string) (*model.Combustivel, error) {
	c, ok := r.porCodigo[codigo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *fakeCombustivelRepo) List(context.Context) ([]model.Combustivel, error) {
	var cs []model.Combustivel
	for _, c := range r.porID {
		cs = append(cs, *c)
	}
	return cs, nil
}
func (r *fakeCombustivelRepo) Update(_ context.Context, c *model.Combustivel) error {
	r.porID[c.ID] = c
	r.porCodigo[c.Codigo] = c
	return nil
}
func (r *fakeCombustivelRepo) SoftDelete(context.Context, uint) error { return nil }
func (r *fakeCombustivelRepo) CreateHistorico(context.Context, *model.HistoricoPrecoCombustivel) error {
	return nil
}
func (r *fakeCombustivelRepo) ListHistorico(context.Context, uint, int) ([]model.HistoricoPrecoCombustivel, error) {
	return nil, nil
}

// ─── Cenário base ────────────────────────────────────────────────────────────
// Um posto mínimo: Gasolina Comum a R$ 6,00 com 1.000 L em estoque, uma bomba
// com um bico, turno da manhã, dinheiro sem taxa e débito com taxa de 2%.

type ambiente struct {
	repo         *fakeFechamentoRepo
	combustiveis *fakeCombustivelRepo
	alertas      *fakeAlertas
	svc          FechamentoService
}

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()

	gc := &model.Combustivel{
		ID:            1,
		Codigo:        "GC",
		Nome:          "Gasolina Comum",
		PrecoVenda:    decimal.NewFromFloat(6.0),
		PrecoCusto:    decimal.NewFromFloat(5.0),
		EstoqueLitros: decimal.NewFromInt(1000),
		Ativo:         true,
	}
	bico := &model.Bico{ID: 1, BombaID: 1, CombustivelID: 1, Numero: 1, Ativo: true, Combustivel: gc}
	turno := &model.Turno{ID: 1, Nome: "Manhã", HorarioInicio: "06:00", HorarioFim: "14:00", Ativo: true}
	dinheiro := &model.FormaPagamento{ID: 1, Nome: "Dinheiro", Tipo: "dinheiro", Taxa: decimal.Zero, Ativo: true}
	debito := &model.FormaPagamento{ID: 2, Nome: "Cartão Débito", Tipo: "cartao_debito", Taxa: decimal.NewFromFloat(2.0), Ativo: true}
	frentista := &model.Frentista{ID: 7, Nome: "Carlos", Ativo: true}

	repo := &fakeFechamentoRepo{
		porID:      map[uuid.UUID]*model.Fechamento{},
		bicos:      map[uint]*model.Bico{1: bico},
		frentistas: map[uint]*model.Frentista{7: frentista},
		formas:     map[uint]*model.FormaPagamento{1: dinheiro, 2: debito},
		turnos:     map[uint]*model.Turno{1: turno},
	}
	combustiveis := &fakeCombustivelRepo{
		porID:     map[uint]*model.Combustivel{1: gc},
		porCodigo: map[string]*model.Combustivel{"GC": gc},
	}
	alertas := &fakeAlertas{}

	svc := NewFechamentoService(
		repo,
		&fakeBombaRepo{bicos: []model.Bico{*bico}},
		&fakeFormaRepo{formas: repo.formas},
		&fakeTurnoRepo{turnos: repo.turnos},
		combustiveis,
		alertas,
	)
	return &ambiente{repo: repo, combustiveis: combustiveis, alertas: alertas, svc: svc}
}

// requisicaoBase: 100 L vendidos (1.000,000 → 1.100,000) a R$ 6,00 = R$ 600.
func requisicaoBase(declarado string) dto.SalvarFechamentoRequest {
	return dto.SalvarFechamentoRequest{
		Data:    "2026-08-27",
		TurnoID: 1,
		Leituras: []dto.LeituraBicoInput{
			{BicoID: 1, Inicial: "1.000,000", Final: "1.100,000"},
		},
		Sessoes: []dto.SessaoFrentistaInput{
			{
				FrentistaID:     7,
				ValorDinheiro:   declarado,
				ValorConferido:  declarado,
				ValorEncerrante: "600,00",
			},
		},
		Recebidos: []dto.RecebimentoInput{
			{FormaPagamentoID: 2, Valor: declarado},
		},
	}
}

func assertDecimal(t *testing.T, esperado float64, obtido decimal.Decimal) {
	t.Helper()
	assert.True(t, obtido.Equal(decimal.NewFromFloat(esperado)),
		"esperado %v, obtido %s", esperado, obtido)
}

// ─── Salvar ──────────────────────────────────────────────────────────────────

func TestSalvarCriaFechamentoComTotais(t *testing.T) {
	amb := novoAmbiente(t)

	resp, err := amb.svc.Salvar(context.Background(), uuid.New(), requisicaoBase("590,00"))
	require.NoError(t, err)

	assert.Equal(t, model.FechamentoAberto, resp.Status)
	assert.Equal(t, "Manhã", resp.Turno)
	assertDecimal(t, 100, resp.TotalLitros)
	assertDecimal(t, 600, resp.TotalVendas)
	assertDecimal(t, 590, resp.TotalDeclarado)
	assertDecimal(t, -10, resp.DiferencaCaixa)
	assert.Equal(t, "atencao", resp.Classificacao) // 10/600 ≈ 1,67%
	assert.Equal(t, "R$ 600,00", resp.TotalVendasBR)
	assert.Equal(t, "-R$ 10,00", resp.DiferencaCaixaBR)
	assert.True(t, resp.PodeFechar)
	assert.Empty(t, resp.Pendencias)

	require.Len(t, resp.Combustiveis, 1)
	assert.Equal(t, "GC", resp.Combustiveis[0].Codigo)
	assert.Equal(t, "100,000", resp.Combustiveis[0].LitrosExibido)
	assert.Equal(t, "R$ 600,00", resp.Combustiveis[0].ValorExibido)
}

func TestSalvarCopiaTaxaDaFormaDePagamento(t *testing.T) {
	amb := novoAmbiente(t)

	resp, err := amb.svc.Salvar(context.Background(), uuid.New(), requisicaoBase("590,00"))
	require.NoError(t, err)

	require.Len(t, resp.Pagamentos, 1)
	assertDecimal(t, 590, resp.Pagamentos[0].Valor)
	assertDecimal(t, 2, resp.Pagamentos[0].Taxa)
	assertDecimal(t, 11.8, resp.Pagamentos[0].ValorTaxa)
	assertDecimal(t, 578.2, resp.Pagamentos[0].Liquido)

	// A taxa fica congelada na linha persistida, não só na resposta.
	f := amb.repo.porID[uuid.MustParse(resp.FechamentoID)]
	require.Len(t, f.Recebidos, 1)
	assert.True(t, f.Recebidos[0].Taxa.Equal(decimal.NewFromFloat(2.0)))
}

func TestSalvarNormalizaCartaoLegado(t *testing.T) {
	amb := novoAmbiente(t)

	req := requisicaoBase("0,00")
	req.Sessoes[0].ValorDinheiro = ""
	req.Sessoes[0].ValorCartao = "590,00" // campo legado, sem separação débito/crédito
	req.Sessoes[0].ValorConferido = "590,00"

	resp, err := amb.svc.Salvar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	require.Len(t, resp.Sessoes, 1)
	assertDecimal(t, 590, resp.Sessoes[0].TotalDeclarado)

	f := amb.repo.porID[uuid.MustParse(resp.FechamentoID)]
	assert.True(t, f.Sessoes[0].ValorCartaoDebito.Equal(decimal.NewFromInt(590)),
		"valor legado deve cair no campo de débito")
}

func TestSalvarDuasVezesSubstituiFilhos(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	_, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)

	req := requisicaoBase("600,00")
	resp, err := amb.svc.Salvar(context.Background(), usuario, req)
	require.NoError(t, err)

	assert.Equal(t, 1, amb.repo.replaceCalls)
	assert.Len(t, amb.repo.porID, 1, "salvar de novo não cria outro fechamento")
	assertDecimal(t, 600, resp.TotalDeclarado)
	assert.Equal(t, "normal", resp.Classificacao)
}

func TestSalvarRejeitaTurnoInexistente(t *testing.T) {
	amb := novoAmbiente(t)
	req := requisicaoBase("590,00")
	req.TurnoID = 99

	_, err := amb.svc.Salvar(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "turno não encontrado")
}

func TestSalvarRejeitaBicoDesconhecido(t *testing.T) {
	amb := novoAmbiente(t)
	req := requisicaoBase("590,00")
	req.Leituras[0].BicoID = 42

	_, err := amb.svc.Salvar(context.Background(), uuid.New(), req)
	assert.ErrorContains(t, err, "bico 42")
}

func TestSalvarRejeitaTurnoJaFechado(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	resp, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)
	_, err = amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(resp.FechamentoID))
	require.NoError(t, err)

	_, err = amb.svc.Salvar(context.Background(), usuario, requisicaoBase("600,00"))
	assert.ErrorContains(t, err, "já está fechado")
}

// ─── Fechar ──────────────────────────────────────────────────────────────────

func TestFecharCongelaTotaisEBaixaEstoque(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)

	resp, err := amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo.FechamentoID))
	require.NoError(t, err)
	assert.Equal(t, model.FechamentoFechado, resp.Status)

	f := amb.repo.porID[uuid.MustParse(salvo.FechamentoID)]
	require.NotNil(t, f.TotalVendas)
	assert.True(t, f.TotalVendas.Equal(decimal.NewFromInt(600)))
	require.NotNil(t, f.DiferencaCaixa)
	assert.True(t, f.DiferencaCaixa.Equal(decimal.NewFromInt(-10)))
	require.NotNil(t, f.FechadoPor)
	assert.Equal(t, usuario, *f.FechadoPor)
	require.NotNil(t, f.FechadoEm)

	// 1.000 L em estoque menos 100 L vendidos.
	gc := amb.combustiveis.porCodigo["GC"]
	assert.True(t, gc.EstoqueLitros.Equal(decimal.NewFromInt(900)),
		"estoque após baixa: %s", gc.EstoqueLitros)

	// Desvio de 1,67% é atenção, não dispara alerta.
	assert.Empty(t, amb.alertas.notificacoes)
}

func TestFecharDisparaAlertaDesvioCritico(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	// Declarado R$ 500 contra R$ 600 de bomba: falta de 16,7%.
	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("500,00"))
	require.NoError(t, err)

	resp, err := amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo.FechamentoID))
	require.NoError(t, err)
	assert.Equal(t, "critico", resp.Classificacao)

	require.Len(t, amb.alertas.notificacoes, 1)
	payload, ok := amb.alertas.notificacoes[0].(DesvioCriticoPayload)
	require.True(t, ok)
	assert.Equal(t, salvo.FechamentoID, payload.FechamentoID)
	assert.Equal(t, "2026-08-27", payload.Data)
	assert.Equal(t, "Manhã", payload.Turno)
	assert.InDelta(t, -100.0, payload.Diferenca, 1e-9)
}

func TestFecharRejeitaSemSessoes(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	req := requisicaoBase("590,00")
	req.Sessoes = nil
	salvo, err := amb.svc.Salvar(context.Background(), usuario, req)
	require.NoError(t, err)
	assert.False(t, salvo.PodeFechar)
	assert.NotEmpty(t, salvo.Pendencias)

	_, err = amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo.FechamentoID))
	assert.ErrorContains(t, err, "não está apto")
}

func TestFecharDuasVezesFalha(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)
	id := uuid.MustParse(salvo.FechamentoID)

	_, err = amb.svc.Fechar(context.Background(), usuario, id)
	require.NoError(t, err)
	_, err = amb.svc.Fechar(context.Background(), usuario, id)
	assert.ErrorContains(t, err, "já está fechado")
}

// ─── Cancelar ────────────────────────────────────────────────────────────────

func TestCancelarLiberaDataTurno(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)

	require.NoError(t, amb.svc.Cancelar(context.Background(), uuid.MustParse(salvo.FechamentoID)))

	// Mesmo dia e turno voltam a aceitar um fechamento novo.
	outro, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("600,00"))
	require.NoError(t, err)
	assert.NotEqual(t, salvo.FechamentoID, outro.FechamentoID)
	assert.Len(t, amb.repo.porID, 2)
}

func TestCancelarFechadoFalha(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)
	id := uuid.MustParse(salvo.FechamentoID)
	_, err = amb.svc.Fechar(context.Background(), usuario, id)
	require.NoError(t, err)

	err = amb.svc.Cancelar(context.Background(), id)
	assert.ErrorContains(t, err, "não pode ser cancelado")
}

// ─── Relatório e vendas por combustível ──────────────────────────────────────

func TestSolicitarRelatorioSoParaFechados(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	salvo, err := amb.svc.Salvar(context.Background(), usuario, requisicaoBase("590,00"))
	require.NoError(t, err)
	id := uuid.MustParse(salvo.FechamentoID)

	err = amb.svc.SolicitarRelatorio(context.Background(), id, "gestor@posto.com")
	assert.ErrorContains(t, err, "apenas para fechamentos fechados")

	_, err = amb.svc.Fechar(context.Background(), usuario, id)
	require.NoError(t, err)

	require.NoError(t, amb.svc.SolicitarRelatorio(context.Background(), id, "gestor@posto.com"))
	require.Len(t, amb.alertas.relatorios, 1)
	payload, ok := amb.alertas.relatorios[0].(RelatorioPayload)
	require.True(t, ok)
	assert.Equal(t, salvo.FechamentoID, payload.FechamentoID)
	assert.Equal(t, "gestor@posto.com", payload.Email)
}

func TestVendasPorCombustivelAgregaFechados(t *testing.T) {
	amb := novoAmbiente(t)
	usuario := uuid.New()

	primeiro := requisicaoBase("600,00")
	salvo, err := amb.svc.Salvar(context.Background(), usuario, primeiro)
	require.NoError(t, err)
	_, err = amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo.FechamentoID))
	require.NoError(t, err)

	segundo := requisicaoBase("600,00")
	segundo.Data = "2026-08-28"
	segundo.Leituras[0] = dto.LeituraBicoInput{BicoID: 1, Inicial: "1.100,000", Final: "1.200,000"}
	salvo2, err := amb.svc.Salvar(context.Background(), usuario, segundo)
	require.NoError(t, err)
	_, err = amb.svc.Fechar(context.Background(), usuario, uuid.MustParse(salvo2.FechamentoID))
	require.NoError(t, err)

	de, _ := time.Parse("2006-01-02", "2026-08-01")
	ate, _ := time.Parse("2006-01-02", "2026-08-31")
	vendas, err := amb.svc.VendasPorCombustivel(context.Background(), de, ate)
	require.NoError(t, err)

	require.Contains(t, vendas, "GC")
	assert.InDelta(t, 200.0, vendas["GC"].Litros, 1e-9)
	assert.InDelta(t, 1200.0, vendas["GC"].Valor, 1e-9)
}
