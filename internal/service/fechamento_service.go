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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertaSink is the async side of the service: critical deviations and
// report requests are queued, never handled inline.
type AlertaSink interface {
	EnqueueNotificacao(ctx context.Context, payload interface{}) error
	EnqueueRelatorio(ctx context.Context, payload interface{}) error
}

// DesvioCriticoPayload viaja na fila de notificações quando um fechamento
// fecha com classificação "critico".
type DesvioCriticoPayload struct {
	FechamentoID string  `json:"fechamento_id"`
	Data         string  `json:"data"`
	Turno        string  `json:"turno"`
	Diferenca    float64 `json:"diferenca"` // positivo = sobra
	Percentual   float64 `json:"percentual"`
	TotalVendas  float64 `json:"total_vendas"`
}

// RelatorioPayload pede a geração e envio do PDF de um fechamento.
type RelatorioPayload struct {
	FechamentoID string `json:"fechamento_id"`
	Email        string `json:"email"`
}

type FechamentoService interface {
	Salvar(ctx context.Context, usuarioID uuid.UUID, req dto.SalvarFechamentoRequest) (*dto.ResumoFechamentoResponse, error)
	Fechar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) (*dto.ResumoFechamentoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
	Resumo(ctx context.Context, id uuid.UUID) (*dto.ResumoFechamentoResponse, error)
	Listar(ctx context.Context, de, ate time.Time) ([]dto.FechamentoListItemResponse, error)
	SolicitarRelatorio(ctx context.Context, id uuid.UUID, email string) error
	// VendasPorCombustivel alimenta o cálculo de margens do período.
	VendasPorCombustivel(ctx context.Context, de, ate time.Time) (map[string]calculo.SumarioCombustivel, error)
}

type fechamentoService struct {
	repo         repository.FechamentoRepository
	bombas       repository.BombaRepository
	formas       repository.FormaPagamentoRepository
	turnos       repository.TurnoRepository
	combustiveis repository.CombustivelRepository
	alertas      AlertaSink
}

func NewFechamentoService(
	repo repository.FechamentoRepository,
	bombas repository.BombaRepository,
	formas repository.FormaPagamentoRepository,
	turnos repository.TurnoRepository,
	combustiveis repository.CombustivelRepository,
	alertas AlertaSink,
) FechamentoService {
	return &fechamentoService{
		repo:         repo,
		bombas:       bombas,
		formas:       formas,
		turnos:       turnos,
		combustiveis: combustiveis,
		alertas:      alertas,
	}
}

// ── Salvar ────────────────────────────────────────────────────────────────────
// Cria ou atualiza o rascunho do turno. Salvar várias vezes é esperado: as
// linhas filhas são substituídas por inteiro a cada envio.

func (s *fechamentoService) Salvar(ctx context.Context, usuarioID uuid.UUID, req dto.SalvarFechamentoRequest) (*dto.ResumoFechamentoResponse, error) {
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}
	if _, err := s.turnos.FindByID(ctx, req.TurnoID); err != nil {
		return nil, errors.New("turno não encontrado")
	}

	bicosAtivos, err := s.bombas.ListBicosAtivos(ctx)
	if err != nil {
		return nil, err
	}
	bicoExiste := make(map[uint]bool, len(bicosAtivos))
	for _, b := range bicosAtivos {
		bicoExiste[b.ID] = true
	}

	leituras := make([]model.LeituraBico, 0, len(req.Leituras))
	for _, l := range req.Leituras {
		if !bicoExiste[l.BicoID] {
			return nil, fmt.Errorf("bico %d não encontrado ou inativo", l.BicoID)
		}
		leituras = append(leituras, model.LeituraBico{
			BicoID:  l.BicoID,
			Inicial: l.Inicial,
			Final:   l.Final,
		})
	}

	sessoes := make([]model.SessaoFrentista, 0, len(req.Sessoes))
	for _, in := range req.Sessoes {
		norm := calculo.NormalizarSessao(calculo.SessaoBruta{
			FrentistaID:        in.FrentistaID,
			ValorCartao:        in.ValorCartao,
			ValorCartaoDebito:  in.ValorCartaoDebito,
			ValorCartaoCredito: in.ValorCartaoCredito,
			ValorNota:          in.ValorNota,
			ValorPix:           in.ValorPix,
			ValorDinheiro:      in.ValorDinheiro,
			ValorBaratao:       in.ValorBaratao,
			ValorProdutos:      in.ValorProdutos,
			ValorEncerrante:    in.ValorEncerrante,
			ValorConferido:     in.ValorConferido,
		})
		sessoes = append(sessoes, model.SessaoFrentista{
			FrentistaID:        norm.FrentistaID,
			ValorCartaoDebito:  valorDecimal(norm.ValorCartaoDebito),
			ValorCartaoCredito: valorDecimal(norm.ValorCartaoCredito),
			ValorNota:          valorDecimal(norm.ValorNota),
			ValorPix:           valorDecimal(norm.ValorPix),
			ValorDinheiro:      valorDecimal(norm.ValorDinheiro),
			ValorBaratao:       valorDecimal(norm.ValorBaratao),
			ValorProdutos:      valorDecimal(norm.ValorProdutos),
			ValorConferido:     valorDecimal(norm.ValorConferido),
			ValorEncerrante:    valorDecimal(norm.ValorEncerrante),
			Observacoes:        in.Observacoes,
		})
	}

	recebidos := make([]model.RecebimentoPagamento, 0, len(req.Recebidos))
	for _, in := range req.Recebidos {
		forma, err := s.formas.FindByID(ctx, in.FormaPagamentoID)
		if err != nil {
			return nil, fmt.Errorf("forma de pagamento %d não encontrada", in.FormaPagamentoID)
		}
		recebidos = append(recebidos, model.RecebimentoPagamento{
			FormaPagamentoID: forma.ID,
			Valor:            valorDecimal(in.Valor),
			Taxa:             forma.Taxa,
		})
	}

	f, err := s.repo.FindByDataTurno(ctx, data, req.TurnoID)
	switch {
	case err == nil:
		if f.Status == model.FechamentoFechado {
			return nil, errors.New("fechamento do turno já está fechado")
		}
		f.Leituras = leituras
		f.Sessoes = sessoes
		f.Recebidos = recebidos
		f.Observacoes = req.Observacoes
		if err := s.repo.ReplaceFilhos(ctx, f); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		f = &model.Fechamento{
			Data:               data,
			TurnoID:            req.TurnoID,
			Status:             model.FechamentoAberto,
			Observacoes:        req.Observacoes,
			CriadoPorUsuarioID: usuarioID,
			Leituras:           leituras,
			Sessoes:            sessoes,
			Recebidos:          recebidos,
		}
		if err := s.repo.Create(ctx, f); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.Resumo(ctx, f.ID)
}

// ── Fechar ────────────────────────────────────────────────────────────────────
// Congela os totais consolidados e marca o turno como fechado. Um desvio
// crítico dispara a notificação assíncrona depois do commit.

func (s *fechamentoService) Fechar(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) (*dto.ResumoFechamentoResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fechamento não encontrado")
	}
	if f.Status == model.FechamentoFechado {
		return nil, errors.New("fechamento já está fechado")
	}
	if f.Status == model.FechamentoCancelado {
		return nil, errors.New("fechamento cancelado não pode ser fechado")
	}

	consolidado := s.consolidar(f)
	if !consolidado.PodeFechar {
		return nil, fmt.Errorf("fechamento não está apto: %v", pendencias(consolidado, f))
	}

	agora := time.Now()
	totalLitros := decimal.NewFromFloat(consolidado.TotalLitros).Round(3)
	totalVendas := decimal.NewFromFloat(consolidado.TotalVendas).Round(2)
	totalDeclarado := decimal.NewFromFloat(consolidado.TotalFrentistas).Round(2)
	totalProdutos := decimal.NewFromFloat(consolidado.TotalProdutos).Round(2)
	totalTaxas := decimal.NewFromFloat(consolidado.TotalTaxas).Round(2)
	liquido := decimal.NewFromFloat(consolidado.ValorLiquido).Round(2)
	diferenca := decimal.NewFromFloat(consolidado.Diferenca).Round(2)
	pct := decimal.NewFromFloat(consolidado.DiferencaPercentual).Round(3)
	classificacao := consolidado.Classificacao

	f.TotalLitros = &totalLitros
	f.TotalVendas = &totalVendas
	f.TotalDeclarado = &totalDeclarado
	f.TotalProdutos = &totalProdutos
	f.TotalTaxas = &totalTaxas
	f.LiquidoPagamentos = &liquido
	f.DiferencaCaixa = &diferenca
	f.PercentualDesvio = &pct
	f.Classificacao = &classificacao
	f.Status = model.FechamentoFechado
	f.FechadoPor = &usuarioID
	f.FechadoEm = &agora

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.baixarEstoque(ctx, consolidado.SumarioPorCombustivel)

	if classificacao == "critico" {
		turno := ""
		if f.Turno != nil {
			turno = f.Turno.Nome
		}
		payload := DesvioCriticoPayload{
			FechamentoID: f.ID.String(),
			Data:         f.Data.Format("2006-01-02"),
			Turno:        turno,
			Diferenca:    consolidado.Diferenca,
			Percentual:   consolidado.DiferencaPercentual,
			TotalVendas:  consolidado.TotalVendas,
		}
		if err := s.alertas.EnqueueNotificacao(ctx, payload); err != nil {
			// A notificação não pode derrubar o fechamento já persistido.
			log.Error().Err(err).Str("fechamento_id", f.ID.String()).Msg("falha ao enfileirar alerta de desvio crítico")
		}
	}

	return s.montarResumo(f, consolidado), nil
}

func (s *fechamentoService) Cancelar(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("fechamento não encontrado")
	}
	if f.Status == model.FechamentoFechado {
		return errors.New("fechamento fechado não pode ser cancelado")
	}
	f.Status = model.FechamentoCancelado
	return s.repo.Update(ctx, f)
}

func (s *fechamentoService) Resumo(ctx context.Context, id uuid.UUID) (*dto.ResumoFechamentoResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fechamento não encontrado")
	}
	return s.montarResumo(f, s.consolidar(f)), nil
}

func (s *fechamentoService) Listar(ctx context.Context, de, ate time.Time) ([]dto.FechamentoListItemResponse, error) {
	fs, err := s.repo.List(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	itens := make([]dto.FechamentoListItemResponse, len(fs))
	for i, f := range fs {
		turno := ""
		if f.Turno != nil {
			turno = f.Turno.Nome
		}
		itens[i] = dto.FechamentoListItemResponse{
			ID:             f.ID.String(),
			Data:           f.Data.Format("2006-01-02"),
			Turno:          turno,
			Status:         f.Status,
			TotalVendas:    f.TotalVendas,
			DiferencaCaixa: f.DiferencaCaixa,
			Classificacao:  f.Classificacao,
		}
	}
	return itens, nil
}

func (s *fechamentoService) SolicitarRelatorio(ctx context.Context, id uuid.UUID, email string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("fechamento não encontrado")
	}
	if f.Status != model.FechamentoFechado {
		return errors.New("relatório disponível apenas para fechamentos fechados")
	}
	return s.alertas.EnqueueRelatorio(ctx, RelatorioPayload{
		FechamentoID: f.ID.String(),
		Email:        email,
	})
}

// VendasPorCombustivel reconsolida os fechamentos fechados do período e
// devolve litros e valor vendidos por código de combustível.
func (s *fechamentoService) VendasPorCombustivel(ctx context.Context, de, ate time.Time) (map[string]calculo.SumarioCombustivel, error) {
	fs, err := s.repo.ListFechadosPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	vendas := make(map[string]calculo.SumarioCombustivel)
	for i := range fs {
		bicos, leituras := entradasLeituras(&fs[i])
		for _, sum := range calculo.AgruparPorCombustivel(bicos, leituras) {
			acc := vendas[sum.Codigo]
			acc.Codigo = sum.Codigo
			acc.Nome = sum.Nome
			acc.Preco = sum.Preco
			acc.Litros += sum.Litros
			acc.Valor += sum.Valor
			vendas[sum.Codigo] = acc
		}
	}
	return vendas, nil
}

// baixarEstoque abate do estoque contábil os litros vendidos no turno.
// Falha aqui não desfaz o fechamento já persistido, só registra o problema.
func (s *fechamentoService) baixarEstoque(ctx context.Context, sumarios []calculo.SumarioCombustivel) {
	for _, sum := range sumarios {
		if sum.Litros <= 0 {
			continue
		}
		c, err := s.combustiveis.FindByCodigo(ctx, sum.Codigo)
		if err != nil {
			log.Warn().Err(err).Str("codigo", sum.Codigo).Msg("combustível não encontrado na baixa de estoque")
			continue
		}
		c.EstoqueLitros = c.EstoqueLitros.Sub(decimal.NewFromFloat(sum.Litros).Round(3))
		if err := s.combustiveis.Update(ctx, c); err != nil {
			log.Error().Err(err).Str("codigo", sum.Codigo).Msg("falha na baixa de estoque")
		}
	}
}

// ── Consolidação ──────────────────────────────────────────────────────────────

func entradasLeituras(f *model.Fechamento) ([]calculo.BicoDetalhado, map[uint]calculo.Leitura) {
	bicos := make([]calculo.BicoDetalhado, 0, len(f.Leituras))
	leituras := make(map[uint]calculo.Leitura, len(f.Leituras))
	for _, l := range f.Leituras {
		if l.Bico == nil || l.Bico.Combustivel == nil {
			continue
		}
		bicos = append(bicos, calculo.BicoDetalhado{
			ID:      l.BicoID,
			BombaID: l.Bico.BombaID,
			Combustivel: calculo.InfoCombustivel{
				Codigo:     l.Bico.Combustivel.Codigo,
				Nome:       l.Bico.Combustivel.Nome,
				PrecoVenda: l.Bico.Combustivel.PrecoVenda.InexactFloat64(),
				PrecoCusto: l.Bico.Combustivel.PrecoCusto.InexactFloat64(),
			},
		})
		leituras[l.BicoID] = calculo.Leitura{Inicial: l.Inicial, Fechamento: l.Final}
	}
	return bicos, leituras
}

func (s *fechamentoService) consolidar(f *model.Fechamento) calculo.Fechamento {
	bicos, leituras := entradasLeituras(f)

	sessoes := make([]calculo.SessaoFrentista, len(f.Sessoes))
	for i, sess := range f.Sessoes {
		sessoes[i] = calculo.SessaoFrentista{
			FrentistaID:        sess.FrentistaID,
			ValorCartaoDebito:  exibirDecimal(sess.ValorCartaoDebito),
			ValorCartaoCredito: exibirDecimal(sess.ValorCartaoCredito),
			ValorNota:          exibirDecimal(sess.ValorNota),
			ValorPix:           exibirDecimal(sess.ValorPix),
			ValorDinheiro:      exibirDecimal(sess.ValorDinheiro),
			ValorBaratao:       exibirDecimal(sess.ValorBaratao),
			ValorProdutos:      exibirDecimal(sess.ValorProdutos),
			ValorEncerrante:    exibirDecimal(sess.ValorEncerrante),
			ValorConferido:     exibirDecimal(sess.ValorConferido),
		}
	}

	pagamentos := make([]calculo.EntradaPagamento, len(f.Recebidos))
	for i, r := range f.Recebidos {
		nome, tipo := "", ""
		if r.FormaPagamento != nil {
			nome = r.FormaPagamento.Nome
			tipo = r.FormaPagamento.Tipo
		}
		pagamentos[i] = calculo.EntradaPagamento{
			ID:    r.FormaPagamentoID,
			Nome:  nome,
			Tipo:  tipo,
			Valor: exibirDecimal(r.Valor),
			Taxa:  r.Taxa.InexactFloat64(),
		}
	}

	return calculo.Consolidar(bicos, leituras, sessoes, pagamentos)
}

func (s *fechamentoService) montarResumo(f *model.Fechamento, c calculo.Fechamento) *dto.ResumoFechamentoResponse {
	turno := ""
	if f.Turno != nil {
		turno = f.Turno.Nome
	}

	combustiveis := make([]dto.SumarioCombustivelResponse, len(c.SumarioPorCombustivel))
	for i, sum := range c.SumarioPorCombustivel {
		combustiveis[i] = dto.SumarioCombustivelResponse{
			Codigo:        sum.Codigo,
			Nome:          sum.Nome,
			Litros:        decimal.NewFromFloat(sum.Litros).Round(3),
			Valor:         decimal.NewFromFloat(sum.Valor).Round(2),
			LitrosExibido: calculo.FormatarBR(sum.Litros, 3),
			ValorExibido:  calculo.ParaReais(sum.Valor),
		}
	}

	sessoes := make([]dto.SessaoResumoResponse, len(f.Sessoes))
	for i, sess := range f.Sessoes {
		nome := ""
		if sess.Frentista != nil {
			nome = sess.Frentista.Nome
		}
		entrada := calculo.SessaoFrentista{
			FrentistaID:        sess.FrentistaID,
			ValorCartaoDebito:  exibirDecimal(sess.ValorCartaoDebito),
			ValorCartaoCredito: exibirDecimal(sess.ValorCartaoCredito),
			ValorNota:          exibirDecimal(sess.ValorNota),
			ValorPix:           exibirDecimal(sess.ValorPix),
			ValorDinheiro:      exibirDecimal(sess.ValorDinheiro),
			ValorBaratao:       exibirDecimal(sess.ValorBaratao),
			ValorEncerrante:    exibirDecimal(sess.ValorEncerrante),
		}
		sessoes[i] = dto.SessaoResumoResponse{
			FrentistaID:    sess.FrentistaID,
			Frentista:      nome,
			TotalDeclarado: decimal.NewFromFloat(calculo.TotalSessao(entrada)).Round(2),
			Diferenca:      decimal.NewFromFloat(calculo.DiferencaSessao(entrada)).Round(2),
		}
	}

	pagamentos := make([]dto.PagamentoResumoResponse, len(f.Recebidos))
	for i, r := range f.Recebidos {
		nome := ""
		if r.FormaPagamento != nil {
			nome = r.FormaPagamento.Nome
		}
		entrada := calculo.EntradaPagamento{
			Valor: exibirDecimal(r.Valor),
			Taxa:  r.Taxa.InexactFloat64(),
		}
		pagamentos[i] = dto.PagamentoResumoResponse{
			FormaPagamentoID: r.FormaPagamentoID,
			Nome:             nome,
			Valor:            r.Valor,
			Taxa:             r.Taxa,
			ValorTaxa:        decimal.NewFromFloat(calculo.TaxaEntrada(entrada)).Round(2),
			Liquido:          decimal.NewFromFloat(calculo.LiquidoEntrada(entrada)).Round(2),
		}
	}

	return &dto.ResumoFechamentoResponse{
		FechamentoID:      f.ID.String(),
		Data:              f.Data.Format("2006-01-02"),
		Turno:             turno,
		Status:            f.Status,
		Combustiveis:      combustiveis,
		Sessoes:           sessoes,
		Pagamentos:        pagamentos,
		TotalLitros:       decimal.NewFromFloat(c.TotalLitros).Round(3),
		TotalVendas:       decimal.NewFromFloat(c.TotalVendas).Round(2),
		TotalDeclarado:    decimal.NewFromFloat(c.TotalFrentistas).Round(2),
		TotalTaxas:        decimal.NewFromFloat(c.TotalTaxas).Round(2),
		LiquidoPagamentos: decimal.NewFromFloat(c.ValorLiquido).Round(2),
		DiferencaCaixa:    decimal.NewFromFloat(c.Diferenca).Round(2),
		PercentualDesvio:  decimal.NewFromFloat(c.DiferencaPercentual).Round(3),
		Classificacao:     c.Classificacao,
		TotalVendasBR:     c.Exibicao.TotalVendas,
		DiferencaCaixaBR:  c.Exibicao.Diferenca,
		PodeFechar:        c.PodeFechar,
		Pendencias:        pendencias(c, f),
	}
}

func pendencias(c calculo.Fechamento, f *model.Fechamento) []string {
	var ps []string
	if c.TemLeiturasInvalidas {
		ps = append(ps, "há leituras com encerrante final menor ou igual ao inicial")
	}
	if c.TemSessoesVazias {
		ps = append(ps, "há sessões sem frentista ou sem valor conferido")
	}
	if len(f.Leituras) == 0 {
		ps = append(ps, "nenhuma leitura de bico informada")
	}
	if len(f.Sessoes) == 0 {
		ps = append(ps, "nenhuma sessão de frentista informada")
	}
	return ps
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// valorDecimal interpreta a string de entrada pelas convenções da pista e
// devolve o decimal persistível. Entrada ruim vira zero, nunca erro.
func valorDecimal(valor string) decimal.Decimal {
	return decimal.NewFromFloat(calculo.AnalisarValor(valor)).Round(2)
}

// exibirDecimal devolve a forma com vírgula decimal explícita, a única que o
// parser reinterpreta sem ambiguidade com a convenção de encerrante.
func exibirDecimal(d decimal.Decimal) string {
	return calculo.FormatarBR(d.InexactFloat64(), 2)
}
