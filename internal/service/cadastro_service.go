package service

import (
	"context"
	"errors"

	"postogestor/internal/dto"
	"postogestor/internal/model"
	"postogestor/internal/repository"
)

// CadastroService concentra a configuração do posto: combustíveis e seus
// preços, bombas e bicos, frentistas, turnos e formas de pagamento.
type CadastroService interface {
	CriarCombustivel(ctx context.Context, req dto.CombustivelRequest) (*dto.CombustivelResponse, error)
	ListarCombustiveis(ctx context.Context) ([]dto.CombustivelResponse, error)
	AtualizarPreco(ctx context.Context, id uint, req dto.AtualizarPrecoRequest) (*dto.CombustivelResponse, error)
	DesativarCombustivel(ctx context.Context, id uint) error
	HistoricoPrecos(ctx context.Context, combustivelID uint, limit int) ([]dto.HistoricoPrecoResponse, error)

	CriarBomba(ctx context.Context, req dto.BombaRequest) (*dto.BombaResponse, error)
	ListarBombas(ctx context.Context) ([]dto.BombaResponse, error)
	AtualizarBomba(ctx context.Context, id uint, req dto.BombaRequest) (*dto.BombaResponse, error)
	DesativarBomba(ctx context.Context, id uint) error

	CriarFrentista(ctx context.Context, req dto.FrentistaRequest) (*dto.FrentistaResponse, error)
	ListarFrentistas(ctx context.Context) ([]dto.FrentistaResponse, error)
	AtualizarFrentista(ctx context.Context, id uint, req dto.FrentistaRequest) (*dto.FrentistaResponse, error)
	DesativarFrentista(ctx context.Context, id uint) error

	CriarTurno(ctx context.Context, req dto.TurnoRequest) (*dto.TurnoResponse, error)
	ListarTurnos(ctx context.Context) ([]dto.TurnoResponse, error)
	AtualizarTurno(ctx context.Context, id uint, req dto.TurnoRequest) (*dto.TurnoResponse, error)
	DesativarTurno(ctx context.Context, id uint) error

	CriarFormaPagamento(ctx context.Context, req dto.FormaPagamentoRequest) (*dto.FormaPagamentoResponse, error)
	ListarFormasPagamento(ctx context.Context) ([]dto.FormaPagamentoResponse, error)
	AtualizarFormaPagamento(ctx context.Context, id uint, req dto.FormaPagamentoRequest) (*dto.FormaPagamentoResponse, error)
	DesativarFormaPagamento(ctx context.Context, id uint) error
}

type cadastroService struct {
	combustiveis repository.CombustivelRepository
	bombas       repository.BombaRepository
	frentistas   repository.FrentistaRepository
	turnos       repository.TurnoRepository
	formas       repository.FormaPagamentoRepository
}

func NewCadastroService(
	combustiveis repository.CombustivelRepository,
	bombas repository.BombaRepository,
	frentistas repository.FrentistaRepository,
	turnos repository.TurnoRepository,
	formas repository.FormaPagamentoRepository,
) CadastroService {
	return &cadastroService{
		combustiveis: combustiveis,
		bombas:       bombas,
		frentistas:   frentistas,
		turnos:       turnos,
		formas:       formas,
	}
}

// ── Combustíveis ──────────────────────────────────────────────────────────────

func (s *cadastroService) CriarCombustivel(ctx context.Context, req dto.CombustivelRequest) (*dto.CombustivelResponse, error) {
	if _, err := s.combustiveis.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, errors.New("já existe combustível com esse código")
	}
	c := &model.Combustivel{
		Codigo:     req.Codigo,
		Nome:       req.Nome,
		PrecoVenda: req.PrecoVenda,
		PrecoCusto: req.PrecoCusto,
		Ativo:      true,
	}
	if err := s.combustiveis.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := combustivelResponse(c)
	return &resp, nil
}

func (s *cadastroService) ListarCombustiveis(ctx context.Context) ([]dto.CombustivelResponse, error) {
	cs, err := s.combustiveis.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CombustivelResponse, len(cs))
	for i := range cs {
		resp[i] = combustivelResponse(&cs[i])
	}
	return resp, nil
}

// AtualizarPreco grava o preço novo e a linha imutável de histórico com os
// valores antes/depois.
func (s *cadastroService) AtualizarPreco(ctx context.Context, id uint, req dto.AtualizarPrecoRequest) (*dto.CombustivelResponse, error) {
	if req.PrecoVenda == nil && req.PrecoCusto == nil {
		return nil, errors.New("informe preço de venda ou de custo")
	}
	c, err := s.combustiveis.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("combustível não encontrado")
	}

	h := &model.HistoricoPrecoCombustivel{
		CombustivelID: c.ID,
		CustoAntes:    c.PrecoCusto,
		VendaAntes:    c.PrecoVenda,
		Motivo:        req.Motivo,
	}
	if h.Motivo == "" {
		h.Motivo = "ajuste_manual"
	}

	if req.PrecoVenda != nil {
		c.PrecoVenda = *req.PrecoVenda
	}
	if req.PrecoCusto != nil {
		c.PrecoCusto = *req.PrecoCusto
	}
	h.CustoDepois = c.PrecoCusto
	h.VendaDepois = c.PrecoVenda

	if err := s.combustiveis.Update(ctx, c); err != nil {
		return nil, err
	}
	if err := s.combustiveis.CreateHistorico(ctx, h); err != nil {
		return nil, err
	}
	resp := combustivelResponse(c)
	return &resp, nil
}

func (s *cadastroService) DesativarCombustivel(ctx context.Context, id uint) error {
	return s.combustiveis.SoftDelete(ctx, id)
}

func (s *cadastroService) HistoricoPrecos(ctx context.Context, combustivelID uint, limit int) ([]dto.HistoricoPrecoResponse, error) {
	hs, err := s.combustiveis.ListHistorico(ctx, combustivelID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistoricoPrecoResponse, len(hs))
	for i, h := range hs {
		nome := ""
		if h.Combustivel != nil {
			nome = h.Combustivel.Nome
		}
		resp[i] = dto.HistoricoPrecoResponse{
			ID:          h.ID.String(),
			Combustivel: nome,
			CustoAntes:  h.CustoAntes,
			CustoDepois: h.CustoDepois,
			VendaAntes:  h.VendaAntes,
			VendaDepois: h.VendaDepois,
			Motivo:      h.Motivo,
			CreatedAt:   h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return resp, nil
}

// ── Bombas ────────────────────────────────────────────────────────────────────

func (s *cadastroService) CriarBomba(ctx context.Context, req dto.BombaRequest) (*dto.BombaResponse, error) {
	b := &model.Bomba{
		Numero: req.Numero,
		Nome:   req.Nome,
		Ativo:  true,
	}
	for _, bi := range req.Bicos {
		if _, err := s.combustiveis.FindByID(ctx, bi.CombustivelID); err != nil {
			return nil, errors.New("combustível do bico não encontrado")
		}
		b.Bicos = append(b.Bicos, model.Bico{
			CombustivelID: bi.CombustivelID,
			Numero:        bi.Numero,
			Ativo:         true,
		})
	}
	if err := s.bombas.Create(ctx, b); err != nil {
		return nil, err
	}
	criada, err := s.bombas.FindByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	resp := bombaResponse(criada)
	return &resp, nil
}

func (s *cadastroService) ListarBombas(ctx context.Context) ([]dto.BombaResponse, error) {
	bs, err := s.bombas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BombaResponse, len(bs))
	for i := range bs {
		resp[i] = bombaResponse(&bs[i])
	}
	return resp, nil
}

func (s *cadastroService) AtualizarBomba(ctx context.Context, id uint, req dto.BombaRequest) (*dto.BombaResponse, error) {
	b, err := s.bombas.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bomba não encontrada")
	}
	b.Numero = req.Numero
	b.Nome = req.Nome
	if err := s.bombas.Update(ctx, b); err != nil {
		return nil, err
	}

	bicos := make([]model.Bico, len(req.Bicos))
	for i, bi := range req.Bicos {
		if _, err := s.combustiveis.FindByID(ctx, bi.CombustivelID); err != nil {
			return nil, errors.New("combustível do bico não encontrado")
		}
		bicos[i] = model.Bico{
			CombustivelID: bi.CombustivelID,
			Numero:        bi.Numero,
		}
		// Preserva o ID do bico que já existe com o mesmo número.
		for _, atual := range b.Bicos {
			if atual.Numero == bi.Numero {
				bicos[i].ID = atual.ID
				break
			}
		}
	}
	if err := s.bombas.ReplaceBicos(ctx, id, bicos); err != nil {
		return nil, err
	}

	atualizada, err := s.bombas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := bombaResponse(atualizada)
	return &resp, nil
}

func (s *cadastroService) DesativarBomba(ctx context.Context, id uint) error {
	return s.bombas.SoftDelete(ctx, id)
}

// ── Frentistas ────────────────────────────────────────────────────────────────

func (s *cadastroService) CriarFrentista(ctx context.Context, req dto.FrentistaRequest) (*dto.FrentistaResponse, error) {
	f := &model.Frentista{Nome: req.Nome, Telefone: req.Telefone, Ativo: true}
	if err := s.frentistas.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := frentistaResponse(f)
	return &resp, nil
}

func (s *cadastroService) ListarFrentistas(ctx context.Context) ([]dto.FrentistaResponse, error) {
	fs, err := s.frentistas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FrentistaResponse, len(fs))
	for i := range fs {
		resp[i] = frentistaResponse(&fs[i])
	}
	return resp, nil
}

func (s *cadastroService) AtualizarFrentista(ctx context.Context, id uint, req dto.FrentistaRequest) (*dto.FrentistaResponse, error) {
	f, err := s.frentistas.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("frentista não encontrado")
	}
	f.Nome = req.Nome
	f.Telefone = req.Telefone
	if err := s.frentistas.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := frentistaResponse(f)
	return &resp, nil
}

func (s *cadastroService) DesativarFrentista(ctx context.Context, id uint) error {
	return s.frentistas.SoftDelete(ctx, id)
}

// ── Turnos ────────────────────────────────────────────────────────────────────

func (s *cadastroService) CriarTurno(ctx context.Context, req dto.TurnoRequest) (*dto.TurnoResponse, error) {
	t := &model.Turno{
		Nome:          req.Nome,
		HorarioInicio: req.HorarioInicio,
		HorarioFim:    req.HorarioFim,
		Ativo:         true,
	}
	if err := s.turnos.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := turnoResponse(t)
	return &resp, nil
}

func (s *cadastroService) ListarTurnos(ctx context.Context) ([]dto.TurnoResponse, error) {
	ts, err := s.turnos.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TurnoResponse, len(ts))
	for i := range ts {
		resp[i] = turnoResponse(&ts[i])
	}
	return resp, nil
}

func (s *cadastroService) AtualizarTurno(ctx context.Context, id uint, req dto.TurnoRequest) (*dto.TurnoResponse, error) {
	t, err := s.turnos.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("turno não encontrado")
	}
	t.Nome = req.Nome
	t.HorarioInicio = req.HorarioInicio
	t.HorarioFim = req.HorarioFim
	if err := s.turnos.Update(ctx, t); err != nil {
		return nil, err
	}
	resp := turnoResponse(t)
	return &resp, nil
}

func (s *cadastroService) DesativarTurno(ctx context.Context, id uint) error {
	return s.turnos.SoftDelete(ctx, id)
}

// ── Formas de pagamento ───────────────────────────────────────────────────────

func (s *cadastroService) CriarFormaPagamento(ctx context.Context, req dto.FormaPagamentoRequest) (*dto.FormaPagamentoResponse, error) {
	fp := &model.FormaPagamento{Nome: req.Nome, Tipo: req.Tipo, Taxa: req.Taxa, Ativo: true}
	if err := s.formas.Create(ctx, fp); err != nil {
		return nil, err
	}
	resp := formaPagamentoResponse(fp)
	return &resp, nil
}

func (s *cadastroService) ListarFormasPagamento(ctx context.Context) ([]dto.FormaPagamentoResponse, error) {
	fps, err := s.formas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FormaPagamentoResponse, len(fps))
	for i := range fps {
		resp[i] = formaPagamentoResponse(&fps[i])
	}
	return resp, nil
}

func (s *cadastroService) AtualizarFormaPagamento(ctx context.Context, id uint, req dto.FormaPagamentoRequest) (*dto.FormaPagamentoResponse, error) {
	fp, err := s.formas.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("forma de pagamento não encontrada")
	}
	fp.Nome = req.Nome
	fp.Tipo = req.Tipo
	fp.Taxa = req.Taxa
	if err := s.formas.Update(ctx, fp); err != nil {
		return nil, err
	}
	resp := formaPagamentoResponse(fp)
	return &resp, nil
}

func (s *cadastroService) DesativarFormaPagamento(ctx context.Context, id uint) error {
	return s.formas.SoftDelete(ctx, id)
}

// ── Mapeamentos ───────────────────────────────────────────────────────────────

func combustivelResponse(c *model.Combustivel) dto.CombustivelResponse {
	return dto.CombustivelResponse{
		ID:            c.ID,
		Codigo:        c.Codigo,
		Nome:          c.Nome,
		PrecoVenda:    c.PrecoVenda,
		PrecoCusto:    c.PrecoCusto,
		EstoqueLitros: c.EstoqueLitros,
		Ativo:         c.Ativo,
	}
}

func bombaResponse(b *model.Bomba) dto.BombaResponse {
	bicos := make([]dto.BicoResponse, len(b.Bicos))
	for i, bi := range b.Bicos {
		codigo, nome := "", ""
		if bi.Combustivel != nil {
			codigo = bi.Combustivel.Codigo
			nome = bi.Combustivel.Nome
		}
		bicos[i] = dto.BicoResponse{
			ID:            bi.ID,
			Numero:        bi.Numero,
			CombustivelID: bi.CombustivelID,
			Codigo:        codigo,
			Combustivel:   nome,
			Ativo:         bi.Ativo,
		}
	}
	return dto.BombaResponse{ID: b.ID, Numero: b.Numero, Nome: b.Nome, Ativo: b.Ativo, Bicos: bicos}
}

func frentistaResponse(f *model.Frentista) dto.FrentistaResponse {
	return dto.FrentistaResponse{ID: f.ID, Nome: f.Nome, Telefone: f.Telefone, Ativo: f.Ativo}
}

func turnoResponse(t *model.Turno) dto.TurnoResponse {
	return dto.TurnoResponse{
		ID:            t.ID,
		Nome:          t.Nome,
		HorarioInicio: t.HorarioInicio,
		HorarioFim:    t.HorarioFim,
		Ativo:         t.Ativo,
	}
}

func formaPagamentoResponse(fp *model.FormaPagamento) dto.FormaPagamentoResponse {
	return dto.FormaPagamentoResponse{ID: fp.ID, Nome: fp.Nome, Tipo: fp.Tipo, Taxa: fp.Taxa, Ativo: fp.Ativo}
}
