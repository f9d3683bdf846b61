package handler

import (
	"net/http"
	"strconv"

	"postogestor/internal/apierror"
	"postogestor/internal/dto"
	"postogestor/internal/service"

	"github.com/gin-gonic/gin"
)

// CadastrosHandler expõe a configuração do posto: combustíveis, bombas,
// frentistas, turnos e formas de pagamento.
type CadastrosHandler struct{ svc service.CadastroService }

func NewCadastrosHandler(svc service.CadastroService) *CadastrosHandler {
	return &CadastrosHandler{svc: svc}
}

// ── Combustíveis ──────────────────────────────────────────────────────────────

func (h *CadastrosHandler) CriarCombustivel(c *gin.Context) {
	var req dto.CombustivelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarCombustivel(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CadastrosHandler) ListarCombustiveis(c *gin.Context) {
	resp, err := h.svc.ListarCombustiveis(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar combustíveis"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarPreco godoc
// @Summary Atualiza preço de venda/custo e grava o histórico
// @Tags cadastros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do combustível"
// @Param body body dto.AtualizarPrecoRequest true "Preços novos"
// @Success 200 {object} dto.CombustivelResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/combustiveis/{id}/preco [put]
func (h *CadastrosHandler) AtualizarPreco(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarPrecoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarPreco(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) DesativarCombustivel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesativarCombustivel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CadastrosHandler) HistoricoPrecos(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}
	resp, err := h.svc.HistoricoPrecos(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar histórico"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Bombas ────────────────────────────────────────────────────────────────────

func (h *CadastrosHandler) CriarBomba(c *gin.Context) {
	var req dto.BombaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarBomba(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CadastrosHandler) ListarBombas(c *gin.Context) {
	resp, err := h.svc.ListarBombas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar bombas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) AtualizarBomba(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req dto.BombaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarBomba(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) DesativarBomba(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesativarBomba(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Frentistas ────────────────────────────────────────────────────────────────

func (h *CadastrosHandler) CriarFrentista(c *gin.Context) {
	var req dto.FrentistaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarFrentista(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CadastrosHandler) ListarFrentistas(c *gin.Context) {
	resp, err := h.svc.ListarFrentistas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar frentistas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) AtualizarFrentista(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req dto.FrentistaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarFrentista(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) DesativarFrentista(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesativarFrentista(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Turnos ────────────────────────────────────────────────────────────────────

func (h *CadastrosHandler) CriarTurno(c *gin.Context) {
	var req dto.TurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarTurno(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CadastrosHandler) ListarTurnos(c *gin.Context) {
	resp, err := h.svc.ListarTurnos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar turnos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) AtualizarTurno(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req dto.TurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarTurno(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) DesativarTurno(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesativarTurno(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Formas de pagamento ───────────────────────────────────────────────────────

func (h *CadastrosHandler) CriarFormaPagamento(c *gin.Context) {
	var req dto.FormaPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarFormaPagamento(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CadastrosHandler) ListarFormasPagamento(c *gin.Context) {
	resp, err := h.svc.ListarFormasPagamento(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar formas de pagamento"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) AtualizarFormaPagamento(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var req dto.FormaPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarFormaPagamento(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CadastrosHandler) DesativarFormaPagamento(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesativarFormaPagamento(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
