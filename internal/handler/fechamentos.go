package handler

import (
	"net/http"
	"time"

	"postogestor/internal/apierror"
	"postogestor/internal/dto"
	"postogestor/internal/middleware"
	"postogestor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FechamentosHandler struct{ svc service.FechamentoService }

func NewFechamentosHandler(svc service.FechamentoService) *FechamentosHandler {
	return &FechamentosHandler{svc: svc}
}

// Salvar godoc
// @Summary Salva o rascunho do fechamento do turno
// @Tags fechamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SalvarFechamentoRequest true "Leituras, sessões e recebimentos"
// @Success 200 {object} dto.ResumoFechamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/fechamentos [post]
func (h *FechamentosHandler) Salvar(c *gin.Context) {
	var req dto.SalvarFechamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Salvar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Fechar godoc
// @Summary Fecha o turno e congela os totais consolidados
// @Tags fechamentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fechamento"
// @Success 200 {object} dto.ResumoFechamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/fechamentos/{id}/fechar [post]
func (h *FechamentosHandler) Fechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Fechar(c.Request.Context(), usuarioID, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if resp.Classificacao == "critico" {
		middleware.ContarFechamentoCritico()
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary Resumo consolidado do fechamento (recalculado a cada chamada)
// @Tags fechamentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fechamento"
// @Success 200 {object} dto.ResumoFechamentoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/fechamentos/{id}/resumo [get]
func (h *FechamentosHandler) Resumo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista fechamentos do período
// @Tags fechamentos
// @Produce json
// @Security BearerAuth
// @Param de query string false "Data inicial (2006-01-02)"
// @Param ate query string false "Data final (2006-01-02)"
// @Success 200 {array} dto.FechamentoListItemResponse
// @Router /v1/fechamentos [get]
func (h *FechamentosHandler) Listar(c *gin.Context) {
	de, ate, ok := periodoQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), de, ate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fechamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FechamentosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// SolicitarRelatorio enfileira a geração e envio do PDF do fechamento.
func (h *FechamentosHandler) SolicitarRelatorio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SolicitarRelatorio(c.Request.Context(), id, req.Email); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "relatório enfileirado"})
}

// periodoQuery lê de/ate da query string. Sem parâmetros, assume os últimos
// 30 dias.
func periodoQuery(c *gin.Context) (time.Time, time.Time, bool) {
	ate := time.Now()
	de := ate.AddDate(0, 0, -30)

	if q := c.Query("de"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("parâmetro 'de' inválido"))
			return de, ate, false
		}
		de = t
	}
	if q := c.Query("ate"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("parâmetro 'ate' inválido"))
			return de, ate, false
		}
		ate = t
	}
	return de, ate, true
}
