package handler

import (
	"net/http"
	"time"

	"postogestor/internal/apierror"
	"postogestor/internal/dto"
	"postogestor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DespesasHandler struct{ svc service.DespesaService }

func NewDespesasHandler(svc service.DespesaService) *DespesasHandler {
	return &DespesasHandler{svc: svc}
}

func (h *DespesasHandler) Criar(c *gin.Context) {
	var req dto.DespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DespesasHandler) Listar(c *gin.Context) {
	competencia := c.DefaultQuery("competencia", time.Now().Format("2006-01"))
	resp, err := h.svc.Listar(c.Request.Context(), competencia)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar despesas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DespesasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.DespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DespesasHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
