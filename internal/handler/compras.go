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

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra uma compra de combustível e repondera o custo médio
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarCompraRequest true "Dados da compra"
// @Success 201 {object} dto.CompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprasHandler) Listar(c *gin.Context) {
	de, ate, ok := periodoQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), de, ate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Margens godoc
// @Summary Planilha de margem da competência (vendas, custos, rateio de despesas)
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param competencia query string false "Competência no formato 2006-01 (padrão: mês atual)"
// @Success 200 {object} dto.MargensResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/margens [get]
func (h *ComprasHandler) Margens(c *gin.Context) {
	competencia := c.DefaultQuery("competencia", time.Now().Format("2006-01"))
	resp, err := h.svc.Margens(c.Request.Context(), competencia)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
