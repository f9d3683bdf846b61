package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"postogestor/internal/apierror"
	"postogestor/internal/calculo"
	"postogestor/internal/dto"
	"postogestor/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	precoCacheKey = "precos:combustiveis"
	precoCacheTTL = 10 * time.Minute
)

// PrecosHandler serve o painel público de preços dos combustíveis.
// Sem autenticação e sem efeito colateral algum.
type PrecosHandler struct {
	repo repository.CombustivelRepository
	rdb  *redis.Client
}

func NewPrecosHandler(repo repository.CombustivelRepository, rdb *redis.Client) *PrecosHandler {
	return &PrecosHandler{repo: repo, rdb: rdb}
}

// Listar godoc
// @Summary Painel público de preços (sem autenticação)
// @Tags precos
// @Produce json
// @Success 200 {array} dto.PrecoPublicoResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/precos [get]
func (h *PrecosHandler) Listar(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, precoCacheKey).Bytes(); err == nil {
		var resp []dto.PrecoPublicoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	combustiveis, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Preços indisponíveis no momento"))
		return
	}

	resp := make([]dto.PrecoPublicoResponse, len(combustiveis))
	for i, cb := range combustiveis {
		resp[i] = dto.PrecoPublicoResponse{
			Codigo:       cb.Codigo,
			Nome:         cb.Nome,
			PrecoVenda:   cb.PrecoVenda,
			PrecoVendaBR: calculo.FormatarBR(cb.PrecoVenda.InexactFloat64(), 3),
			AtualizadoEm: cb.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	// Cache best effort, erro ignorado.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), precoCacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
