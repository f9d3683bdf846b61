package worker

// relatorio_worker.go
// Consome QueueRelatorio: gera o PDF do fechamento e envia por email.
// A geração fica fora do ciclo da requisição HTTP; o handler responde 202
// e o worker faz o trabalho pesado.

import (
	"context"
	"encoding/json"
	"fmt"

	"postogestor/internal/infra"
	"postogestor/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RelatorioWorker struct {
	fechamentos service.FechamentoService
	mailer      *infra.Mailer
}

func NewRelatorioWorker(fechamentos service.FechamentoService, mailer *infra.Mailer) *RelatorioWorker {
	return &RelatorioWorker{fechamentos: fechamentos, mailer: mailer}
}

func (w *RelatorioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p service.RelatorioPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("relatorio_worker: payload inválido")
		return nil
	}

	id, err := uuid.Parse(p.FechamentoID)
	if err != nil {
		log.Error().Str("fechamento_id", p.FechamentoID).Msg("relatorio_worker: id inválido")
		return nil
	}

	resumo, err := w.fechamentos.Resumo(ctx, id)
	if err != nil {
		return fmt.Errorf("relatorio_worker: carregar resumo: %w", err)
	}

	pdf, err := infra.GerarRelatorioFechamento(resumo)
	if err != nil {
		return fmt.Errorf("relatorio_worker: gerar PDF: %w", err)
	}

	assunto := fmt.Sprintf("Relatório de fechamento %s, turno %s", resumo.Data, resumo.Turno)
	corpo := fmt.Sprintf(
		"Segue em anexo o relatório do fechamento de %s (turno %s).\nTotal de vendas: R$ %s.",
		resumo.Data, resumo.Turno, resumo.TotalVendasBR,
	)
	anexo := fmt.Sprintf("fechamento_%s.pdf", resumo.Data)

	if err := w.mailer.EnviarRelatorio(p.Email, assunto, corpo, pdf, anexo); err != nil {
		return fmt.Errorf("relatorio_worker: enviar email: %w", err)
	}

	log.Info().Str("fechamento_id", p.FechamentoID).Str("email", p.Email).Msg("relatorio_worker: relatório enviado")
	return nil
}
