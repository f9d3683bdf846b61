package worker

// notificacao_worker.go
// Consome QueueNotificacao: alerta o gestor quando um fechamento fecha com
// desvio crítico. Entrega por webhook (guardado por circuit breaker) e por
// email, conforme o que estiver configurado.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"postogestor/internal/calculo"
	"postogestor/internal/infra"
	"postogestor/internal/service"

	"github.com/rs/zerolog/log"
)

type NotificacaoWorker struct {
	mailer      *infra.Mailer
	webhook     *infra.AlertaWebhook
	alertaEmail string
}

func NewNotificacaoWorker(mailer *infra.Mailer, webhook *infra.AlertaWebhook, alertaEmail string) *NotificacaoWorker {
	return &NotificacaoWorker{mailer: mailer, webhook: webhook, alertaEmail: alertaEmail}
}

// Process delivers the alert through every configured channel. Returns an
// error when at least one channel failed so the pool can retry.
func (w *NotificacaoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p service.DesvioCriticoPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("notificacao_worker: payload inválido")
		return nil // payload malformado nunca vai passar, não adianta repetir
	}

	natureza := "falta"
	if p.Diferenca >= 0 {
		natureza = "sobra"
	}
	mensagem := fmt.Sprintf(
		"Desvio crítico no fechamento de %s (turno %s): %s de R$ %s (%s%% sobre R$ %s vendidos).",
		p.Data, p.Turno, natureza,
		calculo.FormatarBR(p.Diferenca, 2),
		calculo.FormatarBR(p.Percentual, 3),
		calculo.FormatarBR(p.TotalVendas, 2),
	)

	var errs []error

	if w.webhook != nil && w.webhook.Habilitado() {
		body := struct {
			service.DesvioCriticoPayload
			Mensagem string `json:"mensagem"`
		}{p, mensagem}
		if err := w.webhook.Publicar(ctx, body); err != nil {
			log.Warn().Err(err).Str("fechamento_id", p.FechamentoID).Msg("notificacao_worker: webhook falhou")
			errs = append(errs, err)
		}
	}

	if w.alertaEmail != "" {
		assunto := fmt.Sprintf("[ALERTA] Desvio crítico de caixa em %s, turno %s", p.Data, p.Turno)
		if err := w.mailer.EnviarAlerta(w.alertaEmail, assunto, mensagem); err != nil {
			log.Warn().Err(err).Str("fechamento_id", p.FechamentoID).Msg("notificacao_worker: email falhou")
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info().Str("fechamento_id", p.FechamentoID).Msg("notificacao_worker: alerta entregue")
	return nil
}
