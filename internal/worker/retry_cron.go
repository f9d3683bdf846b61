package worker

// retry_cron.go
// Goroutine de fundo que redireciona alertas parados na DLQ de notificações
// de volta para a fila quando o webhook volta a responder. Sem isso um
// endpoint fora do ar por uma hora engoliria os alertas daquela janela.

import (
	"context"
	"encoding/json"
	"time"

	"postogestor/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redriveTickInterval = 60 * time.Second
	redriveBatchSize    = 10

	// Total de tentativas acumuladas (inline + redrives) antes de desistir.
	maxRedriveAttempts = 9
)

// RetryCronConfig holds the dependencies for the redrive goroutine.
type RetryCronConfig struct {
	RDB     *redis.Client
	Webhook *infra.AlertaWebhook
}

// StartRetryCron launches a goroutine that ticks every minute and, while the
// webhook circuit breaker is not open, moves DLQ'd notification jobs back to
// QueueNotificacao. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(redriveTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				redriveNotificacoes(ctx, cfg)
			}
		}
	}()
}

func redriveNotificacoes(ctx context.Context, cfg RetryCronConfig) {
	// Circuito aberto: o endpoint ainda está fora, não adianta redirecionar.
	if cfg.Webhook != nil && cfg.Webhook.Habilitado() && cfg.Webhook.Estado() == "open" {
		log.Debug().Msg("retry_cron: circuit breaker aberto, pulando tick")
		return
	}

	dlqKey := DLQPrefix + QueueNotificacao
	for i := 0; i < redriveBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // fila vazia ou contexto cancelado
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: entrada de DLQ ilegível, descartada")
			continue
		}

		if entry.Attempts >= maxRedriveAttempts {
			log.Error().
				Str("job_type", entry.JobType).
				Int("attempts", entry.Attempts).
				Msg("retry_cron: alerta descartado após esgotar redrives")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: falha ao serializar job redirecionado")
			continue
		}
		if err := cfg.RDB.LPush(ctx, QueueNotificacao, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: falha ao reenfileirar, devolvendo à DLQ")
			_ = cfg.RDB.LPush(ctx, dlqKey, raw).Err()
			return
		}

		log.Info().
			Str("job_type", entry.JobType).
			Int("attempts", entry.Attempts).
			Msg("retry_cron: alerta redirecionado da DLQ para a fila")
	}
}
