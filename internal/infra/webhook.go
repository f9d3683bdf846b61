package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AlertaWebhook publishes critical-deviation events to an external endpoint
// (Slack-compatible, monitoring gateway, etc). Calls go through a circuit
// breaker so a dead endpoint cannot pile up worker retries.
type AlertaWebhook struct {
	url        string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewAlertaWebhook(url string) *AlertaWebhook {
	return &AlertaWebhook{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Habilitado reports whether a webhook URL was configured.
func (w *AlertaWebhook) Habilitado() bool { return w.url != "" }

// Estado expõe o estado do circuit breaker para o endpoint de health.
func (w *AlertaWebhook) Estado() string { return w.cb.State().String() }

// Publicar envia o payload como JSON. Retorna ErrCircuitOpen sem tocar a
// rede quando o circuito está aberto.
func (w *AlertaWebhook) Publicar(ctx context.Context, payload any) error {
	if !w.Habilitado() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	return w.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("webhook: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("webhook: endpoint unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("webhook: endpoint returned %d", resp.StatusCode)
		}
		return nil
	})
}
