package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postogestor/internal/config"
	"postogestor/internal/infra"
	"postogestor/internal/repository"
	"postogestor/internal/router"
	"postogestor/internal/service"
	"postogestor/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Turnos padrão (manhã / tarde / noite) na primeira subida.
	turnoRepo := repository.NewTurnoRepository(db)
	if err := turnoRepo.SeedPadrao(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default shifts")
	}

	// Worker pool para tarefas assíncronas (alertas de desvio, relatórios em
	// PDF). Os handlers são montados aqui, na raiz de composição, com acesso
	// a toda a infraestrutura.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	webhook := infra.NewAlertaWebhook(cfg.AlertaWebhookURL)
	dispatcher := worker.NewDispatcher(rdb)

	fechamentoSvc := service.NewFechamentoService(
		repository.NewFechamentoRepository(db),
		repository.NewBombaRepository(db),
		repository.NewFormaPagamentoRepository(db),
		turnoRepo,
		repository.NewCombustivelRepository(db),
		dispatcher,
	)

	handlers := worker.Handlers{
		Notificacao: worker.NewNotificacaoWorker(mailer, webhook, cfg.AlertaEmail),
		Relatorio:   worker.NewRelatorioWorker(fechamentoSvc, mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{RDB: rdb, Webhook: webhook})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("postogestor backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
