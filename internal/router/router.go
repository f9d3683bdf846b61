package router

import (
	"time"

	"postogestor/internal/config"
	"postogestor/internal/handler"
	"postogestor/internal/middleware"
	"postogestor/internal/repository"
	"postogestor/internal/service"
	"postogestor/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	combustivelRepo := repository.NewCombustivelRepository(db)
	bombaRepo := repository.NewBombaRepository(db)
	frentistaRepo := repository.NewFrentistaRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	formaPagamentoRepo := repository.NewFormaPagamentoRepository(db)
	fechamentoRepo := repository.NewFechamentoRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cadastroSvc := service.NewCadastroService(combustivelRepo, bombaRepo, frentistaRepo, turnoRepo, formaPagamentoRepo)
	fechamentoSvc := service.NewFechamentoService(fechamentoRepo, bombaRepo, formaPagamentoRepo, turnoRepo, combustivelRepo, dispatcher)
	compraSvc := service.NewCompraService(compraRepo, combustivelRepo, despesaRepo, fechamentoSvc)
	despesaSvc := service.NewDespesaService(despesaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cadastrosH := handler.NewCadastrosHandler(cadastroSvc)
	fechamentosH := handler.NewFechamentosHandler(fechamentoSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	despesasH := handler.NewDespesasHandler(despesaSvc)
	precosH := handler.NewPrecosHandler(combustivelRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Painel público de preços — sem autenticação
	r.GET("/v1/precos", precosH.Listar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Papéis: frentista, operador, administrador — declarados por endpoint
		todos := middleware.RequireRole("frentista", "operador", "administrador")
		gestao := middleware.RequireRole("operador", "administrador")
		admin := middleware.RequireRole("administrador")

		fech := v1.Group("/fechamentos")
		{
			fech.POST("", gestao, fechamentosH.Salvar)
			fech.GET("", gestao, fechamentosH.Listar)
			fech.GET("/:id/resumo", gestao, fechamentosH.Resumo)
			fech.POST("/:id/fechar", gestao, fechamentosH.Fechar)
			fech.POST("/:id/cancelar", admin, fechamentosH.Cancelar)
			fech.POST("/:id/relatorio", gestao, fechamentosH.SolicitarRelatorio)
		}

		v1.POST("/compras", gestao, comprasH.Registrar)
		v1.GET("/compras", gestao, comprasH.Listar)
		v1.GET("/margens", gestao, comprasH.Margens)

		despesas := v1.Group("/despesas", gestao)
		{
			despesas.POST("", despesasH.Criar)
			despesas.GET("", despesasH.Listar)
			despesas.PUT("/:id", despesasH.Atualizar)
			despesas.DELETE("/:id", despesasH.Remover)
		}

		// Cadastros — leitura para todos os autenticados, escrita só admin
		v1.GET("/combustiveis", todos, cadastrosH.ListarCombustiveis)
		v1.GET("/combustiveis/:id/historico-precos", gestao, cadastrosH.HistoricoPrecos)
		comb := v1.Group("/combustiveis", admin)
		{
			comb.POST("", cadastrosH.CriarCombustivel)
			comb.PATCH("/:id/preco", cadastrosH.AtualizarPreco)
			comb.DELETE("/:id", cadastrosH.DesativarCombustivel)
		}

		v1.GET("/bombas", todos, cadastrosH.ListarBombas)
		bombas := v1.Group("/bombas", admin)
		{
			bombas.POST("", cadastrosH.CriarBomba)
			bombas.PUT("/:id", cadastrosH.AtualizarBomba)
			bombas.DELETE("/:id", cadastrosH.DesativarBomba)
		}

		v1.GET("/frentistas", todos, cadastrosH.ListarFrentistas)
		frentistas := v1.Group("/frentistas", admin)
		{
			frentistas.POST("", cadastrosH.CriarFrentista)
			frentistas.PUT("/:id", cadastrosH.AtualizarFrentista)
			frentistas.DELETE("/:id", cadastrosH.DesativarFrentista)
		}

		v1.GET("/turnos", todos, cadastrosH.ListarTurnos)
		turnos := v1.Group("/turnos", admin)
		{
			turnos.POST("", cadastrosH.CriarTurno)
			turnos.PUT("/:id", cadastrosH.AtualizarTurno)
			turnos.DELETE("/:id", cadastrosH.DesativarTurno)
		}

		v1.GET("/formas-pagamento", todos, cadastrosH.ListarFormasPagamento)
		formas := v1.Group("/formas-pagamento", admin)
		{
			formas.POST("", cadastrosH.CriarFormaPagamento)
			formas.PUT("/:id", cadastrosH.AtualizarFormaPagamento)
			formas.DELETE("/:id", cadastrosH.DesativarFormaPagamento)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
