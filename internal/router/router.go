package router

import (
	"time"

	"crkitchen/internal/config"
	"crkitchen/internal/cotizacion"
	"crkitchen/internal/handler"
	"crkitchen/internal/infra"
	"crkitchen/internal/middleware"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"
	"crkitchen/internal/service"
	"crkitchen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, iaCB *infra.CircuitBreaker, metrics *infra.Metrics) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if metrics == nil {
		metrics = infra.NewMetrics()
	}
	if iaCB == nil {
		iaCB = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	notificador := infra.NewNotificador(rdb, cfg.EventsChannel)
	contador := infra.NewContadorDocumentos(metrics)
	dispatcher := worker.NewDispatcher(rdb).WithMetrics(metrics)
	redactor := infra.NewRedactorClient(cfg.AIAPIURL, cfg.AIModel)

	// ── Repositories ─────────────────────────────────────────────────────────
	docRepo := repository.NewDocumentoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(docRepo, notificador, cfg)
	cotizacionSvc := service.NewCotizacionService(docRepo, notificador, dispatcher, contador, cotizacion.Opciones{})
	catalogoSvc := service.NewCatalogoService(docRepo, notificador, contador)
	recursoSvc := service.NewRecursoService(docRepo, notificador, contador)
	redaccionSvc := service.NewRedaccionService(cotizacionSvc, docRepo, redactor, iaCB, cfg.AIAPIKey)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc, redaccionSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	recursosH := handler.NewRecursosHandler(recursoSvc)
	eventosH := handler.NewEventosHandler(notificador, 20*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, iaCB))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	todos := []string{model.RolAdministrador, model.RolDisenador, model.RolVendedor}
	editores := []string{model.RolAdministrador, model.RolDisenador}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/eventos", middleware.RequireRole(todos...), eventosH.Stream)

		cot := v1.Group("/cotizaciones", middleware.RequireRole(todos...))
		{
			cot.GET("", cotizacionesH.Listar)
			cot.POST("", cotizacionesH.Crear)
			cot.GET("/estadisticas", cotizacionesH.Estadisticas)
			cot.GET("/opciones", cotizacionesH.Opciones)
			cot.GET("/:id", cotizacionesH.Obtener)
			cot.PUT("/:id", cotizacionesH.Reemplazar)
			cot.DELETE("/:id", middleware.RequireRole(model.RolAdministrador), cotizacionesH.Eliminar)
			cot.PATCH("/:id/estado", cotizacionesH.CambiarEstado)
			cot.POST("/:id/duplicar", cotizacionesH.Duplicar)

			cot.GET("/:id/totales", cotizacionesH.Totales)
			cot.GET("/:id/matriz", cotizacionesH.Matriz)

			cot.POST("/:id/prototipos", cotizacionesH.AgregarPrototipo)
			cot.PATCH("/:id/prototipos/:pid", cotizacionesH.ActualizarPrototipo)
			cot.DELETE("/:id/prototipos/:pid", cotizacionesH.EliminarPrototipo)
			cot.POST("/:id/prototipos/:pid/duplicar", cotizacionesH.DuplicarPrototipo)
			cot.POST("/:id/prototipos/:pid/partidas", cotizacionesH.AgregarPartida)
			cot.POST("/:id/prototipos/:pid/catalogo", cotizacionesH.AgregarDesdeCatalogo)
			cot.POST("/:id/prototipos/:pid/reordenar", cotizacionesH.Reordenar)
			cot.PUT("/:id/prototipos/:pid/precio-lote", cotizacionesH.PrecioLote)

			cot.PATCH("/:id/partidas/:itemId", cotizacionesH.ActualizarPartida)
			cot.DELETE("/:id/partidas/:itemId", cotizacionesH.EliminarPartida)

			cot.POST("/:id/guardar", cotizacionesH.Guardar)
			cot.POST("/:id/versiones/:vid/revertir", cotizacionesH.Revertir)
			cot.DELETE("/:id/versiones/:vid", cotizacionesH.EliminarVersion)

			cot.POST("/:id/notas", cotizacionesH.AgregarNota)
			cot.PUT("/:id/terminos/pagos", cotizacionesH.NumeroPagos)
			cot.POST("/:id/plantillas", cotizacionesH.CrearPlantilla)
			cot.POST("/:id/plantilla/:tid", cotizacionesH.AplicarPlantilla)

			cot.GET("/:id/pdf", cotizacionesH.DescargarPDF)
			cot.POST("/:id/pdf", cotizacionesH.SolicitarPDF)
			cot.POST("/:id/redaccion", cotizacionesH.Redactar)
		}

		// Catalog: everyone reads, admin and design write
		v1.GET("/catalogo", middleware.RequireRole(todos...), catalogoH.Buscar)
		catalogo := v1.Group("/catalogo", middleware.RequireRole(editores...))
		{
			catalogo.POST("", catalogoH.Guardar)
			catalogo.DELETE("/:codigo", catalogoH.Eliminar)
		}

		// Auxiliary collections: everyone reads, only admin writes
		v1.GET("/recursos/:recurso", middleware.RequireRole(todos...), recursosH.Listar)
		v1.GET("/recursos/:recurso/:id", middleware.RequireRole(todos...), recursosH.Obtener)
		recursos := v1.Group("/recursos/:recurso", middleware.RequireRole(model.RolAdministrador))
		{
			recursos.POST("", recursosH.Guardar)
			recursos.POST("/lote", recursosH.GuardarLote)
			recursos.DELETE("/:id", recursosH.Eliminar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole(model.RolAdministrador))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
		}
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
