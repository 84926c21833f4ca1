package router

import (
	"time"

	"australprints/internal/config"
	"australprints/internal/handler"
	"australprints/internal/infra"
	"australprints/internal/middleware"
	"australprints/internal/repository"
	"australprints/internal/service"
	"australprints/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.Storage, dispatcher *worker.Dispatcher, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	etiquetaRepo := repository.NewEtiquetaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cotizacionSvc := service.NewCotizacionService(configuracionRepo, cfg)
	insumoSvc := service.NewInsumoService(insumoRepo, movimientoStockRepo)
	productoSvc := service.NewProductoService(productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo, pedidoRepo)
	gastoSvc := service.NewGastoService(gastoRepo, storage, rdb)
	etiquetaSvc := service.NewEtiquetaService(etiquetaRepo, pedidoRepo, gastoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, insumoRepo, insumoSvc, cotizacionSvc, dispatcher, rdb)
	estadisticasSvc := service.NewEstadisticasService(pedidoRepo, gastoRepo, productoRepo, cotizacionSvc, rdb)
	exportacionSvc := service.NewExportacionService(pedidoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cotizacionH := handler.NewCotizacionHandler(cotizacionSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	etiquetasH := handler.NewEtiquetasHandler(etiquetaSvc)
	estadisticasH := handler.NewEstadisticasHandler(estadisticasSvc, exportacionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, administrador — declared per-endpoint
		ambos := middleware.RequireRole("operador", "administrador")
		admin := middleware.RequireRole("administrador")

		cot := v1.Group("/cotizacion", ambos)
		{
			cot.POST("", cotizacionH.Cotizar)
			cot.GET("/configuracion", cotizacionH.ObtenerConfiguracion)
			cot.PUT("/configuracion", cotizacionH.GuardarConfiguracion)
		}

		pedidos := v1.Group("/pedidos", ambos)
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.PUT("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.PATCH("/:id/avanzar", pedidosH.Avanzar)
			pedidos.PATCH("/:id/retroceder", pedidosH.Retroceder)
			pedidos.PATCH("/:id/cancelar", pedidosH.Cancelar)
		}
		// Hard delete — administrador only
		v1.DELETE("/pedidos/:id", admin, pedidosH.Eliminar)

		v1.GET("/insumos", ambos, insumosH.Listar)
		v1.GET("/insumos/:id", ambos, insumosH.Obtener)
		v1.GET("/insumos/alertas", ambos, insumosH.ObtenerAlertas)
		v1.GET("/insumos/movimientos", ambos, insumosH.ListarMovimientos)
		v1.PATCH("/insumos/:id/stock", ambos, insumosH.AjustarStock)
		insumos := v1.Group("/insumos", admin)
		{
			insumos.POST("", insumosH.Crear)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Desactivar)
		}

		v1.GET("/productos", ambos, productosH.Listar)
		v1.GET("/productos/:id", ambos, productosH.Obtener)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		clientes := v1.Group("/clientes", ambos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/nombres-libres", clientesH.ListarNombresLibres)
			clientes.POST("/rescatar", clientesH.Rescatar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		gastos := v1.Group("/gastos", ambos)
		{
			gastos.POST("", gastosH.Crear)
			gastos.GET("", gastosH.Listar)
			gastos.GET("/:id", gastosH.Obtener)
			gastos.PUT("/:id", gastosH.Actualizar)
			gastos.POST("/:id/comprobante", gastosH.SubirComprobante)
		}
		v1.DELETE("/gastos/:id", admin, gastosH.Eliminar)

		etiquetas := v1.Group("/etiquetas", ambos)
		{
			etiquetas.POST("", etiquetasH.Crear)
			etiquetas.GET("", etiquetasH.Listar)
			etiquetas.PATCH("/renombrar", etiquetasH.Renombrar)
			etiquetas.DELETE("/:nombre", etiquetasH.Eliminar)
		}

		stats := v1.Group("/estadisticas", ambos)
		{
			stats.GET("/resumen", estadisticasH.Resumen)
			stats.GET("/simular/:producto_id", estadisticasH.SimularCosto)
			stats.GET("/exportar", estadisticasH.ExportarCSV)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
