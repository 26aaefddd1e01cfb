package router

import (
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/config"
	"github.com/Neith21/AutoRent-Leon/internal/handler"
	"github.com/Neith21/AutoRent-Leon/internal/middleware"
	"github.com/Neith21/AutoRent-Leon/internal/repository"
	"github.com/Neith21/AutoRent-Leon/internal/service"
	"github.com/Neith21/AutoRent-Leon/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	alquilerRepo := repository.NewAlquilerRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	geografiaRepo := repository.NewGeografiaRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	vehiculoSvc := service.NewVehiculoService(vehiculoRepo, catalogoRepo, sucursalRepo)
	sucursalSvc := service.NewSucursalService(sucursalRepo, geografiaRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, geografiaRepo)
	pagoSvc := service.NewPagoService(pagoRepo)
	alquilerSvc := service.NewAlquilerService(alquilerRepo, pagoRepo, vehiculoRepo, clienteRepo, facturaRepo, auditoriaRepo, dispatcher)
	facturaSvc := service.NewFacturaService(facturaRepo, auditoriaRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	vehiculosH := handler.NewVehiculosHandler(vehiculoSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	alquileresH := handler.NewAlquileresHandler(alquilerSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	operadores := middleware.RequireRole("empleado", "gerente", "administrador")
	gerencia := middleware.RequireRole("gerente", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Alquileres — the day-to-day surface for every role
		alq := v1.Group("/alquileres", operadores)
		{
			alq.POST("", alquileresH.Crear)
			alq.POST("/con-pago-inicial", alquileresH.CrearConPagoInicial)
			alq.POST("/calcular-precio", alquileresH.CalcularPrecio)
			alq.GET("", alquileresH.Listar)
			alq.GET("/:id", alquileresH.Obtener)
			alq.PUT("/:id", alquileresH.Actualizar)
			alq.POST("/:id/finalizar", alquileresH.Finalizar)
			alq.POST("/:id/pagos", alquileresH.AgregarPago)
			alq.GET("/:id/pagos", alquileresH.ListarPagos)
		}
		// Cancellation releases the vehicle — gerente and up
		v1.DELETE("/alquileres/:id", gerencia, alquileresH.Desactivar)

		v1.GET("/pagos", operadores, pagosH.Listar)

		// Facturas — voiding is a gerencia decision
		v1.GET("/facturas", operadores, facturasH.Listar)
		v1.GET("/facturas/:id", operadores, facturasH.Obtener)
		v1.GET("/facturas/:id/pdf", operadores, facturasH.DescargarPDF)
		v1.PUT("/facturas/:id", gerencia, facturasH.Actualizar)

		// Clientes — empleados register and update walk-ins
		cli := v1.Group("/clientes", operadores)
		{
			cli.POST("", clientesH.Crear)
			cli.GET("", clientesH.Listar)
			cli.GET("/:id", clientesH.Obtener)
			cli.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", gerencia, clientesH.Desactivar)

		// Vehiculos — fleet reads for operators, writes for administrador
		v1.GET("/vehiculos", operadores, vehiculosH.Listar)
		v1.GET("/vehiculos/:id", operadores, vehiculosH.Obtener)
		veh := v1.Group("/vehiculos", admin)
		{
			veh.POST("", vehiculosH.Crear)
			veh.PUT("/:id", vehiculosH.Actualizar)
			veh.DELETE("/:id", vehiculosH.Desactivar)
		}

		// Sucursales
		v1.GET("/sucursales", operadores, sucursalesH.Listar)
		v1.GET("/sucursales/:id", operadores, sucursalesH.Obtener)
		suc := v1.Group("/sucursales", admin)
		{
			suc.POST("", sucursalesH.Crear)
			suc.PUT("/:id", sucursalesH.Actualizar)
			suc.DELETE("/:id", sucursalesH.Desactivar)
		}

		// Catálogo de flota — reads for all roles, writes for administrador
		v1.GET("/marcas", operadores, catalogoH.ListarMarcas)
		v1.GET("/modelos", operadores, catalogoH.ListarModelos)
		v1.GET("/categorias", operadores, catalogoH.ListarCategorias)
		marcas := v1.Group("/marcas", admin)
		{
			marcas.POST("", catalogoH.CrearMarca)
			marcas.PUT("/:id", catalogoH.ActualizarMarca)
			marcas.DELETE("/:id", catalogoH.DesactivarMarca)
		}
		modelos := v1.Group("/modelos", admin)
		{
			modelos.POST("", catalogoH.CrearModelo)
			modelos.PUT("/:id", catalogoH.ActualizarModelo)
			modelos.DELETE("/:id", catalogoH.DesactivarModelo)
		}
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", catalogoH.CrearCategoria)
			categorias.PUT("/:id", catalogoH.ActualizarCategoria)
			categorias.DELETE("/:id", catalogoH.DesactivarCategoria)
		}

		// Geografía — read-only reference data
		v1.GET("/departamentos", operadores, catalogoH.ListarDepartamentos)
		v1.GET("/municipios", operadores, catalogoH.ListarMunicipios)
		v1.GET("/distritos", operadores, catalogoH.ListarDistritos)

		// Usuarios — administrador only
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
