package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/bookello/booking-console/docs"
	"github.com/bookello/booking-console/internal/api/handler"
	"github.com/bookello/booking-console/internal/api/middleware"
	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
	"github.com/bookello/booking-console/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when the file session store is in use.
func NewRouter(store ports.SessionStore, gateway ports.BackendGateway, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	auth := service.NewAuthenticator(gateway, store, log)
	guard := service.NewGuard(store)
	gate := service.NewGate(store, guard)

	authHandler := handler.NewAuthHandler(auth)
	sessionHandler := handler.NewSessionHandler(store, guard)
	profileHandler := handler.NewProfileHandler(auth, gateway, store)
	impersonationHandler := handler.NewImpersonationHandler(auth)
	areaHandler := handler.NewAreaHandler(store)
	healthHandler := handler.NewHealthHandler(store, rdb)

	// --- Anonymous views (redirect targets of the gates) ---
	e.GET("/", areaHandler.Home)
	e.GET("/login", areaHandler.LoginView("customer_login"))
	e.GET("/admin/login", areaHandler.LoginView("admin_login"))

	// --- Auth and session ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/session", sessionHandler.Current)

	// --- Profile ---
	e.PATCH("/profile", profileHandler.Update)
	e.POST("/profile/photo", profileHandler.UploadPhoto)

	// --- Impersonation (role checks live in the service, not a gate: stop
	// must work while the session carries the impersonated admin role) ---
	e.POST("/impersonation/:tenantID", impersonationHandler.Start)
	e.DELETE("/impersonation", impersonationHandler.Stop)

	// --- Gated view groups, one gate instance each ---
	customer := e.Group("/customer", middleware.Gate(gate, domain.AreaCustomer))
	customer.GET("", areaHandler.Index(domain.AreaCustomer))
	customer.GET("/*", areaHandler.Index(domain.AreaCustomer))

	admin := e.Group("/admin", middleware.Gate(gate, domain.AreaAdmin))
	admin.GET("", areaHandler.Index(domain.AreaAdmin))
	admin.GET("/*", areaHandler.Index(domain.AreaAdmin))

	superadmin := e.Group("/superadmin", middleware.Gate(gate, domain.AreaSuperAdmin))
	superadmin.GET("", areaHandler.Index(domain.AreaSuperAdmin))
	superadmin.GET("/*", areaHandler.Index(domain.AreaSuperAdmin))

	// --- Health probes, metrics, docs ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
