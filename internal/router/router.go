package router // package router wires HTTP routes, middleware and the error funnel

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"videoclub/internal/config"
	"videoclub/internal/handler"
	"videoclub/internal/middleware"
)

// Handlers groups the handler sets the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Movies  *handler.MovieHandler
	Rentals *handler.RentalHandler
}

// New builds the Echo instance: cross-cutting middleware (security headers,
// CORS, recovery, rate limiting, request logging in development), the error
// funnel, and every route under /api/v1.  rdb may be nil, in which case the
// cache and rate limiter quietly disable themselves.
func New(cfg config.Config, log zerolog.Logger, h Handlers, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorFunnel(cfg.Development(), log)

	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: cfg.FrontendURL != "*",
	}))
	if cfg.Development() {
		e.Use(echomw.Logger())
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/", handler.Welcome)
	e.GET("/health", handler.Health(cfg.Env))

	api := e.Group("/api/v1")
	registerAuth(api, h.Auth, cfg.JWTSecret)
	registerMovies(api, h.Movies, cfg.JWTSecret, rdb)
	registerRentals(api, h.Rentals, cfg.JWTSecret)

	return e
}

// registerAuth mounts the auth endpoints.  Register and login are public;
// logout and me require a valid access token.
func registerAuth(api *echo.Group, a *handler.AuthHandler, jwtSecret string) {
	g := api.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout, middleware.Authenticate(jwtSecret))
	g.GET("/me", a.Me, middleware.Authenticate(jwtSecret))
}

// registerMovies mounts the catalog.  Browsing is public and cached;
// mutations require the admin role.
func registerMovies(api *echo.Group, m *handler.MovieHandler, jwtSecret string, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	api.GET("/movies", m.List, cache)
	api.GET("/movies/:id", m.Get, cache)

	admin := api.Group("/movies",
		middleware.Authenticate(jwtSecret),
		middleware.RequireRole(config.RoleAdmin),
	)
	admin.POST("", m.Create)
	admin.PUT("/:id", m.Update)
	admin.DELETE("/:id", m.Delete)
}

// registerRentals mounts the rental workflow.  Everything requires a valid
// token; the cross-user listing additionally requires admin.
func registerRentals(api *echo.Group, r *handler.RentalHandler, jwtSecret string) {
	g := api.Group("/rentals", middleware.Authenticate(jwtSecret))
	g.POST("", r.Create)
	g.GET("/active", r.Active)
	g.GET("/history", r.History)
	g.POST("/:id/return", r.Return)
	g.GET("", r.All, middleware.RequireRole(config.RoleAdmin))
}
