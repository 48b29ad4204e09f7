// Package handlers serves the local dashboard API over the league client.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bothellselect/select-client/api"
	"github.com/bothellselect/select-client/interfaces/http/echo/middleware"
	otelecho "github.com/bothellselect/select-client/otel/echo"
	"github.com/bothellselect/select-client/session"
	"github.com/bothellselect/select-client/storage"
	"github.com/bothellselect/select-client/utils/logger"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName string
	// SecureCookies marks the Session cookie Secure; set outside development.
	SecureCookies bool
	// Now is the clock used to check bearer token expiry.
	Now func() time.Time
}

type Server struct {
	echo     *echo.Echo
	registry *Registry
	api      *api.Client
	cfg      Config
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewServer(cfg Config, apiClient *api.Client, store storage.Store, opts ...session.Option) *Server {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	s := &Server{
		echo:     e,
		registry: NewRegistry(store, apiClient, opts...),
		api:      apiClient,
		cfg:      cfg,
	}

	e.Use(echomw.Recover())
	e.Use(otelecho.Middleware(cfg.ServiceName, otelecho.SkipHealth))
	e.Use(middleware.SetTokenInContext())
	e.Use(middleware.SetSessionInContext())
	e.Use(middleware.SetClaimsFromJWTToken(cfg.Now))

	e.GET("/healthz", s.health(store))

	g := e.Group("/api")
	g.POST("/session/login", s.login)
	g.POST("/addresses/parse", s.parseAddress)
	g.POST("/registrations", s.register)

	authed := g.Group("", s.withSession, s.requireAuth)
	authed.GET("/session", s.getSession)
	authed.POST("/session/refresh", s.refreshSession)
	authed.GET("/notifications", s.listNotifications)
	authed.POST("/notifications/:id/dismiss", s.dismissNotification)
	authed.GET("/players", s.listPlayers)
	authed.GET("/players/recent", s.recentPlayers)
	authed.POST("/players/:id/view", s.viewPlayer)

	g.POST("/session/logout", s.logout, s.withSession)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Registry() *Registry {
	return s.registry
}

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	logger.LogInfo("dashboard listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RunSessionChecks reconciles every browser session each interval until ctx is
// done.
func (s *Server) RunSessionChecks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.registry.CheckAll(ctx)
		}
	}
}

func (s *Server) health(store storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if p, ok := store.(Pinger); ok {
			if err := p.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "store unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
