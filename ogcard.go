// Package ogcard generates Open Graph preview cards as scalable SVG.
//
// A card is produced by a pipeline: fonts are fetched, the rendering config
// is resolved against the 1200x628 defaults, a templ template is rendered to
// markup, the markup is parsed into the node tree expected by a
// satori-compatible layout engine, the engine draws the SVG, and the fixed
// dimensions are stripped from the root element so the image scales to its
// container.
//
// Generator runs the pipeline. App exposes it over HTTP with Echo, backed by
// a SQLite font registry.
package ogcard

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the ogcard HTTP service. It wires together the font store, image
// cache, generator, and user-provided templates.
type App struct {
	Config    ServerConfig
	Echo      *echo.Echo
	Store     *FontStore
	Cache     *ImageCache
	Generator *Generator
	Templates map[string]Template

	limiter      *RenderLimiter
	loginLimiter *RenderLimiter
	engine       Engine
	registry     *prometheus.Registry
	customRoutes []func(*App)
}

// New creates an App serving templates.
func New(cfg ServerConfig, templates []Template, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Templates: make(map[string]Template, len(templates)),
	}
	for _, t := range templates {
		a.Templates[t.Name()] = t
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store, connects the engine and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("ogcard: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("ogcard: SessionSecret is required")
	}
	if a.engine == nil {
		if a.Config.EngineURL == "" {
			return fmt.Errorf("ogcard: EngineURL is required")
		}
		engine, err := NewHTTPEngine(a.Config.EngineURL)
		if err != nil {
			return fmt.Errorf("ogcard: init engine: %w", err)
		}
		a.engine = engine
	}

	store, err := NewFontStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("ogcard: init store: %w", err)
	}
	a.Store = store

	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}

	a.Echo.Logger.SetLevel(log.INFO)
	loaderOpts := []FontLoaderOption{WithMaxFontSize(a.Config.MaxFontSize)}
	if a.Config.VerifyFonts {
		loaderOpts = append(loaderOpts, WithFontVerification())
	}
	a.Generator = NewGenerator(a.engine,
		WithFontLoader(NewFontLoader(loaderOpts...)),
		WithLogger(a.Echo.Logger),
		WithMetrics(NewMetrics(a.registry)),
	)
	a.Cache = NewImageCache(a.Config.CacheTTL)
	a.limiter = NewRenderLimiter(a.Config.RenderLimit, a.Config.RenderWindow)
	a.loginLimiter = NewRenderLimiter(5, 15*time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the listener fails.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/healthz", a.handleHealth)
	e.GET("/metrics", a.handleMetrics())

	og := e.Group("/og", a.limitRenders)
	og.GET("/:template/", a.handleCard)
	og.POST("/:template/", a.handleCardPost)
	og.GET("/:template/card/", a.handleCardPreview)

	e.GET("/admin/", a.handleAdminStatus)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	e.GET("/fonts/", a.handleFontList)
	e.POST("/fonts/", a.handleFontSave, requireAdmin)
	e.DELETE("/fonts/:name/", a.handleFontDelete, requireAdmin)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
