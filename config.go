package ogcard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServerConfig holds all configuration for an ogcard server.
type ServerConfig struct {
	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite font registry path (default "data/ogcard.db")
	EngineURL    string // Required: satori-compatible engine endpoint

	AdminPassword string // Required: password for font registry changes
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	CacheTTL time.Duration // Rendered image cache TTL (default 10min)

	RenderLimit  int           // Renders per IP per window (default 30)
	RenderWindow time.Duration // Limiter window (default 1min)

	MaxFontSize int64 // Largest accepted font payload in bytes (default 8MB)
	VerifyFonts bool  // Reject payloads that are not TrueType/OpenType
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/ogcard.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 10 * time.Minute
	}
	if c.RenderLimit == 0 {
		c.RenderLimit = 30
	}
	if c.RenderWindow == 0 {
		c.RenderWindow = time.Minute
	}
	if c.MaxFontSize == 0 {
		c.MaxFontSize = 8 << 20
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithEngine uses engine instead of dialing Config.EngineURL.
func WithEngine(engine Engine) Option {
	return func(a *App) {
		a.engine = engine
	}
}

// WithRegistry registers metrics with reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}
