package ogcard

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// cardRequest is the body accepted by POST /og/:template/.
type cardRequest struct {
	Props  TemplateProps    `json:"props"`
	Config GenerationConfig `json:"config"`
}

// cardError carries a failed Result to the HTTP error handler.
type cardError struct {
	result Result
}

func (e *cardError) Error() string { return e.result.Err.Error() }

func (e *cardError) Unwrap() error { return e.result.Err }

func (a *App) template(c echo.Context) (Template, error) {
	t, ok := a.Templates[c.Param("template")]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown template")
	}
	return t, nil
}

func (a *App) handleCard(c echo.Context) error {
	t, err := a.template(c)
	if err != nil {
		return err
	}
	cfg, props, err := configFromQuery(c)
	if err != nil {
		return err
	}
	return a.renderCard(c, t, props, cfg)
}

func (a *App) handleCardPost(c echo.Context) error {
	t, err := a.template(c)
	if err != nil {
		return err
	}
	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return a.renderCard(c, t, req.Props, req.Config)
}

func (a *App) handleCardPreview(c echo.Context) error {
	t, err := a.template(c)
	if err != nil {
		return err
	}
	cfg, props, err := configFromQuery(c)
	if err != nil {
		return err
	}
	if cfg.Fonts, err = a.defaultFonts(cfg.Fonts); err != nil {
		return err
	}
	card := a.Generator.Directive(
		Element{Tag: "div", Attrs: templ.Attributes{"class": "card"}},
		Binding{Template: t, Props: props, Config: cfg},
	)
	return Render(c, previewPage(t.Name(), card))
}

func (a *App) renderCard(c echo.Context, t Template, props TemplateProps, cfg GenerationConfig) error {
	var err error
	if cfg.Fonts, err = a.defaultFonts(cfg.Fonts); err != nil {
		return err
	}
	key, err := CacheKey(t.Name(), props, cfg)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "props are not serializable")
	}
	if svg, ok := a.Cache.Get(key); ok {
		return RenderSVG(c, svg)
	}

	r := a.Generator.Generate(c.Request().Context(), t, props, cfg)
	switch r.Status {
	case StatusReady:
		a.Cache.Put(key, r.SVG)
		return RenderSVG(c, r.SVG)
	case StatusEmpty:
		return c.NoContent(http.StatusNoContent)
	default:
		return &cardError{result: r}
	}
}

// defaultFonts falls back to the registered fonts when a request names none.
func (a *App) defaultFonts(fonts []FontDescriptor) ([]FontDescriptor, error) {
	if len(fonts) > 0 {
		return fonts, nil
	}
	return a.Store.ListFonts()
}

// configFromQuery splits query parameters into config overrides (width,
// height, debug) and template props (everything else).
func configFromQuery(c echo.Context) (GenerationConfig, TemplateProps, error) {
	var cfg GenerationConfig
	props := TemplateProps{}
	for k, vals := range c.QueryParams() {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch k {
		case "width", "height":
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return cfg, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+k)
			}
			if k == "width" {
				cfg.Width = n
			} else {
				cfg.Height = n
			}
		case "debug":
			cfg.Debug = v == "1" || strings.EqualFold(v, "true")
		default:
			props[k] = v
		}
	}
	return cfg, props, nil
}

func (a *App) handleFontList(c echo.Context) error {
	fonts, err := a.Store.ListFonts()
	if err != nil {
		return err
	}
	if fonts == nil {
		fonts = []FontDescriptor{}
	}
	return c.JSON(http.StatusOK, fonts)
}

func (a *App) handleFontSave(c echo.Context) error {
	var f FontDescriptor
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	f.Name = strings.TrimSpace(f.Name)
	f.URL = strings.TrimSpace(f.URL)
	if f.Name == "" || f.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and url are required")
	}
	if err := CheckRemoteFontURL(f.URL); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "url must be http or https")
	}
	if err := a.Store.SaveFont(f); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusCreated)
}

func (a *App) handleFontDelete(c echo.Context) error {
	if err := a.Store.DeleteFont(c.Param("name")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown font")
		}
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleHealth(c echo.Context) error {
	if p, ok := a.engine.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "engine unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleMetrics() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var ce *cardError
	if errors.As(err, &ce) {
		code := http.StatusBadGateway
		if errors.Is(ce.result.Err, ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		body := map[string]string{
			"error": ce.result.Err.Error(),
			"kind":  KindName(ce.result.Err),
		}
		var pe *Error
		if errors.As(ce.result.Err, &pe) {
			body["step"] = pe.Step.String()
		}
		_ = c.JSON(code, body)
		return
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
