package ogcard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
)

// Logger is the subset of the echo/gommon logger the generator writes to.
type Logger interface {
	Debugj(j log.JSON)
	Errorj(j log.JSON)
}

// Generator runs the image pipeline. It holds no per-call state and is safe
// for concurrent use.
type Generator struct {
	engine  Engine
	fonts   *FontLoader
	logger  Logger
	metrics *Metrics
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFontLoader replaces the default FontLoader.
func WithFontLoader(l *FontLoader) GeneratorOption {
	return func(g *Generator) {
		g.fonts = l
	}
}

// WithLogger sets the logger failures and timings are written to.
func WithLogger(l Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) GeneratorOption {
	return func(g *Generator) {
		g.metrics = m
	}
}

// NewGenerator creates a Generator that draws with engine.
func NewGenerator(engine Engine, opts ...GeneratorOption) *Generator {
	g := &Generator{
		engine: engine,
		fonts:  NewFontLoader(),
		logger: log.New("ogcard"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders t with props into a normalized SVG. It never returns an
// error or panics: failures are logged and reported as StatusFailed.
//
// ctx only carries values. In-flight font fetches and the engine call are
// never cancelled.
func (g *Generator) Generate(ctx context.Context, t Template, props TemplateProps, cfg GenerationConfig) Result {
	r := g.generate(context.WithoutCancel(ctx), t, props, cfg)
	g.metrics.observeResult(r)
	return r
}

// Start runs Generate in the background.
func (g *Generator) Start(ctx context.Context, t Template, props TemplateProps, cfg GenerationConfig) *Job {
	j := &Job{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.result = g.Generate(ctx, t, props, cfg)
	}()
	return j
}

func (g *Generator) generate(ctx context.Context, t Template, props TemplateProps, cfg GenerationConfig) (r Result) {
	name := ""
	if t != nil {
		name = t.Name()
	}
	step := StepConfig

	defer func() {
		if p := recover(); p != nil {
			r = g.fail(step, name, newError(ErrEngine, "", fmt.Errorf("panic: %v", p)))
		}
	}()

	if err := cfg.Validate(); err != nil {
		return g.fail(step, name, err)
	}

	step = StepFonts
	began := time.Now()
	fonts, err := g.fonts.Load(ctx, cfg.Fonts)
	if err != nil {
		return g.fail(step, name, err)
	}
	g.metrics.observeStep(step, time.Since(began))

	step = StepConfig
	resolved := Resolve(cfg, fonts)

	step = StepTemplate
	began = time.Now()
	markup, err := RenderTemplate(ctx, t, props)
	if err != nil {
		return g.fail(step, name, err)
	}
	g.metrics.observeStep(step, time.Since(began))

	step = StepMarkup
	root, err := Adapt(markup)
	if err != nil {
		return g.fail(step, name, err)
	}

	step = StepEngine
	began = time.Now()
	svg, err := g.engine.Render(ctx, root, resolved)
	if err != nil {
		return g.fail(step, name, newError(ErrEngine, "", err))
	}
	g.metrics.observeStep(step, time.Since(began))

	step = StepNormalize
	svg = Normalize(svg)
	if svg == "" {
		g.logger.Debugj(log.JSON{"template": name, "status": StatusEmpty.String()})
		return Result{Status: StatusEmpty}
	}

	g.logger.Debugj(log.JSON{
		"template": name,
		"status":   StatusReady.String(),
		"width":    resolved.Width,
		"height":   resolved.Height,
		"fonts":    len(resolved.Fonts),
	})
	return Result{Status: StatusReady, SVG: svg}
}

func (g *Generator) fail(step Step, template string, err error) Result {
	var pe *Error
	if !errors.As(err, &pe) {
		pe = newError(ErrEngine, "", err)
	}
	pe.Step = step
	if pe.Input == "" {
		pe.Input = template
	}

	g.logger.Errorj(log.JSON{
		"step":     step.String(),
		"kind":     KindName(pe),
		"template": template,
		"input":    pe.Input,
		"error":    pe.Error(),
	})
	return Result{Status: StatusFailed, Err: pe}
}
