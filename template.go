package ogcard

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/a-h/templ"
	"github.com/mitchellh/mapstructure"
)

// TemplateProps are passed to a Template verbatim.
type TemplateProps map[string]any

// Template describes a UI fragment. Component builds the render tree for the
// given props; it must not have side effects.
type Template interface {
	Name() string
	Component(props TemplateProps) (templ.Component, error)
}

type templateFunc struct {
	name string
	fn   func(TemplateProps) (templ.Component, error)
}

func (t templateFunc) Name() string { return t.name }

func (t templateFunc) Component(props TemplateProps) (templ.Component, error) {
	return t.fn(props)
}

// NewTemplate adapts fn into a Template.
func NewTemplate(name string, fn func(TemplateProps) (templ.Component, error)) Template {
	return templateFunc{name: name, fn: fn}
}

// Typed builds a Template whose props are decoded into P before fn is called.
// Fields are matched by their `prop` tag, falling back to the field name.
func Typed[P any](name string, fn func(P) templ.Component) Template {
	return NewTemplate(name, func(props TemplateProps) (templ.Component, error) {
		var p P
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "prop",
			WeaklyTypedInput: true,
			Result:           &p,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(map[string]any(props)); err != nil {
			return nil, fmt.Errorf("%w: decode props: %v", ErrInvalidInput, err)
		}
		return fn(p), nil
	})
}

// RenderTemplate evaluates t with props and serializes the resulting tree to
// markup. Panics raised by the template are reported as ErrRendering.
func RenderTemplate(ctx context.Context, t Template, props TemplateProps) (markup string, err error) {
	if t == nil {
		return "", newError(ErrInvalidInput, "", errors.New("nil template"))
	}
	name := t.Name()

	defer func() {
		if r := recover(); r != nil {
			markup = ""
			err = newError(ErrRendering, name, fmt.Errorf("panic: %v", r))
		}
	}()

	cmp, err := t.Component(props)
	if err != nil {
		kind := ErrRendering
		if errors.Is(err, ErrInvalidInput) {
			kind = ErrInvalidInput
		}
		return "", newError(kind, name, err)
	}
	if cmp == nil {
		return "", newError(ErrRendering, name, errors.New("template returned no component"))
	}

	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return "", newError(ErrRendering, name, err)
	}
	return buf.String(), nil
}
