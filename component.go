package ogcard

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Image returns a component that generates the card when rendered and
// displays it inside a <div>. A failed generation renders an empty <div>.
func (g *Generator) Image(t Template, props TemplateProps, cfg GenerationConfig) templ.Component {
	return g.Directive(Element{Tag: "div"}, Binding{Template: t, Props: props, Config: cfg})
}

// Binding bundles the three generation inputs for Directive.
type Binding struct {
	Template Template
	Props    TemplateProps
	Config   GenerationConfig
}

// Element is the host element a Binding is attached to.
type Element struct {
	Tag   string
	Attrs templ.Attributer
}

// Directive returns a component that renders el with the generated card
// injected as its content.
func (g *Generator) Directive(el Element, b Binding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tag := el.Tag
		if tag == "" {
			tag = "div"
		}
		if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
			return err
		}
		if el.Attrs != nil {
			if err := templ.RenderAttributes(ctx, w, el.Attrs); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}

		r := g.Generate(ctx, b.Template, b.Props, b.Config)
		if r.OK() {
			if _, err := io.WriteString(w, r.SVG); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, "</%s>", tag)
		return err
	})
}
