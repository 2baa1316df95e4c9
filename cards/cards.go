// Package cards provides ready-made Open Graph card templates.
//
// The markup uses only flexbox layout and inline styles so it can be drawn by
// satori-compatible engines.
package cards

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/ogcard"
)

// ArticleProps are the props of the Article template.
type ArticleProps struct {
	Title       string   `prop:"title"`
	Description string   `prop:"description"`
	Site        string   `prop:"site"`
	Tags        []string `prop:"tags"`
	Accent      string   `prop:"accent"`     // CSS color (default "#e11d48")
	Background  string   `prop:"background"` // CSS color (default "#fafaf9")
}

func (p *ArticleProps) setDefaults() {
	if p.Accent == "" {
		p.Accent = "#e11d48"
	}
	if p.Background == "" {
		p.Background = "#fafaf9"
	}
}

// SimpleProps are the props of the Simple template.
type SimpleProps struct {
	Text       string `prop:"text"`
	Color      string `prop:"color"`      // default "#ffffff"
	Background string `prop:"background"` // default "#171717"
}

// Article renders a blog-post card: site name, title, description and tags.
var Article = ogcard.Typed("article", ArticleCard)

// Simple renders a single centered line of text.
var Simple = ogcard.Typed("simple", SimpleCard)

// All returns every built-in template.
func All() []ogcard.Template {
	return []ogcard.Template{Article, Simple}
}

// ArticleCard is the component behind Article.
func ArticleCard(p ArticleProps) templ.Component {
	p.setDefaults()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div style="display: flex; flex-direction: column; justify-content: space-between; width: 100%%; height: 100%%; padding: 64px; background-color: %s; border-left: 24px solid %s">`,
			templ.EscapeString(p.Background), templ.EscapeString(p.Accent))

		b.WriteString(`<div style="display: flex; flex-direction: column">`)
		if p.Site != "" {
			fmt.Fprintf(&b, `<div style="display: flex; font-size: 28px; color: %s; text-transform: uppercase; letter-spacing: 4px">%s</div>`,
				templ.EscapeString(p.Accent), templ.EscapeString(p.Site))
		}
		fmt.Fprintf(&b, `<div style="display: flex; font-size: 64px; font-weight: 700; color: #1c1917; margin-top: 24px">%s</div>`,
			templ.EscapeString(p.Title))
		if p.Description != "" {
			fmt.Fprintf(&b, `<div style="display: flex; flex-wrap: wrap; font-size: 32px; color: #57534e; margin-top: 24px">%s</div>`,
				FormatInline(p.Description))
		}
		b.WriteString(`</div>`)

		if tags := nonEmpty(p.Tags); len(tags) > 0 {
			b.WriteString(`<div style="display: flex">`)
			for _, t := range tags {
				fmt.Fprintf(&b, `<div style="display: flex; font-size: 22px; border: 2px solid #1c1917; padding: 4px 12px; margin-right: 12px">%s</div>`,
					templ.EscapeString(t))
			}
			b.WriteString(`</div>`)
		}

		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SimpleCard is the component behind Simple.
func SimpleCard(p SimpleProps) templ.Component {
	if p.Color == "" {
		p.Color = "#ffffff"
	}
	if p.Background == "" {
		p.Background = "#171717"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div style="display: flex; align-items: center; justify-content: center; width: 100%%; height: 100%%; font-size: 72px; color: %s; background-color: %s">%s</div>`,
			templ.EscapeString(p.Color), templ.EscapeString(p.Background), FormatInline(p.Text))
		return err
	})
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
