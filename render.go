package ogcard

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const mimeSVG = "image/svg+xml"

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderSVG writes svg as a publicly cacheable image response.
func RenderSVG(c echo.Context, svg string) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, mimeSVG, []byte(svg))
}

// previewPage wraps a card component in a minimal HTML document.
func previewPage(title string, card templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="UTF-8"><title>`+
			templ.EscapeString(title)+
			`</title><style>body{margin:0;padding:2rem;background:#f5f5f4}.card{max-width:1200px}</style></head><body>`); err != nil {
			return err
		}
		if err := card.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
