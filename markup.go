package ogcard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node is the element tree consumed by the engine. Text nodes have an empty
// Type and carry Text.
type Node struct {
	Type     string
	Attrs    map[string]string
	Style    map[string]string
	Children []*Node
	Text     string
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Type == "" }

// MarshalJSON encodes n in the {type, props: {style, children, ...attrs}}
// shape used by satori.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsText() {
		return json.Marshal(n.Text)
	}
	props := make(map[string]any, len(n.Attrs)+2)
	for k, v := range n.Attrs {
		props[k] = v
	}
	if len(n.Style) > 0 {
		props["style"] = n.Style
	}
	if len(n.Children) > 0 {
		props["children"] = n.Children
	}
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Props map[string]any `json:"props"`
	}{n.Type, props})
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// The tokenizer lowercases attribute names; SVG needs some of them back.
var svgAttrCase = map[string]string{
	"viewbox":             "viewBox",
	"preserveaspectratio": "preserveAspectRatio",
	"gradientunits":       "gradientUnits",
	"gradienttransform":   "gradientTransform",
	"patternunits":        "patternUnits",
	"clippathunits":       "clipPathUnits",
	"stddeviation":        "stdDeviation",
}

// The tokenizer lowercases tag names too; SVG element names are camel-cased.
var svgElementCase = map[string]string{
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

func elementName(tag string) string {
	if name, ok := svgElementCase[tag]; ok {
		return name
	}
	return tag
}

// Adapt parses rendered markup into the engine's node tree. Top-level nodes
// are wrapped in a flex column root that fills the canvas.
func Adapt(markup string) (*Node, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, newError(ErrMalformedMarkup, "", errors.New("empty markup"))
	}

	root := &Node{
		Type: "div",
		Style: map[string]string{
			"display":       "flex",
			"flexDirection": "column",
			"width":         "100%",
			"height":        "100%",
		},
	}
	stack := []*Node{root}
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, newError(ErrMalformedMarkup, "", err)
			}
			break
		}
		tok := z.Token()
		top := stack[len(stack)-1]

		switch tt {
		case html.TextToken:
			if strings.TrimSpace(tok.Data) == "" {
				continue
			}
			top.Children = append(top.Children, &Node{Text: tok.Data})
		case html.StartTagToken, html.SelfClosingTagToken:
			n := elementNode(tok)
			top.Children = append(top.Children, n)
			if tt == html.StartTagToken && !voidElements[n.Type] {
				stack = append(stack, n)
			}
		case html.EndTagToken:
			if voidElements[tok.Data] {
				continue
			}
			name := elementName(tok.Data)
			if len(stack) == 1 || top.Type != name {
				return nil, newError(ErrMalformedMarkup, name, fmt.Errorf("unexpected </%s>", name))
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].Type
		return nil, newError(ErrMalformedMarkup, open, fmt.Errorf("unclosed <%s>", open))
	}
	if len(root.Children) == 0 {
		return nil, newError(ErrMalformedMarkup, "", errors.New("markup has no content"))
	}
	return root, nil
}

func elementNode(tok html.Token) *Node {
	n := &Node{Type: elementName(tok.Data)}
	for _, a := range tok.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		if key == "style" {
			n.Style = parseStyle(a.Val)
			continue
		}
		if n.Attrs == nil {
			n.Attrs = make(map[string]string, len(tok.Attr))
		}
		if k, ok := svgAttrCase[key]; ok {
			key = k
		}
		n.Attrs[key] = a.Val
	}
	return n
}

// parseStyle turns "font-size: 12px; color: red" into camel-cased properties.
func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		out[camelCase(prop)] = val
	}
	return out
}

func camelCase(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	parts := strings.Split(strings.ToLower(prop), "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteString(strings.ToUpper(p[:1]) + p[1:])
			continue
		}
		b.WriteString(p)
	}
	return b.String()
}
