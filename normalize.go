package ogcard

import (
	"encoding/xml"
	"strings"
)

// Normalize removes the width and height attributes from the root element of
// svg so the image scales to its container. Only the root start tag is
// edited: the first removed attribute takes its leading whitespace with it,
// the second leaves its separator behind, and everything else is returned
// byte for byte. Input without a parsable root element is returned unchanged.
func Normalize(svg string) string {
	start, end, ok := rootStartTag(svg)
	if !ok {
		return svg
	}
	attrs, ok := scanAttrs(svg[start:end])
	if !ok {
		return svg
	}

	var cut []attrSpan
	seen := map[string]bool{}
	for _, a := range attrs {
		if (a.name == "width" || a.name == "height") && !seen[a.name] {
			seen[a.name] = true
			cut = append(cut, a)
		}
	}
	if len(cut) == 0 {
		return svg
	}

	tag := svg[start:end]
	var b strings.Builder
	b.Grow(len(tag))
	prev := 0
	for i, a := range cut {
		from := a.name0
		if i == 0 {
			from = a.space
		}
		b.WriteString(tag[prev:from])
		prev = a.end
	}
	b.WriteString(tag[prev:])
	return svg[:start] + b.String() + svg[end:]
}

// attrSpan locates one attribute inside a start tag. space is where the
// whitespace before the name begins, name0 where the name begins and end
// just past the value.
type attrSpan struct {
	name              string
	space, name0, end int
}

// scanAttrs lists the attributes of a start tag such as `<svg a="1" b>`.
// Quoted values are skipped whole, so attribute-like text inside them is
// never reported. It fails on an unterminated quote.
func scanAttrs(tag string) ([]attrSpan, bool) {
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
	i := 1
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' && tag[i] != '/' {
		i++
	}

	var attrs []attrSpan
	for i < len(tag) {
		space := i
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] == '>' {
			break
		}
		if tag[i] == '/' {
			i++
			continue
		}

		name0 := i
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '=' && tag[i] != '>' && tag[i] != '/' {
			i++
		}
		a := attrSpan{name: tag[name0:i], space: space, name0: name0, end: i}

		j := i
		for j < len(tag) && isSpace(tag[j]) {
			j++
		}
		if j < len(tag) && tag[j] == '=' {
			j++
			for j < len(tag) && isSpace(tag[j]) {
				j++
			}
			if j < len(tag) && (tag[j] == '"' || tag[j] == '\'') {
				q := strings.IndexByte(tag[j+1:], tag[j])
				if q < 0 {
					return nil, false
				}
				j += q + 2
			} else {
				for j < len(tag) && !isSpace(tag[j]) && tag[j] != '>' {
					j++
				}
			}
			i = j
			a.end = j
		}
		attrs = append(attrs, a)
	}
	return attrs, true
}

// rootStartTag returns the byte range of the first start element in doc.
func rootStartTag(doc string) (start, end int, ok bool) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.Strict = false
	for {
		offset := dec.InputOffset()
		tok, err := dec.RawToken()
		if err != nil {
			return 0, 0, false
		}
		if _, isStart := tok.(xml.StartElement); isStart {
			return int(offset), int(dec.InputOffset()), true
		}
	}
}
