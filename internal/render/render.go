// Package render turns a decoded JSON value into a block-style YAML document.
//
// The renderer is a minimal emitter: scalars are written verbatim (only the
// empty string is quoted, as ''), empty collections use the flow tokens [] and
// {}, and everything else is written in block style with two spaces of
// indentation per level. Mapping keys keep their input order.
//
// Rendering recurses once per nesting level of the input. The parser bounds
// nesting depth before a value ever reaches the renderer.
package render

import (
	"strings"

	"github.com/mcncl/yamlify/internal/models"
)

const (
	emptySequence = "[]"
	emptyMapping  = "{}"
	emptyString   = "''"
	documentStart = "---"
	indentStep    = 2
)

// Renderer renders values to YAML. It holds no mutable state and may be
// shared between goroutines.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer with default options
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewRendererWithOptions creates a Renderer with custom options
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render renders v with default options.
func Render(v models.Value) string {
	return NewRenderer().Render(v)
}

// Render renders v as a complete YAML document ending in exactly one newline.
func (r *Renderer) Render(v models.Value) string {
	var sb strings.Builder
	r.write(&sb, v, 0)

	body := strings.TrimSpace(sb.String())
	if !r.opts.DocumentStart {
		return body + "\n"
	}
	if body == "" {
		return documentStart + "\n"
	}
	return documentStart + "\n" + body + "\n"
}

// write appends the YAML for v at the given indentation depth to sb. The
// first line is never indented; the caller has already positioned it. No
// trailing newline is written, so the caller decides how the next line
// starts.
func (r *Renderer) write(sb *strings.Builder, v models.Value, depth int) {
	switch v.Kind() {
	case models.KindSequence:
		if v.Len() == 0 {
			sb.WriteString(emptySequence)
			return
		}
		r.writeSequence(sb, v, depth)
	case models.KindMapping:
		if v.Len() == 0 {
			sb.WriteString(emptyMapping)
			return
		}
		r.writeMapping(sb, v, depth)
	default:
		sb.WriteString(formatScalar(v))
	}
}

func (r *Renderer) writeSequence(sb *strings.Builder, v models.Value, depth int) {
	indent := strings.Repeat(" ", depth)

	for i, item := range v.Items() {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}

		if !inline(item) {
			sb.WriteString("- ")
			r.write(sb, item, depth+indentStep)
			continue
		}

		// Scalars stay verbatim apart from trailing line breaks, which
		// would otherwise leave blank lines between items.
		text := strings.TrimRight(inlineText(item), "\r\n")
		if text == "" {
			// null element
			sb.WriteString("-")
			continue
		}
		sb.WriteString("- ")
		sb.WriteString(text)
	}
}

func (r *Renderer) writeMapping(sb *strings.Builder, v models.Value, depth int) {
	indent := strings.Repeat(" ", depth)
	first := true

	v.Each(func(key string, value models.Value) bool {
		if !first {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		first = false

		sb.WriteString(r.opts.KeyCase.Apply(key))
		sb.WriteString(":")

		if !inline(value) {
			sb.WriteString("\n")
			sb.WriteString(indent)
			sb.WriteString(strings.Repeat(" ", indentStep))
			r.write(sb, value, depth+indentStep)
			return true
		}

		if text := strings.TrimSpace(inlineText(value)); text != "" {
			sb.WriteString(" ")
			sb.WriteString(text)
		}
		return true
	})
}

// inline reports whether v fits on the same line as its key or dash.
func inline(v models.Value) bool {
	return v.IsScalar() || v.IsEmptyCollection()
}

// inlineText renders a value for which inline reports true.
func inlineText(v models.Value) string {
	switch v.Kind() {
	case models.KindSequence:
		return emptySequence
	case models.KindMapping:
		return emptyMapping
	default:
		return formatScalar(v)
	}
}

func formatScalar(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case models.KindNumber:
		return v.Text()
	case models.KindString:
		if v.Text() == "" {
			return emptyString
		}
		return v.Text()
	default:
		return ""
	}
}
