package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minBodyWrap keeps glamour from wrapping list bullets onto their own lines.
const minBodyWrap = 24

// cardBodyRenderer renders card bodies as markdown for the drag card. Results
// are cached per body because the card redraws on every pointer motion.
type cardBodyRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// render returns body as styled terminal text wrapped at width. A renderer
// failure falls back to the raw body.
func (r *cardBodyRenderer) render(body string, width int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	width = max(width, minBodyWrap)
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return body
		}
		r.renderer = renderer
		r.width = width
		r.cache = make(map[string]string)
	}
	if out, ok := r.cache[body]; ok {
		return out
	}

	rendered, err := r.renderer.Render(body)
	if err != nil {
		return body
	}
	out := strings.Trim(rendered, "\n")
	r.cache[body] = out
	return out
}
