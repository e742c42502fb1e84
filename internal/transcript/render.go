/*
Package transcript turns raw assistant text into a classified, renderable
transcript. Every line maps to exactly one of {heading, bullet, paragraph,
blank}: lines exactly matching a known heading are emphasised, lines starting
with the bullet marker become list items, everything else non-blank is a
plain paragraph, and blank lines become vertical spacing.
*/
package transcript

import (
	"html/template"
	"strings"
)

// bulletMarker is the designated bullet prefix the prompt formatting rules
// instruct the model to use.
const bulletMarker = "- "

// LineKind classifies one transcript line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeading
	LineBullet
	LineParagraph
)

// Line is one classified line of assistant text. For bullets, Text carries
// the content after the marker.
type Line struct {
	Kind LineKind
	Text string
}

// Renderer classifies assistant text against a declared heading set. The set
// is passed in explicitly (from the prompt registry) rather than duplicated
// here as literals.
type Renderer struct {
	headings map[string]struct{}
}

func NewRenderer(headings []string) *Renderer {
	set := make(map[string]struct{}, len(headings))
	for _, h := range headings {
		set[h] = struct{}{}
	}
	return &Renderer{headings: set}
}

// Classify splits the text into lines and assigns each one a kind. Leading
// and trailing whitespace on a line never changes its classification.
func (r *Renderer) Classify(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "":
			lines = append(lines, Line{Kind: LineBlank})
		case r.isHeading(trimmed):
			lines = append(lines, Line{Kind: LineHeading, Text: trimmed})
		case strings.HasPrefix(trimmed, bulletMarker):
			lines = append(lines, Line{Kind: LineBullet, Text: strings.TrimSpace(trimmed[len(bulletMarker):])})
		default:
			lines = append(lines, Line{Kind: LineParagraph, Text: trimmed})
		}
	}
	return lines
}

func (r *Renderer) isHeading(line string) bool {
	_, ok := r.headings[line]
	return ok
}

// RenderHTML produces an escaped HTML fragment for one assistant message,
// suitable for the transcript preview page. All model text is escaped; only
// the structural tags produced here are markup.
func (r *Renderer) RenderHTML(text string) template.HTML {
	var b strings.Builder
	inList := false
	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}
	for _, line := range r.Classify(text) {
		switch line.Kind {
		case LineHeading:
			closeList()
			b.WriteString("<p class=\"heading\">")
			b.WriteString(template.HTMLEscapeString(line.Text))
			b.WriteString("</p>\n")
		case LineBullet:
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>")
			b.WriteString(template.HTMLEscapeString(line.Text))
			b.WriteString("</li>\n")
		case LineParagraph:
			closeList()
			b.WriteString("<p>")
			b.WriteString(template.HTMLEscapeString(line.Text))
			b.WriteString("</p>\n")
		case LineBlank:
			closeList()
			b.WriteString("<div class=\"spacer\"></div>\n")
		}
	}
	closeList()
	return template.HTML(b.String())
}
