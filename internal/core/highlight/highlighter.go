// Package highlight wraps entity occurrences in styling spans without ever
// altering the visible text: stripping the inserted markup from the output
// reproduces the input byte for byte.
package highlight

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/duotext/duotext/internal/core/model"
)

// Policy controls how many occurrences of each entity get wrapped.
type Policy string

const (
	// PolicyAll wraps every non-overlapping occurrence of each entity.
	PolicyAll Policy = "all"
	// PolicyFirst wraps only the first occurrence of each entity.
	PolicyFirst Policy = "first"
)

type span struct {
	start, end int
	color      string
}

// Apply rewrites text with a styling span around each entity occurrence.
// Candidates are matched longest-first against a covered-range set, so a
// longer entity ("New York City") always wins over a shorter one it contains
// ("New York") and no occurrence is wrapped twice. Matching is
// case-insensitive and word-boundary anchored; entities missing from colors
// are left unstyled.
func Apply(text string, entities []model.Entity, colors map[string]string, policy Policy) string {
	if text == "" {
		return ""
	}

	names := model.Names(entities)
	sort.SliceStable(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	var spans []span
	for _, name := range names {
		if name == "" {
			continue
		}
		c, ok := colors[name]
		if !ok {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !wholeWord(text, name, loc[0], loc[1]) {
				continue
			}
			if covered(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, span{start: loc[0], end: loc[1], color: c})
			if policy == PolicyFirst {
				break
			}
		}
	}

	if len(spans) == 0 {
		return text
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		b.WriteString(text[pos:sp.start])
		b.WriteString(`<span class="entity" style="background-color: ` + sp.color + `">`)
		b.WriteString(html.EscapeString(text[sp.start:sp.end]))
		b.WriteString(`</span>`)
		pos = sp.end
	}
	b.WriteString(text[pos:])
	return b.String()
}

// wholeWord reports whether the match at text[start:end] sits on word
// boundaries. Boundaries are checked manually with the unicode tables rather
// than regexp \b, which is ASCII-only and never matches next to letters like
// É or ü. A side of the name that starts or ends on a non-word rune (as in
// "$5") needs no boundary on that side.
func wholeWord(text, name string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(name)
	last, _ := utf8.DecodeLastRuneInString(name)
	if isWordRune(first) && start > 0 {
		if prev, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(prev) {
			return false
		}
	}
	if isWordRune(last) && end < len(text) {
		if next, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func covered(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && end > sp.start {
			return true
		}
	}
	return false
}

var markup = regexp.MustCompile(`(?s)<span class="entity" style="background-color: [^"]*">(.*?)</span>`)

// Strip removes the spans inserted by Apply, recovering the unstyled text.
// Only the span content is unescaped; text outside the spans was never
// touched by Apply, so entities already present in the input stay literal.
func Strip(annotated string) string {
	return markup.ReplaceAllStringFunc(annotated, func(m string) string {
		return html.UnescapeString(markup.FindStringSubmatch(m)[1])
	})
}
