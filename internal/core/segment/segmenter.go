// Package segment splits raw text into sentences using a Latin-punctuation
// heuristic with protection for known abbreviations.
package segment

import (
	"regexp"
	"strings"
)

// abbreviations whose internal periods must not end a sentence. Matches are
// case-sensitive and literal.
var abbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Rev.", "Gen.", "Sen.",
	"Sr.", "Jr.", "St.", "Mt.",
	"etc.", "i.e.", "e.g.", "vs.", "cf.", "approx.", "No.",
	"U.S.", "U.K.", "E.U.", "U.N.",
	"Inc.", "Ltd.", "Co.", "Corp.",
}

const protectedPeriod = "\x01"

// boundary is whitespace immediately following sentence-terminal punctuation.
var boundary = regexp.MustCompile(`([.!?])\s+`)

// Split returns the trimmed, non-empty sentences of text in order. Non-empty
// input always yields at least one sentence; input with no terminal
// punctuation comes back whole. The NUL and SOH control bytes are reserved as
// internal markers and are dropped from the input.
func Split(text string) []string {
	protected := strings.Map(func(r rune) rune {
		if r == 0x00 || r == 0x01 {
			return -1
		}
		return r
	}, text)
	for _, abbr := range abbreviations {
		protected = strings.ReplaceAll(protected, abbr, strings.ReplaceAll(abbr, ".", protectedPeriod))
	}

	marked := boundary.ReplaceAllString(protected, "$1\x00")

	var sentences []string
	for _, piece := range strings.Split(marked, "\x00") {
		piece = strings.TrimSpace(strings.ReplaceAll(piece, protectedPeriod, "."))
		if piece == "" {
			continue
		}
		sentences = append(sentences, piece)
	}
	return sentences
}
