package quotes

import (
	"regexp"
	"strings"
)

const maxQuoteLength = 500

// minQuoteWords is the floor on substance: anything shorter is a fragment
// or a heading, not a quotable sentence.
const minQuoteWords = 8

// isComplete reports whether the sentence ends like a real sentence: a
// terminal mark, optionally followed by one closing quote, not a double
// period, and not an abbreviation-like suffix such as "p.".
func isComplete(s string) bool {
	if s == "" {
		return false
	}
	t := trimOneClosingQuote(s)
	if t == "" {
		return false
	}
	last := t[len(t)-1]
	if last != '.' && last != '!' && last != '?' {
		return false
	}
	if strings.HasSuffix(t, "..") {
		return false
	}
	if last == '.' && isAbbreviation(precedingToken([]rune(t), len([]rune(t))-1)) {
		return false
	}
	return true
}

func trimOneClosingQuote(s string) string {
	for _, q := range []string{`"`, "'", "”", "’"} {
		if strings.HasSuffix(s, q) {
			return strings.TrimSuffix(s, q)
		}
	}
	return s
}

// sizeOK enforces the length bounds: at least minLength characters, at most
// maxQuoteLength, and at least minQuoteWords words.
func sizeOK(s string, minLength int) bool {
	if len(s) < minLength || len(s) > maxQuoteLength {
		return false
	}
	return len(strings.Fields(s)) >= minQuoteWords
}

// citationPatterns enumerate the shapes of scholarly apparatus that must
// never be quoted: headers, citation markers, inline year citations,
// attribution lines, and trailing page references.
var citationPatterns = []*regexp.Regexp{
	// Section/chapter headers.
	regexp.MustCompile(`(?i)^(chapter|section|part|volume|book|appendix|lecture)\s+[0-9ivxlc]`),
	regexp.MustCompile(`^\d+(\.\d+)*\s`),
	// Citation markers.
	regexp.MustCompile(`(?i)^(see|see also|cf\.)\s`),
	regexp.MustCompile(`(?i)\((see|cf\.)[^)]*\)`),
	regexp.MustCompile(`(?i)\b(ibid\.|op\.\s?cit\.|loc\.\s?cit\.|et\s+seq\.)`),
	regexp.MustCompile(`(?i)\b(e\.g\.|i\.e\.|viz\.)`),
	// Inline year-in-parens citations, e.g. "(Smith, 1921)".
	regexp.MustCompile(`\([^)]*\b(1[0-9]{3}|20[0-9]{2})[a-z]?\b[^)]*\)`),
	// Dash-prefixed attribution lines.
	regexp.MustCompile(`^\s*[-–—]\s*[A-Z]`),
	// Trailing incomplete page references.
	regexp.MustCompile(`(?i)\b(p|pp|pg)\.?\s*\d+\s*\.?$`),
}

func isCitationFragment(s string) bool {
	for _, re := range citationPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// artifactMarkers are markup residues that sometimes survive text
// extraction.
var artifactMarkers = []string{
	"<p>", "</p>", "<div", "</div", "<span", "<br", "<i>", "</i>",
	"&nbsp;", "&amp;", "&lt;", "&gt;", "&quot;",
	"{\\", "\\par", "[illegible]",
}

const maxStructuralChars = 5

func hasArtifacts(s string) bool {
	for _, m := range artifactMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	n := 0
	for _, r := range s {
		switch r {
		case '<', '>', '{', '}', '|', '\\':
			n++
			if n > maxStructuralChars {
				return true
			}
		}
	}
	return false
}
