package quotes

import (
	"strings"
	"unicode"
)

// abbreviations lists tokens that do not end a sentence when followed by a
// period. Kept as an explicit set so the exception list stays auditable.
var abbreviations = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {},
	"jr": {}, "sr": {}, "vs": {}, "etc": {},
	"i.e": {}, "e.g": {}, "cf": {}, "viz": {}, "ibid": {},
	"op": {}, "loc": {}, "p": {}, "pp": {}, "vol": {},
	"ch": {}, "sec": {}, "fig": {},
}

func isAbbreviation(token string) bool {
	_, ok := abbreviations[strings.ToLower(token)]
	return ok
}

// splitSentences segments text with an explicit character scan rather than
// a regex split. A terminal mark (. ! ?) ends a sentence only when:
//   - it is followed by whitespace (an immediately following closing quote
//     is absorbed into the sentence first),
//   - for periods, the preceding token is not a known abbreviation,
//   - the next non-whitespace character is not lowercase.
//
// Inner periods ("9.2", "..") never split because they are not followed by
// whitespace. The tail of the text is flushed as a final segment.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	flush := func(end int) {
		seg := strings.TrimSpace(string(runes[start:end]))
		if seg != "" {
			sentences = append(sentences, seg)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		end := i + 1
		if end < len(runes) && isClosingQuote(runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}
		if r == '.' && isAbbreviation(precedingToken(runes, i)) {
			continue
		}

		j := end
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && unicode.IsLower(runes[j]) {
			continue
		}

		flush(end)
		i = end - 1
	}

	flush(len(runes))
	return sentences
}

// precedingToken collects the letters (and inner periods, for forms like
// "i.e") immediately before position i.
func precedingToken(runes []rune, i int) string {
	end := i
	start := end
	for start > 0 {
		r := runes[start-1]
		if !unicode.IsLetter(r) && r != '.' {
			break
		}
		start--
	}
	return strings.Trim(string(runes[start:end]), ".")
}

func isClosingQuote(r rune) bool {
	switch r {
	case '"', '\'', '”', '’':
		return true
	}
	return false
}
