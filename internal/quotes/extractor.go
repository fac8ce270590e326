package quotes

import (
	"sort"
	"strings"
	"unicode"
)

const (
	defaultMinLength = 40
	defaultMaxQuotes = 5

	// Scoring weights. Fixed so extraction is deterministic.
	keywordWeight      = 10
	vocabWeight        = 3
	shortPenalty       = -5
	idealLengthBonus   = 10
	numericPenalty     = -5
	idealLengthMin     = 100
	idealLengthMax     = 300
	maxNumericTokens   = 2
	minKeywordLength   = 4
)

// Passage is a retrieved chunk viewed as quote-mining input.
type Passage struct {
	Work       string
	ChunkIndex int
	Content    string
}

// Quote is a verbatim, citation-clean sentence extracted from a passage.
// Text is always a literal substring of the passage's corrected content;
// it is never paraphrased or synthesized.
type Quote struct {
	Text       string  `json:"text"`
	SourceWork string  `json:"source_work"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// Extract mines passages for complete, substantive, citation-clean
// sentences and ranks them against the query. It is pure and deterministic:
// the same inputs always produce the same quotes in the same order. Finding
// nothing is a valid outcome.
func Extract(passages []Passage, query string, minLength, maxQuotes int) []Quote {
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	if maxQuotes <= 0 {
		maxQuotes = defaultMaxQuotes
	}

	keywords := queryKeywords(query)
	seen := make(map[string]struct{})
	var out []Quote

	for _, p := range passages {
		corrected := correct(p.Content)
		for _, sentence := range splitSentences(corrected) {
			if !isComplete(sentence) {
				continue
			}
			if !sizeOK(sentence, minLength) {
				continue
			}
			if isCitationFragment(sentence) {
				continue
			}
			if hasArtifacts(sentence) {
				continue
			}
			if _, dup := seen[sentence]; dup {
				continue
			}
			seen[sentence] = struct{}{}
			out = append(out, Quote{
				Text:       sentence,
				SourceWork: p.Work,
				ChunkIndex: p.ChunkIndex,
				Score:      scoreSentence(sentence, keywords),
			})
		}
	}

	// Stable sort keeps insertion order (passage order, then sentence
	// order) for equal scores, so ranking is deterministic.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > maxQuotes {
		out = out[:maxQuotes]
	}
	return out
}

func scoreSentence(sentence string, keywords []string) float64 {
	lower := strings.ToLower(sentence)
	score := 0.0

	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score += keywordWeight
		}
	}
	for _, term := range philosophicalVocab {
		if strings.Contains(lower, term) {
			score += vocabWeight
		}
	}

	n := len(sentence)
	if n < idealLengthMin {
		score += shortPenalty
	}
	if n >= idealLengthMin && n <= idealLengthMax {
		score += idealLengthBonus
	}
	if numericTokens(sentence) > maxNumericTokens {
		score += numericPenalty
	}
	return score
}

// queryKeywords extracts the substantive query terms: lowercased words
// longer than three characters with surrounding punctuation stripped.
func queryKeywords(query string) []string {
	var keywords []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) >= minKeywordLength {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// numericTokens counts whitespace tokens containing a digit, a signal of
// citation residue (page spans, years, section numbers).
func numericTokens(s string) int {
	n := 0
	for _, field := range strings.Fields(s) {
		if strings.ContainsFunc(field, unicode.IsDigit) {
			n++
		}
	}
	return n
}
