// Package authors resolves free-form author references to the canonical
// names used in the corpus. Matching is case- and diacritic-insensitive
// and tolerant of the name variants found in scholarly text.
package authors

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var table = mustLoadAliasTable()

func mustLoadAliasTable() *aliasTable {
	t, err := loadAliasTable()
	if err != nil {
		panic(fmt.Sprintf("authors: embedded alias table invalid: %v", err))
	}
	return t
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases, strips diacritics and collapses whitespace, producing
// the comparison form used for all alias matching.
func fold(s string) string {
	stripped, _, err := transform.String(foldTransform, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Normalize maps an author reference to its canonical corpus name. Unknown
// names fall back to the capitalized surname: split on whitespace and
// hyphens, drop tokens of two characters or fewer (initials, particles,
// suffixes like "jr"), and take the last survivor, so "A. N. Whitehead"
// yields "Whitehead" and "merleau-ponty" yields "Ponty". Normalize is
// idempotent: canonical names map to themselves.
func Normalize(name string) string {
	folded := fold(name)
	if folded == "" {
		return ""
	}
	if canonical, ok := table.byAlias[folded]; ok {
		return canonical
	}
	surname := lastLongToken(folded)
	if surname == "" {
		return capitalizeToken(folded)
	}
	if canonical, ok := table.byAlias[surname]; ok {
		return canonical
	}
	return capitalizeToken(surname)
}

// lastLongToken splits on whitespace and hyphens and returns the last
// token longer than two characters, or "" when none survives.
func lastLongToken(folded string) string {
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	for i := len(tokens) - 1; i >= 0; i-- {
		if len(tokens[i]) > 2 {
			return tokens[i]
		}
	}
	return ""
}

func capitalizeToken(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CorpusChecker verifies that an author actually has works in the corpus.
type CorpusChecker interface {
	HasAuthor(ctx context.Context, author string) (bool, error)
}

// Resolver detects author references in free text, keeping only authors
// the corpus can actually serve.
type Resolver struct {
	store CorpusChecker
}

func NewResolver(store CorpusChecker) *Resolver {
	return &Resolver{store: store}
}

// DetectFromText scans text for a known author reference and returns the
// canonical name of the first candidate both mentioned in the text and
// present in the corpus. It returns "" with a nil error when no author is
// detected; store failures are propagated.
func (r *Resolver) DetectFromText(ctx context.Context, text string) (string, error) {
	folded := fold(text)
	if folded == "" {
		return "", nil
	}
	for _, entry := range table.detection {
		if !mentionsAny(folded, entry.aliases) {
			continue
		}
		ok, err := r.store.HasAuthor(ctx, entry.canonical)
		if err != nil {
			return "", fmt.Errorf("verify author %q: %w", entry.canonical, err)
		}
		if ok {
			return entry.canonical, nil
		}
	}
	return "", nil
}

// mentionsAny reports whether any alias occurs in the folded text on word
// boundaries, so "kantian" does not match "kant".
func mentionsAny(folded string, aliases []string) bool {
	for _, alias := range aliases {
		idx := 0
		for {
			i := strings.Index(folded[idx:], alias)
			if i < 0 {
				break
			}
			start := idx + i
			end := start + len(alias)
			if boundaryBefore(folded, start) && boundaryAfter(folded, end) {
				return true
			}
			idx = start + 1
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := []rune(s[:i])
	return !unicode.IsLetter(r[len(r)-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := []rune(s[i:])
	return !unicode.IsLetter(r[0])
}
