package quotes

import (
	"regexp"
	"strings"
)

// The correction pass repairs known OCR artifacts and restores apostrophes
// in common contractions before segmentation. Only these fixed, enumerated
// substitutions are applied; meaning-bearing words are never rewritten.
// Because correction runs on the whole passage first, every sentence the
// segmenter emits is a literal substring of the corrected passage.

// Doubled-v misreads of "w" and merged-letter errors, lowercase forms.
// Capitalized variants are generated alongside.
var ocrWordFixes = map[string]string{
	"vvith":  "with",
	"vvas":   "was",
	"vvere":  "were",
	"vvhich": "which",
	"vvhen":  "when",
	"vvhat":  "what",
	"vvho":   "who",
	"vvould": "would",
	"vvill":  "will",
	"vvord":  "word",
	"vvorld": "world",
	"tbe":    "the",
	"tbat":   "that",
	"tbis":   "this",
	"tben":   "then",
	"tbere":  "there",
	"witb":   "with",
	"wbich":  "which",
	"wben":   "when",
	"wbat":   "what",
}

// Missing-apostrophe contractions. Excludes forms that collide with real
// words (its, lets, wed, shed, ...).
var contractionFixes = map[string]string{
	"dont":      "don't",
	"cant":      "can't",
	"wont":      "won't",
	"isnt":      "isn't",
	"doesnt":    "doesn't",
	"didnt":     "didn't",
	"couldnt":   "couldn't",
	"wouldnt":   "wouldn't",
	"shouldnt":  "shouldn't",
	"wasnt":     "wasn't",
	"werent":    "weren't",
	"havent":    "haven't",
	"hasnt":     "hasn't",
	"hadnt":     "hadn't",
	"arent":     "aren't",
	"aint":      "ain't",
	"thats":     "that's",
	"theres":    "there's",
	"youre":     "you're",
	"theyre":    "they're",
}

type wordFix struct {
	re   *regexp.Regexp
	repl string
}

var wordFixes = compileWordFixes()

var (
	spaceRuns        = regexp.MustCompile(`[ \t]+`)
	spaceBeforePunct = regexp.MustCompile(` +([.,;:!?])`)
)

func compileWordFixes() []wordFix {
	var fixes []wordFix
	add := func(from, to string) {
		fixes = append(fixes, wordFix{regexp.MustCompile(`\b` + from + `\b`), to})
		fixes = append(fixes, wordFix{regexp.MustCompile(`\b` + capitalize(from) + `\b`), capitalize(to)})
	}
	for from, to := range ocrWordFixes {
		add(from, to)
	}
	for from, to := range contractionFixes {
		add(from, to)
	}
	return fixes
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// correct applies the enumerated orthographic fixes and normalizes
// punctuation and whitespace spacing.
func correct(text string) string {
	out := strings.ReplaceAll(text, "\n", " ")
	out = spaceRuns.ReplaceAllString(out, " ")
	for _, f := range wordFixes {
		out = f.re.ReplaceAllString(out, f.repl)
	}
	out = spaceBeforePunct.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
