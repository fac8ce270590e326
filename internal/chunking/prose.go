// Package chunking splits book-length prose into retrieval-sized chunks.
// Chunks follow paragraph boundaries where possible so that quotes
// extracted later are not cut mid-thought.
package chunking

import "strings"

const (
	// targetWords is the preferred chunk size; maxWords is the hard cap
	// an oversized paragraph gets split at.
	targetWords = 180
	maxWords    = 250
)

// SplitProse chunks text at paragraph boundaries, packing consecutive
// paragraphs up to the target word count. Paragraphs longer than the hard
// cap are split at word boundaries. Returns chunks in document order;
// blank input yields nil.
func SplitProse(text string) []string {
	paragraphs := strings.Split(normalizeNewlines(text), "\n\n")

	var chunks []string
	var buffer []string
	bufferWords := 0

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(buffer, "\n\n"))
		buffer = nil
		bufferWords = 0
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		words := len(strings.Fields(para))

		if words > maxWords {
			flush()
			chunks = append(chunks, splitLongParagraph(para)...)
			continue
		}

		if bufferWords > 0 && bufferWords+words > targetWords {
			flush()
		}
		buffer = append(buffer, para)
		bufferWords += words
	}
	flush()

	return chunks
}

// splitLongParagraph splits a single oversized paragraph into word-capped
// pieces, preferring sentence boundaries within the cap.
func splitLongParagraph(para string) []string {
	words := strings.Fields(para)

	var pieces []string
	start := 0
	for start < len(words) {
		end := start + targetWords
		if end >= len(words) {
			pieces = append(pieces, strings.Join(words[start:], " "))
			break
		}

		// Walk forward to the nearest sentence end within the hard cap.
		cut := end
		for i := end; i < len(words) && i < start+maxWords; i++ {
			if endsSentence(words[i]) {
				cut = i + 1
				break
			}
		}
		pieces = append(pieces, strings.Join(words[start:cut], " "))
		start = cut
	}
	return pieces
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
