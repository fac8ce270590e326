package authors

import (
	"context"
	"errors"
	"testing"
)

// mockCorpus implements CorpusChecker for testing
type mockCorpus struct {
	authors map[string]bool
	fail    bool
}

func (m *mockCorpus) HasAuthor(ctx context.Context, author string) (bool, error) {
	if m.fail {
		return false, errors.New("mock corpus error")
	}
	return m.authors[author], nil
}

// =============================================================================
// Test: Normalize
// =============================================================================

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// Known aliases in their many spellings.
		{"john-michael kuczynski", "Kuczynski"},
		{"Kuczynski", "Kuczynski"},
		{"J.-M. Kuczynski", "Kuczynski"},
		{"DR. KUCZYNSKI", "Kuczynski"},
		{"immanuel kant", "Kant"},
		{"David  Hume", "Hume"},
		// Diacritics fold away.
		{"René Descartes", "Descartes"},
		{"RENÉ DESCARTES", "Descartes"},
		// Unknown names fall back to the capitalized surname.
		{"A. N. Whitehead", "Whitehead"},
		{"gilbert ryle", "Ryle"},
		// Hyphens split like whitespace; short tokens are dropped.
		{"merleau-ponty", "Ponty"},
		{"whitehead jr", "Whitehead"},
		{"G. E. M. Anscombe", "Anscombe"},
		// Nothing longer than two characters survives.
		{"li", "Li"},
		// Surname token that is itself a known alias.
		{"Herr Professor Kant", "Kant"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"john-michael kuczynski", "René Descartes", "A. N. Whitehead", "gilbert ryle", "merleau-ponty", "whitehead jr"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// =============================================================================
// Test: DetectFromText
// =============================================================================

func TestResolver_DetectFromText(t *testing.T) {
	ctx := context.Background()

	t.Run("Given text naming a corpus author When detected Then canonical name returned", func(t *testing.T) {
		// Given
		resolver := NewResolver(&mockCorpus{authors: map[string]bool{"Hume": true}})

		// When
		author, err := resolver.DetectFromText(ctx, "What did Hume say about causation?")

		// Then
		if err != nil {
			t.Fatalf("DetectFromText failed: %v", err)
		}
		if author != "Hume" {
			t.Errorf("author = %q, want Hume", author)
		}
	})

	t.Run("Given a full-name reference When detected Then it resolves through the alias table", func(t *testing.T) {
		// Given
		resolver := NewResolver(&mockCorpus{authors: map[string]bool{"Kuczynski": true}})

		// When
		author, err := resolver.DetectFromText(ctx, "quotes from John-Michael Kuczynski on semantics")

		// Then
		if err != nil {
			t.Fatalf("DetectFromText failed: %v", err)
		}
		if author != "Kuczynski" {
			t.Errorf("author = %q, want Kuczynski", author)
		}
	})

	t.Run("Given a mentioned author absent from the corpus Then detection skips to a verified one", func(t *testing.T) {
		// Given: the text names two authors but only Kant has chunks.
		resolver := NewResolver(&mockCorpus{authors: map[string]bool{"Kant": true}})

		// When
		author, err := resolver.DetectFromText(ctx, "Compare Hume with Kant on necessity.")

		// Then
		if err != nil {
			t.Fatalf("DetectFromText failed: %v", err)
		}
		if author != "Kant" {
			t.Errorf("author = %q, want Kant", author)
		}
	})

	t.Run("Given no author in the text Then empty result and no error", func(t *testing.T) {
		// Given
		resolver := NewResolver(&mockCorpus{authors: map[string]bool{"Hume": true}})

		// When
		author, err := resolver.DetectFromText(ctx, "What is the nature of mathematical truth?")

		// Then
		if err != nil {
			t.Fatalf("DetectFromText failed: %v", err)
		}
		if author != "" {
			t.Errorf("expected no detection, got %q", author)
		}
	})

	t.Run("Given a name embedded in a longer word Then it does not match", func(t *testing.T) {
		// Given
		resolver := NewResolver(&mockCorpus{authors: map[string]bool{"Kant": true}})

		// When
		author, err := resolver.DetectFromText(ctx, "The kantian tradition, considered generically, offers no help here.")

		// Then
		if err != nil {
			t.Fatalf("DetectFromText failed: %v", err)
		}
		if author != "" {
			t.Errorf("substring match leaked: %q", author)
		}
	})

	t.Run("Given corpus check fails Then the error propagates", func(t *testing.T) {
		// Given
		resolver := NewResolver(&mockCorpus{fail: true})

		// When
		_, err := resolver.DetectFromText(ctx, "Hume on causation")

		// Then
		if err == nil {
			t.Fatal("expected error from failing corpus check")
		}
	})
}

// =============================================================================
// Test: fold
// =============================================================================

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"René Descartes", "rene descartes"},
		{"  JOHN   LOCKE  ", "john locke"},
		{"Gödel", "godel"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := fold(tc.in); got != tc.want {
			t.Errorf("fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
