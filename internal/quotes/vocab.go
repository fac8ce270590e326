package quotes

// philosophicalVocab boosts sentences that use the corpus's working
// vocabulary. Matched case-insensitively as substrings.
var philosophicalVocab = []string{
	"consciousness", "mind", "knowledge", "truth", "reality",
	"existence", "being", "essence", "substance", "causation",
	"reason", "logic", "inference", "proposition", "argument",
	"metaphysic", "epistem", "ontolog", "ethic", "moral",
	"virtue", "justice", "freedom", "will", "desire",
	"perception", "experience", "thought", "language", "meaning",
	"belief", "doubt", "certainty", "identity", "soul",
	"nature", "wisdom", "concept", "judgment", "intuition",
	"a priori", "a posteriori", "necessity", "possibility", "universal",
}
