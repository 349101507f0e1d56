// Package content mutates a deck's text in place according to a 1-10
// intensity level. Rules stack: every rule whose threshold the level meets
// is applied, so higher levels accumulate transformations. The original
// paragraph text always survives as a contiguous substring of the result,
// except for the level 9+ word-repetition rule, which expands one word in
// place.
package content

import (
	"math/rand"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/palette"
)

// Rule thresholds. A rule applies at its threshold level and above, and
// all applicable rules stack in this order.
const (
	verboseThreshold  = 1
	jargonThreshold   = 4
	triviaThreshold   = 5
	sarcasmThreshold  = 7
	emphasisThreshold = 9
)

// Apply rewrites every text-bearing paragraph in the deck. Paragraphs with
// no runs or no text are skipped silently. All random selections come from
// the supplied seeded source.
func Apply(d *deck.Deck, level int, rng *rand.Rand, logger *log.Logger) []deck.Warning {
	if logger == nil {
		logger = log.Default()
	}

	var warnings []deck.Warning
	for _, slide := range d.Slides() {
		mutated := 0
		for _, shape := range slide.Shapes() {
			for _, p := range shape.Paragraphs() {
				if mutateParagraph(p, level, rng) {
					mutated++
				}
			}
		}
		logger.Debug("content pass", "slide", slide.Index+1, "paragraphs", mutated)
	}
	return warnings
}

// mutateParagraph rewrites one paragraph. The composed text lands in the
// paragraph's first run; remaining runs are emptied so no text duplicates.
func mutateParagraph(p *etree.Element, level int, rng *rand.Rand) bool {
	runs := deck.Runs(p)
	if len(runs) == 0 {
		return false
	}
	original := norm.NFC.String(deck.ParagraphText(p))
	if strings.TrimSpace(original) == "" {
		return false
	}

	final := compose(original, level, rng)

	deck.SetRunText(runs[0], final)
	for _, r := range runs[1:] {
		deck.SetRunText(r, "")
	}
	return true
}

// compose builds the mutated paragraph text. Additive rules accumulate in
// a lead-in ahead of the original text and a trailer behind it, keeping
// the original contiguous. Random draws happen in fixed threshold order so
// output is reproducible for a given seed.
func compose(original string, level int, rng *rand.Rand) string {
	// Verbose filler opener (every level).
	fillers := palette.VerbosePhrases(level)
	leadIn := fillers[rng.Intn(len(fillers))]

	// Corporate jargon, parenthesized at the seam between the filler and
	// the original text so both stay intact.
	if level >= jargonThreshold {
		jargon := palette.JargonPhrases(level)
		leadIn += " (" + jargon[rng.Intn(len(jargon))] + ")"
	}

	// Trailing trivia sentence.
	trailer := ""
	if level >= triviaThreshold {
		trivia := palette.TriviaSnippets(level)
		trailer = trivia[rng.Intn(len(trivia))]
	}

	// Sarcastic framing wraps everything composed so far.
	if level >= sarcasmThreshold {
		prefixes := palette.SarcasmPrefixes(level)
		leadIn = prefixes[rng.Intn(len(prefixes))] + leadIn
	}

	// Key-word repetition mutates the original text itself.
	body := original
	if level >= emphasisThreshold {
		body = repeatKeyWord(body, rng)
	}

	return leadIn + " " + body + trailer
}

// repeatKeyWord picks one of the last few words and repeats it two to
// four times contiguously in place of that word. Only the chosen word
// expands; every other word survives unchanged.
func repeatKeyWord(text string, rng *rand.Rand) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	window := len(words)
	if window > 3 {
		window = 3
	}
	idx := len(words) - 1 - rng.Intn(window)
	times := 2 + rng.Intn(3)

	out := make([]string, 0, len(words)+times-1)
	out = append(out, words[:idx]...)
	for i := 0; i < times; i++ {
		out = append(out, words[idx])
	}
	out = append(out, words[idx+1:]...)
	return strings.Join(out, " ")
}
