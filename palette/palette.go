// Package palette holds the fixed style and phrase tables that drive the
// degrade transformations. Everything here is immutable process-wide data:
// accessors return the tables directly and callers must not modify them.
// Concurrent reads are safe without synchronization.
package palette

// RGB is a 24-bit color as three 0-255 components.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a six-digit uppercase hex string, the form
// DrawingML's srgbClr val attribute expects.
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[c.R>>4], digits[c.R&0xF],
		digits[c.G>>4], digits[c.G&0xF],
		digits[c.B>>4], digits[c.B&0xF],
	})
}

// tackyFonts is the replacement font list. Five entries; the mutated deck's
// font diversity collapses to at most this many names.
var tackyFonts = []string{
	"Comic Sans MS",
	"Papyrus",
	"Impact",
	"Curlz MT",
	"Jokerman",
}

// neonColors is the full tacky fill palette.
var neonColors = []RGB{
	{255, 0, 127},   // hot pink
	{0, 255, 255},   // cyan
	{255, 255, 0},   // bright yellow
	{0, 255, 0},     // lime green
	{255, 127, 0},   // bright orange
	{255, 0, 0},     // bright red
	{148, 0, 211},   // blue-violet
	{255, 192, 203}, // light pink
}

// neonPairs are curated two-color combinations for mid-level gradients.
// Both colors of every pair are members of neonColors.
var neonPairs = [][2]RGB{
	{{255, 0, 127}, {0, 255, 255}},   // hot pink / cyan
	{{255, 255, 0}, {148, 0, 211}},   // yellow / blue-violet
	{{0, 255, 0}, {255, 0, 127}},     // lime / hot pink
	{{255, 127, 0}, {0, 255, 255}},   // orange / cyan
	{{255, 0, 0}, {255, 255, 0}},     // red / yellow
	{{148, 0, 211}, {0, 255, 0}},     // blue-violet / lime
}

// Fonts returns the tacky replacement font names in fixed order.
func Fonts() []string { return tackyFonts }

// NeonColors returns the neon fill palette in fixed order.
func NeonColors() []RGB { return neonColors }

// NeonPairs returns the curated gradient color pairs in fixed order.
func NeonPairs() [][2]RGB { return neonPairs }

// verboseFillers are sentence openers prepended to paragraphs. The first
// four are the mild tier served at low content levels.
var verboseFillers = []string{
	"In today's dynamic and rapidly evolving landscape,",
	"It is imperative to note that,",
	"One could argue that,",
	"From a holistic perspective,",
	"As we navigate the complexities of modern business,",
	"Synergistically speaking,",
	"With all due respect to the aforementioned points,",
	"In the spirit of full transparency,",
}

// jargonPhrases are corporate cliches spliced into the composed text.
// First five are the mild tier.
var jargonPhrases = []string{
	"paradigm shift",
	"circle back",
	"deep dive",
	"touch base",
	"win-win situation",
	"leverage synergies",
	"move the needle",
	"boil the ocean",
	"take it offline",
	"think outside the box",
}

// triviaSnippets are appended as trailing sentences. First three are the
// mild tier.
var triviaSnippets = []string{
	" (Did you know? Bananas are berries, but strawberries are not!)",
	" (Trivia: Honey never spoils and can last forever!)",
	" (Fun fact: A group of flamingos is called a 'flamboyance'!)",
	" (Interesting: The shortest war in history lasted 38 minutes!)",
	" (Fun fact: Octopuses have three hearts!)",
	" (Random fact: The Great Wall of China is NOT visible from space!)",
}

// sarcasmPrefixes wrap a paragraph in an exaggerated framing. First two are
// the mild tier.
var sarcasmPrefixes = []string{
	"Let me tell you, ",
	"Shockingly, ",
	"Buckle up, because ",
	"Oh, how exciting - ",
	"You won't believe this, but ",
}

// mildTier reports whether a content level should only see the mild slice
// of a phrase table.
func mildTier(level int) bool { return level <= 5 }

// VerbosePhrases returns the filler openers available at the given content
// level. Low levels see a restrained subset; higher levels the full table.
func VerbosePhrases(level int) []string {
	if mildTier(level) {
		return verboseFillers[:4]
	}
	return verboseFillers
}

// JargonPhrases returns the corporate jargon available at the given level.
func JargonPhrases(level int) []string {
	if mildTier(level) {
		return jargonPhrases[:5]
	}
	return jargonPhrases
}

// TriviaSnippets returns the trailing trivia available at the given level.
func TriviaSnippets(level int) []string {
	if mildTier(level) {
		return triviaSnippets[:3]
	}
	return triviaSnippets
}

// SarcasmPrefixes returns the framing prefixes available at the given level.
func SarcasmPrefixes(level int) []string {
	if mildTier(level) {
		return sarcasmPrefixes[:2]
	}
	return sarcasmPrefixes
}

// IsNeon reports whether a color is a member of the neon palette.
func IsNeon(c RGB) bool {
	for _, n := range neonColors {
		if n == c {
			return true
		}
	}
	return false
}
