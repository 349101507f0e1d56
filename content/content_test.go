package content_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/tsawler/tackify/content"
	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/internal/decktest"
	"github.com/tsawler/tackify/palette"
)

const bodyText = "Quarterly revenue grew by twelve percent"

// loadDeck builds and loads a one-slide deck around a single text shape.
func loadDeck(t *testing.T, shapes ...string) *deck.Deck {
	t.Helper()
	d, err := deck.Load(decktest.Build(t, decktest.Slide(shapes...)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

// firstParagraphText returns the concatenated text of the first paragraph
// of the first shape.
func firstParagraphText(t *testing.T, d *deck.Deck) string {
	t.Helper()
	paras := d.Slides()[0].Shapes()[0].Paragraphs()
	if len(paras) == 0 {
		t.Fatal("shape has no paragraphs")
	}
	return deck.ParagraphText(paras[0])
}

// containsAny reports whether text contains any of the phrases, after
// trimming each phrase of surrounding space.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}

func TestLevel1PrependsFillerOnly(t *testing.T) {
	d := loadDeck(t, decktest.TextShape(2, "112233", "Arial", bodyText))
	content.Apply(d, 1, rand.New(rand.NewSource(1)), nil)

	got := firstParagraphText(t, d)
	if !strings.Contains(got, bodyText) {
		t.Fatalf("original text lost: %q", got)
	}
	if !containsAny(got, palette.VerbosePhrases(1)) {
		t.Errorf("no verbose filler in %q", got)
	}
	// Mild tier only at low levels.
	full := palette.VerbosePhrases(10)
	mild := palette.VerbosePhrases(1)
	for _, phrase := range full[len(mild):] {
		if strings.Contains(got, phrase) {
			t.Errorf("full-tier phrase %q surfaced at level 1", phrase)
		}
	}
	// Higher-threshold rules must not fire.
	if containsAny(got, palette.TriviaSnippets(10)) {
		t.Errorf("trivia surfaced at level 1: %q", got)
	}
	if containsAny(got, palette.SarcasmPrefixes(10)) {
		t.Errorf("sarcasm surfaced at level 1: %q", got)
	}
}

func TestLevel7StacksAllLowerRules(t *testing.T) {
	d := loadDeck(t, decktest.TextShape(2, "112233", "Arial", bodyText))
	content.Apply(d, 7, rand.New(rand.NewSource(42)), nil)

	got := firstParagraphText(t, d)
	if !strings.Contains(got, bodyText) {
		t.Fatalf("original text not contiguous in %q", got)
	}
	if !containsAny(got, palette.VerbosePhrases(7)) {
		t.Errorf("no verbose filler in %q", got)
	}
	if !containsAny(got, palette.JargonPhrases(7)) {
		t.Errorf("no jargon in %q", got)
	}
	if !containsAny(got, palette.TriviaSnippets(7)) {
		t.Errorf("no trivia in %q", got)
	}
	if !containsAny(got, palette.SarcasmPrefixes(7)) {
		t.Errorf("no sarcasm prefix in %q", got)
	}
}

func TestLevel9RepeatsAKeyWord(t *testing.T) {
	d := loadDeck(t, decktest.TextShape(2, "112233", "Arial", bodyText))
	content.Apply(d, 9, rand.New(rand.NewSource(7)), nil)

	got := firstParagraphText(t, d)

	// One of the last three original words must now appear at least
	// twice in a row.
	words := strings.Fields(bodyText)
	tail := words[len(words)-3:]
	repeated := false
	for _, w := range tail {
		if strings.Contains(got, w+" "+w) {
			repeated = true
		}
	}
	if !repeated {
		t.Errorf("no repeated key word from %v in %q", tail, got)
	}
}

func TestRepetitionLeavesOtherWordsIntact(t *testing.T) {
	// "work" is a substring of "networking"; repetition must expand the
	// chosen word's own occurrence, never a lookalike inside another word.
	d := loadDeck(t, decktest.TextShape(2, "112233", "Arial", "networking work"))
	content.Apply(d, 9, rand.New(rand.NewSource(0)), nil)

	got := firstParagraphText(t, d)
	fields := map[string]int{}
	for _, w := range strings.Fields(got) {
		fields[w]++
	}
	if fields["networking"] == 0 {
		t.Errorf("word networking destroyed: %q", got)
	}
	if strings.Contains(got, "network working") {
		t.Errorf("repetition spliced mid-word: %q", got)
	}
	if fields["networking"] < 2 && fields["work"] < 2 {
		t.Errorf("no word repeated at least twice: %q", got)
	}
}

func TestJargonInsertedAtFillerSeam(t *testing.T) {
	d := loadDeck(t, decktest.TextShape(2, "112233", "Arial", bodyText))
	content.Apply(d, 4, rand.New(rand.NewSource(3)), nil)

	got := firstParagraphText(t, d)
	if !strings.Contains(got, bodyText) {
		t.Fatalf("original text not contiguous in %q", got)
	}
	// Both the complete filler phrase and a parenthesized jargon phrase
	// precede the original text.
	matched := false
	for _, filler := range palette.VerbosePhrases(4) {
		for _, jargon := range palette.JargonPhrases(4) {
			if strings.HasPrefix(got, filler+" ("+jargon+") "+bodyText) {
				matched = true
			}
		}
	}
	if !matched {
		t.Errorf("composed text does not follow filler (jargon) original: %q", got)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	build := func() *deck.Deck {
		return loadDeck(t,
			decktest.TextShape(2, "112233", "Arial", bodyText),
			decktest.TextShape(3, "445566", "Georgia", "Second shape text"),
		)
	}

	d1 := build()
	content.Apply(d1, 8, rand.New(rand.NewSource(55)), nil)
	out1, err := d1.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	d2 := build()
	content.Apply(d2, 8, rand.New(rand.NewSource(55)), nil)
	out2, err := d2.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	if !bytes.Equal(out1, out2) {
		t.Error("same seed produced different output")
	}
}

func TestEmptyParagraphsAreSkipped(t *testing.T) {
	shapes := []string{
		decktest.PlainShape(2, "112233"),
		decktest.TextShape(3, "445566", "Arial", "   "),
	}
	d := loadDeck(t, shapes...)
	before, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	content.Apply(d, 10, rand.New(rand.NewSource(1)), nil)

	after, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("textless deck was mutated")
	}
}

func TestMultiRunParagraphCollapsesIntoFirstRun(t *testing.T) {
	multiRun := `<p:sp>
  <p:nvSpPr><p:cNvPr id="2" name="Multi"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
    <a:solidFill><a:srgbClr val="112233"/></a:solidFill>
  </p:spPr>
  <p:txBody>
    <a:bodyPr/><a:lstStyle/>
    <a:p>
      <a:r><a:rPr lang="en-US"/><a:t>Revenue </a:t></a:r>
      <a:r><a:rPr lang="en-US" b="1"/><a:t>grew</a:t></a:r>
      <a:r><a:rPr lang="en-US"/><a:t> fast</a:t></a:r>
    </a:p>
  </p:txBody>
</p:sp>`
	d := loadDeck(t, multiRun)
	content.Apply(d, 3, rand.New(rand.NewSource(1)), nil)

	p := d.Slides()[0].Shapes()[0].Paragraphs()[0]
	runs := deck.Runs(p)
	if len(runs) != 3 {
		t.Fatalf("run count changed: got %d, want 3", len(runs))
	}
	if !strings.Contains(deck.RunText(runs[0]), "Revenue grew fast") {
		t.Errorf("first run missing joined text: %q", deck.RunText(runs[0]))
	}
	for i, r := range runs[1:] {
		if deck.RunText(r) != "" {
			t.Errorf("run %d not emptied: %q", i+1, deck.RunText(r))
		}
	}
}

func TestGroupedTextIsMutated(t *testing.T) {
	d := loadDeck(t, decktest.Group(5, decktest.TextShape(6, "112233", "Arial", bodyText)))
	content.Apply(d, 2, rand.New(rand.NewSource(1)), nil)

	got := firstParagraphText(t, d)
	if got == bodyText {
		t.Error("text inside group was not mutated")
	}
	if !strings.Contains(got, bodyText) {
		t.Errorf("original text lost inside group: %q", got)
	}
}
