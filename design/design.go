// Package design mutates a deck's visual attributes (fonts, fills,
// gradients) according to a 1-10 intensity level. All random choices come
// from a single seeded source supplied by the caller, so the same seed,
// deck, and level always produce the same mutation.
package design

import (
	"math/rand"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/palette"
)

// sizeMultiplier scales run font sizes at level 7 and above.
const sizeMultiplier = 1.3

// gradientPosMax is DrawingML's gradient stop position scale (thousandths
// of a percent).
const gradientPosMax = 100000

// backgroundThreshold is the level at which slide backgrounds are recolored.
const backgroundThreshold = 6

// Apply mutates every eligible shape's font and fill in place. A shape
// that cannot be mutated is logged, recorded as a warning, and skipped;
// one bad shape never aborts the pass. Geometry is never touched.
//
// The level-bucketed rules:
//
//	1-2   solid neon recolor only
//	3-4   tacky font replacement + solid neon recolor
//	5-6   font replacement + 2-stop pair gradient, 45-degree-step angle
//	7-8   font replacement, size increase, forced bold/italic + 3-4 stop gradient
//	9-10  as 7-8 with up to 8 shuffled stops; continuous angle at level 10
//
// At level 6 and above each slide's background is also recolored with a
// muted tone, after the slide's shapes.
func Apply(d *deck.Deck, level int, rng *rand.Rand, logger *log.Logger) []deck.Warning {
	if logger == nil {
		logger = log.Default()
	}

	var warnings []deck.Warning
	for _, slide := range d.Slides() {
		for _, shape := range slide.Shapes() {
			if err := mutateShape(shape, level, rng); err != nil {
				w := deck.Warning{
					Stage:   "design",
					Slide:   slide.Index,
					Element: shape.Name(),
					Message: err.Error(),
				}
				warnings = append(warnings, w)
				logger.Warn("skipping shape", "slide", slide.Index+1, "shape", shape.Name(), "err", err)
			}
		}
		if level >= backgroundThreshold {
			if err := slide.SetBackground(backgroundColor(rng).Hex()); err != nil {
				w := deck.Warning{
					Stage:   "design",
					Slide:   slide.Index,
					Element: "background",
					Message: err.Error(),
				}
				warnings = append(warnings, w)
				logger.Warn("skipping background", "slide", slide.Index+1, "err", err)
			}
		}
	}
	return warnings
}

// backgroundColor draws the muted background tone used at high levels:
// each component jitters within 50 of a fixed dusty-rose base.
func backgroundColor(rng *rand.Rand) palette.RGB {
	return palette.RGB{
		R: uint8(200 + rng.Intn(101) - 50),
		G: uint8(100 + rng.Intn(101) - 50),
		B: uint8(150 + rng.Intn(101) - 50),
	}
}

// mutateShape applies the font and fill actions for the level to one
// shape. Ineligible shapes return nil; only genuine faults surface as
// errors.
func mutateShape(sp *deck.Shape, level int, rng *rand.Rand) error {
	if level >= 3 {
		mutateFonts(sp, level, rng)
	}
	if !fillEligible(sp) {
		return nil
	}
	return mutateFill(sp, level, rng)
}

// fillEligible reports whether the shape's fill may be replaced. Pictures
// and graphic frames are out; so are shapes with explicit picture or
// transparent fills. Existing solid and gradient fills are overwritten.
// A malformed shape (no properties element) stays eligible so the fault
// surfaces as a warning instead of a silent skip.
func fillEligible(sp *deck.Shape) bool {
	if sp.Kind == deck.Picture || sp.Kind == deck.GraphicFrame {
		return false
	}
	if fill := sp.FillElement(); fill != nil {
		if fill.Tag == "blipFill" || fill.Tag == "noFill" {
			return false
		}
	}
	return true
}

// mutateFonts replaces every explicit typeface in the shape's text body,
// and at level 7+ also scales each run's explicit font size and forces
// bold and italic.
func mutateFonts(sp *deck.Shape, level int, rng *rand.Rand) {
	body := sp.TextBody()
	if body == nil {
		return
	}

	for _, p := range sp.Paragraphs() {
		for _, r := range deck.Runs(p) {
			rPr := deck.RunProperties(r, true)
			if rPr.SelectElement("a:latin") == nil {
				rPr.CreateElement("a:latin")
			}

			if level >= 7 {
				if sz := rPr.SelectAttrValue("sz", ""); sz != "" {
					if v, err := strconv.Atoi(sz); err == nil {
						rPr.CreateAttr("sz", strconv.Itoa(int(float64(v)*sizeMultiplier)))
					}
				}
				rPr.CreateAttr("b", "1")
				rPr.CreateAttr("i", "1")
			}
		}
	}

	// Every a:latin in the body, including paragraph defaults and
	// end-paragraph markers, carries a typeface the analyzer counts.
	fonts := palette.Fonts()
	for _, latin := range body.FindElements(".//a:latin") {
		latin.CreateAttr("typeface", fonts[rng.Intn(len(fonts))])
	}
}

// mutateFill replaces the shape's fill according to the level bucket.
func mutateFill(sp *deck.Shape, level int, rng *rand.Rand) error {
	switch {
	case level <= 4:
		colors := palette.NeonColors()
		return sp.SetSolidFill(colors[rng.Intn(len(colors))].Hex())

	case level <= 6:
		pairs := palette.NeonPairs()
		pair := pairs[rng.Intn(len(pairs))]
		stops := []deck.GradientStop{
			{Pos: 0, Color: pair[0].Hex()},
			{Pos: gradientPosMax, Color: pair[1].Hex()},
		}
		return sp.SetGradientFill(stops, stepAngle(rng))

	case level <= 8:
		n := 3 + rng.Intn(2)
		return sp.SetGradientFill(evenStops(sampleColors(rng, n)), stepAngle(rng))

	default:
		colors := append([]palette.RGB(nil), palette.NeonColors()...)
		rng.Shuffle(len(colors), func(i, j int) {
			colors[i], colors[j] = colors[j], colors[i]
		})
		var angle float64
		if level >= 10 {
			angle = rng.Float64() * 360
		} else {
			angle = stepAngle(rng)
		}
		return sp.SetGradientFill(evenStops(colors), angle)
	}
}

// stepAngle draws one of the eight 45-degree-step gradient angles.
func stepAngle(rng *rand.Rand) float64 {
	return float64(45 * rng.Intn(8))
}

// sampleColors draws n distinct colors from the neon palette.
func sampleColors(rng *rand.Rand, n int) []palette.RGB {
	colors := append([]palette.RGB(nil), palette.NeonColors()...)
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors[:n]
}

// evenStops spreads colors over the gradient ramp at offsets i/(n-1).
func evenStops(colors []palette.RGB) []deck.GradientStop {
	n := len(colors)
	stops := make([]deck.GradientStop, n)
	for i, c := range colors {
		stops[i] = deck.GradientStop{
			Pos:   i * gradientPosMax / (n - 1),
			Color: c.Hex(),
		}
	}
	return stops
}
