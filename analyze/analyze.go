// Package analyze produces read-only metrics snapshots of a presentation's
// design surface: slide, font, color, and animation counts. Analysis never
// mutates the deck it inspects, so snapshots taken before and after a
// transformation are directly comparable.
package analyze

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"
	"golang.org/x/image/colornames"

	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/palette"
)

// Metrics is an immutable snapshot of a deck's design surface.
type Metrics struct {
	TotalSlides     int `json:"total_slides"`
	FontsFound      int `json:"fonts_found"`
	ColorsFound     int `json:"colors_found"`
	AnimationsFound int `json:"animations_found"`
}

// collector accumulates distinct fonts and colors during a pass.
type collector struct {
	fonts      map[string]bool
	colors     map[palette.RGB]bool
	animations int
	logger     *log.Logger
}

// Analyze walks every slide and shape of the deck and returns a fresh
// metrics snapshot. A shape whose attributes cannot be read contributes
// zero to the counts; the pass itself never fails. For a fixed deck the
// result is always identical.
func Analyze(d *deck.Deck, logger *log.Logger) Metrics {
	if logger == nil {
		logger = log.Default()
	}
	c := &collector{
		fonts:  make(map[string]bool),
		colors: make(map[palette.RGB]bool),
		logger: logger,
	}

	for _, slide := range d.Slides() {
		for _, shape := range slide.Shapes() {
			c.collectShape(shape)
		}
		c.collectSlideEffects(slide)
	}

	return Metrics{
		TotalSlides:     d.SlideCount(),
		FontsFound:      len(c.fonts),
		ColorsFound:     len(c.colors),
		AnimationsFound: c.animations,
	}
}

// collectShape gathers fonts and colors from one shape.
func (c *collector) collectShape(sp *deck.Shape) {
	if body := sp.TextBody(); body != nil {
		c.collectFonts(body)
	}
	if fill := sp.FillElement(); fill != nil {
		c.collectFill(fill, sp.Name())
	}
	if ln := sp.Line(); ln != nil {
		if solid := ln.SelectElement("a:solidFill"); solid != nil {
			c.collectColorChoice(solid, sp.Name())
		}
	}
}

// collectFonts records every explicit latin typeface in a text body,
// covering run properties, paragraph defaults, and end-paragraph markers.
func (c *collector) collectFonts(body *etree.Element) {
	for _, latin := range body.FindElements(".//a:latin") {
		if face := latin.SelectAttrValue("typeface", ""); face != "" {
			c.fonts[face] = true
		}
	}
}

// collectFill records the colors of a solid or gradient fill. Picture and
// pattern fills contribute nothing.
func (c *collector) collectFill(fill *etree.Element, shapeName string) {
	switch fill.Tag {
	case "solidFill":
		c.collectColorChoice(fill, shapeName)
	case "gradFill":
		if gsLst := fill.SelectElement("a:gsLst"); gsLst != nil {
			for _, gs := range gsLst.SelectElements("a:gs") {
				c.collectColorChoice(gs, shapeName)
			}
		}
	}
}

// collectColorChoice records the color carried by a fill or stop parent:
// an explicit sRGB value or a resolvable preset color name. Unresolvable
// color forms (theme references, system colors) are skipped.
func (c *collector) collectColorChoice(parent *etree.Element, shapeName string) {
	if srgb := parent.SelectElement("a:srgbClr"); srgb != nil {
		if rgb, ok := parseHexColor(srgb.SelectAttrValue("val", "")); ok {
			c.colors[rgb] = true
		} else {
			c.logger.Debug("skipping unparseable color", "shape", shapeName)
		}
		return
	}
	if prst := parent.SelectElement("a:prstClr"); prst != nil {
		name := strings.ToLower(prst.SelectAttrValue("val", ""))
		if rgba, ok := colornames.Map[name]; ok {
			c.colors[palette.RGB{R: rgba.R, G: rgba.G, B: rgba.B}] = true
		} else {
			c.logger.Debug("skipping unknown preset color", "shape", shapeName, "name", name)
		}
	}
}

// collectSlideEffects counts animation nodes and transitions on a slide.
// Each anim* element under the timing tree and each slide transition
// counts as one effect.
func (c *collector) collectSlideEffects(slide *deck.Slide) {
	root := slide.Root()
	if root == nil {
		return
	}
	if root.SelectElement("p:transition") != nil {
		c.animations++
	}
	if timing := root.SelectElement("p:timing"); timing != nil {
		c.animations += countAnimNodes(timing)
	}
}

// countAnimNodes counts animation effect elements in a timing subtree.
func countAnimNodes(el *etree.Element) int {
	n := 0
	for _, child := range el.ChildElements() {
		if strings.HasPrefix(child.Tag, "anim") {
			n++
		}
		n += countAnimNodes(child)
	}
	return n
}

// parseHexColor parses a six-digit hex color string.
func parseHexColor(s string) (palette.RGB, bool) {
	if len(s) != 6 {
		return palette.RGB{}, false
	}
	var vals [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return palette.RGB{}, false
		}
		vals[i] = hi<<4 | lo
	}
	return palette.RGB{R: vals[0], G: vals[1], B: vals[2]}, true
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
