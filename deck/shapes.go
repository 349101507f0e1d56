package deck

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ShapeKind identifies the element variant a Shape wraps.
type ShapeKind int

const (
	// AutoShape is a p:sp element: text boxes, rectangles, ovals, polygons.
	AutoShape ShapeKind = iota
	// Picture is a p:pic element.
	Picture
	// Connector is a p:cxnSp element.
	Connector
	// GraphicFrame is a p:graphicFrame element (tables, charts).
	GraphicFrame
)

// String returns a short name for the kind, used in warnings and logs.
func (k ShapeKind) String() string {
	switch k {
	case AutoShape:
		return "shape"
	case Picture:
		return "picture"
	case Connector:
		return "connector"
	case GraphicFrame:
		return "graphicFrame"
	default:
		return "unknown"
	}
}

// Shape wraps one drawable element on a slide. Groups are flattened during
// traversal, so a Shape is always a leaf element.
type Shape struct {
	Kind ShapeKind
	el   *etree.Element
}

// Shapes returns every leaf shape on the slide in document order,
// recursing through nested groups. A slide with no shape tree yields nil.
func (s *Slide) Shapes() []*Shape {
	root := s.doc.Root()
	if root == nil {
		return nil
	}
	cSld := root.SelectElement("p:cSld")
	if cSld == nil {
		return nil
	}
	spTree := cSld.SelectElement("p:spTree")
	if spTree == nil {
		return nil
	}
	return collectShapes(spTree, nil)
}

// collectShapes walks a shape tree or group, flattening nested groups.
func collectShapes(tree *etree.Element, out []*Shape) []*Shape {
	for _, child := range tree.ChildElements() {
		switch child.Tag {
		case "sp":
			out = append(out, &Shape{Kind: AutoShape, el: child})
		case "pic":
			out = append(out, &Shape{Kind: Picture, el: child})
		case "cxnSp":
			out = append(out, &Shape{Kind: Connector, el: child})
		case "graphicFrame":
			out = append(out, &Shape{Kind: GraphicFrame, el: child})
		case "grpSp":
			out = collectShapes(child, out)
		}
	}
	return out
}

// Name returns the shape's display name from its non-visual properties,
// or a kind/id fallback when absent.
func (sp *Shape) Name() string {
	for _, child := range sp.el.ChildElements() {
		if cNvPr := child.SelectElement("p:cNvPr"); cNvPr != nil {
			if name := cNvPr.SelectAttrValue("name", ""); name != "" {
				return name
			}
			return fmt.Sprintf("%s %s", sp.Kind, cNvPr.SelectAttrValue("id", "?"))
		}
	}
	return sp.Kind.String()
}

// Properties returns the shape's p:spPr element, or nil for shapes that
// have none (graphic frames).
func (sp *Shape) Properties() *etree.Element {
	return sp.el.SelectElement("p:spPr")
}

// fillTags are the DrawingML fill variants that may appear under spPr.
var fillTags = map[string]bool{
	"noFill":    true,
	"solidFill": true,
	"gradFill":  true,
	"blipFill":  true,
	"pattFill":  true,
	"grpFill":   true,
}

// FillElement returns the shape's explicit fill element under spPr, or nil
// if the shape inherits its fill from layout, master, or theme.
func (sp *Shape) FillElement() *etree.Element {
	spPr := sp.Properties()
	if spPr == nil {
		return nil
	}
	for _, child := range spPr.ChildElements() {
		if child.Space == "a" && fillTags[child.Tag] {
			return child
		}
	}
	return nil
}

// Line returns the shape's outline element (a:ln), or nil.
func (sp *Shape) Line() *etree.Element {
	spPr := sp.Properties()
	if spPr == nil {
		return nil
	}
	return spPr.SelectElement("a:ln")
}

// TextBody returns the shape's p:txBody element, or nil for shapes that
// carry no text frame.
func (sp *Shape) TextBody() *etree.Element {
	return sp.el.SelectElement("p:txBody")
}

// Paragraphs returns the a:p children of the shape's text body.
func (sp *Shape) Paragraphs() []*etree.Element {
	body := sp.TextBody()
	if body == nil {
		return nil
	}
	return body.SelectElements("a:p")
}

// Runs returns the a:r children of a paragraph.
func Runs(p *etree.Element) []*etree.Element {
	return p.SelectElements("a:r")
}

// RunText returns the literal text of a run.
func RunText(r *etree.Element) string {
	if t := r.SelectElement("a:t"); t != nil {
		return t.Text()
	}
	return ""
}

// SetRunText replaces the literal text of a run, creating the a:t element
// if missing.
func SetRunText(r *etree.Element, text string) {
	t := r.SelectElement("a:t")
	if t == nil {
		t = r.CreateElement("a:t")
	}
	t.SetText(text)
}

// ParagraphText concatenates the text of every run in a paragraph.
func ParagraphText(p *etree.Element) string {
	var b strings.Builder
	for _, r := range Runs(p) {
		b.WriteString(RunText(r))
	}
	return b.String()
}

// RunProperties returns a run's a:rPr element. When create is true and the
// run has none, a new one is inserted ahead of the run's text element, the
// position the schema requires.
func RunProperties(r *etree.Element, create bool) *etree.Element {
	if rPr := r.SelectElement("a:rPr"); rPr != nil {
		return rPr
	}
	if !create {
		return nil
	}
	rPr := etree.NewElement("a:rPr")
	r.InsertChildAt(0, rPr)
	return rPr
}

// GradientStop is one anchor of a gradient ramp. Pos is in thousandths of
// a percent (0 to 100000), the unit DrawingML uses.
type GradientStop struct {
	Pos   int
	Color string // six-digit hex
}

// fillInsertIndex finds where a fill element belongs among spPr children:
// after the transform and geometry elements, before everything else.
func fillInsertIndex(spPr *etree.Element) int {
	idx := 0
	for _, child := range spPr.ChildElements() {
		switch child.Tag {
		case "xfrm", "prstGeom", "custGeom":
			idx = child.Index() + 1
		}
	}
	return idx
}

// removeFill strips any explicit fill element from spPr.
func removeFill(spPr *etree.Element) {
	for _, child := range spPr.ChildElements() {
		if child.Space == "a" && fillTags[child.Tag] {
			spPr.RemoveChild(child)
		}
	}
}

// SetSolidFill replaces the shape's fill with a solid color. The caller
// must have checked eligibility; an error is returned only when the shape
// has no properties element to attach a fill to.
func (sp *Shape) SetSolidFill(hexColor string) error {
	spPr := sp.Properties()
	if spPr == nil {
		return fmt.Errorf("shape %q has no properties element", sp.Name())
	}
	removeFill(spPr)

	fill := etree.NewElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", hexColor)
	spPr.InsertChildAt(fillInsertIndex(spPr), fill)
	return nil
}

// SetGradientFill replaces the shape's fill with a linear gradient.
// angle is in degrees clockwise from the positive x axis; DrawingML stores
// it in 60000ths of a degree.
func (sp *Shape) SetGradientFill(stops []GradientStop, angle float64) error {
	spPr := sp.Properties()
	if spPr == nil {
		return fmt.Errorf("shape %q has no properties element", sp.Name())
	}
	if len(stops) < 2 {
		return fmt.Errorf("gradient needs at least 2 stops, got %d", len(stops))
	}
	removeFill(spPr)

	fill := etree.NewElement("a:gradFill")
	gsLst := fill.CreateElement("a:gsLst")
	for _, stop := range stops {
		gs := gsLst.CreateElement("a:gs")
		gs.CreateAttr("pos", fmt.Sprintf("%d", stop.Pos))
		gs.CreateElement("a:srgbClr").CreateAttr("val", stop.Color)
	}
	lin := fill.CreateElement("a:lin")
	lin.CreateAttr("ang", fmt.Sprintf("%d", int(angle*60000)))
	lin.CreateAttr("scaled", "1")
	spPr.InsertChildAt(fillInsertIndex(spPr), fill)
	return nil
}
