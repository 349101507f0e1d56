// Package deck provides loading, traversal, mutation, and serialization of
// PPTX (Office Open XML Presentation) packages.
//
// A Deck keeps every archive part in its original order. Slide parts are
// parsed into editable XML documents; all other parts are carried as raw
// bytes and written back verbatim, so markup the engine never touches
// survives a load/save round trip unchanged.
package deck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/tackify/format"
)

// ErrInvalidPackage indicates the input bytes are not a loadable
// presentation package.
var ErrInvalidPackage = errors.New("deck: not a valid presentation package")

// ErrSerialize indicates the package could not be written back out.
var ErrSerialize = errors.New("deck: serialize failed")

// part is a single archive entry. Slide parts carry a parsed document and
// are re-serialized on save; everything else is copied through as bytes.
type part struct {
	name string
	data []byte
	doc  *etree.Document
}

// Deck is a loaded presentation package.
type Deck struct {
	parts  []*part
	slides []*Slide
}

// Slide is one slide part of a Deck, in presentation order.
type Slide struct {
	Index int // 0-indexed position within the deck
	name  string
	doc   *etree.Document
}

// Name returns the archive path of the slide part, e.g. "ppt/slides/slide1.xml".
func (s *Slide) Name() string { return s.name }

// Root returns the slide document's root element (p:sld).
func (s *Slide) Root() *etree.Element { return s.doc.Root() }

// SetBackground replaces the slide's background with a solid color fill.
// Any existing background element, including layout-inherited references,
// is removed first. The new p:bg lands at the front of p:cSld, the
// position the schema requires.
func (s *Slide) SetBackground(hexColor string) error {
	root := s.doc.Root()
	if root == nil {
		return fmt.Errorf("slide %s has no root element", s.name)
	}
	cSld := root.SelectElement("p:cSld")
	if cSld == nil {
		return fmt.Errorf("slide %s has no cSld element", s.name)
	}
	if bg := cSld.SelectElement("p:bg"); bg != nil {
		cSld.RemoveChild(bg)
	}

	bg := etree.NewElement("p:bg")
	bgPr := bg.CreateElement("p:bgPr")
	fill := bgPr.CreateElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", hexColor)
	bgPr.CreateElement("a:effectLst")
	cSld.InsertChildAt(0, bg)
	return nil
}

// Load parses raw package bytes into a Deck. It fails with an error
// wrapping ErrInvalidPackage if the bytes are not a ZIP archive, are
// missing required parts, or contain no parseable slides.
func Load(src []byte) (*Deck, error) {
	switch format.DetectFromBytes(src) {
	case format.PPTX:
		// proceed
	case format.ZIP:
		return nil, fmt.Errorf("%w: ZIP archive without presentation parts", ErrInvalidPackage)
	default:
		return nil, fmt.Errorf("%w: not a ZIP archive", ErrInvalidPackage)
	}

	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	d := &Deck{}
	if err := d.readParts(zr); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	if err := d.parseSlides(); err != nil {
		return nil, err
	}
	return d, nil
}

// readParts copies every archive entry in order.
func (d *Deck) readParts(zr *zip.Reader) error {
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: opening %s: %v", ErrInvalidPackage, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", ErrInvalidPackage, f.Name, err)
		}
		d.parts = append(d.parts, &part{name: f.Name, data: data})
	}
	return nil
}

// validate checks that required package parts exist.
func (d *Deck) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	names := make(map[string]bool, len(d.parts))
	for _, p := range d.parts {
		names[p.name] = true
	}
	for _, name := range required {
		if !names[name] {
			return fmt.Errorf("%w: missing required part %s", ErrInvalidPackage, name)
		}
	}

	for name := range names {
		if isSlidePart(name) {
			return nil
		}
	}
	return fmt.Errorf("%w: no slides found", ErrInvalidPackage)
}

// isSlidePart reports whether an archive path is a slide XML part.
func isSlidePart(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/slide") &&
		strings.HasSuffix(name, ".xml") &&
		!strings.Contains(name, "_rels")
}

// extractSlideNumber extracts N from "ppt/slides/slideN.xml".
func extractSlideNumber(name string) int {
	trimmed := strings.TrimPrefix(name, "ppt/slides/slide")
	trimmed = strings.TrimSuffix(trimmed, ".xml")
	var num int
	fmt.Sscanf(trimmed, "%d", &num)
	return num
}

// parseSlides parses each slide part into an editable document. Slides are
// ordered by their part number, matching presentation order for packages
// produced by conformant writers.
func (d *Deck) parseSlides() error {
	var slideParts []*part
	for _, p := range d.parts {
		if isSlidePart(p.name) {
			slideParts = append(slideParts, p)
		}
	}
	sort.Slice(slideParts, func(i, j int) bool {
		return extractSlideNumber(slideParts[i].name) < extractSlideNumber(slideParts[j].name)
	})

	for _, p := range slideParts {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(p.data); err != nil {
			// Keep the raw part; it just won't be traversed or mutated.
			continue
		}
		if doc.Root() == nil {
			continue
		}
		p.doc = doc
		d.slides = append(d.slides, &Slide{Index: len(d.slides), name: p.name, doc: doc})
	}

	if len(d.slides) == 0 {
		return fmt.Errorf("%w: no slides could be parsed", ErrInvalidPackage)
	}
	return nil
}

// SlideCount returns the number of parseable slides.
func (d *Deck) SlideCount() int { return len(d.slides) }

// Slides returns the slides in presentation order.
func (d *Deck) Slides() []*Slide { return d.slides }

// Part returns the raw bytes of a named archive part, or nil if absent.
// Slide parts reflect their state at load time, not later mutations.
func (d *Deck) Part(name string) []byte {
	for _, p := range d.parts {
		if p.name == name {
			return p.data
		}
	}
	return nil
}

// Bytes serializes the deck back into package bytes. Parts are written in
// their original order with fixed headers, so the same deck state always
// produces the same bytes. Either a complete archive is returned or an
// error wrapping ErrSerialize; there is no partial output.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, p := range d.parts {
		data := p.data
		if p.doc != nil {
			out, err := p.doc.WriteToBytes()
			if err != nil {
				return nil, fmt.Errorf("%w: writing %s: %v", ErrSerialize, p.name, err)
			}
			data = out
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   p.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrSerialize, p.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrSerialize, p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}
