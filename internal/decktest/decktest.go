// Package decktest assembles synthetic presentation packages for tests.
// The generated packages are minimal but structurally valid: content
// types, package relationships, a presentation part, and one part per
// slide.
package decktest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const (
	slideNS = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

// Slide wraps shape XML fragments into a complete slide part.
func Slide(shapes ...string) string {
	return slideWithExtras(strings.Join(shapes, "\n"), "")
}

// SlideWithTransition is Slide plus a slide transition element, which the
// analyzer counts as one animation effect.
func SlideWithTransition(shapes ...string) string {
	return slideWithExtras(strings.Join(shapes, "\n"), `<p:transition><p:fade/></p:transition>`)
}

func slideWithExtras(shapes, extras string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld %s>
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
      <p:grpSpPr/>
%s
    </p:spTree>
  </p:cSld>
%s
</p:sld>`, slideNS, shapes, extras)
}

// TextShape returns a text box with a solid fill, an explicit font, and a
// font size of 1800 (18pt).
func TextShape(id int, fillHex, font, text string) string {
	return fmt.Sprintf(`<p:sp>
  <p:nvSpPr><p:cNvPr id="%d" name="Box %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:xfrm><a:off x="457200" y="274638"/><a:ext cx="1143000" cy="571500"/></a:xfrm>
    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
    <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
  </p:spPr>
  <p:txBody>
    <a:bodyPr/><a:lstStyle/>
    <a:p><a:r><a:rPr lang="en-US" sz="1800"><a:latin typeface="%s"/></a:rPr><a:t>%s</a:t></a:r></a:p>
  </p:txBody>
</p:sp>`, id, id, fillHex, font, text)
}

// PlainShape returns an autoshape with a solid fill and no text.
func PlainShape(id int, fillHex string) string {
	return fmt.Sprintf(`<p:sp>
  <p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="914400"/></a:xfrm>
    <a:prstGeom prst="ellipse"><a:avLst/></a:prstGeom>
    <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
  </p:spPr>
</p:sp>`, id, id, fillHex)
}

// NoFillShape returns an autoshape with an explicit transparent fill,
// which the design mutator must skip.
func NoFillShape(id int) string {
	return fmt.Sprintf(`<p:sp>
  <p:nvSpPr><p:cNvPr id="%d" name="Ghost %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
  <p:spPr>
    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
    <a:noFill/>
  </p:spPr>
</p:sp>`, id, id)
}

// BrokenShape returns a schema-invalid autoshape with no properties
// element, which the design mutator reports as a warning and skips.
func BrokenShape(id int) string {
	return fmt.Sprintf(`<p:sp>
  <p:nvSpPr><p:cNvPr id="%d" name="Broken %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
</p:sp>`, id, id)
}

// PictureShape returns a p:pic element, never fill-mutated.
func PictureShape(id int) string {
	return fmt.Sprintf(`<p:pic>
  <p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>
  <p:blipFill><a:blip r:embed="rId9"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>
  <p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="914400"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
</p:pic>`, id, id)
}

// Group nests shape fragments inside a p:grpSp element.
func Group(id int, shapes ...string) string {
	return fmt.Sprintf(`<p:grpSp>
  <p:nvGrpSpPr><p:cNvPr id="%d" name="Group %d"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
  <p:grpSpPr/>
%s
</p:grpSp>`, id, id, strings.Join(shapes, "\n"))
}

// Build assembles a complete package from slide part XML strings.
func Build(tb testing.TB, slides ...string) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var overrides, rels, slideIDs strings.Builder
	for i := range slides {
		n := i + 1
		fmt.Fprintf(&overrides, `  <Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`+"\n", n)
		fmt.Fprintf(&rels, `  <Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`+"\n", n, n)
		fmt.Fprintf(&slideIDs, `    <p:sldId id="%d" r:id="rId%d"/>`+"\n", 255+n, n)
	}

	writePart(tb, zw, "[Content_Types].xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
%s</Types>`, overrides.String()))

	writePart(tb, zw, "_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`)

	writePart(tb, zw, "ppt/_rels/presentation.xml.rels", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
%s</Relationships>`, rels.String()))

	writePart(tb, zw, "ppt/presentation.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation %s>
  <p:sldIdLst>
%s  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`, slideNS, slideIDs.String()))

	for i, slide := range slides {
		writePart(tb, zw, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slide)
	}

	if err := zw.Close(); err != nil {
		tb.Fatalf("closing test package: %v", err)
	}
	return buf.Bytes()
}

// writePart writes one file into the package archive.
func writePart(tb testing.TB, zw *zip.Writer, name, content string) {
	tb.Helper()
	w, err := zw.Create(name)
	if err != nil {
		tb.Fatalf("creating %s in test package: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		tb.Fatalf("writing %s: %v", name, err)
	}
}
