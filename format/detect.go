// Package format provides input format sniffing for the tackify engine.
// Detection is content-based, so load failures can tell a caller whether
// they uploaded something that is not a ZIP archive at all, a ZIP that is
// not a presentation, or a real presentation package.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a detected input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates an Office Open XML presentation package.
	PPTX
	// ZIP indicates a ZIP archive that is not a presentation (another
	// OOXML flavor, an OpenDocument file, or a plain archive).
	ZIP
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case ZIP:
		return "ZIP"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// DetectFromFilename determines the expected format from a file extension.
// Content-based detection via DetectFromBytes is more reliable; this is
// used for cheap upfront rejection of obviously wrong files.
func DetectFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pptx":
		return PPTX
	case ".zip":
		return ZIP
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromBytes inspects content to determine format. ZIP archives are
// opened and probed for presentation parts.
func DetectFromBytes(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// ZIP magic: PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return detectZIPFormat(data)
	}

	return Unknown
}

// detectZIPFormat distinguishes a presentation package from other ZIPs by
// the presence of the ppt/ part tree alongside [Content_Types].xml.
func detectZIPFormat(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Correct magic but unreadable directory; treat as not a ZIP.
		return Unknown
	}

	hasContentTypes := false
	hasPresentation := false
	for _, f := range zr.File {
		switch {
		case f.Name == "[Content_Types].xml":
			hasContentTypes = true
		case strings.HasPrefix(f.Name, "ppt/"):
			hasPresentation = true
		}
	}

	if hasContentTypes && hasPresentation {
		return PPTX
	}
	return ZIP
}
