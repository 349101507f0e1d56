package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PPTX, "PPTX"},
		{ZIP, "ZIP"},
		{PDF, "PDF"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetectFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"deck.pptx", PPTX},
		{"DECK.PPTX", PPTX},
		{"archive.zip", ZIP},
		{"report.pdf", PDF},
		{"slides.key", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := DetectFromFilename(tt.filename); got != tt.want {
			t.Errorf("DetectFromFilename(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

// buildZip assembles an in-memory ZIP with the given file names.
func buildZip(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte("x")); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectFromBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf magic", []byte("%PDF-1.7 rest of file"), PDF},
		{"plain text", []byte("just some text here"), Unknown},
		{"too short", []byte("PK"), Unknown},
		{"empty", nil, Unknown},
		{
			"presentation package",
			buildZip(t, "[Content_Types].xml", "ppt/presentation.xml", "ppt/slides/slide1.xml"),
			PPTX,
		},
		{
			"spreadsheet package",
			buildZip(t, "[Content_Types].xml", "xl/workbook.xml"),
			ZIP,
		},
		{
			"plain archive",
			buildZip(t, "readme.txt", "data/file.bin"),
			ZIP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromBytes(tt.data); got != tt.want {
				t.Errorf("DetectFromBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromBytesTruncatedZip(t *testing.T) {
	// Correct magic, no readable central directory.
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}
	if got := DetectFromBytes(data); got != Unknown {
		t.Errorf("DetectFromBytes(truncated zip) = %v, want Unknown", got)
	}
}
