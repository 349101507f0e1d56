// Package tackify deliberately degrades the visual design and textual
// content of PPTX presentations, driven by two independent 1-10 intensity
// dials. Lower output quality is the success condition.
//
// Basic usage:
//
//	result, warnings, err := tackify.Open("deck.pptx").Run()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Skipped:", tackify.FormatWarnings(warnings))
//	}
//	os.WriteFile("deck_TACKY.pptx", result.Output, 0o644)
//
// With options:
//
//	result, _, err := tackify.FromBytes(src).
//	    DesignLevel(9).
//	    ContentLevel(7).
//	    Seed(42).
//	    Run()
//
// The same seed, input, and levels always reproduce the same output bytes.
// For lower-level access the deck, analyze, design, content, and pipeline
// packages are also available.
package tackify

import (
	"github.com/tsawler/tackify/deck"
)

// Warning is a non-fatal, shape-level fault recorded during a run.
type Warning = deck.Warning

// FormatWarnings joins warnings into a newline-separated block for display.
func FormatWarnings(warnings []Warning) string {
	return deck.FormatWarnings(warnings)
}

// Open prepares a transformation of a presentation file. The file is read
// when a terminal operation (Run, Metrics) executes.
//
// Example:
//
//	result, warnings, err := tackify.Open("deck.pptx").DesignLevel(5).Run()
func Open(filename string) *Transformer {
	return &Transformer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares a transformation of an in-memory package. The engine
// never touches the filesystem when the source is supplied this way.
func FromBytes(src []byte) *Transformer {
	return &Transformer{
		src:     src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	m := tackify.Must(tackify.Open("deck.pptx").Metrics())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
