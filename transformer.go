package tackify

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tsawler/tackify/analyze"
	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/pipeline"
)

// Transformer provides a fluent interface for configuring and executing a
// degrade run. Each configuration method returns a new Transformer
// instance, making chains safe to fork and reuse concurrently.
type Transformer struct {
	// Source: exactly one of filename or src is set.
	filename string
	src      []byte

	options runOptions

	// Accumulated error (fail-fast); terminals return it unchanged.
	err error
}

// clone creates a shallow copy with deep-copied options, preserving the
// immutability of chain steps.
func (t *Transformer) clone() *Transformer {
	return &Transformer{
		filename: t.filename,
		src:      t.src,
		options:  t.options.clone(),
		err:      t.err,
	}
}

// DesignLevel sets the visual degradation dial (1-10). Out-of-range
// values are rejected when the run executes.
func (t *Transformer) DesignLevel(level int) *Transformer {
	n := t.clone()
	n.options.designLevel = level
	return n
}

// ContentLevel sets the textual degradation dial (1-10).
func (t *Transformer) ContentLevel(level int) *Transformer {
	n := t.clone()
	n.options.contentLevel = level
	return n
}

// Seed fixes the random seed so the run is reproducible. Without it a
// fresh seed is generated and reported in the result.
func (t *Transformer) Seed(seed int64) *Transformer {
	n := t.clone()
	n.options.seed = &seed
	return n
}

// Logger routes progress and shape-skip messages to the given logger
// instead of the default one.
func (t *Transformer) Logger(l *log.Logger) *Transformer {
	n := t.clone()
	n.options.logger = l
	return n
}

// source returns the package bytes, reading the file if necessary.
func (t *Transformer) source() ([]byte, error) {
	if t.src != nil {
		return t.src, nil
	}
	if t.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(t.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.filename, err)
	}
	return data, nil
}

// Run executes the full pipeline and returns the result, any shape-level
// warnings, and an error for document-level faults.
func (t *Transformer) Run() (*pipeline.Result, []Warning, error) {
	if t.err != nil {
		return nil, nil, t.err
	}
	src, err := t.source()
	if err != nil {
		return nil, nil, err
	}

	result, err := pipeline.Run(src, pipeline.Options{
		DesignLevel:  t.options.designLevel,
		ContentLevel: t.options.contentLevel,
		Seed:         t.options.seed,
		Logger:       t.options.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return result, result.Warnings, nil
}

// Metrics analyzes the source without mutating anything and returns its
// design metrics snapshot.
func (t *Transformer) Metrics() (analyze.Metrics, error) {
	if t.err != nil {
		return analyze.Metrics{}, t.err
	}
	src, err := t.source()
	if err != nil {
		return analyze.Metrics{}, err
	}
	d, err := deck.Load(src)
	if err != nil {
		return analyze.Metrics{}, err
	}
	return analyze.Analyze(d, t.options.logger), nil
}
