// Package pipeline orchestrates a full degrade run: load the package,
// snapshot metrics, mutate design and content, snapshot again, serialize.
// A run is a single-threaded, in-memory pass; concurrent runs are safe as
// long as each owns its own input bytes, since runs share no mutable state.
package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tsawler/tackify/analyze"
	"github.com/tsawler/tackify/content"
	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/design"
)

// ErrInvalidLevel indicates an intensity level outside [1,10]. Levels are
// rejected, not clamped: callers that want clamping do it themselves.
var ErrInvalidLevel = errors.New("pipeline: intensity level out of range [1,10]")

// Options configures a single run.
type Options struct {
	// DesignLevel controls visual degradation severity, 1-10.
	DesignLevel int
	// ContentLevel controls textual degradation severity, 1-10.
	ContentLevel int
	// Seed makes the run reproducible. When nil a seed is generated and
	// reported back in the Result.
	Seed *int64
	// Logger receives progress and shape-skip messages. Nil means the
	// default logger.
	Logger *log.Logger
}

// Result is the outcome of one run.
type Result struct {
	// Output is the complete transformed package. Never partial: a run
	// either produces a loadable package or fails with an error.
	Output []byte
	// Before and After are metrics snapshots around the mutation passes.
	Before analyze.Metrics
	After  analyze.Metrics
	// Seed is the effective seed used; re-running with it, the same
	// input, and the same levels reproduces Output byte for byte.
	Seed int64
	// Warnings lists shapes that were skipped rather than mutated.
	Warnings []deck.Warning
}

// Run executes the degrade pipeline over raw package bytes.
//
// Fatal errors: an error wrapping deck.ErrInvalidPackage when src does not
// load, ErrInvalidLevel before any mutation when a level is out of range,
// and an error wrapping deck.ErrSerialize if write-out fails. Shape-level
// faults never fail a run; they are logged and reported as warnings.
func Run(src []byte, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := validateLevel("design_level", opts.DesignLevel); err != nil {
		return nil, err
	}
	if err := validateLevel("content_level", opts.ContentLevel); err != nil {
		return nil, err
	}

	d, err := deck.Load(src)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("deck loaded", "slides", d.SlideCount(), "seed", seed,
		"design_level", opts.DesignLevel, "content_level", opts.ContentLevel)

	before := analyze.Analyze(d, logger)

	warnings := design.Apply(d, opts.DesignLevel, rng, logger)
	warnings = append(warnings, content.Apply(d, opts.ContentLevel, rng, logger)...)

	after := analyze.Analyze(d, logger)

	out, err := d.Bytes()
	if err != nil {
		return nil, err
	}

	logger.Info("deck transformed",
		"fonts", fmt.Sprintf("%d->%d", before.FontsFound, after.FontsFound),
		"colors", fmt.Sprintf("%d->%d", before.ColorsFound, after.ColorsFound),
		"skipped", len(warnings))

	return &Result{
		Output:   out,
		Before:   before,
		After:    after,
		Seed:     seed,
		Warnings: warnings,
	}, nil
}

// validateLevel enforces the reject policy for intensity dials.
func validateLevel(name string, level int) error {
	if level < 1 || level > 10 {
		return fmt.Errorf("%w: %s=%d", ErrInvalidLevel, name, level)
	}
	return nil
}
