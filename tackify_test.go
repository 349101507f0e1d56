package tackify_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tsawler/tackify"
	"github.com/tsawler/tackify/analyze"
	"github.com/tsawler/tackify/deck"
	"github.com/tsawler/tackify/internal/decktest"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	return decktest.Build(t,
		decktest.Slide(decktest.TextShape(2, "112233", "Arial", "Quarterly revenue grew")),
		decktest.SlideWithTransition(decktest.PlainShape(2, "445566")),
	)
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestFromBytesRun(t *testing.T) {
	result, warnings, err := tackify.FromBytes(fixture(t)).
		DesignLevel(5).
		ContentLevel(5).
		Seed(42).
		Logger(quiet()).
		Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", tackify.FormatWarnings(warnings))
	}
	if result.Seed != 42 {
		t.Errorf("seed = %d, want 42", result.Seed)
	}
	if _, err := deck.Load(result.Output); err != nil {
		t.Errorf("output does not load: %v", err)
	}
}

func TestOpenReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, fixture(t), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := tackify.Open(path).Logger(quiet()).Metrics()
	if err != nil {
		t.Fatalf("Metrics() error = %v", err)
	}
	want := analyze.Metrics{TotalSlides: 2, FontsFound: 1, ColorsFound: 2, AnimationsFound: 1}
	if m != want {
		t.Errorf("metrics = %+v, want %+v", m, want)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := tackify.Open(filepath.Join(t.TempDir(), "absent.pptx")).Run()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestChainsAreIndependent(t *testing.T) {
	base := tackify.FromBytes(fixture(t)).Seed(42).Logger(quiet())

	mild := base.DesignLevel(1).ContentLevel(1)
	harsh := base.DesignLevel(10).ContentLevel(10)

	mildRes, _, err := mild.Run()
	if err != nil {
		t.Fatalf("mild Run() error = %v", err)
	}
	harshRes, _, err := harsh.Run()
	if err != nil {
		t.Fatalf("harsh Run() error = %v", err)
	}

	if bytes.Equal(mildRes.Output, harshRes.Output) {
		t.Error("forked chains produced identical output; levels leaked between forks")
	}

	// The base chain is untouched by the forks: running it twice with the
	// shared seed stays reproducible.
	r1, _, err := base.Run()
	if err != nil {
		t.Fatalf("base Run() error = %v", err)
	}
	r2, _, err := base.Run()
	if err != nil {
		t.Fatalf("base rerun error = %v", err)
	}
	if !bytes.Equal(r1.Output, r2.Output) {
		t.Error("base chain not reproducible after forks")
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	tackify.Must(tackify.Open(filepath.Join(t.TempDir(), "absent.pptx")).Metrics())
}

func TestMustPassesValueThrough(t *testing.T) {
	m := tackify.Must(tackify.FromBytes(fixture(t)).Logger(quiet()).Metrics())
	if m.TotalSlides != 2 {
		t.Errorf("TotalSlides = %d, want 2", m.TotalSlides)
	}
}
