package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/tackify"
	"github.com/tsawler/tackify/format"
)

// defaultOutputName derives "name_TACKY.pptx" from an input path.
func defaultOutputName(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "_TACKY.pptx"
}

func newTransformCmd() *cobra.Command {
	var (
		output       string
		designLevel  int
		contentLevel int
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "transform <input.pptx>",
		Short: "Degrade a presentation's design and content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			input := args[0]

			if format.DetectFromFilename(input) != format.PPTX {
				return fmt.Errorf("input must be a .pptx file: %s", input)
			}

			t := tackify.Open(input).
				DesignLevel(designLevel).
				ContentLevel(contentLevel).
				Logger(logger)
			if cmd.Flags().Changed("seed") {
				t = t.Seed(seed)
			}

			start := time.Now()
			result, warnings, err := t.Run()
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = defaultOutputName(input)
			}
			if err := os.WriteFile(out, result.Output, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			logger.Info("done", "output", out, "elapsed", time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(cmd.OutOrStdout(), "slides: %d\nfonts: %d -> %d\ncolors: %d -> %d\nanimations: %d\nseed: %d\n",
				result.Before.TotalSlides,
				result.Before.FontsFound, result.After.FontsFound,
				result.Before.ColorsFound, result.After.ColorsFound,
				result.Before.AnimationsFound,
				result.Seed)
			if len(warnings) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d element(s):\n%s\n",
					len(warnings), tackify.FormatWarnings(warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: <input>_TACKY.pptx)")
	cmd.Flags().IntVarP(&designLevel, "design", "d", 7, "design tackiness level (1-10)")
	cmd.Flags().IntVarP(&contentLevel, "content", "c", 7, "content transformation intensity (1-10)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic seed for repeatable output")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.pptx>",
		Short: "Print a presentation's design metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			m, err := tackify.Open(args[0]).Logger(logger).Metrics()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "slides: %d\nfonts: %d\ncolors: %d\nanimations: %d\n",
				m.TotalSlides, m.FontsFound, m.ColorsFound, m.AnimationsFound)
			return nil
		},
	}
}
