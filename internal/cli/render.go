package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molfig/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command that are
// not molecule options.
type renderOpts struct {
	output  string // output file path (or base path for multiple outputs)
	stats   bool   // print size and timing statistics
	noCache bool   // disable the render cache
	refresh bool   // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for generating chemfig code.
//
// With no --output and only the tex format, the code goes to stdout so it
// can be piped into a document. Otherwise each format is written to a file
// next to the input (or under the --output base path).
func (c *CLI) renderCommand() *cobra.Command {
	var flags optionFlags
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a molecule as chemfig code",
		Long: `Render a molecule document (JSON or TOML) as chemfig code.

Extra formats show how the molecule was arranged: dot, svg and png draw the
bond tree, preview draws the input coordinates, json writes the normalized
molecule document.`,
		Example: `  molfig render caffeine.json -c
  molfig render benzene.json -o benzene.tex --aromatic-circles
  molfig render caffeine.json --formats tex,svg,preview -o out/caffeine`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			popts.Refresh = opts.refresh
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], popts, opts)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (or base path for multiple formats)")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print molecule size and timings")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")

	return cmd
}

// runRender executes the pipeline on input and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, popts pipeline.Options, opts renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	c.Logger.Debug("rendering", "input", input, "options", describe(popts))
	prog := newProgress(c.Logger)

	result, err := runner.ExecuteFile(ctx, input, popts)
	if err != nil {
		return err
	}

	if opts.output == "" && slices.Equal(popts.Formats, []string{pipeline.FormatTeX}) {
		if _, err := fmt.Fprintln(stdout, string(result.Artifacts[pipeline.FormatTeX])); err != nil {
			return err
		}
	} else {
		paths, err := writeArtifacts(result, popts, input, opts.output)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Rendered %d format(s)", len(paths)))
		for _, p := range paths {
			printFile(p)
		}
	}

	if opts.stats {
		printStats(result.Stats.Atoms, result.Stats.Bonds, result.CacheInfo.RenderHit)
		printKeyValue("Size", fmt.Sprintf("%.3f × %.3f", result.Stats.Width, result.Stats.Height))
		printKeyValue("Rings", fmt.Sprintf("%d", result.Stats.Rings))
		printKeyValue("Build", result.Stats.BuildTime.String())
		printKeyValue("Render", result.Stats.RenderTime.String())
	}
	return nil
}

// writeArtifacts writes every artifact and returns the paths in format order.
// A single format goes to output verbatim when one is given.
func writeArtifacts(result *pipeline.Result, popts pipeline.Options, input, output string) ([]string, error) {
	formats := popts.Formats
	base := basePath(output, input)

	var paths []string
	for _, format := range formats {
		path := base + pipeline.FormatExtensions[format]
		if len(formats) == 1 && output != "" {
			path = output
		}
		if filepath.Clean(path) == filepath.Clean(input) {
			return nil, fmt.Errorf("%s output would overwrite the input %s; pass --output", format, input)
		}
		data := result.Artifacts[format]
		if format == pipeline.FormatTeX {
			data = append(slices.Clip(data), '\n')
		}
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.tex, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range extensionsLongestFirst() {
		if strings.HasSuffix(output, ext) && len(output) > len(ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// extensionsLongestFirst orders format extensions so ".preview.png" is
// tried before ".png".
func extensionsLongestFirst() []string {
	exts := make([]string, 0, len(pipeline.FormatExtensions))
	for _, ext := range pipeline.FormatExtensions {
		exts = append(exts, ext)
	}
	slices.SortFunc(exts, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return exts
}
