package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrambler/pkg/config"
	"github.com/matzehuels/scrambler/pkg/errors"
	"github.com/matzehuels/scrambler/pkg/frame"
	"github.com/matzehuels/scrambler/pkg/scramble"
)

// snapshotOptions holds the flags of the snapshot command.
type snapshotOptions struct {
	output string
	flags  config.Config
}

// snapshotCommand creates the snapshot command that scrambles a still image.
func (c *CLI) snapshotCommand() *cobra.Command {
	opts := snapshotOptions{flags: config.Default()}

	cmd := &cobra.Command{
		Use:   "snapshot <image>",
		Short: "Scramble a single image",
		Long: `Scramble a single image with the same grid settings as a live run.

The result is written next to the input as <name>-scrambled.png unless
--output is given. Pass --seed to get the same arrangement every time.`,
		Example: `  scrambler snapshot photo.jpg
  scrambler snapshot photo.jpg -r 4 -c 6 --seed 42 -o out.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			mergeFlags(cmd, &cfg, opts.flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runSnapshot(args[0], opts.output, cfg.Grid)
		},
	}

	addGridFlags(cmd, &opts.flags)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path")

	return cmd
}

func (c *CLI) runSnapshot(input, output string, g config.Grid) error {
	if output == "" {
		output = snapshotPath(input)
	}
	for _, p := range []string{input, output} {
		if err := errors.ValidateImagePath(p); err != nil {
			return err
		}
	}

	prog := newProgress(c.Logger)

	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", input)
	}

	seed := resolveSeed(g.Seed)
	grid := scramble.NewGridConfig()
	config.Config{Grid: g}.Apply(grid)
	scrambled, err := scramble.New(grid, scramble.WithSeed(seed)).Process(frame.FromImage(img))
	if err != nil {
		return err
	}

	if err := imaging.Save(scrambled.Image(), output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	prog.done("Scrambled " + filepath.Base(input))

	printSuccess("Scrambled %dx%d grid", grid.Rows(), grid.Columns())
	printFile(output)
	printDetail("seed %d", seed)
	return nil
}

// snapshotPath derives the default output path from input.
func snapshotPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-scrambled.png"
}
