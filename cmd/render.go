package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/p5embed/internal/demos"
	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/sketch"
)

var (
	renderEmbed    bool
	renderShowCode bool
	renderDemo     bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a sketch to standalone HTML on stdout",
	Long: `Reads a sketch export and writes the preview document to stdout. With
--embed the embed page is written instead. With --demo the argument names a
built-in demo sketch rather than a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := readSketch(args[0], renderDemo)
		if err != nil {
			return err
		}

		if !renderEmbed {
			fmt.Print(preview.Render(doc, cfg.P5URL))
			return nil
		}

		page, err := embed.Page(doc, embed.PageOptions{
			P5URL:     cfg.P5URL,
			ShowCode:  renderShowCode,
			Highlight: cfg.Embed.Highlight,
			Style:     cfg.Embed.Style,
		})
		if err != nil {
			return fmt.Errorf("rendering embed page: %w", err)
		}
		fmt.Print(page)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderEmbed, "embed", false, "write the embed page instead of the preview")
	renderCmd.Flags().BoolVar(&renderShowCode, "show-code", false, "include the code listing on the embed page")
	renderCmd.Flags().BoolVar(&renderDemo, "demo", false, "treat the argument as a demo sketch name")
	rootCmd.AddCommand(renderCmd)
}

func readSketch(arg string, demo bool) (sketch.Document, error) {
	if demo {
		doc, err := demos.Load(arg)
		if err != nil {
			return sketch.Document{}, fmt.Errorf("loading demo %q: %w", arg, err)
		}
		return doc.WithDefaults(), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return sketch.Document{}, fmt.Errorf("reading %s: %w", arg, err)
	}
	doc, err := sketch.Import(data, sketch.ImportLenient)
	if err != nil {
		return sketch.Document{}, err
	}
	return doc.WithDefaults(), nil
}
