package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/p5embed/internal/config"
	"github.com/ziadkadry99/p5embed/internal/progress"
	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <glob>...",
	Short: "Import sketch JSON files into the configured store",
	Long: `Expands each glob (doublestar syntax, e.g. "sketches/**/*.json"), reads
every matching file as a sketch export and stores it. Files need at least a
"js" string property; missing html and css get the default template.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Store.Backend == config.BackendMemory {
			fmt.Fprintln(os.Stderr, "Warning: the memory store is not persistent; imported sketches are lost on exit.")
		}

		paths, err := expandGlobs(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no files match %v", args)
		}

		st, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		results := importFiles(cmd.Context(), st, paths, progress.NewReporter("Importing sketches"))

		var failed int
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "  %s: %v\n", res.Path, res.Err)
				continue
			}
			fmt.Printf("%s\t%s\n", res.ID, res.Path)
		}
		fmt.Fprintf(os.Stderr, "Imported %d of %d sketch(es)\n", len(results)-failed, len(results))
		if failed > 0 {
			return fmt.Errorf("%d file(s) could not be imported", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// importResult is the outcome for one imported file.
type importResult struct {
	Path string
	ID   string
	Err  error
}

// expandGlobs resolves patterns to a sorted, de-duplicated list of files.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// importFiles stores each file as a sketch. A bad file is reported in its
// result and does not stop the batch.
func importFiles(ctx context.Context, st store.Store, paths []string, rep progress.Reporter) []importResult {
	results := make([]importResult, 0, len(paths))
	rep.Start(len(paths))
	for i, path := range paths {
		res := importResult{Path: path}
		res.ID, res.Err = importFile(ctx, st, path)
		results = append(results, res)
		rep.Update(i+1, filepath.Base(path))
	}
	rep.Finish()
	return results
}

func importFile(ctx context.Context, st store.Store, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	doc, err := sketch.Import(data, sketch.ImportLenient)
	if err != nil {
		return "", err
	}
	saved, err := st.Create(ctx, doc.WithDefaults())
	if err != nil {
		return "", fmt.Errorf("storing sketch: %w", err)
	}
	return saved.ID, nil
}
