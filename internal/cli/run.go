package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sdkwire/sdkwire/internal/analyzer"
	"github.com/sdkwire/sdkwire/internal/astx"
	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/generator"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// Run executes one full generation pass: load the snapshot, build the
// model, render every configured flavor, then write. Every flavor is
// rendered before anything lands on disk, so a failing render never
// leaves a half written tree behind.
func Run(ctx context.Context, cfg *Config, diag *utils.DiagnosticSystem) error {
	start := time.Now()

	diag.Verbose("Loading snapshot %s", cfg.Snapshot)
	snap, err := astx.Load(cfg.Snapshot)
	if err != nil {
		return errors.Wrap(errors.SnapshotErrorCode, "snapshot could not be loaded", err).
			WithSuggestion("regenerate the snapshot from your source tree")
	}

	content, err := analyzer.New(snap, diag).Analyze()
	if err != nil {
		return err
	}

	flavors := cfg.ParsedFlavors()
	opts := cfg.GeneratorOptions()

	trees := make([]flavorTree, 0, len(flavors))
	for _, flavor := range flavors {
		files, err := generator.Generate(content, flavor, opts)
		if err != nil {
			return err
		}
		trees = append(trees, flavorTree{
			flavor: flavor,
			dir:    filepath.Join(cfg.Output, string(flavor)),
			files:  files,
		})
	}

	// every target directory must pass recognition before the first tree
	// is touched, or one bad flavor path would leave the others rewritten
	for _, tree := range trees {
		if _, err := inspectOutputDir(tree.dir); err != nil {
			return err
		}
	}

	writer := NewWriter(diag)
	for _, tree := range trees {
		diag.Info("Writing %s flavor to %s", tree.flavor, tree.dir)
		if err := writer.WriteTree(tree.dir, tree.files); err != nil {
			return err
		}
	}

	if !cfg.Format.Skip {
		formatter := NewFormatter(diag, time.Duration(cfg.Format.TimeoutSeconds)*time.Second)
		for _, tree := range trees {
			if err := formatter.Prettify(ctx, tree.dir); err != nil {
				diag.Warn("Formatting %s failed: %v", tree.dir, err)
			}
		}
	}

	diag.Summary("Generation complete", summarize(content, trees, time.Since(start)))
	return nil
}

type flavorTree struct {
	flavor generator.Flavor
	dir    string
	files  map[string]string
}

func summarize(content *models.SdkContent, trees []flavorTree, elapsed time.Duration) []utils.SummaryStat {
	controllers, methods := 0, 0
	for _, module := range content.Modules {
		controllers += len(module.Controllers)
		for _, c := range module.Controllers {
			methods += len(c.Methods)
		}
	}
	files := 0
	for _, tree := range trees {
		files += len(tree.files)
	}
	return []utils.SummaryStat{
		{Name: "Modules", Value: len(content.Modules)},
		{Name: "Controllers", Value: controllers},
		{Name: "Methods", Value: methods},
		{Name: "Type files", Value: len(content.Types)},
		{Name: "Flavors", Value: len(trees)},
		{Name: "Files written", Value: files},
		{Name: "Elapsed", Value: elapsed.Round(time.Millisecond).String()},
	}
}
