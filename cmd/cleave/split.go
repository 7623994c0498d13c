package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cleave/internal/modfile"
	"cleave/internal/report"
	"cleave/internal/split"
)

var splitCmd = &cobra.Command{
	Use:   "split <module>",
	Short: "Split a module by dependency depth",
	Long:  "Split a module image into a leaf module (types at or below the depth threshold) and a residual module with repaired references.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().Int("depth", 0, "depth threshold; types at or below it move to the leaf module")
	splitCmd.Flags().String("out", "", "directory for the leaf module (default: beside the source)")
	splitCmd.Flags().StringArray("search-path", nil, "directory to resolve referenced modules from (repeatable)")
	splitCmd.Flags().Bool("no-resolve", false, "skip resolving referenced external modules before splitting")
}

func runSplit(cmd *cobra.Command, args []string) error {
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return fmt.Errorf("failed to read --depth: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out: %w", err)
	}
	searchPaths, err := cmd.Flags().GetStringArray("search-path")
	if err != nil {
		return fmt.Errorf("failed to read --search-path: %w", err)
	}
	noResolve, err := cmd.Flags().GetBool("no-resolve")
	if err != nil {
		return fmt.Errorf("failed to read --no-resolve: %w", err)
	}
	useColor, err := colorFromCmd(cmd)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if manifestFound {
		if depth == 0 {
			depth = manifest.Config.Split.Depth
		}
		if outDir == "" {
			outDir = manifest.Config.Split.Out
		}
		if len(searchPaths) == 0 {
			searchPaths = manifest.Config.Resolve.SearchPaths
		}
	}
	if depth < 1 {
		return fmt.Errorf("--depth must be at least 1 (got %d)", depth)
	}

	srcPath := args[0]
	access := modfile.FS{}

	if !noResolve {
		if err := resolveExternals(cmd.Context(), access, srcPath, searchPaths); err != nil {
			return err
		}
	}

	opts := split.Options{
		Threshold:    depth,
		DestPath:     destPathFor(srcPath, outDir),
		ResidualPath: srcPath,
	}

	// Страховочная копия: residual перезаписывает исходный файл.
	backupPath, err := modfile.Backup(srcPath)
	if err != nil {
		return err
	}

	pipeline := split.Pipeline{Access: access}
	res, err := pipeline.Split(srcPath, opts)
	if err != nil {
		if restoreErr := modfile.Restore(backupPath, srcPath); restoreErr != nil {
			return fmt.Errorf("split failed (%w); restoring backup also failed: %v", err, restoreErr)
		}
		return err
	}

	if res.NoOp {
		// Ничего не записано — страховочная копия не нужна.
		_ = os.Remove(backupPath)
	}

	return writeStdoutf("%s", report.Render(res, report.Options{Color: useColor}))
}

// resolveExternals verifies every referenced module is loadable before any
// mutation happens.
func resolveExternals(ctx context.Context, access modfile.FS, srcPath string, searchPaths []string) error {
	mod, err := access.Load(srcPath)
	if err != nil {
		return err
	}
	if len(mod.Refs) == 0 {
		return nil
	}
	resolver := modfile.Resolver{Access: access, SearchPaths: append(searchPaths, filepath.Dir(srcPath))}
	if _, err := resolver.ResolveAll(ctx, mod); err != nil {
		return fmt.Errorf("resolving dependencies of %s: %w", srcPath, err)
	}
	return nil
}

// destPathFor derives the leaf module path: the source file name with the
// destination suffix inserted before the extension, in outDir when given.
func destPathFor(srcPath, outDir string) string {
	dir := filepath.Dir(srcPath)
	if outDir != "" {
		dir = outDir
	}
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+split.DestSuffix+ext)
}
