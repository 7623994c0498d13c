package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cleave/internal/modfile"
	"cleave/internal/report"
	"cleave/internal/split"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <module>",
	Short: "List the types of a module image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("depths", false, "compute and show dependency depths with a histogram")
}

func runInspect(cmd *cobra.Command, args []string) error {
	showDepths, err := cmd.Flags().GetBool("depths")
	if err != nil {
		return fmt.Errorf("failed to read --depths: %w", err)
	}
	useColor, err := colorFromCmd(cmd)
	if err != nil {
		return err
	}

	mod, err := modfile.FS{}.Load(args[0])
	if err != nil {
		return err
	}

	if err := writeStdoutf("%s\n", mod.Identity); err != nil {
		return err
	}
	for _, ref := range mod.Refs {
		if err := writeStdoutf("  requires %s\n", ref); err != nil {
			return err
		}
	}

	if showDepths {
		depths := split.Analyze(mod)
		return writeStdoutf("%s", report.RenderDepths(depths, report.Options{Color: useColor}))
	}

	for _, ts := range mod.Types {
		if err := writeStdoutf("  %s (%d methods, %d fields, %d nested)\n",
			ts.FullName, len(ts.Methods), len(ts.Fields), len(ts.Nested)); err != nil {
			return err
		}
	}
	return nil
}
