package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/driver"
	"github.com/dgxo/luastyle/internal/fix"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.lua|directory>...",
	Short: "Apply available fixes to Lua sources",
	Long:  "Run the style rules, surface available fixes, and rewrite the files to match the guide.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().Bool("interactive", false, "review each fix before applying")
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that rely on heuristics")
	fixCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}
	unsafeFixes, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if interactive && !isTerminal(os.Stdout) {
		return fmt.Errorf("--interactive requires a terminal")
	}

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg, noCache)
	if err != nil {
		return err
	}

	fileSet, results, err := driver.CheckPaths(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag != nil {
			diagnostics = append(diagnostics, r.Bag.Items()...)
		}
	}
	fixable := filterFixable(diagnostics, unsafeFixes)
	if len(fixable) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "nothing to fix")
		}
		return nil
	}

	fixOpts := fix.Options{
		DryRun:    dryRun,
		Heuristic: unsafeFixes,
	}
	var res fix.Result
	if interactive {
		var ok bool
		res, ok, err = reviewFixes(fileSet, fixable, fixOpts)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "aborted, no files changed")
			return nil
		}
	} else {
		res, err = fix.Apply(fileSet, fixable, fixOpts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}

	if !quiet {
		for _, ch := range res.Changes {
			verb := "fixed"
			if dryRun {
				verb = "would fix"
			}
			fmt.Fprintf(os.Stdout, "%s: %s %d problems\n", ch.Path, verb, ch.Applied)
		}
		if res.Skipped > 0 {
			fmt.Fprintf(os.Stdout, "%d fixes skipped (conflicting or stale)\n", res.Skipped)
		}
	}
	return nil
}

// filterFixable keeps diagnostics carrying at least one applicable fix.
func filterFixable(diags []diag.Diagnostic, heuristic bool) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			if f.Applicability == diag.FixApplicabilityAlwaysSafe || heuristic {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// reviewFixes runs the interactive review and applies the accepted fixes
// while the UI shows a spinner. ok is false when the user aborted.
func reviewFixes(fileSet *source.FileSet, diags []diag.Diagnostic, opts fix.Options) (res fix.Result, ok bool, err error) {
	items := make([]ui.ReviewItem, len(diags))
	for i, d := range diags {
		start, _ := fileSet.Resolve(d.Primary)
		item := ui.ReviewItem{
			Diag: d,
			Line: start.Line,
			Col:  start.Col,
		}
		if file := fileSet.Get(d.Primary.File); file != nil {
			item.Path = file.FormatPath("auto", fileSet.BaseDir())
			item.Excerpt = file.GetLine(start.Line)
		}
		items[i] = item
	}

	apply := func(accepted []int) error {
		chosen := make([]diag.Diagnostic, 0, len(accepted))
		for _, idx := range accepted {
			chosen = append(chosen, diags[idx])
		}
		var applyErr error
		res, applyErr = fix.Apply(fileSet, chosen, opts)
		return applyErr
	}

	_, ok, err = ui.RunReview(items, apply)
	if err != nil {
		return fix.Result{}, false, fmt.Errorf("interactive review failed: %w", err)
	}
	return res, ok, nil
}
