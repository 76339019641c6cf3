package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/diagfmt"
	"github.com/dgxo/luastyle/internal/driver"
	"github.com/dgxo/luastyle/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.lua|directory>...",
	Short: "Check Lua sources against the style guide",
	Long:  `Check runs the style rules over the given files or directories and reports every violation`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero on warnings too")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
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
		return fmt.Errorf("check failed: %w", err)
	}

	merged := driver.MergeBags(results, opts.MaxDiagnostics*maxInt(len(results), 1))

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:     colorEnabled(cmd, os.Stdout),
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
		if !quiet {
			printSummary(os.Stdout, merged, len(results))
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "luastyle",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		}
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if merged.HasErrors() || (warningsAsErrors && merged.HasWarnings()) {
		// diagnostics already printed, suppress cobra noise
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func printSummary(w *os.File, bag *diag.Bag, files int) {
	if bag.Len() == 0 {
		fmt.Fprintf(w, "%d files checked, no problems\n", files)
		return
	}
	errors := bag.CountBySeverity(diag.SevError)
	warnings := bag.CountBySeverity(diag.SevWarning)
	fixable := 0
	for _, d := range bag.Items() {
		if len(d.Fixes) > 0 {
			fixable++
		}
	}
	fmt.Fprintf(w, "%d problems (%d errors, %d warnings), %d fixable\n",
		bag.Len(), errors, warnings, fixable)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
